package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront-service/internal/store"
)

func (h *HTTPHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	reviews, err := h.stores.Review.ListApprovedReviews(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: ListProductReviews store operation for ID %d failed: %v", productID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	respondWithJSON(w, http.StatusOK, reviews)
}

// SubmitReviewInput defines the expected input for a new review.
type SubmitReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title   string `json:"title" validate:"required,max=255"`
	Comment string `json:"comment" validate:"required"`
}

func (h *HTTPHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input SubmitReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	review, err := h.stores.Review.SubmitReview(r.Context(), productID, principal.UserID,
		input.Rating, input.Title, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrReviewExists):
			respondWithError(w, http.StatusConflict, store.ErrReviewExists.Error())
		case errors.Is(err, store.ErrProductNotFound):
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		case errors.Is(err, store.ErrInvalidRating),
			errors.Is(err, store.ErrEmptyReviewTitle),
			errors.Is(err, store.ErrEmptyReviewText):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR: SubmitReview store operation failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to submit review")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

func (h *HTTPHandler) ListMyReviews(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	reviews, err := h.stores.Review.ListUserReviews(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: ListMyReviews store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	respondWithJSON(w, http.StatusOK, reviews)
}
