package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

type wishlistResponse struct {
	Wishlist *domain.Wishlist      `json:"wishlist"`
	Items    []domain.WishlistItem `json:"items"`
}

// GetWishlist returns the caller's default wishlist, creating it on first
// use.
func (h *HTTPHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	wishlist, err := h.stores.Wishlist.GetOrCreateDefaultWishlist(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: GetWishlist store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}

	items, err := h.stores.Wishlist.ListWishlistItems(r.Context(), wishlist.ID)
	if err != nil {
		log.Printf("ERROR: GetWishlist item listing failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist items")
		return
	}

	respondWithJSON(w, http.StatusOK, wishlistResponse{Wishlist: wishlist, Items: items})
}

// AddToWishlistInput defines the expected input for wishlist insertion.
type AddToWishlistInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

func (h *HTTPHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	var input AddToWishlistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	wishlist, err := h.stores.Wishlist.GetOrCreateDefaultWishlist(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: AddToWishlist wishlist lookup failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}

	added, err := h.stores.Wishlist.AddToWishlist(r.Context(), wishlist.ID, input.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		log.Printf("ERROR: AddToWishlist store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}

	if !added {
		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Product already in wishlist"})
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"message": "Added to wishlist"})
}

func (h *HTTPHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	wishlist, err := h.stores.Wishlist.GetOrCreateDefaultWishlist(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: RemoveFromWishlist wishlist lookup failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}

	err = h.stores.Wishlist.RemoveFromWishlist(r.Context(), wishlist.ID, productID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrItemNotFound.Error())
			return
		}
		log.Printf("ERROR: RemoveFromWishlist store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to remove from wishlist")
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	wishlist, err := h.stores.Wishlist.GetOrCreateDefaultWishlist(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: MoveToCart wishlist lookup failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}

	err = h.stores.Wishlist.MoveToCart(r.Context(), principal.UserID, wishlist.ID, productID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrItemNotFound.Error())
			return
		}
		log.Printf("ERROR: MoveToCart store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to move to cart")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Moved to cart"})
}

func (h *HTTPHandler) ToggleWishlistVisibility(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	wishlist, err := h.stores.Wishlist.GetOrCreateDefaultWishlist(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: ToggleWishlistVisibility wishlist lookup failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}

	isPublic, err := h.stores.Wishlist.ToggleWishlistVisibility(r.Context(), wishlist.ID)
	if err != nil {
		log.Printf("ERROR: ToggleWishlistVisibility store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"is_public": isPublic})
}

func (h *HTTPHandler) ListPublicWishlists(w http.ResponseWriter, r *http.Request) {
	wishlists, err := h.stores.Wishlist.ListPublicWishlists(r.Context())
	if err != nil {
		log.Printf("ERROR: ListPublicWishlists store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlists")
		return
	}
	respondWithJSON(w, http.StatusOK, wishlists)
}

// GetSharedWishlist returns another user's wishlist. Private lists are
// visible only to their owner.
func (h *HTTPHandler) GetSharedWishlist(w http.ResponseWriter, r *http.Request) {
	wishlistID, ok := parseIDParam(r, "wishlistId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid wishlist ID format")
		return
	}

	wishlist, err := h.stores.Wishlist.GetWishlist(r.Context(), wishlistID)
	if err != nil {
		if errors.Is(err, store.ErrWishlistNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrWishlistNotFound.Error())
			return
		}
		log.Printf("ERROR: GetSharedWishlist store operation for ID %d failed: %v", wishlistID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist")
		return
	}

	if !wishlist.IsPublic {
		principal, ok := principalFrom(r.Context())
		if !ok || principal.UserID != wishlist.UserID {
			respondWithError(w, http.StatusForbidden, "Access denied")
			return
		}
	}

	items, err := h.stores.Wishlist.ListWishlistItems(r.Context(), wishlist.ID)
	if err != nil {
		log.Printf("ERROR: GetSharedWishlist item listing for ID %d failed: %v", wishlistID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve wishlist items")
		return
	}

	respondWithJSON(w, http.StatusOK, wishlistResponse{Wishlist: wishlist, Items: items})
}
