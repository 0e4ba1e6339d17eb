package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// cartResponse wraps the items with a computed total so clients never
// recompute prices themselves.
type cartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func buildCartResponse(items []domain.CartItem) cartResponse {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return cartResponse{Items: items, Total: total}
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	items, err := h.stores.Cart.GetCart(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: GetCart store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve cart")
		return
	}

	respondWithJSON(w, http.StatusOK, buildCartResponse(items))
}

// AddToCartInput defines the expected input for adding a cart line.
type AddToCartInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,gt=0"`
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	var input AddToCartInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	err := h.stores.Cart.AddToCart(r.Context(), principal.UserID, input.ProductID, input.Quantity)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
			return
		}
		if errors.Is(err, store.ErrInvalidQuantity) {
			respondWithError(w, http.StatusBadRequest, store.ErrInvalidQuantity.Error())
			return
		}
		log.Printf("ERROR: AddToCart store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	items, err := h.stores.Cart.GetCart(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: AddToCart failed to reload cart: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve cart")
		return
	}

	respondWithJSON(w, http.StatusCreated, buildCartResponse(items))
}

// SetCartQuantityInput defines the expected input for a quantity update.
type SetCartQuantityInput struct {
	Quantity int `json:"quantity"`
}

func (h *HTTPHandler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input SetCartQuantityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	// Zero and negative quantities remove the line in the store layer.
	err := h.stores.Cart.SetQuantity(r.Context(), principal.UserID, productID, input.Quantity)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrItemNotFound.Error())
			return
		}
		log.Printf("ERROR: SetCartQuantity store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	items, err := h.stores.Cart.GetCart(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: SetCartQuantity failed to reload cart: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve cart")
		return
	}

	respondWithJSON(w, http.StatusOK, buildCartResponse(items))
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	productID, ok := parseIDParam(r, "productId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	err := h.stores.Cart.RemoveFromCart(r.Context(), principal.UserID, productID)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrItemNotFound.Error())
			return
		}
		log.Printf("ERROR: RemoveFromCart store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to remove from cart")
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	if err := h.stores.Cart.ClearCart(r.Context(), principal.UserID); err != nil {
		log.Printf("ERROR: ClearCart store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

// SyncCartInput is a full client-side cart snapshot. The server cart is
// replaced, never merged.
type SyncCartInput struct {
	Items []domain.CartLine `json:"items"`
}

func (h *HTTPHandler) SyncCart(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	var input SyncCartInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.stores.Cart.ReplaceCart(r.Context(), principal.UserID, input.Items); err != nil {
		log.Printf("ERROR: SyncCart store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to sync cart")
		return
	}

	items, err := h.stores.Cart.GetCart(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: SyncCart failed to reload cart: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve cart")
		return
	}

	respondWithJSON(w, http.StatusOK, buildCartResponse(items))
}
