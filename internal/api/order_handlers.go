package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// PlaceOrderInput defines the expected checkout payload. Addresses are
// free-form text snapshots, not address book references.
type PlaceOrderInput struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	BillingAddress  string `json:"billing_address"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	var input PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if input.BillingAddress == "" {
		input.BillingAddress = input.ShippingAddress
	}

	order, err := h.stores.Order.PlaceOrder(r.Context(), principal.UserID,
		input.ShippingAddress, input.BillingAddress, input.PaymentMethod)
	if err != nil {
		if errors.Is(err, store.ErrEmptyCart) {
			respondWithError(w, http.StatusBadRequest, store.ErrEmptyCart.Error())
		} else if errors.Is(err, store.ErrOrderCreationFailed) {
			log.Printf("ERROR: PlaceOrder exhausted retries for user %d: %v", principal.UserID, err)
			respondWithError(w, http.StatusInternalServerError, store.ErrOrderCreationFailed.Error())
		} else {
			log.Printf("ERROR: PlaceOrder store operation failed: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to place order")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, order)
}

func (h *HTTPHandler) ListUserOrders(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	orders, err := h.stores.Order.GetUserOrders(r.Context(), principal.UserID)
	if err != nil {
		log.Printf("ERROR: ListUserOrders store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *HTTPHandler) GetOrderDetails(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	orderID, ok := parseIDParam(r, "orderId")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, items, err := h.stores.Order.GetOrderDetails(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrOrderNotFound.Error())
			return
		}
		log.Printf("ERROR: GetOrderDetails store operation for ID %d failed: %v", orderID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve order")
		return
	}

	// Orders are visible to their owner and to admins only.
	if order.UserID != principal.UserID && !principal.IsAdmin {
		respondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		Order *domain.Order      `json:"order"`
		Items []domain.OrderItem `json:"items"`
	}{Order: order, Items: items})
}
