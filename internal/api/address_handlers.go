package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

func (h *HTTPHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	addresses, err := h.stores.Address.ListAddresses(r.Context(), principal.UserID, r.URL.Query().Get("type"))
	if err != nil {
		if errors.Is(err, store.ErrInvalidAddrType) {
			respondWithError(w, http.StatusBadRequest, store.ErrInvalidAddrType.Error())
			return
		}
		log.Printf("ERROR: ListAddresses store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve addresses")
		return
	}

	respondWithJSON(w, http.StatusOK, addresses)
}

// CreateAddressInput defines the expected input for saving an address.
type CreateAddressInput struct {
	AddressType   string  `json:"address_type" validate:"required,oneof=shipping billing"`
	FullName      string  `json:"full_name" validate:"required,max=255"`
	StreetAddress string  `json:"street_address" validate:"required,max=500"`
	City          string  `json:"city" validate:"required,max=100"`
	State         string  `json:"state" validate:"required,max=100"`
	PostalCode    string  `json:"postal_code" validate:"required,max=20"`
	Country       string  `json:"country" validate:"omitempty,max=100"`
	PhoneNumber   *string `json:"phone_number" validate:"omitempty,max=30"`
	IsDefault     bool    `json:"is_default"`
}

func (h *HTTPHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r.Context())

	var input CreateAddressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	address := &domain.Address{
		UserID:        principal.UserID,
		AddressType:   input.AddressType,
		FullName:      input.FullName,
		StreetAddress: input.StreetAddress,
		City:          input.City,
		State:         input.State,
		PostalCode:    input.PostalCode,
		Country:       input.Country,
		PhoneNumber:   input.PhoneNumber,
		IsDefault:     input.IsDefault,
	}

	created, err := h.stores.Address.CreateAddress(r.Context(), address)
	if err != nil {
		if errors.Is(err, store.ErrInvalidAddrType) {
			respondWithError(w, http.StatusBadRequest, store.ErrInvalidAddrType.Error())
			return
		}
		log.Printf("ERROR: CreateAddress store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to save address")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}
