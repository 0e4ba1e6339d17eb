package domain

import "time"

// Address types. At most one address per (user, type) is flagged default.
const (
	AddressTypeShipping = "shipping"
	AddressTypeBilling  = "billing"
)

type Address struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	AddressType   string    `json:"address_type"`
	FullName      string    `json:"full_name"`
	StreetAddress string    `json:"street_address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	PhoneNumber   *string   `json:"phone_number,omitempty"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}
