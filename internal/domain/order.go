package domain

import "time"

// Order lifecycle statuses. Payment status is tracked independently and is
// not constrained to a transition graph.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed order. TotalAmount is computed once at creation from the
// cart snapshot and never recomputed. The address fields are denormalized
// text snapshots, deliberately not foreign keys, so later address edits do
// not rewrite history.
type Order struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	OrderNumber     string    `json:"order_number"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	ShippingAddress string    `json:"shipping_address"`
	BillingAddress  string    `json:"billing_address"`
	PaymentMethod   string    `json:"payment_method"`
	PaymentStatus   string    `json:"payment_status"`
	Username        string    `json:"username,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OrderItem snapshots product name and price at purchase time; the product
// reference is informational only and survives product deletion.
type OrderItem struct {
	ID           int64   `json:"id"`
	OrderID      int64   `json:"order_id"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
	ImageURL     *string `json:"image_url,omitempty"`
}
