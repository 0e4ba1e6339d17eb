package domain

// CartItem is a cart line joined with current product data for display.
// Rows are unique per (user, product); quantity mutates in place.
type CartItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

// CartLine is the minimal (product, quantity) pair used when replacing the
// server cart from a client snapshot.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
