package domain

import "time"

// DefaultWishlistName is the name given to a user's auto-created wishlist.
const DefaultWishlistName = "My Wishlist"

// Wishlist is a named product collection. Username and ItemCount are join
// fields populated by the public listing.
type Wishlist struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	IsPublic  bool      `json:"is_public"`
	Username  string    `json:"username,omitempty"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistItem is set membership, no quantity. Product fields are joined in
// for display.
type WishlistItem struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}
