package domain

import "time"

// Category groups products. Slug is unique and used in storefront URLs.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product is a catalog entry. AverageRating and ReviewCount are computed
// from approved reviews at query time; a product with no approved reviews
// reports 0 for both, never null.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Description   *string   `json:"description,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	CategoryName  *string   `json:"category,omitempty"`
	Stock         int       `json:"stock"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Suggestion is a single search-as-you-type result.
type Suggestion struct {
	Type         string  `json:"type"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	CategoryID   *int64  `json:"category_id,omitempty"`
	CategoryName *string `json:"category_name,omitempty"`
	DisplayText  string  `json:"display_text"`
}
