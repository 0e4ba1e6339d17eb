package domain

import "time"

// Review moderation statuses. New reviews always start pending and stay
// invisible to the public listing until approved.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Review is a user-submitted rating, unique per (user, product) regardless
// of status. Username and ProductName are join fields populated by listing
// queries.
type Review struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	UserID      int64     `json:"user_id"`
	Rating      int       `json:"rating"`
	Title       string    `json:"title"`
	Comment     string    `json:"comment"`
	Status      string    `json:"status"`
	Username    string    `json:"username,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
