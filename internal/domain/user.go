package domain

import "time"

// User is an account row. PasswordHash never leaves the service.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the admin listing row: a user plus their order rollup.
type UserSummary struct {
	User
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}
