package domain

import "time"

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalProducts int     `json:"total_products"`
	TotalOrders   int     `json:"total_orders"`
	TotalUsers    int     `json:"total_users"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// MonthlySales is one month of completed-order revenue.
type MonthlySales struct {
	Month      string  `json:"month"`
	OrderCount int     `json:"order_count"`
	Revenue    float64 `json:"revenue"`
}

// TopProduct is a best-seller row across completed orders.
type TopProduct struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	TotalSold int     `json:"total_sold"`
	Revenue   float64 `json:"revenue"`
}

// StatusCount is one bucket of the order status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DailySales is one day of order volume for the dashboard chart.
type DailySales struct {
	Date       time.Time `json:"date"`
	OrderCount int       `json:"order_count"`
	Revenue    float64   `json:"revenue"`
}
