package store

import (
	"context"
	"fmt"

	"storefront-service/internal/domain"
)

func (s *PostgresStore) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM users),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = 'completed')`).
		Scan(&stats.TotalProducts, &stats.TotalOrders, &stats.TotalUsers, &stats.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("store: DashboardStats failed to scan row: %w", err)
	}
	return &stats, nil
}

func (s *PostgresStore) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.order_number, o.total_amount, o.status,
		       o.shipping_address, o.billing_address, o.payment_method, o.payment_status,
		       o.created_at, o.updated_at, u.username
		FROM orders o
		JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: RecentOrders failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.TotalAmount, &o.Status,
			&o.ShippingAddress, &o.BillingAddress, &o.PaymentMethod, &o.PaymentStatus,
			&o.CreatedAt, &o.UpdatedAt, &o.Username); err != nil {
			return nil, fmt.Errorf("store: RecentOrders failed to scan row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: RecentOrders iteration error: %w", err)
	}
	return orders, nil
}

func (s *PostgresStore) LowStockProducts(ctx context.Context, threshold, limit int) ([]domain.Product, error) {
	if threshold <= 0 {
		threshold = 10
	}
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, stock
		FROM products
		WHERE stock < $1
		ORDER BY stock ASC
		LIMIT $2`, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("store: LowStockProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("store: LowStockProducts failed to scan row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: LowStockProducts iteration error: %w", err)
	}
	return products, nil
}

// MonthlySales aggregates completed-order revenue by calendar month,
// newest first.
func (s *PostgresStore) MonthlySales(ctx context.Context, limit int) ([]domain.MonthlySales, error) {
	if limit <= 0 {
		limit = 12
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char(created_at, 'YYYY-MM') AS month,
		       COUNT(*) AS order_count,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE status = 'completed'
		GROUP BY month
		ORDER BY month DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: MonthlySales failed to query: %w", err)
	}
	defer rows.Close()

	sales := []domain.MonthlySales{}
	for rows.Next() {
		var m domain.MonthlySales
		if err := rows.Scan(&m.Month, &m.OrderCount, &m.Revenue); err != nil {
			return nil, fmt.Errorf("store: MonthlySales failed to scan row: %w", err)
		}
		sales = append(sales, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: MonthlySales iteration error: %w", err)
	}
	return sales, nil
}

// DailySales returns order volume per day over the trailing window for the
// dashboard chart. Days without orders are absent rather than zero-filled.
func (s *PostgresStore) DailySales(ctx context.Context, days int) ([]domain.DailySales, error) {
	if days <= 0 {
		days = 7
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*) AS order_count,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE created_at >= CURRENT_DATE - $1 * INTERVAL '1 day'
		GROUP BY day
		ORDER BY day ASC`, days)
	if err != nil {
		return nil, fmt.Errorf("store: DailySales failed to query: %w", err)
	}
	defer rows.Close()

	sales := []domain.DailySales{}
	for rows.Next() {
		var d domain.DailySales
		if err := rows.Scan(&d.Date, &d.OrderCount, &d.Revenue); err != nil {
			return nil, fmt.Errorf("store: DailySales failed to scan row: %w", err)
		}
		sales = append(sales, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: DailySales iteration error: %w", err)
	}
	return sales, nil
}

// TopProducts ranks products by units sold across completed orders.
func (s *PostgresStore) TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.product_id, oi.product_name,
		       SUM(oi.quantity) AS total_sold,
		       COALESCE(SUM(oi.total_price), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status = 'completed'
		GROUP BY oi.product_id, oi.product_name
		ORDER BY total_sold DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: TopProducts failed to query: %w", err)
	}
	defer rows.Close()

	products := []domain.TopProduct{}
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.TotalSold, &p.Revenue); err != nil {
			return nil, fmt.Errorf("store: TopProducts failed to scan row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: TopProducts iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) OrderStatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) AS count
		FROM orders
		GROUP BY status
		ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: OrderStatusCounts failed to query: %w", err)
	}
	defer rows.Close()

	counts := []domain.StatusCount{}
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("store: OrderStatusCounts failed to scan row: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: OrderStatusCounts iteration error: %w", err)
	}
	return counts, nil
}
