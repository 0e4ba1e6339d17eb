package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront-service/internal/domain"
)

// newOrderNumber builds a human-readable order number from the date, the
// user id and a time-derived suffix. Collisions are possible and are
// resolved by the unique index plus a retry with a random suffix.
func newOrderNumber(userID int64, now time.Time) string {
	return fmt.Sprintf("ORD-%s-%d-%04d", now.Format("20060102"), userID, now.Unix()%10000)
}

// PlaceOrder converts the user's cart into an order atomically: the order
// row, its item snapshots and the cart clearing commit together or not at
// all. A duplicate order number aborts the transaction, so the whole
// operation retries once with a random suffix before giving up.
func (s *PostgresStore) PlaceOrder(ctx context.Context, userID int64, shippingAddr, billingAddr, paymentMethod string) (*domain.Order, error) {
	orderNumber := newOrderNumber(userID, time.Now())

	order, err := s.placeOrderOnce(ctx, userID, orderNumber, shippingAddr, billingAddr, paymentMethod)
	if err != nil && isUniqueViolation(err, "order_number") {
		orderNumber = fmt.Sprintf("%s-%s", orderNumber, uuid.NewString()[:8])
		order, err = s.placeOrderOnce(ctx, userID, orderNumber, shippingAddr, billingAddr, paymentMethod)
		if err != nil && isUniqueViolation(err, "order_number") {
			return nil, ErrOrderCreationFailed
		}
	}
	return order, err
}

func (s *PostgresStore) placeOrderOnce(ctx context.Context, userID int64, orderNumber, shippingAddr, billingAddr, paymentMethod string) (*domain.Order, error) {
	var order domain.Order

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT ci.product_id, p.name, p.price, ci.quantity
			FROM cart_items ci
			JOIN products p ON ci.product_id = p.id
			WHERE ci.user_id = $1`, userID)
		if err != nil {
			return fmt.Errorf("store: PlaceOrder failed to read cart: %w", err)
		}

		var items []domain.OrderItem
		var total float64
		for rows.Next() {
			var it domain.OrderItem
			if err := rows.Scan(&it.ProductID, &it.ProductName, &it.ProductPrice, &it.Quantity); err != nil {
				rows.Close()
				return fmt.Errorf("store: PlaceOrder failed to scan cart row: %w", err)
			}
			it.TotalPrice = it.ProductPrice * float64(it.Quantity)
			total += it.TotalPrice
			items = append(items, it)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("store: PlaceOrder cart iteration error: %w", err)
		}
		rows.Close()

		if len(items) == 0 {
			return ErrEmptyCart
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, order_number, total_amount, status, shipping_address, billing_address, payment_method, payment_status)
			VALUES ($1, $2, $3, 'pending', $4, $5, $6, 'pending')
			RETURNING id, user_id, order_number, total_amount, status, shipping_address, billing_address, payment_method, payment_status, created_at, updated_at`,
			userID, orderNumber, total, shippingAddr, billingAddr, paymentMethod).
			Scan(&order.ID, &order.UserID, &order.OrderNumber, &order.TotalAmount, &order.Status,
				&order.ShippingAddress, &order.BillingAddress, &order.PaymentMethod, &order.PaymentStatus,
				&order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("store: PlaceOrder failed to insert order: %w", err)
		}

		for _, it := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity, total_price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				order.ID, it.ProductID, it.ProductName, it.ProductPrice, it.Quantity, it.TotalPrice); err != nil {
				return fmt.Errorf("store: PlaceOrder failed to insert order item: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("store: PlaceOrder failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

const orderColumns = `id, user_id, order_number, total_amount, status, shipping_address, billing_address, payment_method, payment_status, created_at, updated_at`

func scanOrder(rows *sql.Rows) (domain.Order, error) {
	var o domain.Order
	err := rows.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.TotalAmount, &o.Status,
		&o.ShippingAddress, &o.BillingAddress, &o.PaymentMethod, &o.PaymentStatus,
		&o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (s *PostgresStore) GetOrderDetails(ctx context.Context, orderID int64) (*domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	err := s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID).
		Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.TotalAmount, &o.Status,
			&o.ShippingAddress, &o.BillingAddress, &o.PaymentMethod, &o.PaymentStatus,
			&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, fmt.Errorf("store: GetOrderDetails failed to scan order: %w", err)
	}

	// Snapshot columns come from order_items; the product join only
	// decorates the row with the current image, if the product survives.
	rows, err := s.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.product_name, oi.product_price, oi.quantity, oi.total_price, p.image_url
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id ASC`, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("store: GetOrderDetails failed to query items: %w", err)
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductPrice, &it.Quantity, &it.TotalPrice, &it.ImageURL); err != nil {
			return nil, nil, fmt.Errorf("store: GetOrderDetails failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("store: GetOrderDetails item iteration error: %w", err)
	}
	return &o, items, nil
}

func (s *PostgresStore) GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: GetUserOrders failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("store: GetUserOrders failed to scan row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: GetUserOrders iteration error: %w", err)
	}
	return orders, nil
}

// ListOrders returns all orders for the back office, newest first, each
// decorated with the buyer's username. An empty statusFilter returns every
// status.
func (s *PostgresStore) ListOrders(ctx context.Context, statusFilter string) ([]domain.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.order_number, o.total_amount, o.status,
		       o.shipping_address, o.billing_address, o.payment_method, o.payment_status,
		       o.created_at, o.updated_at, u.username
		FROM orders o
		JOIN users u ON o.user_id = u.id`
	var args []interface{}
	if statusFilter != "" {
		query += ` WHERE o.status = $1`
		args = append(args, statusFilter)
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListOrders failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.TotalAmount, &o.Status,
			&o.ShippingAddress, &o.BillingAddress, &o.PaymentMethod, &o.PaymentStatus,
			&o.CreatedAt, &o.UpdatedAt, &o.Username); err != nil {
			return nil, fmt.Errorf("store: ListOrders failed to scan row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListOrders iteration error: %w", err)
	}
	return orders, nil
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	switch status {
	case domain.OrderStatusPending, domain.OrderStatusCompleted, domain.OrderStatusCancelled:
	default:
		return ErrInvalidStatus
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`, status, orderID)
	if err != nil {
		return fmt.Errorf("store: UpdateOrderStatus failed to execute update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: UpdateOrderStatus failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
