package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_PlaceOrder(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	userID := int64(5)

	cartQuery := regexp.QuoteMeta(`SELECT ci.product_id, p.name, p.price, ci.quantity`)
	orderInsert := regexp.QuoteMeta(`INSERT INTO orders (user_id, order_number, total_amount, status`)
	itemInsert := regexp.QuoteMeta(`INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity, total_price)`)
	clearCart := regexp.QuoteMeta(`DELETE FROM cart_items WHERE user_id = $1`)

	// Two lines totalling 23.50: 2 x 9.99 + 1 x 3.52.
	cartRows := sqlmock.NewRows([]string{"product_id", "name", "price", "quantity"}).
		AddRow(int64(10), "Phone Case - Premium", 9.99, 2).
		AddRow(int64(11), "Cable Tie Pack", 3.52, 1)

	orderRows := sqlmock.NewRows([]string{
		"id", "user_id", "order_number", "total_amount", "status",
		"shipping_address", "billing_address", "payment_method", "payment_status",
		"created_at", "updated_at",
	}).AddRow(int64(42), userID, "ORD-20260901-5-1234", 23.50, "pending",
		"1 Main St", "1 Main St", "card", "pending", now, now)

	mock.ExpectBegin()
	mock.ExpectQuery(cartQuery).WithArgs(userID).WillReturnRows(cartRows)
	// The order number is derived from the clock, so it is not matched here.
	mock.ExpectQuery(orderInsert).WillReturnRows(orderRows)
	mock.ExpectExec(itemInsert).
		WithArgs(int64(42), int64(10), "Phone Case - Premium", 9.99, 2, 19.98).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(itemInsert).
		WithArgs(int64(42), int64(11), "Cable Tie Pack", 3.52, 1, 3.52).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(clearCart).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	order, err := store.PlaceOrder(context.Background(), userID, "1 Main St", "1 Main St", "card")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(42), order.ID)
	assert.InDelta(t, 23.50, order.TotalAmount, 0.001)
	assert.Equal(t, "pending", order.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PlaceOrder_EmptyCart(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	cartQuery := regexp.QuoteMeta(`SELECT ci.product_id, p.name, p.price, ci.quantity`)

	mock.ExpectBegin()
	mock.ExpectQuery(cartQuery).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "price", "quantity"}))
	mock.ExpectRollback()

	order, err := store.PlaceOrder(context.Background(), 5, "1 Main St", "1 Main St", "card")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCart), "Error should be ErrEmptyCart")
	assert.Nil(t, order)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PlaceOrder_RetriesOnDuplicateNumber(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)
	userID := int64(5)

	cartQuery := regexp.QuoteMeta(`SELECT ci.product_id, p.name, p.price, ci.quantity`)
	orderInsert := regexp.QuoteMeta(`INSERT INTO orders (user_id, order_number, total_amount, status`)
	itemInsert := regexp.QuoteMeta(`INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity, total_price)`)
	clearCart := regexp.QuoteMeta(`DELETE FROM cart_items WHERE user_id = $1`)

	cartRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"product_id", "name", "price", "quantity"}).
			AddRow(int64(10), "Wireless Charger", 39.99, 1)
	}

	// First attempt aborts on the order_number unique index.
	pqErr := &pq.Error{Code: "23505", Constraint: "orders_order_number_key"}
	mock.ExpectBegin()
	mock.ExpectQuery(cartQuery).WithArgs(userID).WillReturnRows(cartRows())
	mock.ExpectQuery(orderInsert).WillReturnError(pqErr)
	mock.ExpectRollback()

	// Second attempt runs with a suffixed number and succeeds.
	orderRows := sqlmock.NewRows([]string{
		"id", "user_id", "order_number", "total_amount", "status",
		"shipping_address", "billing_address", "payment_method", "payment_status",
		"created_at", "updated_at",
	}).AddRow(int64(43), userID, "ORD-20260901-5-1234-a1b2c3d4", 39.99, "pending",
		"1 Main St", "1 Main St", "card", "pending", now, now)

	mock.ExpectBegin()
	mock.ExpectQuery(cartQuery).WithArgs(userID).WillReturnRows(cartRows())
	mock.ExpectQuery(orderInsert).WillReturnRows(orderRows)
	mock.ExpectExec(itemInsert).
		WithArgs(int64(43), int64(10), "Wireless Charger", 39.99, 1, 39.99).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(clearCart).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := store.PlaceOrder(context.Background(), userID, "1 Main St", "1 Main St", "card")

	require.NoError(t, err, "A single collision should be retried, not surfaced")
	require.NotNil(t, order)
	assert.Equal(t, int64(43), order.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetOrderDetails_NotFound(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(`FROM orders WHERE id = $1`)
	mock.ExpectQuery(query).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	order, items, err := store.GetOrderDetails(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOrderNotFound), "Error should be ErrOrderNotFound")
	assert.Nil(t, order)
	assert.Nil(t, items)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetOrderDetails(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	now := time.Now().Truncate(time.Millisecond)

	orderQuery := regexp.QuoteMeta(`FROM orders WHERE id = $1`)
	itemsQuery := regexp.QuoteMeta(`LEFT JOIN products p ON oi.product_id = p.id`)

	orderRows := sqlmock.NewRows([]string{
		"id", "user_id", "order_number", "total_amount", "status",
		"shipping_address", "billing_address", "payment_method", "payment_status",
		"created_at", "updated_at",
	}).AddRow(int64(42), int64(5), "ORD-20260901-5-1234", 19.98, "pending",
		"1 Main St", "1 Main St", "card", "pending", now, now)

	// The second item's product was deleted after purchase; the snapshot
	// survives with a NULL image.
	itemRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "product_price", "quantity", "total_price", "image_url"}).
		AddRow(int64(1), int64(42), int64(10), "Phone Case - Premium", 9.99, 1, 9.99, PtrTo("https://example.com/case.png")).
		AddRow(int64(2), int64(42), int64(11), "Discontinued Gadget", 9.99, 1, 9.99, nil)

	mock.ExpectQuery(orderQuery).WithArgs(int64(42)).WillReturnRows(orderRows)
	mock.ExpectQuery(itemsQuery).WithArgs(int64(42)).WillReturnRows(itemRows)

	order, items, err := store.GetOrderDetails(context.Background(), 42)

	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, items, 2)
	assert.Equal(t, "Discontinued Gadget", items[1].ProductName)
	assert.Nil(t, items[1].ImageURL)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	err := store.UpdateOrderStatus(context.Background(), 42, "shipped-to-mars")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStatus), "Error should be ErrInvalidStatus")

	// No SQL should have been issued.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateOrderStatus(t *testing.T) {
	db, mock, store := newMockDBAndStore(t)
	defer db.Close()

	query := regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP`)
	mock.ExpectExec(query).WithArgs("completed", int64(42)).WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpdateOrderStatus(context.Background(), 42, "completed")

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
