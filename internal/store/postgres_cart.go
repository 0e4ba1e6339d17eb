package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-service/internal/domain"
)

func (s *PostgresStore) GetCart(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ci.id, ci.product_id, p.name, p.price, p.image_url, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: GetCart failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.Price, &item.ImageURL, &item.Quantity); err != nil {
			return nil, fmt.Errorf("store: GetCart failed to scan row: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: GetCart iteration error: %w", err)
	}
	return items, nil
}

// AddToCart upserts the line: an existing (user, product) row gains the
// quantity, a missing one is inserted. The unique constraint makes this a
// single atomic statement. Quantities below 1 are rejected.
func (s *PostgresStore) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		userID, productID, quantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("store: AddToCart failed to upsert cart item: %w", err)
	}
	return nil
}

// SetQuantity overwrites the line quantity. Zero or negative removes the
// line instead.
func (s *PostgresStore) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, userID, productID)
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $1
		WHERE user_id = $2 AND product_id = $3`,
		quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("store: SetQuantity failed to execute update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: SetQuantity failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *PostgresStore) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	if err != nil {
		return fmt.Errorf("store: RemoveFromCart failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: RemoveFromCart failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *PostgresStore) ClearCart(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("store: ClearCart failed to execute delete: %w", err)
	}
	return nil
}

// ReplaceCart swaps the entire server cart for the client snapshot in one
// transaction. Lines with unknown products or non-positive quantities are
// skipped rather than failing the whole sync.
func (s *PostgresStore) ReplaceCart(ctx context.Context, userID int64, lines []domain.CartLine) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("store: ReplaceCart failed to clear cart: %w", err)
		}
		for _, line := range lines {
			if line.Quantity <= 0 {
				continue
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO cart_items (user_id, product_id, quantity)
				SELECT $1, id, $3 FROM products WHERE id = $2`,
				userID, line.ProductID, line.Quantity)
			if err != nil {
				return fmt.Errorf("store: ReplaceCart failed to insert line: %w", err)
			}
		}
		return nil
	})
}
