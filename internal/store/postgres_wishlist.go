package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-service/internal/domain"
)

// GetOrCreateDefaultWishlist returns the user's earliest wishlist, creating
// one on first use. Users always end up with exactly one default list.
func (s *PostgresStore) GetOrCreateDefaultWishlist(ctx context.Context, userID int64) (*domain.Wishlist, error) {
	var w domain.Wishlist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, is_public, created_at
		FROM wishlists
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT 1`, userID).
		Scan(&w.ID, &w.UserID, &w.Name, &w.IsPublic, &w.CreatedAt)
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: GetOrCreateDefaultWishlist failed to scan row: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO wishlists (user_id, name, is_public)
		VALUES ($1, $2, FALSE)
		RETURNING id, user_id, name, is_public, created_at`,
		userID, domain.DefaultWishlistName).
		Scan(&w.ID, &w.UserID, &w.Name, &w.IsPublic, &w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: GetOrCreateDefaultWishlist failed to insert: %w", err)
	}
	return &w, nil
}

func (s *PostgresStore) GetWishlist(ctx context.Context, wishlistID int64) (*domain.Wishlist, error) {
	var w domain.Wishlist
	err := s.db.QueryRowContext(ctx, `
		SELECT w.id, w.user_id, w.name, w.is_public, w.created_at, u.username
		FROM wishlists w
		JOIN users u ON w.user_id = u.id
		WHERE w.id = $1`, wishlistID).
		Scan(&w.ID, &w.UserID, &w.Name, &w.IsPublic, &w.CreatedAt, &w.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWishlistNotFound
		}
		return nil, fmt.Errorf("store: GetWishlist failed to scan row: %w", err)
	}
	return &w, nil
}

func (s *PostgresStore) ListWishlistItems(ctx context.Context, wishlistID int64) ([]domain.WishlistItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT wi.id, wi.product_id, p.name, p.price, p.image_url, p.stock, wi.created_at
		FROM wishlist_items wi
		JOIN products p ON wi.product_id = p.id
		WHERE wi.wishlist_id = $1
		ORDER BY wi.created_at DESC`, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("store: ListWishlistItems failed to query items: %w", err)
	}
	defer rows.Close()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var it domain.WishlistItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Price, &it.ImageURL, &it.Stock, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: ListWishlistItems failed to scan row: %w", err)
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListWishlistItems iteration error: %w", err)
	}
	return items, nil
}

// AddToWishlist is idempotent set insertion: it reports false, nil when the
// product was already present.
func (s *PostgresStore) AddToWishlist(ctx context.Context, wishlistID, productID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (wishlist_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (wishlist_id, product_id) DO NOTHING`,
		wishlistID, productID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, ErrProductNotFound
		}
		return false, fmt.Errorf("store: AddToWishlist failed to insert item: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: AddToWishlist failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *PostgresStore) RemoveFromWishlist(ctx context.Context, wishlistID, productID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2`,
		wishlistID, productID)
	if err != nil {
		return fmt.Errorf("store: RemoveFromWishlist failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: RemoveFromWishlist failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *PostgresStore) WishlistContains(ctx context.Context, wishlistID, productID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2
		)`, wishlistID, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("store: WishlistContains failed to scan row: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) ListPublicWishlists(ctx context.Context) ([]domain.Wishlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT w.id, w.user_id, w.name, w.is_public, w.created_at, u.username,
		       COUNT(wi.id) AS item_count
		FROM wishlists w
		JOIN users u ON w.user_id = u.id
		LEFT JOIN wishlist_items wi ON wi.wishlist_id = w.id
		WHERE w.is_public = TRUE
		GROUP BY w.id, u.username
		ORDER BY w.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: ListPublicWishlists failed to query: %w", err)
	}
	defer rows.Close()

	wishlists := []domain.Wishlist{}
	for rows.Next() {
		var w domain.Wishlist
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.IsPublic, &w.CreatedAt, &w.Username, &w.ItemCount); err != nil {
			return nil, fmt.Errorf("store: ListPublicWishlists failed to scan row: %w", err)
		}
		wishlists = append(wishlists, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListPublicWishlists iteration error: %w", err)
	}
	return wishlists, nil
}

// MoveToCart transfers a wishlist product into the cart. The cart upsert and
// the wishlist removal commit together; a missing wishlist entry aborts the
// move before the cart is touched.
func (s *PostgresStore) MoveToCart(ctx context.Context, userID, wishlistID, productID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM wishlist_items WHERE wishlist_id = $1 AND product_id = $2`,
			wishlistID, productID)
		if err != nil {
			return fmt.Errorf("store: MoveToCart failed to remove wishlist item: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("store: MoveToCart failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrItemNotFound
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, quantity)
			VALUES ($1, $2, 1)
			ON CONFLICT (user_id, product_id)
			DO UPDATE SET quantity = cart_items.quantity + 1`,
			userID, productID); err != nil {
			return fmt.Errorf("store: MoveToCart failed to upsert cart item: %w", err)
		}
		return nil
	})
}

// ToggleWishlistVisibility flips the public flag and returns the new value.
func (s *PostgresStore) ToggleWishlistVisibility(ctx context.Context, wishlistID int64) (bool, error) {
	var isPublic bool
	err := s.db.QueryRowContext(ctx, `
		UPDATE wishlists SET is_public = NOT is_public
		WHERE id = $1
		RETURNING is_public`, wishlistID).Scan(&isPublic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrWishlistNotFound
		}
		return false, fmt.Errorf("store: ToggleWishlistVisibility failed to scan row: %w", err)
	}
	return isPublic, nil
}
