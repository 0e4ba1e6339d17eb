package store

import (
	"context"
	"fmt"
	"strings"

	"storefront-service/internal/domain"
)

// SubmitReview creates a pending review. Ratings outside 1..5 and blank
// titles or comments are rejected before any SQL runs; the (user, product)
// unique constraint enforces one review per buyer regardless of status.
func (s *PostgresStore) SubmitReview(ctx context.Context, productID, userID int64, rating int, title, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyReviewTitle
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrEmptyReviewText
	}

	var r domain.Review
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, user_id, rating, title, comment, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		RETURNING id, product_id, user_id, rating, title, comment, status, created_at, updated_at`,
		productID, userID, rating, title, comment).
		Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Title, &r.Comment, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, ErrReviewExists
		}
		if isForeignKeyViolation(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: SubmitReview failed to insert review: %w", err)
	}
	return &r, nil
}

func (s *PostgresStore) ListApprovedReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.title, r.comment, r.status, r.created_at, r.updated_at, u.username
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.product_id = $1 AND r.status = 'approved'
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("store: ListApprovedReviews failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Title, &r.Comment, &r.Status, &r.CreatedAt, &r.UpdatedAt, &r.Username); err != nil {
			return nil, fmt.Errorf("store: ListApprovedReviews failed to scan row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListApprovedReviews iteration error: %w", err)
	}
	return reviews, nil
}

// ListReviewsByStatus feeds the moderation queue. An empty status returns
// every review; limit <= 0 means no cap.
func (s *PostgresStore) ListReviewsByStatus(ctx context.Context, status string, limit int) ([]domain.Review, error) {
	query := `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.title, r.comment, r.status, r.created_at, r.updated_at,
		       u.username, p.name
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		JOIN products p ON r.product_id = p.id`
	var args []interface{}
	argID := 1
	if status != "" {
		switch status {
		case domain.ReviewStatusPending, domain.ReviewStatusApproved, domain.ReviewStatusRejected:
		default:
			return nil, ErrInvalidStatus
		}
		query += fmt.Sprintf(` WHERE r.status = $%d`, argID)
		args = append(args, status)
		argID++
	}
	query += ` ORDER BY r.created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argID)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListReviewsByStatus failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Title, &r.Comment, &r.Status,
			&r.CreatedAt, &r.UpdatedAt, &r.Username, &r.ProductName); err != nil {
			return nil, fmt.Errorf("store: ListReviewsByStatus failed to scan row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListReviewsByStatus iteration error: %w", err)
	}
	return reviews, nil
}

func (s *PostgresStore) ListUserReviews(ctx context.Context, userID int64) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.title, r.comment, r.status, r.created_at, r.updated_at, p.name
		FROM reviews r
		JOIN products p ON r.product_id = p.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: ListUserReviews failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Title, &r.Comment, &r.Status,
			&r.CreatedAt, &r.UpdatedAt, &r.ProductName); err != nil {
			return nil, fmt.Errorf("store: ListUserReviews failed to scan row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListUserReviews iteration error: %w", err)
	}
	return reviews, nil
}

// ModerateReview applies an approve or reject decision. Re-moderating an
// already decided review is allowed; the row keeps only the latest verdict.
func (s *PostgresStore) ModerateReview(ctx context.Context, reviewID int64, action string) error {
	var status string
	switch action {
	case "approve":
		status = domain.ReviewStatusApproved
	case "reject":
		status = domain.ReviewStatusRejected
	default:
		return ErrInvalidModeration
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE reviews SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`, status, reviewID)
	if err != nil {
		return fmt.Errorf("store: ModerateReview failed to execute update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: ModerateReview failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
