package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"storefront-service/internal/domain"
)

const (
	suggestionMinLength = 2
	suggestionLimit     = 10
	relatedProductLimit = 4
)

// productSelect joins category names and aggregates approved reviews so
// every product row carries its rating. COALESCE keeps the average at 0
// for products with no approved reviews.
const productSelect = `
	SELECT p.id, p.name, p.price, p.description, p.image_url, p.category_id,
	       c.name AS category_name, p.stock,
	       COALESCE(AVG(r.rating), 0) AS average_rating,
	       COUNT(r.id) AS review_count,
	       p.created_at
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN reviews r ON r.product_id = p.id AND r.status = 'approved'`

const productGroupBy = ` GROUP BY p.id, c.name`

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageURL, &p.CategoryID,
			&p.CategoryName, &p.Stock, &p.AverageRating, &p.ReviewCount, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("store: failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: product iteration error: %w", err)
	}
	return products, nil
}

// ListProducts compiles the structured filter into SQL. Sort keys are
// resolved through a whitelist; anything unrecognized falls back to
// newest-first.
func (s *PostgresStore) ListProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	var queryArgs []interface{}
	var whereClauses []string
	argID := 1

	if filter.SearchQuery != nil && *filter.SearchQuery != "" {
		whereClauses = append(whereClauses,
			fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d OR c.name ILIKE $%d)", argID, argID+1, argID+2))
		searchTerm := "%" + *filter.SearchQuery + "%"
		queryArgs = append(queryArgs, searchTerm, searchTerm, searchTerm)
		argID += 3
	}
	if filter.CategoryID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.category_id = $%d", argID))
		queryArgs = append(queryArgs, *filter.CategoryID)
		argID++
	}
	if filter.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.price >= $%d", argID))
		queryArgs = append(queryArgs, *filter.MinPrice)
		argID++
	}
	if filter.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.price <= $%d", argID))
		queryArgs = append(queryArgs, *filter.MaxPrice)
		argID++
	}
	if filter.InStockOnly {
		whereClauses = append(whereClauses, "p.stock > 0")
	}

	whereCondition := ""
	if len(whereClauses) > 0 {
		whereCondition = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	allowedSortColumns := map[string]string{
		"name":    "p.name",
		"price":   "p.price",
		"rating":  "average_rating",
		"date":    "p.created_at",
		"reviews": "review_count",
	}
	sortColumn, ok := allowedSortColumns[strings.ToLower(filter.SortBy)]
	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}
	if !ok {
		// Default sort: newest first.
		sortColumn, sortOrder = "p.created_at", "DESC"
	}

	query := productSelect + whereCondition + productGroupBy +
		fmt.Sprintf(" ORDER BY %s %s", sortColumn, sortOrder)

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := productSelect + ` WHERE p.id = $1` + productGroupBy
	var p domain.Product
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageURL, &p.CategoryID,
		&p.CategoryName, &p.Stock, &p.AverageRating, &p.ReviewCount, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, slug, description, created_at
		FROM categories
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, created_at
		FROM categories
		WHERE slug = $1`, slug).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: GetCategoryBySlug failed to scan row: %w", err)
	}
	return &c, nil
}

// SearchSuggestions returns up to 10 matches over product and category
// names. Inputs shorter than 2 characters yield an empty slice, not an
// error.
func (s *PostgresStore) SearchSuggestions(ctx context.Context, query string) ([]domain.Suggestion, error) {
	query = strings.TrimSpace(query)
	// Rune count, not byte length: a two-letter accented query must pass.
	if utf8.RuneCountInString(query) < suggestionMinLength {
		return []domain.Suggestion{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.category_id, c.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.name ILIKE $1 OR c.name ILIKE $1
		LIMIT $2`,
		"%"+query+"%", suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("store: SearchSuggestions failed to query: %w", err)
	}
	defer rows.Close()

	suggestions := []domain.Suggestion{}
	for rows.Next() {
		var sg domain.Suggestion
		sg.Type = "product"
		if err := rows.Scan(&sg.ProductID, &sg.ProductName, &sg.CategoryID, &sg.CategoryName); err != nil {
			return nil, fmt.Errorf("store: SearchSuggestions failed to scan row: %w", err)
		}
		if sg.CategoryName != nil {
			sg.DisplayText = fmt.Sprintf("%s (%s)", sg.ProductName, *sg.CategoryName)
		} else {
			sg.DisplayText = sg.ProductName
		}
		suggestions = append(suggestions, sg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: SearchSuggestions iteration error: %w", err)
	}
	return suggestions, nil
}

// RelatedProducts returns up to 4 products sharing the given category,
// excluding the product itself. Products without a category have no
// related set.
func (s *PostgresStore) RelatedProducts(ctx context.Context, productID int64, categoryID *int64) ([]domain.Product, error) {
	if categoryID == nil {
		return []domain.Product{}, nil
	}
	query := productSelect + ` WHERE p.category_id = $1 AND p.id != $2` + productGroupBy + ` LIMIT $3`
	rows, err := s.db.QueryContext(ctx, query, *categoryID, productID, relatedProductLimit)
	if err != nil {
		return nil, fmt.Errorf("store: RelatedProducts failed to query: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// --- Admin catalog writes ---

func (s *PostgresStore) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, description, image_url, category_id, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		p.Name, p.Price, p.Description, p.ImageURL, p.CategoryID, p.Stock)

	created := *p
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: CreateProduct failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, price = $2, description = $3, image_url = $4, category_id = $5, stock = $6
		WHERE id = $7
		RETURNING id, created_at`,
		p.Name, p.Price, p.Description, p.ImageURL, p.CategoryID, p.Stock, p.ID)

	updated := *p
	if err := row.Scan(&updated.ID, &updated.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("store: UpdateProduct failed to scan row: %w", err)
	}
	return &updated, nil
}

// DeleteProduct refuses to remove products referenced by order items;
// historical orders keep their snapshots but the catalog row must stay
// addressable for the item join.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	var referenced int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM order_items WHERE product_id = $1`, id).Scan(&referenced); err != nil {
		return fmt.Errorf("store: DeleteProduct failed to count order references: %w", err)
	}
	if referenced > 0 {
		return ErrProductInOrders
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: DeleteProduct failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteProduct failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		c.Name, c.Slug, c.Description)

	created := *c
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		if isUniqueViolation(err, "slug") {
			return nil, ErrCategorySlugExists
		}
		return nil, fmt.Errorf("store: CreateCategory failed to scan row: %w", err)
	}
	return &created, nil
}
