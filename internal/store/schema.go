package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// migrations is the ordered schema bootstrap. Every statement is
// create-if-absent so the list is safe to run against an already
// initialized database, and additive statements evolve existing tables
// without data loss.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT UNIQUE NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		description TEXT,
		image_url TEXT,
		category_id BIGINT REFERENCES categories (id),
		stock INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	// Additive evolution: older deployments predate the admin flag.
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS is_admin BOOLEAN NOT NULL DEFAULT FALSE`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		product_id BIGINT NOT NULL REFERENCES products (id),
		quantity INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		order_number TEXT UNIQUE NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		shipping_address TEXT NOT NULL DEFAULT '',
		billing_address TEXT NOT NULL DEFAULT '',
		payment_method TEXT NOT NULL DEFAULT '',
		payment_status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders (id),
		product_id BIGINT NOT NULL,
		product_name TEXT NOT NULL,
		product_price NUMERIC(12,2) NOT NULL,
		quantity INTEGER NOT NULL,
		total_price NUMERIC(12,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		address_type TEXT NOT NULL,
		full_name TEXT NOT NULL,
		street_address TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		postal_code TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT 'US',
		phone_number TEXT,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products (id),
		user_id BIGINT NOT NULL REFERENCES users (id),
		rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
		title TEXT NOT NULL,
		comment TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS wishlists (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		name TEXT NOT NULL DEFAULT 'My Wishlist',
		is_public BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS wishlist_items (
		id BIGSERIAL PRIMARY KEY,
		wishlist_id BIGINT NOT NULL REFERENCES wishlists (id),
		product_id BIGINT NOT NULL REFERENCES products (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (wishlist_id, product_id)
	)`,
}

// Bootstrap applies the schema migrations in order. It runs once at process
// start, before the server accepts requests.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: migration %d failed: %w", i, err)
		}
	}
	return nil
}

type seedCategory struct {
	name, slug, description string
}

type seedProduct struct {
	name         string
	price        float64
	description  string
	imageURL     string
	stock        int
	categorySlug string
}

var seedCategories = []seedCategory{
	{"Smartphones", "smartphones", "Latest smartphones and mobile devices"},
	{"Laptops", "laptops", "Laptops, notebooks and computing devices"},
	{"Audio", "audio", "Headphones, speakers and audio equipment"},
	{"Wearables", "wearables", "Smartwatches and wearable technology"},
	{"Accessories", "accessories", "Cases, chargers and tech accessories"},
}

var seedProducts = []seedProduct{
	{"Wireless Bluetooth Headphones", 99.99, "High-quality wireless headphones with noise cancellation", "https://via.placeholder.com/300x200?text=Headphones", 15, "audio"},
	{"Smartphone X Pro", 899.99, "Latest smartphone with advanced camera and processor", "https://via.placeholder.com/300x200?text=Smartphone+X", 10, "smartphones"},
	{"Gaming Laptop Pro", 1299.99, "High-performance laptop for gaming and work", "https://via.placeholder.com/300x200?text=Gaming+Laptop", 8, "laptops"},
	{"Smart Watch Series 5", 249.99, "Feature-rich smartwatch with health monitoring", "https://via.placeholder.com/300x200?text=Smart+Watch", 20, "wearables"},
	{"Wireless Earbuds", 79.99, "True wireless earbuds with charging case", "https://via.placeholder.com/300x200?text=Earbuds", 25, "audio"},
	{"Ultra-Thin Laptop", 899.99, "Lightweight and powerful ultrabook", "https://via.placeholder.com/300x200?text=Ultrabook", 12, "laptops"},
	{"Phone Case - Premium", 29.99, "Protective case with premium materials", "https://via.placeholder.com/300x200?text=Phone+Case", 50, "accessories"},
	{"Wireless Charger", 39.99, "Fast wireless charging pad", "https://via.placeholder.com/300x200?text=Charger", 30, "accessories"},
}

// Seed inserts demo data when the corresponding tables are empty: sample
// categories and products, an admin account and a demo account. Counts are
// checked before every batch, so re-running is a no-op.
func Seed(ctx context.Context, db *sql.DB) error {
	var categoryCount int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&categoryCount); err != nil {
		return fmt.Errorf("store: seed count categories: %w", err)
	}
	if categoryCount == 0 {
		for _, c := range seedCategories {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO categories (name, slug, description) VALUES ($1, $2, $3)`,
				c.name, c.slug, c.description); err != nil {
				return fmt.Errorf("store: seed category %q: %w", c.slug, err)
			}
		}
		log.Println("INFO: Sample categories inserted.")
	}

	var productCount int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&productCount); err != nil {
		return fmt.Errorf("store: seed count products: %w", err)
	}
	if productCount == 0 {
		for _, p := range seedProducts {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO products (name, price, description, image_url, stock, category_id)
				 VALUES ($1, $2, $3, $4, $5, (SELECT id FROM categories WHERE slug = $6))`,
				p.name, p.price, p.description, p.imageURL, p.stock, p.categorySlug); err != nil {
				return fmt.Errorf("store: seed product %q: %w", p.name, err)
			}
		}
		log.Println("INFO: Sample products inserted.")
	}

	// Products backfilled from before categories existed fall into the
	// first category rather than staying uncategorized.
	if _, err := db.ExecContext(ctx,
		`UPDATE products SET category_id = (SELECT MIN(id) FROM categories) WHERE category_id IS NULL`); err != nil {
		return fmt.Errorf("store: backfill product categories: %w", err)
	}

	var userCount int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("store: seed count users: %w", err)
	}
	if userCount == 0 {
		if err := seedUser(ctx, db, "admin", "admin@example.com", "admin123", true); err != nil {
			return err
		}
		if err := seedUser(ctx, db, "demo", "demo@example.com", "demo123", false); err != nil {
			return err
		}
		log.Println("INFO: Bootstrap admin and demo accounts created.")
	}

	return nil
}

func seedUser(ctx context.Context, db *sql.DB, username, email, password string, isAdmin bool) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("store: seed hash password for %q: %w", username, err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, is_admin) VALUES ($1, $2, $3, $4)`,
		username, email, string(hash), isAdmin); err != nil {
		return fmt.Errorf("store: seed user %q: %w", username, err)
	}
	return nil
}
