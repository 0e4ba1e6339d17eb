package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"
)

// PostgresStore implements every storer interface over a single *sql.DB.
type PostgresStore struct {
	db *sql.DB
}

var _ IdentityStorer = (*PostgresStore)(nil)
var _ CatalogStorer = (*PostgresStore)(nil)
var _ CartStorer = (*PostgresStore)(nil)
var _ OrderStorer = (*PostgresStore)(nil)
var _ AddressStorer = (*PostgresStore)(nil)
var _ WishlistStorer = (*PostgresStore)(nil)
var _ ReviewStorer = (*PostgresStore)(nil)
var _ ReportStorer = (*PostgresStore)(nil)

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally narrowed to a constraint name fragment.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}
	if constraint == "" {
		return true
	}
	return strings.Contains(pqErr.Constraint, constraint) || strings.Contains(pqErr.Detail, constraint)
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key
// violation, used to map unknown product/user references to not-found.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// withTx runs fn inside a transaction, rolling back on error or panic.
func (s *PostgresStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Printf("WARN: transaction rollback failed: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		if err := s.db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
	}
	return nil
}
