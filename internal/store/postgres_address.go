package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-service/internal/domain"
)

const addressColumns = `id, user_id, address_type, full_name, street_address, city, state, postal_code, country, phone_number, is_default, created_at`

// ListAddresses returns the user's address book, defaults first. An empty
// addressType returns both types, grouped by type.
func (s *PostgresStore) ListAddresses(ctx context.Context, userID int64, addressType string) ([]domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1`
	args := []interface{}{userID}
	if addressType != "" {
		if addressType != domain.AddressTypeShipping && addressType != domain.AddressTypeBilling {
			return nil, ErrInvalidAddrType
		}
		query += ` AND address_type = $2 ORDER BY is_default DESC, created_at DESC`
		args = append(args, addressType)
	} else {
		query += ` ORDER BY address_type, is_default DESC, created_at DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ListAddresses failed to query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.AddressType, &a.FullName, &a.StreetAddress,
			&a.City, &a.State, &a.PostalCode, &a.Country, &a.PhoneNumber, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: ListAddresses failed to scan row: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListAddresses iteration error: %w", err)
	}
	return addresses, nil
}

// CreateAddress inserts a new address. When the new address is flagged
// default, the previous default of the same type is cleared in the same
// transaction so at most one default per (user, type) survives.
func (s *PostgresStore) CreateAddress(ctx context.Context, addr *domain.Address) (*domain.Address, error) {
	if addr.AddressType != domain.AddressTypeShipping && addr.AddressType != domain.AddressTypeBilling {
		return nil, ErrInvalidAddrType
	}
	if addr.Country == "" {
		addr.Country = "US"
	}

	created := *addr
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if addr.IsDefault {
			if _, err := tx.ExecContext(ctx, `
				UPDATE addresses SET is_default = FALSE
				WHERE user_id = $1 AND address_type = $2`,
				addr.UserID, addr.AddressType); err != nil {
				return fmt.Errorf("store: CreateAddress failed to clear previous default: %w", err)
			}
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO addresses (user_id, address_type, full_name, street_address, city, state, postal_code, country, phone_number, is_default)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at`,
			addr.UserID, addr.AddressType, addr.FullName, addr.StreetAddress, addr.City,
			addr.State, addr.PostalCode, addr.Country, addr.PhoneNumber, addr.IsDefault).
			Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return fmt.Errorf("store: CreateAddress failed to insert address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
