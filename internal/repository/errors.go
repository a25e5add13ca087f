package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/cc-monolith/internal/domain"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// storeError wraps a database failure of op with the domain sentinel that classifies it.
// Errors that already carry a sentinel keep it.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrConflict, err)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
		}
	}

	if domain.KindOf(err) != domain.KindUnknown {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
