package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cc-monolith/internal/db"
	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/nikolayk812/cc-monolith/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartStore {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartStore {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, username string) ([]domain.CartRow, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	dbRows, err := r.q.GetCartRows(ctx, username)
	if err != nil {
		return nil, storeError("q.GetCartRows", err)
	}

	return mapCartRowsToDomain(dbRows), nil
}

func (r *cartRepository) AddToCart(ctx context.Context, username string, productID int64) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	err := r.q.AddCartRow(ctx, db.AddCartRowParams{
		Username:  username,
		ProductID: productID,
	})
	if err != nil {
		return storeError("q.AddCartRow", err)
	}

	return nil
}

// RemoveFromCart drops productID from every row of the user and deletes rows left empty.
func (r *cartRepository) RemoveFromCart(ctx context.Context, username string, productID int64) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (int64, error) {
		updated, err := q.RemoveProductFromCartRows(ctx, db.RemoveProductFromCartRowsParams{
			Username:  username,
			ProductID: productID,
		})
		if err != nil {
			return 0, storeError("q.RemoveProductFromCartRows", err)
		}

		if _, err := q.DeleteEmptyCartRows(ctx, username); err != nil {
			return 0, storeError("q.DeleteEmptyCartRows", err)
		}

		return updated, nil
	})
	if err != nil {
		return storeError("withTx", err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	if _, err := r.q.DeleteCart(ctx, username); err != nil {
		return storeError("q.DeleteCart", err)
	}

	return nil
}

func mapCartRowToDomain(row db.GetCartRowsRow) domain.CartRow {
	return domain.CartRow{
		ID:        row.ID,
		Username:  row.Username,
		Contents:  row.Contents,
		Cost:      row.Cost,
		CreatedAt: row.CreatedAt,
	}
}

func mapCartRowsToDomain(rows []db.GetCartRowsRow) []domain.CartRow {
	items := make([]domain.CartRow, 0, len(rows))

	for _, row := range rows {
		items = append(items, mapCartRowToDomain(row))
	}

	return items
}
