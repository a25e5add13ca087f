package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cc-monolith/internal/db"
	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/nikolayk812/cc-monolith/internal/port"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductStore {
	return &productRepository{q: db.New(pool)}
}

// NewProductWithTx binds the repository to tx; commit and rollback stay with the caller.
func NewProductWithTx(tx pgx.Tx) port.ProductStore {
	return &productRepository{q: db.New(tx)}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	dbProducts, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, storeError("q.ListProducts", err)
	}

	products := make([]*domain.Product, 0, len(dbProducts))
	for _, row := range dbProducts {
		p := mapProductRowToDomain(db.GetProductRow(row))
		products = append(products, &p)
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, storeError("q.GetProduct", err)
	}

	return mapProductRowToDomain(row), nil
}

func (r *productRepository) AddProduct(ctx context.Context, product domain.Product) error {
	err := r.q.AddProduct(ctx, db.AddProductParams{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Cost:        product.Cost,
		Qty:         product.Qty,
	})
	if err != nil {
		return storeError("q.AddProduct", err)
	}

	return nil
}

func (r *productRepository) UpdateQty(ctx context.Context, id int64, qty int64) error {
	rowsAffected, err := r.q.UpdateQty(ctx, db.UpdateQtyParams{ID: id, Qty: qty})
	if err != nil {
		return storeError("q.UpdateQty", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}

	return nil
}

func mapProductRowToDomain(row db.GetProductRow) domain.Product {
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Cost:        row.Cost,
		Qty:         row.Qty,
	}
}
