package port

import (
	"context"

	"github.com/nikolayk812/cc-monolith/internal/domain"
)

// ProductStore persists products. GetProduct and UpdateQty return domain.ErrNotFound
// for an unknown id. ListProducts may contain nil entries for rows that could not be read.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	AddProduct(ctx context.Context, product domain.Product) error
	UpdateQty(ctx context.Context, id int64, qty int64) error
}
