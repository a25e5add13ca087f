package port

import (
	"context"

	"github.com/nikolayk812/cc-monolith/internal/domain"
)

// CartStore persists cart rows. Each AddToCart call stores a new row referencing one product.
type CartStore interface {
	GetCart(ctx context.Context, username string) ([]domain.CartRow, error)
	AddToCart(ctx context.Context, username string, productID int64) error
	RemoveFromCart(ctx context.Context, username string, productID int64) error
	DeleteCart(ctx context.Context, username string) error
}
