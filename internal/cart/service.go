// Package cart resolves the product references stored in a user's cart rows into live
// products and forwards cart mutations to a CartStore. No cart state is kept between calls.
package cart

import (
	"context"
	"fmt"

	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/nikolayk812/cc-monolith/internal/logger"
	"github.com/nikolayk812/cc-monolith/internal/port"
	"golang.org/x/text/currency"
)

// ProductResolver looks up a live product; ok is false when it cannot be resolved.
type ProductResolver interface {
	GetProduct(ctx context.Context, id int64) (domain.Product, bool)
}

type Service struct {
	store    port.CartStore
	products ProductResolver
	currency currency.Unit
	log      *logger.Logger
}

func NewService(store port.CartStore, products ProductResolver, cur currency.Unit, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		currency: cur,
		log:      log.With("service", "cart"),
	}
}

// Cart unions the product IDs of all rows stored for username and resolves each once.
// Rows with unreadable contents and IDs that no longer resolve are dropped. Contents
// order is unspecified. Cost is the sum of the resolved products' costs.
func (s *Service) Cart(ctx context.Context, username string) (domain.Cart, error) {
	rows, err := s.store.GetCart(ctx, username)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("store.GetCart: %w", err)
	}

	cart := domain.Cart{
		Username: username,
		Contents: []domain.Product{},
		Cost:     domain.ZeroMoney(s.currency),
	}
	if len(rows) == 0 {
		return cart, nil
	}

	ids := make(map[int64]struct{})
	for _, row := range rows {
		if cart.ID == 0 || row.ID < cart.ID {
			cart.ID = row.ID
		}

		rowIDs, err := row.ProductIDs()
		if err != nil {
			s.log.Debug("skipping cart row", "username", username, "row_id", row.ID, "error", err)
			continue
		}
		for _, id := range rowIDs {
			ids[id] = struct{}{}
		}
	}

	for id := range ids {
		p, ok := s.products.GetProduct(ctx, id)
		if !ok {
			continue
		}
		cart.Contents = append(cart.Contents, p)
		cart.Cost = cart.Cost.Add(p.Cost)
	}

	return cart, nil
}

func (s *Service) GetCart(ctx context.Context, username string) []domain.Product {
	cart, err := s.Cart(ctx, username)
	if err != nil {
		s.log.Warn("get cart failed", "username", username, "kind", domain.KindOf(err).String(), "error", err)
		return []domain.Product{}
	}

	return cart.Contents
}

func (s *Service) AddToCart(ctx context.Context, username string, productID int64) bool {
	if err := s.store.AddToCart(ctx, username, productID); err != nil {
		s.log.Warn("add to cart failed", "username", username, "product_id", productID, "error", err)
		return false
	}

	return true
}

func (s *Service) RemoveFromCart(ctx context.Context, username string, productID int64) bool {
	if err := s.store.RemoveFromCart(ctx, username, productID); err != nil {
		s.log.Warn("remove from cart failed", "username", username, "product_id", productID, "error", err)
		return false
	}

	return true
}

func (s *Service) DeleteCart(ctx context.Context, username string) bool {
	if err := s.store.DeleteCart(ctx, username); err != nil {
		s.log.Warn("delete cart failed", "username", username, "error", err)
		return false
	}

	return true
}
