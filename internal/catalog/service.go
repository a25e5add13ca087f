// Package catalog owns products: it validates them and delegates storage to a ProductStore.
//
// Every operation comes in two flavours. The checked ones (Products, Product, Create,
// SetQty) return errors classified by domain.KindOf. The plain ones (ListProducts,
// GetProduct, AddProduct, UpdateQty, BatchUpdateQty) never fail: they log the error and
// return an empty, absent or false result instead.
package catalog

import (
	"context"
	"fmt"

	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/nikolayk812/cc-monolith/internal/logger"
	"github.com/nikolayk812/cc-monolith/internal/port"
)

type Service struct {
	store port.ProductStore
	log   *logger.Logger
}

func NewService(store port.ProductStore, log *logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "catalog"),
	}
}

// Products returns every stored product, skipping rows the store reported as absent.
func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		products = append(products, *row)
	}

	return products, nil
}

func (s *Service) Product(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("store.GetProduct: %w", err)
	}

	return p, nil
}

// Create parses and validates in, then persists the product.
func (s *Service) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	p, err := domain.ParseProduct(in)
	if err != nil {
		return domain.Product{}, err
	}

	if !p.Validate() {
		return domain.Product{}, fmt.Errorf("%w: product[%d] failed validation", domain.ErrInvalidInput, p.ID)
	}

	if err := s.store.AddProduct(ctx, p); err != nil {
		return domain.Product{}, fmt.Errorf("store.AddProduct: %w", err)
	}

	return p, nil
}

// SetQty overwrites the quantity of an existing product.
func (s *Service) SetQty(ctx context.Context, id int64, qty int64) error {
	if qty < 0 {
		return fmt.Errorf("%w: qty must be non-negative, got %d", domain.ErrInvalidInput, qty)
	}

	if _, err := s.Product(ctx, id); err != nil {
		return err
	}

	if err := s.store.UpdateQty(ctx, id, qty); err != nil {
		return fmt.Errorf("store.UpdateQty: %w", err)
	}

	return nil
}

func (s *Service) ListProducts(ctx context.Context) []domain.Product {
	products, err := s.Products(ctx)
	if err != nil {
		s.log.Warn("list products failed", "kind", domain.KindOf(err).String(), "error", err)
		return []domain.Product{}
	}

	return products
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, bool) {
	p, err := s.Product(ctx, id)
	if err != nil {
		if domain.KindOf(err) != domain.KindNotFound {
			s.log.Warn("get product failed", "product_id", id, "kind", domain.KindOf(err).String(), "error", err)
		}
		return domain.Product{}, false
	}

	return p, true
}

func (s *Service) AddProduct(ctx context.Context, in domain.ProductInput) bool {
	p, err := s.Create(ctx, in)
	if err != nil {
		s.log.Warn("add product failed", "kind", domain.KindOf(err).String(), "error", err)
		return false
	}

	s.log.Debug("product added", "product_id", p.ID)
	return true
}

func (s *Service) UpdateQty(ctx context.Context, id int64, qty int64) bool {
	if err := s.SetQty(ctx, id, qty); err != nil {
		s.log.Warn("update qty failed", "product_id", id, "qty", qty, "kind", domain.KindOf(err).String(), "error", err)
		return false
	}

	return true
}

// BatchUpdateQty applies UpdateQty to each entry on its own; one failure does not undo
// or block the others.
func (s *Service) BatchUpdateQty(ctx context.Context, updates map[int64]int64) map[int64]bool {
	results := make(map[int64]bool, len(updates))
	for id, qty := range updates {
		results[id] = s.UpdateQty(ctx, id, qty)
	}

	return results
}
