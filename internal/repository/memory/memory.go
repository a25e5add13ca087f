// Package memory keeps products and cart rows in process memory. It backs local runs and
// service tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	rows     map[string][]domain.CartRow
	nextRow  int64
}

func New() *Store {
	return &Store{
		products: make(map[int64]domain.Product),
		rows:     make(map[string][]domain.CartRow),
	}
}

func (s *Store) ListProducts(_ context.Context) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (s *Store) AddProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; ok {
		return fmt.Errorf("product[%d] already exists: %w", product.ID, domain.ErrConflict)
	}
	s.products[product.ID] = product
	return nil
}

func (s *Store) UpdateQty(_ context.Context, id int64, qty int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}
	p.Qty = qty
	s.products[id] = p
	return nil
}

func (s *Store) GetCart(_ context.Context, username string) ([]domain.CartRow, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.rows[username]), nil
}

func (s *Store) AddToCart(_ context.Context, username string, productID int64) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	contents, err := json.Marshal([]int64{productID})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cost := decimal.Zero
	if p, ok := s.products[productID]; ok {
		cost = p.Cost
	}

	s.nextRow++
	s.rows[username] = append(s.rows[username], domain.CartRow{
		ID:        s.nextRow,
		Username:  username,
		Contents:  contents,
		Cost:      cost,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *Store) RemoveFromCart(_ context.Context, username string, productID int64) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []domain.CartRow
	for _, row := range s.rows[username] {
		ids, err := row.ProductIDs()
		if err != nil || !slices.Contains(ids, productID) {
			kept = append(kept, row)
			continue
		}

		ids = slices.DeleteFunc(ids, func(id int64) bool { return id == productID })
		if len(ids) == 0 {
			continue
		}

		contents, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		row.Contents = contents
		kept = append(kept, row)
	}

	if len(kept) == 0 {
		delete(s.rows, username)
	} else {
		s.rows[username] = kept
	}
	return nil
}

func (s *Store) DeleteCart(_ context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows, username)
	return nil
}

// PutCartRow stores row as is, without checking its contents. Used to seed rows written
// by other producers.
func (s *Store) PutCartRow(row domain.CartRow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRow++
	if row.ID == 0 {
		row.ID = s.nextRow
	}
	s.rows[row.Username] = append(s.rows[row.Username], row)
}
