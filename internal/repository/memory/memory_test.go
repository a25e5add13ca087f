package memory_test

import (
	"encoding/json"
	"testing"

	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/nikolayk812/cc-monolith/internal/port"
	"github.com/nikolayk812/cc-monolith/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ port.ProductStore = (*memory.Store)(nil)
	_ port.CartStore    = (*memory.Store)(nil)
)

func TestStore_Products(t *testing.T) {
	ctx := t.Context()
	s := memory.New()

	lamp := domain.Product{ID: 2, Name: "lamp", Cost: decimal.NewFromInt(20), Qty: 1}
	desk := domain.Product{ID: 1, Name: "desk", Cost: decimal.NewFromInt(90), Qty: 4}
	require.NoError(t, s.AddProduct(ctx, lamp))
	require.NoError(t, s.AddProduct(ctx, desk))
	require.ErrorIs(t, s.AddProduct(ctx, desk), domain.ErrConflict)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(2), products[1].ID)

	require.NoError(t, s.UpdateQty(ctx, 2, 9))
	got, err := s.GetProduct(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Qty)

	_, err = s.GetProduct(ctx, 3)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, s.UpdateQty(ctx, 3, 1), domain.ErrNotFound)
}

func TestStore_Cart(t *testing.T) {
	ctx := t.Context()
	s := memory.New()
	require.NoError(t, s.AddProduct(ctx, domain.Product{ID: 1, Name: "a", Cost: decimal.NewFromInt(5)}))

	require.NoError(t, s.AddToCart(ctx, "alice", 1))
	require.NoError(t, s.AddToCart(ctx, "alice", 2))
	s.PutCartRow(domain.CartRow{Username: "alice", Contents: json.RawMessage(`[2,3]`)})

	rows, err := s.GetCart(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, decimal.NewFromInt(5).Equal(rows[0].Cost))
	assert.True(t, rows[1].Cost.IsZero())

	require.NoError(t, s.RemoveFromCart(ctx, "alice", 2))
	rows, err = s.GetCart(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.JSONEq(t, `[1]`, string(rows[0].Contents))
	assert.JSONEq(t, `[3]`, string(rows[1].Contents))

	require.NoError(t, s.DeleteCart(ctx, "alice"))
	rows, err = s.GetCart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.ErrorIs(t, s.AddToCart(ctx, "", 1), domain.ErrInvalidInput)
}
