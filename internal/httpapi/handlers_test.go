package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cc-monolith/internal/cart"
	"github.com/nikolayk812/cc-monolith/internal/catalog"
	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/nikolayk812/cc-monolith/internal/httpapi"
	"github.com/nikolayk812/cc-monolith/internal/logger"
	"github.com/nikolayk812/cc-monolith/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, products ...domain.Product) (*gin.Engine, *memory.Store) {
	t.Helper()

	store := memory.New()
	for _, p := range products {
		require.NoError(t, store.AddProduct(t.Context(), p))
	}

	log := logger.Nop()
	catalogSvc := catalog.NewService(store, log)
	cartSvc := cart.NewService(store, catalogSvc, currency.EUR, log)

	return httpapi.NewRouter(httpapi.NewApp(catalogSvc, cartSvc, log)), store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func chair() domain.Product {
	return domain.Product{ID: 1, Name: "chair", Description: "oak", Cost: decimal.RequireFromString("49.90"), Qty: 3}
}

func TestHealthAndRequestID(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestProductsEndpoints(t *testing.T) {
	r, store := newRouter(t, chair())

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
		wantCode   string
	}{
		{
			name:       "list products",
			method:     http.MethodGet,
			path:       "/products",
			wantStatus: http.StatusOK,
			wantBody:   `{"products":[{"id":1,"name":"chair","description":"oak","cost":"49.9","qty":3}]}`,
		},
		{
			name:       "get product",
			method:     http.MethodGet,
			path:       "/products/1",
			wantStatus: http.StatusOK,
			wantBody:   `{"id":1,"name":"chair","description":"oak","cost":"49.9","qty":3}`,
		},
		{
			name:       "get unknown product",
			method:     http.MethodGet,
			path:       "/products/2",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "get product with bad id",
			method:     http.MethodGet,
			path:       "/products/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "create product",
			method:     http.MethodPost,
			path:       "/products",
			body:       `{"id":2,"name":"table","description":"","cost":120.5}`,
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":2,"name":"table","description":"","cost":"120.5","qty":0}`,
		},
		{
			name:       "create product with taken id",
			method:     http.MethodPost,
			path:       "/products",
			body:       `{"id":1,"name":"dup","description":"","cost":1}`,
			wantStatus: http.StatusConflict,
			wantCode:   "conflict",
		},
		{
			name:       "create product missing cost",
			method:     http.MethodPost,
			path:       "/products",
			body:       `{"id":3,"name":"lamp","description":""}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "create product with blank name",
			method:     http.MethodPost,
			path:       "/products",
			body:       `{"id":3,"name":"  ","description":"","cost":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "create product with fractional qty",
			method:     http.MethodPost,
			path:       "/products",
			body:       `{"id":3,"name":"lamp","description":"","cost":1,"qty":1.5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "set qty",
			method:     http.MethodPut,
			path:       "/products/1/qty",
			body:       `{"qty":7}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "set negative qty",
			method:     http.MethodPut,
			path:       "/products/1/qty",
			body:       `{"qty":-1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "set qty of unknown product",
			method:     http.MethodPut,
			path:       "/products/9/qty",
			body:       `{"qty":1}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "batch update qty",
			method:     http.MethodPost,
			path:       "/products/qty",
			body:       `{"updates":{"1":10,"9":-1}}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"results":{"1":true,"9":false}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.wantStatus >= http.StatusBadRequest {
				var env httpapi.ErrorEnvelope
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
				assert.NotEmpty(t, env.Error.Message)
				if tt.wantCode != "" {
					assert.Equal(t, tt.wantCode, env.Error.Code)
				}
			}
		})
	}

	p, err := store.GetProduct(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "chair", p.Name)
	assert.Equal(t, int64(10), p.Qty)
}

func TestCartEndpoints(t *testing.T) {
	table := domain.Product{ID: 2, Name: "table", Cost: decimal.RequireFromString("100.10")}
	r, _ := newRouter(t, chair(), table)

	for _, id := range []string{"1", "2", "1", "99"} {
		w := do(r, http.MethodPost, "/carts/alice/items", `{"product_id":`+id+`}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
	}

	w := do(r, http.MethodGet, "/carts/alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Cart     domain.CartRecord `json:"cart"`
		Products []domain.Product  `json:"products"`
		Currency string            `json:"currency"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "alice", resp.Cart.Username)
	assert.ElementsMatch(t, []int64{1, 2}, resp.Cart.Contents)
	assert.True(t, decimal.RequireFromString("150").Equal(resp.Cart.Cost), "cost %s", resp.Cart.Cost)
	assert.Len(t, resp.Products, 2)
	assert.Equal(t, "EUR", resp.Currency)

	w = do(r, http.MethodDelete, "/carts/alice/items/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/carts/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int64{2}, resp.Cart.Contents)

	w = do(r, http.MethodDelete, "/carts/alice/items/x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/carts/alice/items", `{"product_id":"one"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/carts/alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/carts/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cart.Contents)
	assert.Empty(t, resp.Products)
}
