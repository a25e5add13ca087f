package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/cc-monolith/internal/cart"
	"github.com/nikolayk812/cc-monolith/internal/catalog"
	"github.com/nikolayk812/cc-monolith/internal/domain"
	"github.com/nikolayk812/cc-monolith/internal/logger"
)

type App struct {
	Catalog *catalog.Service
	Carts   *cart.Service
	Log     *logger.Logger
}

func NewApp(catalogSvc *catalog.Service, cartSvc *cart.Service, log *logger.Logger) *App {
	return &App{Catalog: catalogSvc, Carts: cartSvc, Log: log}
}

type qtyRequest struct {
	Qty *int64 `json:"qty" binding:"required"`
}

type batchQtyRequest struct {
	Updates map[int64]int64 `json:"updates" binding:"required"`
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

type cartResponse struct {
	Cart     domain.Cart      `json:"cart"`
	Products []domain.Product `json:"products"`
	Currency string           `json:"currency"`
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": a.Catalog.ListProducts(c.Request.Context())})
}

func (a *App) getProduct(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	p, err := a.Catalog.Product(c.Request.Context(), id)
	if err != nil {
		respondKind(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (a *App) createProduct(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	p, err := a.Catalog.Create(c.Request.Context(), in)
	if err != nil {
		respondKind(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (a *App) setQty(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	var req qtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	if err := a.Catalog.SetQty(c.Request.Context(), id, *req.Qty); err != nil {
		respondKind(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a *App) batchUpdateQty(c *gin.Context) {
	var req batchQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": a.Catalog.BatchUpdateQty(c.Request.Context(), req.Updates)})
}

func (a *App) getCart(c *gin.Context) {
	userCart, err := a.Carts.Cart(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondKind(c, err)
		return
	}

	c.JSON(http.StatusOK, cartResponse{
		Cart:     userCart,
		Products: userCart.Contents,
		Currency: userCart.Cost.Currency.String(),
	})
}

func (a *App) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	respondSuccess(c, a.Carts.AddToCart(c.Request.Context(), c.Param("username"), req.ProductID))
}

func (a *App) removeFromCart(c *gin.Context) {
	productID, ok := pathInt(c, "productID")
	if !ok {
		return
	}

	respondSuccess(c, a.Carts.RemoveFromCart(c.Request.Context(), c.Param("username"), productID))
}

func (a *App) deleteCart(c *gin.Context) {
	respondSuccess(c, a.Carts.DeleteCart(c.Request.Context(), c.Param("username")))
}

func pathInt(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_path", fmt.Errorf("%s[%s] is not an integer", name, c.Param(name)))
		return 0, false
	}
	return v, true
}
