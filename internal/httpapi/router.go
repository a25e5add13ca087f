package httpapi

import (
	"github.com/gin-gonic/gin"
)

// NewRouter registers HTTP routes and returns the engine with middleware.
func NewRouter(app *App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(app.Log))

	r.GET("/healthz", app.health)

	products := r.Group("/products")
	products.GET("", app.listProducts)
	products.POST("", app.createProduct)
	products.POST("/qty", app.batchUpdateQty)
	products.GET("/:id", app.getProduct)
	products.PUT("/:id/qty", app.setQty)

	carts := r.Group("/carts/:username")
	carts.GET("", app.getCart)
	carts.DELETE("", app.deleteCart)
	carts.POST("/items", app.addToCart)
	carts.DELETE("/items/:productID", app.removeFromCart)

	return r
}
