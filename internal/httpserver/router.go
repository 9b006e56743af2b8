package httpserver

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront-client/internal/checkout"
	"storefront-client/internal/domain"
)

// CartStore is the slice of the cart store the facade needs.
type CartStore interface {
	Items() []domain.CartEntry
	TotalItems() int
	TotalPrice() int64
	Add(ctx context.Context, p domain.Product) error
	SetQuantity(ctx context.Context, id string, quantity int) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// SessionStore is the slice of the session store the facade needs.
type SessionStore interface {
	Snapshot() domain.Session
	BeginLogin()
	CompleteLogin(ctx context.Context, user domain.User) error
	FailLogin(message string)
	Logout(ctx context.Context) error
	UserID() string
}

// Checkout drives a place-order attempt.
type Checkout interface {
	Guard() checkout.Outcome
	Submit(ctx context.Context, deliveryAddress, paymentMethod string) (*checkout.Result, error)
}

// OrderView lists and cancels the shopper's orders.
type OrderView interface {
	Load(ctx context.Context, userID string) error
	Orders() []domain.Order
	Cancel(ctx context.Context, orderID, userID string) error
}

// Deps carries the storefront components the routes are built over.
type Deps struct {
	Cart     CartStore
	Session  SessionStore
	Checkout Checkout
	Orders   OrderView
}

// buildRouter wires the facade routes. The browser UI is a cross-origin
// collaborator, so CORS is always on.
func buildRouter(logger *log.Logger, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type"}
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)

	api := router.Group("/api")
	{
		api.GET("/cart", getCartHandler(deps.Cart))
		api.POST("/cart/items", addCartItemHandler(deps.Cart))
		api.PUT("/cart/items/:id", setCartQuantityHandler(deps.Cart))
		api.DELETE("/cart/items/:id", removeCartItemHandler(deps.Cart))
		api.DELETE("/cart", clearCartHandler(deps.Cart))

		api.GET("/session", getSessionHandler(deps.Session))
		api.POST("/session/login", loginHandler(deps.Session))
		api.POST("/session/logout", logoutHandler(deps.Session))

		api.GET("/checkout", checkoutGuardHandler(deps.Checkout))
		api.POST("/checkout", checkoutSubmitHandler(deps.Checkout))

		api.GET("/orders", listOrdersHandler(deps.Orders, deps.Session))
		api.PUT("/orders/:id/cancel", cancelOrderHandler(deps.Orders, deps.Session))
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
