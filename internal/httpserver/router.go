package httpserver

import (
	"context"
	"log"
	"time"

	"venyr-storefront/internal/domain"
	productrepo "venyr-storefront/internal/repository/product"
	cartsvc "venyr-storefront/internal/service/cart"
	checkoutsvc "venyr-storefront/internal/service/checkout"
	customersvc "venyr-storefront/internal/service/customer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type customerService interface {
	Signup(ctx context.Context, in customersvc.SignupInput) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.Customer, error)
	AccessTTLSeconds() int
}

type guestService interface {
	Issue() (token, guestID string, err error)
	LookupByToken(token string) (string, error)
	Clear(guestID string)
	TTLSeconds() int
}

type productService interface {
	List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	Get(ctx context.Context, owner cartsvc.Owner) (*domain.Cart, error)
	AddItem(ctx context.Context, owner cartsvc.Owner, productID, size string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, owner cartsvc.Owner, lineID string, quantity, revision int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, owner cartsvc.Owner, lineID string) (*domain.Cart, error)
	Clear(ctx context.Context, owner cartsvc.Owner) error
	MergeIntoCustomer(ctx context.Context, guestID, customerID string) error
}

type checkoutService interface {
	Checkout(ctx context.Context, customerID *string, snapshot []domain.CartItem) (*checkoutsvc.Result, error)
	Reconcile(ctx context.Context, sessionID, orderID string) (*domain.Order, error)
	MarkPaid(ctx context.Context, orderID string) error
	ListOrders(ctx context.Context, customerID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type wishlistService interface {
	List(ctx context.Context, customerID string) ([]domain.WishlistItem, error)
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
}

// Deps carries the services the router dispatches to.
type Deps struct {
	Customers customerService
	Guests    guestService
	Products  productService
	Carts     cartService
	Checkout  checkoutService
	Wishlists wishlistService

	CORSOrigin    string
	WebhookSecret string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if deps.CORSOrigin != "" {
		router.Use(cors.New(cors.Config{
			AllowOrigins: []string{deps.CORSOrigin},
			AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Guest-Token"},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	router.POST("/auth/signup", h.signup)
	router.POST("/auth/login", h.login)
	router.POST("/guest/token", h.issueGuestToken)
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.POST("/webhooks/payment", h.paymentWebhook)

	authed := router.Group("", h.identify)
	authed.GET("/me", h.me)
	authed.GET("/cart", h.getCart)
	authed.POST("/cart/items", h.addCartItem)
	authed.PATCH("/cart/items/:id", h.updateCartItem)
	authed.DELETE("/cart/items/:id", h.removeCartItem)
	authed.DELETE("/cart", h.clearCart)
	authed.POST("/checkout", h.checkout)
	authed.GET("/payment/success", h.paymentSuccess)
	authed.GET("/orders", h.listOrders)
	authed.GET("/orders/:id", h.getOrder)
	authed.GET("/wishlist", h.listWishlist)
	authed.POST("/wishlist/items", h.addWishlistItem)
	authed.DELETE("/wishlist/items/:productId", h.removeWishlistItem)

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
