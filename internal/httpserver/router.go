package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	cartsvc "gearph-api/internal/service/cart"
	checkoutsvc "gearph-api/internal/service/checkout"
	ordersvc "gearph-api/internal/service/order"
	productsvc "gearph-api/internal/service/product"
	statssvc "gearph-api/internal/service/stats"
	settingssvc "gearph-api/internal/service/storesettings"
	usersvc "gearph-api/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the wired services into the router.
type Deps struct {
	Sessions    SessionStore
	CookieName  string
	CORSOrigins []string
	UserSvc     *usersvc.Service
	ProductSvc  *productsvc.Service
	OrderSvc    *ordersvc.Service
	CartSvc     *cartsvc.Service
	CheckoutSvc *checkoutsvc.Service
	StatsSvc    *statssvc.Service
	SettingsSvc *settingssvc.Service
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}
	loadSession := sessionMiddleware(deps.Sessions, deps.CookieName)

	api := router.Group("/api", loadSession)
	{
		api.POST("/auth/signup", h.signup)
		api.POST("/auth/login", h.login)
		api.POST("/auth/logout", h.logout)

		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)
		api.GET("/search", h.searchProducts)

		api.GET("/locations/regions", h.listRegions)
		api.GET("/locations/cities", h.listCities)
		api.GET("/locations/barangays", h.listBarangays)

		// Guest checkout stays possible: creating an order needs no
		// session, the owner is simply left unset.
		api.POST("/orders", h.createOrder)

		withCart := api.Group("", ensureSession(deps.Sessions, deps.CookieName))
		{
			withCart.GET("/cart", h.getCart)
			withCart.POST("/cart", h.addToCart)
			withCart.PUT("/cart", h.updateCartQuantity)
			withCart.DELETE("/cart", h.removeFromCart)
		}

		authed := api.Group("", requireRole(roleUserOrAdmin))
		{
			authed.GET("/orders", h.listOwnOrders)
			authed.GET("/profile", h.getProfile)
			authed.PUT("/profile", h.updateProfile)
			authed.PUT("/settings/password", h.changePassword)

			authed.GET("/checkout", h.getCheckout)
			authed.POST("/checkout/advance", h.advanceCheckout)
			authed.POST("/checkout/complete", h.completeCheckout)
		}

		admin := api.Group("/admin", requireRole(roleAdminOnly))
		{
			admin.GET("/orders", h.adminListOrders)
			admin.GET("/orders/:id", h.adminGetOrder)
			admin.PUT("/orders/:id", h.adminUpdateOrderStatus)

			admin.POST("/products", h.adminCreateProduct)
			admin.PUT("/products/:id", h.adminUpdateProduct)
			admin.DELETE("/products/:id", h.adminDeleteProduct)

			admin.GET("/users", h.adminListUsers)
			admin.DELETE("/users/:id", h.adminDeleteUser)

			admin.GET("/settings", h.adminGetSettings)
			admin.PUT("/settings", h.adminUpdateSettings)

			admin.GET("/stats", h.adminStats)
		}
	}

	// Storefront product creation is admin-only but lives on the public
	// path for compatibility with the original client.
	api.POST("/products", requireRole(roleAdminOnly), h.adminCreateProduct)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
