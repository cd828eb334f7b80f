package router

import (
	"github.com/anascb/storefront/internal/infrastructure/auth"
	"github.com/anascb/storefront/internal/infrastructure/config"
	"github.com/anascb/storefront/internal/infrastructure/logger"
	"github.com/anascb/storefront/internal/interfaces/http/handler"
	"github.com/anascb/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups everything the router wires up
type Handlers struct {
	System       *handler.SystemHandler
	Catalog      *handler.CatalogHandler
	CatalogAdmin *handler.CatalogAdminHandler
	Checkout     *handler.CheckoutHandler
	OrderAdmin   *handler.OrderAdminHandler
	Promo        *handler.PromoHandler
	PromoAdmin   *handler.PromoAdminHandler
	Auth         *handler.AuthHandler
}

// New builds the gin engine with all middleware and routes registered.
// Public routes run with optional auth so guest checkout works; /admin
// routes require a token with the ADMIN role.
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)

	engine.Use(middleware.NewRequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))

	api := engine.Group("/api/v1")

	h.System.RegisterRoutes(api)

	public := api.Group("")
	public.Use(middleware.OptionalAuth(jwtService))
	h.Catalog.RegisterRoutes(public)
	h.Checkout.RegisterRoutes(public)
	h.Promo.RegisterRoutes(public)
	h.Auth.RegisterRoutes(public)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(jwtService))
	h.Auth.RegisterProtectedRoutes(authed)
	h.Checkout.RegisterProtectedRoutes(authed)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(jwtService), middleware.RequireAdmin())
	h.OrderAdmin.RegisterRoutes(admin)
	h.CatalogAdmin.RegisterRoutes(admin)
	h.PromoAdmin.RegisterRoutes(admin)

	return engine
}
