package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/anascb/storefront/internal/application/catalog"
	"github.com/anascb/storefront/internal/application/checkout"
	identityapp "github.com/anascb/storefront/internal/application/identity"
	orderapp "github.com/anascb/storefront/internal/application/order"
	promoapp "github.com/anascb/storefront/internal/application/promo"
	"github.com/anascb/storefront/internal/infrastructure/auth"
	"github.com/anascb/storefront/internal/infrastructure/cache"
	"github.com/anascb/storefront/internal/infrastructure/config"
	"github.com/anascb/storefront/internal/infrastructure/logger"
	"github.com/anascb/storefront/internal/infrastructure/notification"
	"github.com/anascb/storefront/internal/infrastructure/persistence"
	"github.com/anascb/storefront/internal/interfaces/http/handler"
	"github.com/anascb/storefront/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	promoRepo := persistence.NewGormPromoRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	productCache := cache.NewProductCache(cfg, log)

	var mailer checkout.ConfirmationSender
	if cfg.Mail.Enabled {
		mailer = notification.NewResendMailer(cfg.Mail, log)
	} else {
		mailer = notification.NewNoopMailer(log)
	}

	// Application services
	shippingFee := decimal.NewFromFloat(cfg.Shipping.FlatFee)
	placementService := checkout.NewPlacementService(orderRepo, variantRepo, promoRepo, mailer, shippingFee, log)
	orderAdminService := orderapp.NewAdminService(orderRepo, variantRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, variantRepo, productCache, cfg.Cache.TTL, log)
	promoService := promoapp.NewService(promoRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// HTTP layer
	engine := router.New(cfg, log, jwtService, router.Handlers{
		System:       handler.NewSystemHandler(db, version),
		Catalog:      handler.NewCatalogHandler(productService),
		CatalogAdmin: handler.NewCatalogAdminHandler(productService),
		Checkout:     handler.NewCheckoutHandler(placementService, checkout.NewValidator(), orderAdminService),
		OrderAdmin:   handler.NewOrderAdminHandler(orderAdminService),
		Promo:        handler.NewPromoHandler(promoService),
		PromoAdmin:   handler.NewPromoAdminHandler(promoService),
		Auth:         handler.NewAuthHandler(authService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
