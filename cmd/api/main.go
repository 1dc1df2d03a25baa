package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gearph-api/internal/config"
	"gearph-api/internal/db"
	"gearph-api/internal/httpserver"
	orderrepo "gearph-api/internal/repository/order"
	productrepo "gearph-api/internal/repository/product"
	settingsrepo "gearph-api/internal/repository/storesettings"
	userrepo "gearph-api/internal/repository/user"
	cartsvc "gearph-api/internal/service/cart"
	checkoutsvc "gearph-api/internal/service/checkout"
	ordersvc "gearph-api/internal/service/order"
	productsvc "gearph-api/internal/service/product"
	statssvc "gearph-api/internal/service/stats"
	settingssvc "gearph-api/internal/service/storesettings"
	usersvc "gearph-api/internal/service/user"
	"gearph-api/internal/session"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	rdb, err := session.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer rdb.Close()

	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	settingsRepo := settingsrepo.NewPostgres(dbpool, logger)

	sessionStore := session.NewStore(rdb, cfg.SessionTTL)
	orderService := ordersvc.New(orderRepo, logger)
	productService := productsvc.New(productRepo)
	userService := usersvc.New(userRepo, logger)
	settingsService := settingssvc.New(settingsRepo)
	statsService := statssvc.New(orderRepo, userRepo, productRepo)
	cartService := cartsvc.New(cartsvc.NewRedisStore(rdb, cfg.SessionTTL), productRepo)
	checkoutService := checkoutsvc.New(checkoutsvc.NewRedisDraftStore(rdb, cfg.SessionTTL), cartService, orderService, settingsService, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:    sessionStore,
		CookieName:  cfg.SessionCookie,
		CORSOrigins: cfg.CORSOrigins,
		UserSvc:     userService,
		ProductSvc:  productService,
		OrderSvc:    orderService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		StatsSvc:    statsService,
		SettingsSvc: settingsService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
