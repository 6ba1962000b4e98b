package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"venyr-storefront/internal/config"
	"venyr-storefront/internal/db"
	"venyr-storefront/internal/httpserver"
	"venyr-storefront/internal/payment"
	cartrepo "venyr-storefront/internal/repository/cart"
	customerrepo "venyr-storefront/internal/repository/customer"
	orderrepo "venyr-storefront/internal/repository/order"
	productrepo "venyr-storefront/internal/repository/product"
	tokenrepo "venyr-storefront/internal/repository/token"
	wishlistrepo "venyr-storefront/internal/repository/wishlist"
	cartsvc "venyr-storefront/internal/service/cart"
	checkoutsvc "venyr-storefront/internal/service/checkout"
	customersvc "venyr-storefront/internal/service/customer"
	guestsvc "venyr-storefront/internal/service/guest"
	productsvc "venyr-storefront/internal/service/product"
	wishlistsvc "venyr-storefront/internal/service/wishlist"
	"venyr-storefront/internal/sweep"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	wishlistRepo := wishlistrepo.NewPostgres(dbpool, logger)

	guestService := guestsvc.New()
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartRepo, guestService, productRepo, logger)
	customerService := customersvc.New(customerRepo, tokenRepo)
	wishlistService := wishlistsvc.New(wishlistRepo)

	paymentClient := payment.NewClient(cfg.PaymentBridgeURL, cfg.PaymentBridgeTimeout, logger)
	checkoutService := checkoutsvc.New(orderRepo, cartRepo, paymentClient, cfg.PublicBaseURL, cfg.Currency, logger)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	sweeper := sweep.New(orderRepo, cfg.SweepInterval, cfg.SweepMaxAge, logger)
	go sweeper.Run(sweepCtx)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Customers:     customerService,
		Guests:        guestService,
		Products:      productService,
		Carts:         cartService,
		Checkout:      checkoutService,
		Wishlists:     wishlistService,
		CORSOrigin:    cfg.CORSOrigin,
		WebhookSecret: cfg.WebhookSecret,
	})

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

	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
