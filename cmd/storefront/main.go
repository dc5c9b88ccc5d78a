package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lieblingsring/storefront/internal/auth"
	"github.com/lieblingsring/storefront/internal/config"
	"github.com/lieblingsring/storefront/internal/content"
	"github.com/lieblingsring/storefront/internal/db"
	storefrontHttp "github.com/lieblingsring/storefront/internal/handler/http"
	"github.com/lieblingsring/storefront/internal/order"
	"github.com/lieblingsring/storefront/internal/payment"
	"github.com/lieblingsring/storefront/internal/product"
	"github.com/lieblingsring/storefront/internal/user"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "storefront").Logger()

	log.Info().Msg("Storefront starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	dbConn, err := db.New(context.Background(), cfg.Postgres)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close()

	if err := dbConn.ApplyMigrations(cfg.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	productRepo := product.NewRepository(dbConn.Pool)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(dbConn.Pool)
	orderSvc := order.NewService(orderRepo, productRepo)

	userRepo := user.NewRepository(dbConn.Pool)
	userSvc := user.NewService(userRepo)

	contentRepo := content.NewRepository(dbConn.Pool)
	contentSvc := content.NewService(contentRepo)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	tossClient := payment.NewTossClient(cfg.Toss.APIURL, cfg.Toss.SecretKey)

	router := storefrontHttp.NewRouter(storefrontHttp.RouterDeps{
		Products:        storefrontHttp.NewProductHandler(productSvc),
		Cart:            storefrontHttp.NewCartHandler(),
		Orders:          storefrontHttp.NewOrderHandler(orderSvc),
		Payments:        storefrontHttp.NewPaymentHandler(orderSvc, tossClient),
		Users:           storefrontHttp.NewUserHandler(userSvc, tokens, cfg.Auth.CookieName),
		Content:         storefrontHttp.NewContentHandler(contentSvc),
		AdminAuth:       storefrontHttp.NewAdminAuthHandler(cfg.Admin.Password, cfg.Admin.CookieName),
		AdminCookieName: cfg.Admin.CookieName,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
