package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/prodesignco/apparel-shop/internal/config"
	"github.com/prodesignco/apparel-shop/internal/httpserver"
	"github.com/prodesignco/apparel-shop/internal/logging"
	authmw "github.com/prodesignco/apparel-shop/internal/middleware/auth"
	loggingmw "github.com/prodesignco/apparel-shop/internal/middleware/logging"
	"github.com/prodesignco/apparel-shop/internal/mykafka"
	"github.com/prodesignco/apparel-shop/internal/payments"
	"github.com/prodesignco/apparel-shop/internal/repo"
	"github.com/prodesignco/apparel-shop/internal/seed"
	"github.com/prodesignco/apparel-shop/internal/service"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.LogLevel)

	ctx := logging.IntoContext(context.Background(), log)

	db, err := config.OpenDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	if err := seed.Products(ctx, db); err != nil {
		log.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}
	if err := seed.EnsureAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	provider := payments.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	r := repo.New(db)
	catalogSvc := &service.CatalogService{Repo: r}
	orderSvc := &service.OrderService{Repo: r, Producer: producer}
	paymentSvc := &service.PaymentService{Repo: r, Provider: provider, Producer: producer, PublishableKey: cfg.StripePublishableKey}
	adminSvc := &service.AdminService{Repo: r, Producer: producer}
	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(log))

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc},
		PaymentHandler: &httpserver.PaymentHTTP{Svc: paymentSvc},
		AdminHandler:   &httpserver.AdminHTTP{Svc: adminSvc},
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		Auth:           authmw.New(cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Error("kafka close error", "error", err)
	}

	log.Info("shutdown complete")
}
