// Command server runs the marketplace client facade: it binds browser
// views to the session store, the cart ledger and the remote API
// gateways.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamal0042/boomPlan/internal/cart"
	"github.com/jamal0042/boomPlan/internal/config"
	"github.com/jamal0042/boomPlan/internal/gateway"
	"github.com/jamal0042/boomPlan/internal/handlers"
	"github.com/jamal0042/boomPlan/internal/localstore"
	"github.com/jamal0042/boomPlan/internal/middleware"
	"github.com/jamal0042/boomPlan/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.IsDevelopment())
	defer logger.Sync()

	store, err := localstore.Open(cfg.Store.Path)
	if err != nil {
		logger.Fatal("open local store", zap.Error(err))
	}
	defer store.Close()

	client := gateway.NewClient(cfg.API.BaseURL, cfg.API.Timeout, &storeTokenSource{store: store, log: logger}, logger)
	authGateway := gateway.NewAuthService(client)
	eventGateway := gateway.NewEventService(client)
	orderGateway := gateway.NewOrderService(client)

	sessions := session.NewStore(store, authGateway, logger)
	// Bootstrap must finish before any request can read the identity;
	// running it synchronously here is the ordering guarantee the route
	// guards rely on.
	sessions.Bootstrap()

	ledger := cart.New(cart.NewLogNotifier(logger))
	guard := middleware.NewGuard(sessions)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	handlers.NewAuthHandler(sessions, logger).Register(api, guard)
	handlers.NewCatalogHandler(eventGateway, orderGateway, logger).Register(api, guard)
	handlers.NewCartHandler(ledger, eventGateway, logger).Register(api, guard)

	srv := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("facade listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

// storeTokenSource surfaces the persisted credential to the gateway
// client.
type storeTokenSource struct {
	store *localstore.Store
	log   *zap.Logger
}

func (ts *storeTokenSource) Token() (string, bool) {
	value, ok, err := ts.store.Get(session.CredentialKey)
	if err != nil {
		ts.log.Warn("read credential for gateway call", zap.Error(err))
		return "", false
	}
	return value, ok
}

func newLogger(development bool) *zap.Logger {
	if development {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger
}
