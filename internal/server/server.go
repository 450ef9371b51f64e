// Package server boots the HTTP API: config, database, cache, middleware
// stack, routes, and a graceful shutdown loop.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hearthworks/remodel/app/routes"
	"github.com/hearthworks/remodel/config"
	"github.com/hearthworks/remodel/pkg/cache"
	"github.com/hearthworks/remodel/pkg/database"
	"github.com/hearthworks/remodel/pkg/logger"
	"github.com/hearthworks/remodel/pkg/metrics"
	"github.com/hearthworks/remodel/pkg/middleware"
	"github.com/hearthworks/remodel/pkg/reqid"
	"github.com/hearthworks/remodel/pkg/router"
	"gorm.io/gorm"
)

// NewRouter builds the full middleware stack and route table around the
// given database handle. Split out so tests can mount the real routes over
// an in-memory database.
func NewRouter(db *gorm.DB) *router.Router {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	routes.RegisterAPI(r, db)
	return r
}

// Start runs the API until SIGINT/SIGTERM, then drains in-flight requests.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	db, err := database.Connect()
	if err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, statistics caching disabled", "error", err.Error())
	}

	r := NewRouter(db)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
