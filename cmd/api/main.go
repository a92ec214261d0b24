package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transcript-insights/internal/application"
	appanalysis "transcript-insights/internal/application/analysis"
	"transcript-insights/internal/config"
	openaiclient "transcript-insights/internal/infra/ai/openai"
	"transcript-insights/internal/infra/httpserver"
	"transcript-insights/internal/infra/memstore"
	"transcript-insights/internal/logger"
	"transcript-insights/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	log := logger.New()

	// load config; missing provider settings are fatal here, not at runtime
	cfg, err := config.Load(path)
	if err != nil {
		log.WithError(err).Fatal("config load error")
	}

	// explicit construction, injected top-down
	store := memstore.New()
	completer := openaiclient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	svc := appanalysis.NewService(completer, store, application.SystemClock{}, log)

	checkers := map[string]middleware.HealthChecker{
		"store": storeChecker{store: store},
	}

	var handler http.Handler = httpserver.NewRouter(svc, checkers, log)
	handler = middleware.RateLimit(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)(handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // a full batch can need two 30s provider rounds
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.WithField("addr", addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

// storeChecker reports the result store's reachability for /health.
type storeChecker struct {
	store *memstore.Store
}

func (c storeChecker) Check(ctx context.Context) error {
	_, err := c.store.Count(ctx)
	return err
}
