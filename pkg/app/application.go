package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"roamify/internal/health"
	"roamify/pkg/auth"
	"roamify/pkg/config"
	"roamify/pkg/contracts"
	"roamify/pkg/middleware"
)

type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateLimiter      *middleware.ClientRateLimiter
	healthHandler    http.Handler
	apiHandler       http.Handler
}

func NewApplication(cfg *config.Config, handlers ...contracts.Handler) *Application {
	a := &Application{cfg: cfg}
	a.setHealthHandler()
	a.setAPIHandler(handlers)
	a.setServer()
	return a
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	health.NewHandler(a.cfg).RegisterRoutes(healthRouter)

	var h http.Handler = healthRouter
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.healthHandler = h
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAPIHandler(handlers []contracts.Handler) {
	apiRouter := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(apiRouter)
	}

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	a.rateLimiter = middleware.NewClientRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		a.cfg.Log,
	)
	verifier := auth.NewTokenVerifier(a.cfg.JWTSecret)

	var h http.Handler = apiRouter
	h = middleware.Idempotency(a.idempotencyStore, "Idempotency-Key")(h)
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.ClientRateLimit(a.rateLimiter)(h)
	h = middleware.Authenticate(verifier, a.cfg.Log)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.apiHandler = h
	a.cfg.Log.Info("API endpoints configured with full middleware stack")
}

func (a *Application) setServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.apiHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// Run blocks until the server fails or a shutdown signal arrives.
func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()
	a.cfg.Log.Info("Background workers stopped")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Graceful shutdown failed, forcing close", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Error("Forced close failed", "error", err)
		}
	}

	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Shutdown complete")
}
