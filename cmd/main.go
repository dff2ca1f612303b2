package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/okian/courtside/internal/adapters/http/api"
	"github.com/okian/courtside/internal/adapters/http/live"
	"github.com/okian/courtside/internal/adapters/http/swagger"
	"github.com/okian/courtside/internal/adapters/repository"
	app "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)); err != nil {
		logger.Get().Warn(ctx, "invalid logging settings; keeping defaults",
			logger.String("log_level", cfg.LogLevel),
			logger.String("log_format", cfg.LogFormat),
			logger.Error(err),
		)
	}

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "courtside stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

// run serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error(ctx, "store close failed", logger.Error(err))
		}
	}()
	log.Info(ctx, "snapshot store ready", logger.String("driver", cfg.StoreDriver))

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hub := live.NewHub(live.WithLogger(log.Named("live")))
	go hub.Run(hubCtx)

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithStore(store),
		app.WithPublisher(hub),
		app.WithQueueSize(cfg.SaveQueueSize),
		app.WithSaveDebounce(cfg.SaveDebounceMS),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithMatchDefaults(cfg.MatchDefaults()),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, hub),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	stopHub()
	if err := svc.Stop(shutdownCtx); err != nil {
		log.Error(ctx, "service stop failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// openStore opens the configured snapshot store.
func openStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		s, err := repository.OpenSQLite(cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return s, nil
	default:
		return repository.NewMemoryStore(), nil
	}
}

// newHandler builds the routed, CORS-wrapped HTTP handler.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service, hub api.LiveServer) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, hub).Register(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}
