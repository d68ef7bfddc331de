// Command bookfinder serves the book search page.
//
// Configuration comes from the environment and an optional .env file
// (see internal/config). GOOGLE_BOOKS_API_KEY is required.
//
// Exit codes: 0 = clean shutdown, 1 = configuration or runtime error.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/bookfinder/internal/cache/memory"
	"github.com/kitbuilder587/bookfinder/internal/config"
	"github.com/kitbuilder587/bookfinder/internal/metrics"
	"github.com/kitbuilder587/bookfinder/internal/repository"
	memrepo "github.com/kitbuilder587/bookfinder/internal/repository/memory"
	"github.com/kitbuilder587/bookfinder/internal/repository/postgres"
	"github.com/kitbuilder587/bookfinder/internal/search/googlebooks"
	"github.com/kitbuilder587/bookfinder/internal/service"
	"github.com/kitbuilder587/bookfinder/internal/web"
)

// Version задается через ldflags: -X main.Version=1.0.0
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// логгер еще не настроен
		fmt.Fprintf(os.Stderr, "bookfinder: configuration error: %v\n", err)
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Fprintln(os.Stderr, "bookfinder: set GOOGLE_BOOKS_API_KEY in the environment or in .env")
		}
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bookfinder: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("bookfinder stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("bookfinder stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting bookfinder",
		zap.String("version", Version),
		zap.String("addr", cfg.HTTP.Addr),
		zap.String("session_store", cfg.Session.Store),
		zap.String("log_level", cfg.Log.Level),
	)

	m := metrics.New(nil)

	g, ctx := errgroup.WithContext(ctx)

	sessions, cleanup, err := openSessions(ctx, g, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	catalog := googlebooks.New(googlebooks.Config{
		APIKey:  cfg.GoogleBooks.APIKey,
		BaseURL: cfg.GoogleBooks.BaseURL,
		Timeout: cfg.GoogleBooks.Timeout,
	}, logger)

	svc := service.NewSearchService(service.SearchServiceDeps{
		Catalog:  catalog,
		Sessions: sessions,
		Logger:   logger,
		Metrics:  m,
	})

	srv, err := web.NewServer(web.ServerConfig{
		Addr:         cfg.HTTP.Addr,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Session: web.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.CookieSecure,
		},
		Version: Version,
	}, web.ServerDeps{
		Search:   svc,
		Sessions: sessions,
		Logger:   logger,
		Metrics:  m,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	g.Go(srv.ListenAndServe)

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openSessions поднимает хранилище сессий. Для postgres еще накатывает миграции
// и запускает в g периодическую чистку просроченных записей.
func openSessions(ctx context.Context, g *errgroup.Group, cfg *config.Config, logger *zap.Logger) (repository.SessionRepository, func(), error) {
	if cfg.Session.Store != config.SessionStorePostgres {
		repo := memrepo.NewSessionRepo(cfg.Session.TTL, memory.WithCleanupInterval(cfg.Session.CleanupInterval))
		return repo, repo.Close, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := postgres.NewWithConfig(connectCtx, cfg.Database.URL, postgres.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.Migrate(connectCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("session schema is up to date")

	repo := postgres.NewSessionRepo(db, cfg.Session.TTL)

	interval := cfg.Session.CleanupInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := repo.DeleteExpired(ctx)
				if err != nil {
					if ctx.Err() == nil {
						logger.Warn("failed to delete expired sessions", zap.Error(err))
					}
					continue
				}
				if n > 0 {
					logger.Debug("expired sessions deleted", zap.Int64("count", n))
				}
			}
		}
	})

	return repo, db.Close, nil
}
