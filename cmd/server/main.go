// Command server runs the book review HTTP API.
//
// @title                       Book Reviews API
// @version                     1.0
// @description                 Book catalog with per-user reviews and session-based login.
// @BasePath                    /
// @securityDefinitions.apikey  SessionAuth
// @in                          header
// @name                        Authorization
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

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Sirpyerre/book-reviews/internal/api"
	"github.com/Sirpyerre/book-reviews/internal/api/handler"
	"github.com/Sirpyerre/book-reviews/internal/core/domain"
	"github.com/Sirpyerre/book-reviews/internal/core/ports"
	"github.com/Sirpyerre/book-reviews/internal/core/service"
	"github.com/Sirpyerre/book-reviews/internal/infrastructure/db/memory"
	mongodb "github.com/Sirpyerre/book-reviews/internal/infrastructure/db/mongo"
	redisdb "github.com/Sirpyerre/book-reviews/internal/infrastructure/db/redis"
	"github.com/Sirpyerre/book-reviews/internal/infrastructure/queue"
	"github.com/Sirpyerre/book-reviews/internal/infrastructure/seed"
	"github.com/Sirpyerre/book-reviews/internal/pkg/config"
	"github.com/Sirpyerre/book-reviews/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "book-reviews",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

// backends groups the storage implementations selected by configuration.
type backends struct {
	catalog  ports.CatalogRepository
	users    ports.UserRepository
	sessions ports.SessionStore
	events   ports.ReviewEventRepository
	checks   map[string]handler.Pinger
	closers  []func(context.Context) error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	books, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return err
	}

	b, err := openBackends(ctx, cfg, books, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, closeFn := range b.closers {
			if err := closeFn(closeCtx); err != nil {
				log.Warn().Err(err).Msg("failed to close backend")
			}
		}
	}()

	activity := service.NewReviewEventService(b.catalog, b.events, logger.Component("activity"))
	dispatcher := queue.NewDispatcher(cfg.ReviewEventWorkers, activity, logger.Component("dispatcher"))

	e := api.NewRouter(api.Dependencies{
		Catalog:        service.NewCatalogService(b.catalog, logger.Component("catalog")),
		Reviews:        service.NewReviewService(b.catalog, dispatcher, logger.Component("reviews")),
		Auth:           service.NewAuthService(b.users, b.sessions, cfg.SessionSecret, cfg.SessionTTL, logger.Component("auth")),
		Activity:       activity,
		Checks:         b.checks,
		Logger:         log,
		LoginRateLimit: cfg.LoginRateLimit,
		SecureCookies:  !cfg.IsDevelopment(),
	})

	g, gctx := errgroup.WithContext(ctx)

	dispatcher.Start(gctx)

	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreBackend).
			Str("sessions", cfg.SessionBackend).
			Int("books", len(books)).
			Msg("starting HTTP server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down HTTP server")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openBackends(ctx context.Context, cfg *config.Config, books []*domain.Book, log zerolog.Logger) (*backends, error) {
	b := &backends{checks: map[string]handler.Pinger{}}

	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Disconnect)

		catalog := mongodb.NewCatalogRepository(db)
		if err := catalog.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		if err := catalog.Seed(ctx, books); err != nil {
			return nil, err
		}
		b.catalog = catalog
		b.users = mongodb.NewUserRepository(db)
		b.events = mongodb.NewReviewEventRepository(db)
		b.checks["mongo"] = mongodb.NewPinger(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")
	default:
		catalog, err := memory.NewCatalogStore(books)
		if err != nil {
			return nil, err
		}
		b.catalog = catalog
		b.users = memory.NewUserRepository()
		b.events = memory.NewReviewEventRepository()
	}

	switch cfg.SessionBackend {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return client.Close() })
		b.sessions = redisdb.NewSessionStore(client)
		b.checks["redis"] = redisdb.NewPinger(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	default:
		b.sessions = memory.NewSessionStore()
	}

	return b, nil
}
