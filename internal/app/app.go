package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"orbit-expenses/internal/config"
	"orbit-expenses/internal/db"
	dashboarddomain "orbit-expenses/internal/domain/dashboard"
	expensesdomain "orbit-expenses/internal/domain/expenses"
	"orbit-expenses/internal/repository/inmemory"
	expensesrepo "orbit-expenses/internal/repository/postgres/expenses"
	"orbit-expenses/internal/transport/httpserver"
	"orbit-expenses/internal/transport/httpserver/handler"
	"orbit-expenses/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg        config.Config
	log        logger.Logger
	db         *gorm.DB
	expenses   *expensesdomain.Service
	dashboard  *dashboarddomain.Service
	httpServer *http.Server
}

func New(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.Driver == config.DriverSQLite || cfg.DB.AutoMigrate {
		if err := db.Migrate(dbConn, log, expensesrepo.Models()...); err != nil {
			_ = db.Close(dbConn)
			return nil, err
		}
	}

	repo := expensesrepo.NewPostgres(dbConn)
	expenses := expensesdomain.NewServiceWithCache(repo, inmemory.NewInMemoryCategoriesCache(), cfg.CategoriesCacheTTL)
	dashboard := dashboarddomain.NewService(expenses, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handler.New(expenses, dashboard, log), log)

	return &App{
		cfg:        cfg,
		log:        log,
		db:         dbConn,
		expenses:   expenses,
		dashboard:  dashboard,
		httpServer: httpserver.New(cfg, router),
	}, nil
}

func (a *App) Expenses() *expensesdomain.Service {
	return a.expenses
}

func (a *App) Dashboard() *dashboarddomain.Service {
	return a.dashboard
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Serve seeds the default categories into an empty database, then runs the
// HTTP server until ctx is cancelled or the listener fails.
func (a *App) Serve(ctx context.Context) error {
	seeded, err := a.expenses.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	if seeded {
		a.log.Info("app: seeded default categories")
	}

	srv := a.httpServer
	a.log.Info("http: listening", "addr", srv.Addr)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.log.Info("app: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			a.log.Critical("http: server failed", "addr", srv.Addr, "err", err)
			serveErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error("http: graceful shutdown failed", "err", err)
		serveErr = errors.Join(serveErr, err)
	}
	return serveErr
}

func (a *App) Close() error {
	return db.Close(a.db)
}
