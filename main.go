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

	"github.com/sirupsen/logrus"

	"yatube/auth"
	"yatube/cache"
	"yatube/config"
	"yatube/database"
	"yatube/handlers"
	"yatube/logger"
	"yatube/media"
	"yatube/repositories"
	"yatube/routes"
	"yatube/templates"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFile)

	db, err := database.New(cfg.DBDriver, databaseDSN(cfg))
	if err != nil {
		logrus.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repos := repositories.New(db.DB)

	if len(os.Args) > 1 && os.Args[1] == "create-group" {
		if err := createGroup(context.Background(), repos.Groups, os.Args[2:], os.Stdout); err != nil {
			logrus.Fatalf("create-group: %v", err)
		}
		return
	}

	if err := serve(cfg, repos); err != nil {
		logrus.Fatalf("Server error: %v", err)
	}
}

func serve(cfg *config.Config, repos *repositories.Repositories) error {
	sessions := auth.NewSessions(cfg.SessionKey, repos.Users)
	store, err := media.NewStore(cfg.MediaRoot)
	if err != nil {
		return err
	}
	views, err := templates.New()
	if err != nil {
		return err
	}
	pages := cache.NewPages(cfg.CacheTTL)

	handler := handlers.NewHandler(repos, sessions, store, views)
	router := routes.SetupRoutes(handler, sessions, pages, store)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", cfg.Addr).Info("Server running")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// databaseDSN picks the connection string for the configured driver.
func databaseDSN(cfg *config.Config) string {
	if cfg.DBDriver == "postgres" {
		if cfg.DBDSN != "" {
			return cfg.DBDSN
		}
		return database.PostgresDSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	}
	return database.SQLiteDSN(cfg.DBDSN)
}
