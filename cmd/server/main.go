package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/Wish_Collector/internal/config"
	"github.com/Dias221467/Wish_Collector/internal/database"
	"github.com/Dias221467/Wish_Collector/internal/handlers"
	"github.com/Dias221467/Wish_Collector/internal/repository"
	"github.com/Dias221467/Wish_Collector/internal/scheduler"
	"github.com/Dias221467/Wish_Collector/internal/services"
	"github.com/Dias221467/Wish_Collector/pkg/lock"
	"github.com/Dias221467/Wish_Collector/pkg/logger"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	if err := run(cfg); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped")
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	var store repository.WishStore
	switch cfg.StoreBackend {
	case config.BackendFile:
		fileStore := repository.NewFileWishRepository(cfg.DataFile,
			repository.WithLocker(lock.Flock{Timeout: cfg.LockTimeout}))
		logger.Log.WithField("path", fileStore.Path()).Info("Using file store")
		store = fileStore
	case config.BackendMongo:
		client, db, err := database.ConnectDB(cfg)
		if err != nil {
			return fmt.Errorf("database connection error: %w", err)
		}
		defer client.Disconnect(context.Background())
		store = repository.NewMongoWishRepository(db, nil, nil)
		logger.Log.WithField("database", cfg.MongoDB).Info("Using MongoDB store")
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	// --- Services ---
	wishService := services.NewWishService(store)

	// --- Handlers ---
	wishHandler := handlers.NewWishHandler(wishService, cfg.SuccessRedirect)
	router := handlers.NewRouter(wishHandler)

	stats, err := scheduler.StartStatsCronJobs(cfg.StatsSchedule, wishService)
	if err != nil {
		return err
	}
	defer stats.Stop()

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("Shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
