package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger, nil)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)

	publisher := newPublisher(cfg.Kafka, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	uploader := newUploader(ctx, cfg.S3, logger)

	// Initialize services
	cartService := service.NewCartService(cartRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, publisher, logger)
	productService := service.NewProductService(productRepo, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo, logger)
	sellerService := service.NewSellerService(orderRepo, productRepo, uploader, publisher, logger)

	// Initialize router
	mux := router.New(router.Handlers{
		Cart:     handler.NewCartHandler(cartService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Product:  handler.NewProductHandler(productService, logger),
		Wishlist: handler.NewWishlistHandler(wishlistService, logger),
		Seller:   handler.NewSellerHandler(sellerService, logger),
	}, newResolver(cfg.Auth), logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newResolver accepts bearer tokens first and falls back to the session cookie.
func newResolver(cfg config.AuthConfig) auth.Resolver {
	var chain auth.ChainResolver
	if cfg.JWTSecret != "" {
		chain = append(chain, auth.NewJWTResolver(cfg.JWTSecret))
	}
	if cfg.SessionSecret != "" {
		chain = append(chain, auth.NewSessionResolver(auth.NewCookieStore(cfg.SessionSecret), cfg.SessionName))
	}
	return chain
}

func newPublisher(cfg config.KafkaConfig, logger zerolog.Logger) events.Publisher {
	if !cfg.Enabled {
		logger.Info().Msg("kafka disabled, order events are logged only")
		return events.NewLogPublisher(logger)
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Msg("publishing order events to kafka")
	return events.NewKafkaPublisher(cfg.Brokers, cfg.Topic, logger)
}

func newUploader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) storage.ImageUploader {
	if !cfg.Enabled {
		logger.Info().Msg("S3 disabled, product image uploads are unavailable")
		return storage.DisabledUploader{}
	}

	uploader, err := storage.NewS3Uploader(ctx, cfg, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 uploader, product image uploads are unavailable")
		return storage.DisabledUploader{}
	}
	return uploader
}
