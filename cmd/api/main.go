package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/easyclick/support-desk/internal/api/http"
	"github.com/easyclick/support-desk/internal/api/http/handlers"
	"github.com/easyclick/support-desk/internal/config"
	"github.com/easyclick/support-desk/internal/events"
	"github.com/easyclick/support-desk/internal/observability"
	"github.com/easyclick/support-desk/internal/service"
	"github.com/easyclick/support-desk/internal/storage"
	"github.com/easyclick/support-desk/internal/store"
	"github.com/easyclick/support-desk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	medium, closeMedium, err := newMedium(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to init storage medium", zap.Error(err))
	}
	defer closeMedium()

	reconciler := storage.NewReconciler(medium, logger)
	ticketStore := store.New(ctx, reconciler)

	dispatcher := events.NewInMemoryDispatcher()
	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:      ticketStore,
		Dispatcher: dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, medium, ticketStore),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Portal:  handlers.NewPortalHandler(ticketService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newMedium builds the persistence medium for the configured backend. The
// "none" backend returns a nil medium: the reconciler then serves seed data
// and skips writes for the whole session.
func newMedium(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (storage.Medium, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.BackendFile:
		medium, err := storage.NewFileMedium(cfg.FileDir)
		if err != nil {
			return nil, nil, err
		}
		return medium, noop, nil
	case config.BackendRedis:
		medium := storage.NewRedisMedium(cfg.Redis, logger)
		return medium, medium.Close, nil
	case config.BackendPostgres:
		medium, err := storage.NewPostgresMedium(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		return medium, medium.Close, nil
	case config.BackendMemory:
		return storage.NewMemoryMedium(), noop, nil
	default:
		logger.Warn("no persistence medium configured; session is ephemeral")
		return nil, noop, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
