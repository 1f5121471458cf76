package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "FXTracker/internal/domain/repository"
	"FXTracker/internal/handler/ws"
	internalrepo "FXTracker/internal/repository"
	"FXTracker/internal/usecase"
	"FXTracker/pkg/cache"
	"FXTracker/pkg/config"
	xhttp "FXTracker/pkg/http"
	applogger "FXTracker/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	sel        *usecase.SelectionController
	pub        domrepo.ActivityPublisher
	cacheSvc   cache.Service
	hub        *ws.Hub
	httpServer *xhttp.Server
	handler    xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	sel *usecase.SelectionController,
	pub domrepo.ActivityPublisher,
	cacheSvc cache.Service,
	hub *ws.Hub,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		sel:      sel,
		pub:      pub,
		cacheSvc: cacheSvc,
		hub:      hub,
		handler:  handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Aggregate repeated error logs onto the activity pipe when the
	// producer is wired.
	if kp, ok := a.pub.(*internalrepo.KafkaActivityPublisher); ok && a.cfg.Kafka.Topic != "" {
		a.logger.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.Topic + ".logs",
			Publisher:      kp,
		})
	}

	if a.hub != nil {
		a.sel.SetBroadcast(a.hub.Broadcast)
	}

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	opts = append(opts, xhttp.WithMetrics(a.cfg.Metrics.Enabled))
	if a.cfg.Metrics.Path != "" {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("dashboard started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("currency", a.sel.ActiveCurrency()),
		applogger.String("pair", a.sel.ActivePair()),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services. Selection state is
// session-scoped: teardown restores the defaults and drops all notes.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.sel.Reset(shutdownCtx); err != nil {
		a.logger.Warn("session reset error", applogger.Error(err))
	}

	if a.hub != nil {
		a.hub.Close()
	}

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if err := a.pub.Close(); err != nil {
		a.logger.Warn("activity publisher close error", applogger.Error(err))
	}

	if err := a.cacheSvc.Close(); err != nil {
		a.logger.Warn("cache close error", applogger.Error(err))
	}

	a.logger.RemoveCollector()
	a.logger.Info("shutdown complete")
	return nil
}
