package di

import (
	"fmt"

	domrepo "FXTracker/internal/domain/repository"
	"FXTracker/internal/handler/api"
	"FXTracker/internal/handler/ws"
	internalrepo "FXTracker/internal/repository"
	"FXTracker/internal/usecase"
	"FXTracker/pkg/cache"
	"FXTracker/pkg/config"
	xhttp "FXTracker/pkg/http"
	pkgkafka "FXTracker/pkg/kafka"
	xlogger "FXTracker/pkg/logger"
	"FXTracker/pkg/metrics"
	"FXTracker/pkg/server"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	l, err := xlogger.New(&xlogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideReferenceStore loads the reference catalog, either from the
// configured YAML file or the built-in document.
func ProvideReferenceStore(cfg *config.Config) (domrepo.ReferenceStore, error) {
	if cfg.Catalog.Path != "" {
		cat, err := internalrepo.LoadCatalogFile(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("catalog file: %w", err)
		}
		return cat, nil
	}
	cat, err := internalrepo.NewReferenceCatalog(internalrepo.DefaultCatalogDocument())
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return cat, nil
}

// ProvideCacheService creates the notes backend: in-process memory by
// default, Redis for multi-instance coherence, or layered (memory over
// Redis) when read locality matters.
func ProvideCacheService(cfg *config.Config) (cache.Service, error) {
	switch cfg.Session.NotesBackend {
	case "redis", "layered":
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Redis.Host),
			cache.WithRedisPort(cfg.Redis.Port),
			cache.WithRedisPassword(cfg.Redis.Password),
			cache.WithRedisDB(cfg.Redis.DB),
			cache.WithRedisPrefix(cfg.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		if cfg.Session.NotesBackend == "layered" {
			return cache.NewLayeredCache(rc), nil
		}
		return rc, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// ProvideNotesStore creates the notes store over the cache backend.
func ProvideNotesStore(svc cache.Service, cfg *config.Config) domrepo.NotesStore {
	return internalrepo.NewNoteBook(svc, cfg.Session.NoteTTL)
}

// ProvideActivityPublisher creates the Kafka activity publisher, or a nop
// when no brokers are configured.
func ProvideActivityPublisher(cfg *config.Config) (domrepo.ActivityPublisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return internalrepo.NopActivityPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers...),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithBatchSize(cfg.Kafka.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.BatchTimeout),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithHashByKey(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaActivityPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideAggregator creates the dashboard view aggregator use case.
func ProvideAggregator(store domrepo.ReferenceStore, m domrepo.Metrics) *usecase.Aggregator {
	return usecase.NewAggregator(store, m)
}

// ProvideSelectionController creates the session state controller.
func ProvideSelectionController(
	store domrepo.ReferenceStore,
	notes domrepo.NotesStore,
	pub domrepo.ActivityPublisher,
	m domrepo.Metrics,
	logger *xlogger.Logger,
	cfg *config.Config,
) (*usecase.SelectionController, error) {
	return usecase.NewSelectionController(
		store, notes, pub, m, logger,
		cfg.Session.DefaultCurrency,
		cfg.Session.DefaultPair,
		cfg.Session.NoteBurst,
		cfg.Session.NoteRefillPerSec,
	)
}

// ProvideHub creates the WebSocket activity feed hub; nil disables the
// /ws/activity route entirely.
func ProvideHub(cfg *config.Config, logger *xlogger.Logger) *ws.Hub {
	if !cfg.WebSocket.Enabled {
		return nil
	}
	return ws.NewHub(logger, cfg.WebSocket.BufferSize)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(
	logger *xlogger.Logger,
	agg *usecase.Aggregator,
	sel *usecase.SelectionController,
	m domrepo.Metrics,
	hub *ws.Hub,
) xhttp.Handler {
	return api.NewDashboardEchoHandler(logger, agg, sel, m, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *xlogger.Logger,
	sel *usecase.SelectionController,
	pub domrepo.ActivityPublisher,
	cacheSvc cache.Service,
	hub *ws.Hub,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, logger, sel, pub, cacheSvc, hub, handler)
}
