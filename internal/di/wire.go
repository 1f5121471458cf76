//go:build wireinject
// +build wireinject

package di

import (
	"FXTracker/pkg/config"
	"FXTracker/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideMetrics,

		// Reference data and state backends
		ProvideReferenceStore,
		ProvideCacheService,
		ProvideNotesStore,
		ProvideActivityPublisher,

		// Use cases
		ProvideAggregator,
		ProvideSelectionController,

		// Transport
		ProvideHub,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
