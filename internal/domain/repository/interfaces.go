package repository

import (
	"context"

	"FXTracker/internal/domain/models"
)

// ReferenceStore is the read-only catalog of per-currency reference data.
// Implementations are immutable after construction and safe for concurrent
// reads. GetIndicators, GetFuturesSeries, and GetPositioning fall back to
// the base currency's entry when a currency has no dedicated one; the
// catalog is intentionally sparse and a miss is not an error.
type ReferenceStore interface {
	GetSignal(code string) (models.CurrencySignal, error)
	GetIndicators(code string) []models.EconomicIndicator
	GetFuturesSeries(code string) []models.FuturesPricePoint
	GetPositioning(code string) models.PositioningVolume
	ListCurrencies() []models.CurrencySignal
	ListPairs() []string
	HasCurrency(code string) bool
	HasPair(code string) bool
	BaseCurrency() string
}

// NotesStore holds the session-scoped analyst notes: one map keyed by
// currency code, one keyed by pair code. Absence reads as an empty string.
type NotesStore interface {
	SetFundamentalNote(ctx context.Context, code, text string) error
	GetFundamentalNote(ctx context.Context, code string) (string, error)
	FundamentalNotes(ctx context.Context, codes []string) (map[string]string, error)
	SetTechnicalNote(ctx context.Context, code, text string) error
	GetTechnicalNote(ctx context.Context, code string) (string, error)
	TechnicalNotes(ctx context.Context, codes []string) (map[string]string, error)
	Reset(ctx context.Context) error
}

// ActivityPublisher forwards accepted selection-state mutations to an
// external sink (activity topic). Implementations must be safe to call
// from the controller's critical path and should fail soft.
type ActivityPublisher interface {
	Publish(ctx context.Context, ev models.ActivityEvent) error
	Close() error
}

type Metrics interface {
	RecordSelection(kind, code string)
	RecordNoteWrite(kind string)
	RecordRejected(reason string)
	RecordSentimentStrength(code string, pct float64)
	RecordLatency(op string, seconds float64)
}
