package usecase

import (
	"errors"
	"fmt"

	"FXTracker/internal/domain/models"
	domrepo "FXTracker/internal/domain/repository"
)

var (
	// ErrInvalidSignal reports a value outside {Buy, Sell, Neutral}.
	ErrInvalidSignal = errors.New("invalid signal")
	// ErrZeroVolume reports positioning with both contract counts zero;
	// the strength ratio is undefined and must not default to 0 or 100.
	ErrZeroVolume = errors.New("sentiment strength undefined: zero contract volume")
)

// Aggregator derives the render-ready dashboard views from the reference
// catalog. The overall call is served verbatim from the catalog; no
// derivation from the four dimension signals is performed here.
type Aggregator struct {
	store   domrepo.ReferenceStore
	metrics domrepo.Metrics
}

func NewAggregator(store domrepo.ReferenceStore, metrics domrepo.Metrics) *Aggregator {
	return &Aggregator{store: store, metrics: metrics}
}

// Classify validates that s is one of the three enumerated calls and
// returns it unchanged. It centralizes the enum contract the renderer's
// coloring logic depends on.
func (a *Aggregator) Classify(s models.Signal) (models.Signal, error) {
	if !models.IsValidSignal(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSignal, s)
	}
	return s, nil
}

// SentimentStrength computes buy/(buy+sell)*100 for p. The ratio is
// undefined when both counts are zero; that case is reported, never
// silently zeroed.
func (a *Aggregator) SentimentStrength(p models.PositioningVolume) (float64, error) {
	total := p.BuyContracts + p.SellContracts
	if total == 0 {
		return 0, ErrZeroVolume
	}
	return float64(p.BuyContracts) / float64(total) * 100, nil
}

// CurrencyDetail assembles the full per-currency view: the signal record
// plus indicators, futures series, positioning, and the derived strength.
// The dependent lookups apply the catalog's fallback-on-miss policy; only
// the signal record itself can stop the assembly.
func (a *Aggregator) CurrencyDetail(code string) (models.CurrencyDetail, error) {
	cs, err := a.store.GetSignal(code)
	if err != nil {
		return models.CurrencyDetail{}, err
	}

	detail := models.CurrencyDetail{
		Signal:      cs,
		Indicators:  a.store.GetIndicators(code),
		Futures:     a.store.GetFuturesSeries(code),
		Positioning: a.store.GetPositioning(code),
	}
	if pct, err := a.SentimentStrength(detail.Positioning); err == nil {
		detail.Strength = models.SentimentStrength{Pct: pct, Defined: true}
		a.metrics.RecordSentimentStrength(code, pct)
	}
	return detail, nil
}

// Summary returns the ordered market analysis table, one row per currency.
func (a *Aggregator) Summary() []models.CurrencySignal {
	return a.store.ListCurrencies()
}

// Pairs returns the supported pair enumeration.
func (a *Aggregator) Pairs() []string {
	return a.store.ListPairs()
}
