package usecase

import (
	"errors"
	"math"
	"testing"

	"FXTracker/internal/domain/models"
	internalrepo "FXTracker/internal/repository"
)

type nopMetrics struct{}

func (nopMetrics) RecordSelection(string, string)          {}
func (nopMetrics) RecordNoteWrite(string)                  {}
func (nopMetrics) RecordRejected(string)                   {}
func (nopMetrics) RecordSentimentStrength(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)           {}

func newAggregator(t *testing.T) *Aggregator {
	t.Helper()
	cat, err := internalrepo.NewReferenceCatalog(internalrepo.DefaultCatalogDocument())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewAggregator(cat, nopMetrics{})
}

func TestClassify(t *testing.T) {
	agg := newAggregator(t)
	for _, s := range []models.Signal{models.SignalBuy, models.SignalSell, models.SignalNeutral} {
		got, err := agg.Classify(s)
		if err != nil || got != s {
			t.Fatalf("%s: got %q %v", s, got, err)
		}
	}
	if _, err := agg.Classify("Hold"); !errors.Is(err, ErrInvalidSignal) {
		t.Fatalf("expected ErrInvalidSignal, got %v", err)
	}
}

func TestSentimentStrength(t *testing.T) {
	agg := newAggregator(t)
	pct, err := agg.SentimentStrength(models.PositioningVolume{BuyContracts: 65000, SellContracts: 45000})
	if err != nil {
		t.Fatalf("strength: %v", err)
	}
	want := 65000.0 / 110000.0 * 100
	if math.Abs(pct-want) > 1e-9 {
		t.Fatalf("expected %.6f, got %.6f", want, pct)
	}
}

func TestSentimentStrengthAllBuy(t *testing.T) {
	agg := newAggregator(t)
	pct, err := agg.SentimentStrength(models.PositioningVolume{BuyContracts: 100, SellContracts: 0})
	if err != nil || pct != 100 {
		t.Fatalf("expected 100, got %v %v", pct, err)
	}
}

func TestSentimentStrengthZeroVolume(t *testing.T) {
	agg := newAggregator(t)
	if _, err := agg.SentimentStrength(models.PositioningVolume{}); !errors.Is(err, ErrZeroVolume) {
		t.Fatalf("expected ErrZeroVolume, got %v", err)
	}
}

func TestCurrencyDetail(t *testing.T) {
	agg := newAggregator(t)
	detail, err := agg.CurrencyDetail("EUR")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Signal.Overall != models.SignalSell {
		t.Fatalf("unexpected overall %q", detail.Signal.Overall)
	}
	if len(detail.Indicators) != 5 || len(detail.Futures) != 5 {
		t.Fatalf("unexpected detail shape %+v", detail)
	}
	if !detail.Strength.Defined {
		t.Fatalf("expected defined strength")
	}
	want := 35000.0 / 90000.0 * 100
	if math.Abs(detail.Strength.Pct-want) > 1e-9 {
		t.Fatalf("expected %.6f, got %.6f", want, detail.Strength.Pct)
	}
}

func TestCurrencyDetailFallback(t *testing.T) {
	agg := newAggregator(t)
	detail, err := agg.CurrencyDetail("GBP")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	// GBP has no dedicated indicators/futures; the base currency's are served.
	if len(detail.Indicators) != 5 || detail.Futures[0].Week != "W1" {
		t.Fatalf("expected base fallback, got %+v", detail)
	}
	if detail.Positioning.BuyContracts != 52000 {
		t.Fatalf("expected dedicated GBP positioning, got %+v", detail.Positioning)
	}
}

func TestCurrencyDetailZeroPositioningUndefined(t *testing.T) {
	doc := internalrepo.DefaultCatalogDocument()
	doc.Positioning["GBP"] = models.PositioningVolume{}
	cat, err := internalrepo.NewReferenceCatalog(doc)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	agg := NewAggregator(cat, nopMetrics{})

	detail, err := agg.CurrencyDetail("GBP")
	if err != nil {
		t.Fatalf("zero volume must not fail the detail view: %v", err)
	}
	if detail.Strength.Defined {
		t.Fatalf("expected undefined strength, got %+v", detail.Strength)
	}
	if detail.Strength.Pct != 0 {
		t.Fatalf("undefined strength must not carry a ratio, got %v", detail.Strength.Pct)
	}
}

func TestCurrencyDetailUnknown(t *testing.T) {
	agg := newAggregator(t)
	if _, err := agg.CurrencyDetail("ZZZ"); !errors.Is(err, internalrepo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummaryOrder(t *testing.T) {
	agg := newAggregator(t)
	rows := agg.Summary()
	if len(rows) != 8 || rows[0].Code != "USD" || rows[7].Code != "CHF" {
		t.Fatalf("unexpected summary order %v", rows)
	}
}
