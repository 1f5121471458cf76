package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"FXTracker/internal/domain/models"
)

func mustCatalog(t *testing.T) *ReferenceCatalog {
	t.Helper()
	cat, err := NewReferenceCatalog(DefaultCatalogDocument())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func TestDefaultCatalogLoads(t *testing.T) {
	cat := mustCatalog(t)
	if got := len(cat.ListCurrencies()); got != 8 {
		t.Fatalf("expected 8 currencies, got %d", got)
	}
	if got := len(cat.ListPairs()); got != 8 {
		t.Fatalf("expected 8 pairs, got %d", got)
	}
	if cat.BaseCurrency() != "USD" {
		t.Fatalf("unexpected base %q", cat.BaseCurrency())
	}
}

func TestAllSignalFieldsValid(t *testing.T) {
	cat := mustCatalog(t)
	for _, cs := range cat.ListCurrencies() {
		for _, s := range []models.Signal{cs.Fundamental, cs.Futures, cs.Sentiment, cs.Technical, cs.Overall} {
			if !models.IsValidSignal(s) {
				t.Fatalf("%s: invalid signal %q", cs.Code, s)
			}
		}
	}
}

func TestGetSignalUnknown(t *testing.T) {
	cat := mustCatalog(t)
	if _, err := cat.GetSignal("ZZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFallbackToBase(t *testing.T) {
	cat := mustCatalog(t)

	// GBP has no dedicated indicators or futures; lookups resolve to USD.
	gbp := cat.GetIndicators("GBP")
	usd := cat.GetIndicators("USD")
	if len(gbp) != len(usd) || gbp[0].Name != usd[0].Name {
		t.Fatalf("expected GBP indicators to fall back to base")
	}
	if pts := cat.GetFuturesSeries("GBP"); len(pts) != 5 || pts[0].Week != "W1" {
		t.Fatalf("expected GBP futures to fall back to base, got %v", pts)
	}

	// GBP does carry its own positioning.
	if pv := cat.GetPositioning("GBP"); pv.BuyContracts != 52000 {
		t.Fatalf("expected dedicated GBP positioning, got %+v", pv)
	}

	// EUR has dedicated entries and must not fall back.
	if rows := cat.GetIndicators("EUR"); rows[3].Value != "€25B" {
		t.Fatalf("unexpected EUR trade balance %q", rows[3].Value)
	}
}

func TestInvalidSignalValueRejected(t *testing.T) {
	doc := DefaultCatalogDocument()
	doc.Currencies[0].Overall = "Hold"
	if _, err := NewReferenceCatalog(doc); err == nil {
		t.Fatalf("expected rejection of signal outside the enum")
	}

	doc = DefaultCatalogDocument()
	doc.Currencies[3].Fundamental = "buy"
	if _, err := NewReferenceCatalog(doc); err == nil {
		t.Fatalf("signal values are case sensitive")
	}
}

func TestInvalidImpactValueRejected(t *testing.T) {
	doc := DefaultCatalogDocument()
	doc.Indicators["USD"][0].Impact = "Bullish"
	if _, err := NewReferenceCatalog(doc); err == nil {
		t.Fatalf("expected rejection of impact outside the enum")
	}
}

func TestDuplicateCurrencyRejected(t *testing.T) {
	doc := DefaultCatalogDocument()
	doc.Currencies = append(doc.Currencies, doc.Currencies[0])
	if _, err := NewReferenceCatalog(doc); err == nil {
		t.Fatalf("expected duplicate currency rejection")
	}
}

func TestDuplicatePairRejected(t *testing.T) {
	doc := DefaultCatalogDocument()
	doc.Pairs = append(doc.Pairs, "EURUSD")
	if _, err := NewReferenceCatalog(doc); err == nil {
		t.Fatalf("expected duplicate pair rejection")
	}
}

func TestFuturesOutOfOrderRejected(t *testing.T) {
	doc := DefaultCatalogDocument()
	doc.Futures["USD"] = []models.FuturesPricePoint{
		{Week: "W2", Value: 1},
		{Week: "W1", Value: 2},
	}
	if _, err := NewReferenceCatalog(doc); err == nil {
		t.Fatalf("expected out-of-order futures rejection")
	}
}

func TestBaseWithoutIndicatorsRejected(t *testing.T) {
	doc := DefaultCatalogDocument()
	delete(doc.Indicators, "USD")
	if _, err := NewReferenceCatalog(doc); err == nil {
		t.Fatalf("expected missing base indicators rejection")
	}
}

func TestUnknownKeyedEntryRejected(t *testing.T) {
	doc := DefaultCatalogDocument()
	doc.Positioning["XAU"] = models.PositioningVolume{BuyContracts: 1, SellContracts: 1}
	if _, err := NewReferenceCatalog(doc); err == nil {
		t.Fatalf("expected unknown positioning key rejection")
	}
}

func TestWeekIndex(t *testing.T) {
	if n, err := weekIndex("W12"); err != nil || n != 12 {
		t.Fatalf("W12: got %d %v", n, err)
	}
	for _, bad := range []string{"", "12", "W0", "Wx", "M1"} {
		if _, err := weekIndex(bad); err == nil {
			t.Fatalf("expected rejection of %q", bad)
		}
	}
}

func TestLoadCatalogFile(t *testing.T) {
	doc := `
base_currency: USD
currencies:
  - code: USD
    name: US Dollar
    fundamental: Buy
    futures: Buy
    sentiment: Neutral
    technical: Buy
    overall: Buy
pairs: [EURUSD]
indicators:
  USD:
    - name: GDP
      value: "2.5%"
      change: 0.3
      impact: Positive
futures:
  USD:
    - week: W1
      value: 105.2
positioning:
  USD:
    buy_contracts: 100
    sell_contracts: 50
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cat, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if pv := cat.GetPositioning("USD"); pv.BuyContracts != 100 {
		t.Fatalf("unexpected positioning %+v", pv)
	}
}

func TestLoadCatalogFileMissing(t *testing.T) {
	if _, err := LoadCatalogFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
