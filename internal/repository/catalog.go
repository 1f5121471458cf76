package repository

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"FXTracker/internal/domain/models"
)

// ErrNotFound is returned by GetSignal for a code outside the catalog.
// The other lookups never return it; they fall back to the base currency.
var ErrNotFound = errors.New("catalog: currency not found")

var validate = validator.New()

// CatalogDocument is the on-disk (or built-in) shape of the reference
// catalog. It is validated once at load; the served catalog is immutable.
type CatalogDocument struct {
	BaseCurrency string                                 `yaml:"base_currency" validate:"required,len=3,uppercase"`
	Currencies   []models.CurrencySignal                `yaml:"currencies" validate:"required,min=1,dive"`
	Pairs        []string                               `yaml:"pairs" validate:"required,min=1,dive,len=6,uppercase"`
	Indicators   map[string][]models.EconomicIndicator  `yaml:"indicators" validate:"dive,min=1,dive"`
	Futures      map[string][]models.FuturesPricePoint  `yaml:"futures" validate:"dive,min=1,dive"`
	Positioning  map[string]models.PositioningVolume    `yaml:"positioning" validate:"dive"`
}

// ReferenceCatalog implements repository.ReferenceStore over a validated
// document. All lookups are pure reads; there is no mutation path.
type ReferenceCatalog struct {
	base        string
	order       []models.CurrencySignal
	signals     map[string]models.CurrencySignal
	pairs       []string
	pairSet     map[string]struct{}
	indicators  map[string][]models.EconomicIndicator
	futures     map[string][]models.FuturesPricePoint
	positioning map[string]models.PositioningVolume
}

// NewReferenceCatalog validates doc and builds the immutable catalog.
func NewReferenceCatalog(doc *CatalogDocument) (*ReferenceCatalog, error) {
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("catalog validate: %w", err)
	}
	if err := checkDocument(doc); err != nil {
		return nil, fmt.Errorf("catalog check: %w", err)
	}

	c := &ReferenceCatalog{
		base:        doc.BaseCurrency,
		order:       make([]models.CurrencySignal, 0, len(doc.Currencies)),
		signals:     make(map[string]models.CurrencySignal, len(doc.Currencies)),
		pairs:       append([]string(nil), doc.Pairs...),
		pairSet:     make(map[string]struct{}, len(doc.Pairs)),
		indicators:  make(map[string][]models.EconomicIndicator, len(doc.Indicators)),
		futures:     make(map[string][]models.FuturesPricePoint, len(doc.Futures)),
		positioning: make(map[string]models.PositioningVolume, len(doc.Positioning)),
	}
	for _, cs := range doc.Currencies {
		c.order = append(c.order, cs)
		c.signals[cs.Code] = cs
	}
	for _, p := range doc.Pairs {
		c.pairSet[p] = struct{}{}
	}
	for code, rows := range doc.Indicators {
		c.indicators[code] = append([]models.EconomicIndicator(nil), rows...)
	}
	for code, pts := range doc.Futures {
		c.futures[code] = append([]models.FuturesPricePoint(nil), pts...)
	}
	for code, pv := range doc.Positioning {
		c.positioning[code] = pv
	}
	return c, nil
}

// LoadCatalogFile reads and parses a YAML catalog file.
func LoadCatalogFile(path string) (*ReferenceCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var doc CatalogDocument
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewReferenceCatalog(&doc)
}

// checkDocument enforces the cross-entry invariants struct tags cannot:
// unique currency and pair codes, every keyed entry belongs to a cataloged
// currency, futures series strictly ordered by week index, and the base
// currency carries dedicated entries for every fallback lookup.
func checkDocument(doc *CatalogDocument) error {
	seen := make(map[string]struct{}, len(doc.Currencies))
	for _, cs := range doc.Currencies {
		if _, dup := seen[cs.Code]; dup {
			return fmt.Errorf("duplicate currency %q", cs.Code)
		}
		seen[cs.Code] = struct{}{}
	}
	pairSeen := make(map[string]struct{}, len(doc.Pairs))
	for _, p := range doc.Pairs {
		if _, dup := pairSeen[p]; dup {
			return fmt.Errorf("duplicate pair %q", p)
		}
		pairSeen[p] = struct{}{}
	}
	if _, ok := seen[doc.BaseCurrency]; !ok {
		return fmt.Errorf("base currency %q not in catalog", doc.BaseCurrency)
	}
	for code := range doc.Indicators {
		if _, ok := seen[code]; !ok {
			return fmt.Errorf("indicators keyed by unknown currency %q", code)
		}
	}
	for code, pts := range doc.Futures {
		if _, ok := seen[code]; !ok {
			return fmt.Errorf("futures keyed by unknown currency %q", code)
		}
		prev := 0
		for _, pt := range pts {
			n, err := weekIndex(pt.Week)
			if err != nil {
				return fmt.Errorf("futures %s: %w", code, err)
			}
			if n <= prev {
				return fmt.Errorf("futures %s: week %q out of order", code, pt.Week)
			}
			prev = n
		}
	}
	for code := range doc.Positioning {
		if _, ok := seen[code]; !ok {
			return fmt.Errorf("positioning keyed by unknown currency %q", code)
		}
	}
	// The base currency anchors fallback-on-miss for all three lookups.
	if len(doc.Indicators[doc.BaseCurrency]) == 0 {
		return fmt.Errorf("base currency %q has no indicators", doc.BaseCurrency)
	}
	if len(doc.Futures[doc.BaseCurrency]) == 0 {
		return fmt.Errorf("base currency %q has no futures series", doc.BaseCurrency)
	}
	if _, ok := doc.Positioning[doc.BaseCurrency]; !ok {
		return fmt.Errorf("base currency %q has no positioning", doc.BaseCurrency)
	}
	return nil
}

// weekIndex parses week labels of the form "W3".
func weekIndex(label string) (int, error) {
	rest, ok := strings.CutPrefix(label, "W")
	if !ok {
		return 0, fmt.Errorf("bad week label %q", label)
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad week label %q", label)
	}
	return n, nil
}

// GetSignal returns the immutable signal record for code.
func (c *ReferenceCatalog) GetSignal(code string) (models.CurrencySignal, error) {
	cs, ok := c.signals[code]
	if !ok {
		return models.CurrencySignal{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return cs, nil
}

// GetIndicators returns the currency's indicator rows, or the base
// currency's rows when the currency has no dedicated entry.
func (c *ReferenceCatalog) GetIndicators(code string) []models.EconomicIndicator {
	if rows, ok := c.indicators[code]; ok {
		return rows
	}
	return c.indicators[c.base]
}

// GetFuturesSeries returns the currency's weekly futures series, falling
// back to the base currency's series on a miss.
func (c *ReferenceCatalog) GetFuturesSeries(code string) []models.FuturesPricePoint {
	if pts, ok := c.futures[code]; ok {
		return pts
	}
	return c.futures[c.base]
}

// GetPositioning returns the currency's contract volumes, falling back to
// the base currency's volumes on a miss.
func (c *ReferenceCatalog) GetPositioning(code string) models.PositioningVolume {
	if pv, ok := c.positioning[code]; ok {
		return pv
	}
	return c.positioning[c.base]
}

// ListCurrencies returns all signal records in fixed display order.
func (c *ReferenceCatalog) ListCurrencies() []models.CurrencySignal {
	return c.order
}

// ListPairs returns the supported pair enumeration in fixed order.
func (c *ReferenceCatalog) ListPairs() []string {
	return c.pairs
}

func (c *ReferenceCatalog) HasCurrency(code string) bool {
	_, ok := c.signals[code]
	return ok
}

func (c *ReferenceCatalog) HasPair(code string) bool {
	_, ok := c.pairSet[code]
	return ok
}

// BaseCurrency returns the fallback anchor currency.
func (c *ReferenceCatalog) BaseCurrency() string {
	return c.base
}
