package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FXTracker/internal/domain/models"
	internalrepo "FXTracker/internal/repository"
	"FXTracker/internal/usecase"
	"FXTracker/pkg/cache"
	xlogger "FXTracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

type nopMetrics struct{}

func (nopMetrics) RecordSelection(string, string)          {}
func (nopMetrics) RecordNoteWrite(string)                  {}
func (nopMetrics) RecordRejected(string)                   {}
func (nopMetrics) RecordSentimentStrength(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)           {}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	return newTestServerWithDoc(t, internalrepo.DefaultCatalogDocument())
}

func newTestServerWithDoc(t *testing.T, doc *internalrepo.CatalogDocument) *echo.Echo {
	t.Helper()
	cat, err := internalrepo.NewReferenceCatalog(doc)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	logger, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	m := nopMetrics{}
	notes := internalrepo.NewNoteBook(cache.NewMemoryCache(), 0)
	agg := usecase.NewAggregator(cat, m)
	sel, err := usecase.NewSelectionController(
		cat, notes, internalrepo.NopActivityPublisher{}, m, logger,
		"EUR", "EURUSD", 20, 5,
	)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	e := echo.New()
	NewDashboardEchoHandler(logger, agg, sel, m, nil).RegisterRoutes(e)
	return e
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, e *echo.Echo, method, target, body string) envelope {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code == http.StatusNoContent {
		return envelope{Status: http.StatusNoContent}
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: bad envelope %q: %v", method, target, rec.Body.String(), err)
	}
	return env
}

func TestCurrenciesEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := do(t, e, http.MethodGet, "/api/currencies", "")
	if env.Status != http.StatusOK {
		t.Fatalf("unexpected status %d", env.Status)
	}
	var list struct {
		Rows  []map[string]interface{} `json:"rows"`
		Total int64                    `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 8 || len(list.Rows) != 8 {
		t.Fatalf("expected 8 rows, got %d", list.Total)
	}
	if list.Rows[0]["code"] != "USD" {
		t.Fatalf("unexpected first row %v", list.Rows[0])
	}
}

func TestCurrencyDetailEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := do(t, e, http.MethodGet, "/api/currency?code=EUR", "")
	if env.Status != http.StatusOK {
		t.Fatalf("unexpected status %d", env.Status)
	}
	var detail struct {
		Signal struct {
			Overall string `json:"overall"`
		} `json:"signal"`
		Indicators []map[string]interface{} `json:"indicators"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.Signal.Overall != "Sell" || len(detail.Indicators) != 5 {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestCurrencyUnknownCode(t *testing.T) {
	e := newTestServer(t)
	env := do(t, e, http.MethodGet, "/api/currency?code=ZZZ", "")
	if env.Status != http.StatusNotFound {
		t.Fatalf("expected 404 envelope, got %d", env.Status)
	}
	var errs []struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(env.Data, &errs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(errs) != 1 || errs[0].Code != "ERR_UNKNOWN_CURRENCY" {
		t.Fatalf("unexpected errors %v", errs)
	}
}

func TestCurrencyBadRequest(t *testing.T) {
	e := newTestServer(t)
	env := do(t, e, http.MethodGet, "/api/currency?code=eu", "")
	if env.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 envelope, got %d", env.Status)
	}
}

func TestSentimentEndpoint(t *testing.T) {
	e := newTestServer(t)
	env := do(t, e, http.MethodGet, "/api/sentiment?code=GBP", "")
	if env.Status != http.StatusOK {
		t.Fatalf("unexpected status %d", env.Status)
	}
	var res SentimentResponse
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Strength.Defined || res.Positioning.BuyContracts != 52000 {
		t.Fatalf("unexpected sentiment %+v", res)
	}
}

func TestSentimentZeroVolumeServedAsUndefined(t *testing.T) {
	doc := internalrepo.DefaultCatalogDocument()
	doc.Positioning["GBP"] = models.PositioningVolume{}
	e := newTestServerWithDoc(t, doc)

	env := do(t, e, http.MethodGet, "/api/sentiment?code=GBP", "")
	if env.Status != http.StatusOK {
		t.Fatalf("zero volume must serve 200, got %d", env.Status)
	}
	var res SentimentResponse
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Strength.Defined {
		t.Fatalf("expected undefined strength, got %+v", res.Strength)
	}
	if res.Strength.Pct != 0 {
		t.Fatalf("undefined strength must not carry a ratio, got %v", res.Strength.Pct)
	}
}

func TestSelectionFlow(t *testing.T) {
	e := newTestServer(t)

	env := do(t, e, http.MethodPut, "/api/state/currency", `{"code":"GBP"}`)
	if env.Status != http.StatusOK {
		t.Fatalf("select currency: %d", env.Status)
	}
	env = do(t, e, http.MethodPut, "/api/state/pair", `{"code":"GBPUSD"}`)
	if env.Status != http.StatusOK {
		t.Fatalf("select pair: %d", env.Status)
	}

	env = do(t, e, http.MethodGet, "/api/state", "")
	var st struct {
		ActiveCurrency string `json:"active_currency"`
		ActivePair     string `json:"active_pair"`
	}
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.ActiveCurrency != "GBP" || st.ActivePair != "GBPUSD" {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestSelectionRejectionKeepsState(t *testing.T) {
	e := newTestServer(t)

	env := do(t, e, http.MethodPut, "/api/state/currency", `{"code":"ZZZ"}`)
	if env.Status != http.StatusNotFound {
		t.Fatalf("expected 404 envelope, got %d", env.Status)
	}

	env = do(t, e, http.MethodGet, "/api/state", "")
	var st struct {
		ActiveCurrency string `json:"active_currency"`
	}
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.ActiveCurrency != "EUR" {
		t.Fatalf("rejection changed state: %+v", st)
	}
}

func TestNotesFlow(t *testing.T) {
	e := newTestServer(t)

	env := do(t, e, http.MethodPut, "/api/notes/fundamental", `{"code":"EUR","text":"ECB dovish"}`)
	if env.Status != http.StatusOK {
		t.Fatalf("set note: %d", env.Status)
	}

	env = do(t, e, http.MethodGet, "/api/notes/fundamental?code=EUR", "")
	var note struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(env.Data, &note); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if note.Text != "ECB dovish" {
		t.Fatalf("unexpected note %q", note.Text)
	}

	env = do(t, e, http.MethodPut, "/api/notes/technical", `{"code":"EURUSD","text":"range bound"}`)
	if env.Status != http.StatusOK {
		t.Fatalf("set tech note: %d", env.Status)
	}
	env = do(t, e, http.MethodGet, "/api/notes/technical?code=EURUSD", "")
	if err := json.Unmarshal(env.Data, &note); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if note.Text != "range bound" {
		t.Fatalf("unexpected note %q", note.Text)
	}
}

func TestResetEndpoint(t *testing.T) {
	e := newTestServer(t)

	_ = do(t, e, http.MethodPut, "/api/state/currency", `{"code":"CHF"}`)
	_ = do(t, e, http.MethodPut, "/api/notes/fundamental", `{"code":"CHF","text":"SNB steady"}`)

	env := do(t, e, http.MethodDelete, "/api/state", "")
	if env.Status != http.StatusNoContent {
		t.Fatalf("reset: %d", env.Status)
	}

	env = do(t, e, http.MethodGet, "/api/state", "")
	var st struct {
		ActiveCurrency   string            `json:"active_currency"`
		FundamentalNotes map[string]string `json:"fundamental_notes"`
	}
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.ActiveCurrency != "EUR" || len(st.FundamentalNotes) != 0 {
		t.Fatalf("reset incomplete: %+v", st)
	}
}
