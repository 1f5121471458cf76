package api

import (
	"errors"
	"time"

	models "FXTracker/internal/domain/models"
	domrepo "FXTracker/internal/domain/repository"
	"FXTracker/internal/handler/ws"
	internalrepo "FXTracker/internal/repository"
	"FXTracker/internal/usecase"
	xhttp "FXTracker/pkg/http"
	xlogger "FXTracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type DashboardEchoHandler struct {
	logger  *xlogger.Logger
	agg     *usecase.Aggregator
	sel     *usecase.SelectionController
	metrics domrepo.Metrics
	hub     *ws.Hub
}

func NewDashboardEchoHandler(
	logger *xlogger.Logger,
	agg *usecase.Aggregator,
	sel *usecase.SelectionController,
	metrics domrepo.Metrics,
	hub *ws.Hub,
) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, agg: agg, sel: sel, metrics: metrics, hub: hub}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/currencies", h.Currencies)
	g.GET("/pairs", h.Pairs)
	g.GET("/currency", h.Currency)
	g.GET("/sentiment", h.Sentiment)
	g.GET("/state", h.State)
	g.PUT("/state/currency", h.SelectCurrency)
	g.PUT("/state/pair", h.SelectPair)
	g.DELETE("/state", h.ResetState)
	g.GET("/notes/fundamental", h.FundamentalNote)
	g.PUT("/notes/fundamental", h.SetFundamentalNote)
	g.GET("/notes/technical", h.TechnicalNote)
	g.PUT("/notes/technical", h.SetTechnicalNote)

	if h.hub != nil {
		e.GET("/ws/activity", h.hub.Serve)
	}
}

// Currencies serves the market analysis overview, one row per currency in
// fixed display order.
func (h *DashboardEchoHandler) Currencies(c echo.Context) error {
	defer h.observe("currencies", time.Now())
	rows := h.agg.Summary()
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Pairs serves the supported pair enumeration.
func (h *DashboardEchoHandler) Pairs(c echo.Context) error {
	defer h.observe("pairs", time.Now())
	rows := h.agg.Pairs()
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Currency serves the full detail view for one currency.
func (h *DashboardEchoHandler) Currency(c echo.Context) error {
	defer h.observe("currency", time.Now())
	req := &models.CurrencyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	detail, err := h.agg.CurrencyDetail(req.Code)
	if err != nil {
		if errors.Is(err, internalrepo.ErrNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.UnknownCurrencyError(req.Code))
		}
		h.logger.Error("currency detail error", xlogger.String("code", req.Code), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, detail)
}

// SentimentResponse pairs the raw contract volumes with the derived
// crowding ratio. Strength.Defined is false on zero volume; the gauge must
// render an undefined state then, not 0% or 100%.
type SentimentResponse struct {
	Code        string                   `json:"code"`
	Positioning models.PositioningVolume `json:"positioning"`
	Strength    models.SentimentStrength `json:"strength"`
}

// Sentiment serves the positioning gauge for one currency.
func (h *DashboardEchoHandler) Sentiment(c echo.Context) error {
	defer h.observe("sentiment", time.Now())
	req := &models.CurrencyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	detail, err := h.agg.CurrencyDetail(req.Code)
	if err != nil {
		if errors.Is(err, internalrepo.ErrNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.UnknownCurrencyError(req.Code))
		}
		h.logger.Error("sentiment error", xlogger.String("code", req.Code), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, SentimentResponse{
		Code:        req.Code,
		Positioning: detail.Positioning,
		Strength:    detail.Strength,
	})
}

// State serves the full selection snapshot for render bootstrap.
func (h *DashboardEchoHandler) State(c echo.Context) error {
	defer h.observe("state", time.Now())
	st, err := h.sel.State(c.Request().Context())
	if err != nil {
		h.logger.Error("state snapshot error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, st)
}

// SelectCurrency sets the active currency.
func (h *DashboardEchoHandler) SelectCurrency(c echo.Context) error {
	defer h.observe("select_currency", time.Now())
	req := &models.SelectCurrencyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.sel.SelectCurrency(c.Request().Context(), req.Code); err != nil {
		return h.selectionError(c, req.Code, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"active_currency": req.Code})
}

// SelectPair sets the active pair.
func (h *DashboardEchoHandler) SelectPair(c echo.Context) error {
	defer h.observe("select_pair", time.Now())
	req := &models.SelectPairRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.sel.SelectPair(c.Request().Context(), req.Code); err != nil {
		return h.selectionError(c, req.Code, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"active_pair": req.Code})
}

// ResetState restores the configured defaults and drops all notes.
func (h *DashboardEchoHandler) ResetState(c echo.Context) error {
	defer h.observe("reset", time.Now())
	if err := h.sel.Reset(c.Request().Context()); err != nil {
		h.logger.Error("reset error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.NoContentResponse(c)
}

// FundamentalNote serves the stored note for a currency, "" when unset.
func (h *DashboardEchoHandler) FundamentalNote(c echo.Context) error {
	defer h.observe("get_fundamental_note", time.Now())
	req := &models.CurrencyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	text, err := h.sel.FundamentalNote(c.Request().Context(), req.Code)
	if err != nil {
		return h.selectionError(c, req.Code, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"code": req.Code, "text": text})
}

// SetFundamentalNote upserts the note for a currency. Empty text is a
// valid upsert, not a delete.
func (h *DashboardEchoHandler) SetFundamentalNote(c echo.Context) error {
	defer h.observe("set_fundamental_note", time.Now())
	req := &models.FundamentalNoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.sel.SetFundamentalNote(c.Request().Context(), req.Code, req.Text); err != nil {
		return h.selectionError(c, req.Code, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"code": req.Code, "text": req.Text})
}

// TechnicalNote serves the stored note for a pair, "" when unset.
func (h *DashboardEchoHandler) TechnicalNote(c echo.Context) error {
	defer h.observe("get_technical_note", time.Now())
	req := &models.TechnicalNoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	text, err := h.sel.TechnicalNote(c.Request().Context(), req.Code)
	if err != nil {
		return h.selectionError(c, req.Code, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"code": req.Code, "text": text})
}

// SetTechnicalNote upserts the note for a pair.
func (h *DashboardEchoHandler) SetTechnicalNote(c echo.Context) error {
	defer h.observe("set_technical_note", time.Now())
	req := &models.TechnicalNoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.sel.SetTechnicalNote(c.Request().Context(), req.Code, req.Text); err != nil {
		return h.selectionError(c, req.Code, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"code": req.Code, "text": req.Text})
}

// selectionError maps controller rejections to API errors. Unknown codes
// and throttled writes are client errors; everything else is logged and
// served as a 500.
func (h *DashboardEchoHandler) selectionError(c echo.Context, code string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnknownCurrency):
		return xhttp.AppErrorResponse(c, xhttp.UnknownCurrencyError(code))
	case errors.Is(err, usecase.ErrUnknownPair):
		return xhttp.AppErrorResponse(c, xhttp.UnknownPairError(code))
	case errors.Is(err, usecase.ErrRateLimited):
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("note writes throttled, retry later"))
	default:
		h.logger.Error("selection usecase error", xlogger.String("code", code), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}

func (h *DashboardEchoHandler) observe(op string, start time.Time) {
	h.metrics.RecordLatency(op, time.Since(start).Seconds())
}
