package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"FXTracker/internal/domain/models"
	domrepo "FXTracker/internal/domain/repository"
	"FXTracker/internal/service/ratelimit"
	xlogger "FXTracker/pkg/logger"
)

var (
	// ErrUnknownCurrency reports a selection or note targeting a currency
	// outside the catalog. The prior selection is retained.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrUnknownPair reports a selection or note targeting a pair outside
	// the supported enumeration.
	ErrUnknownPair = errors.New("unknown pair")
	// ErrRateLimited reports a throttled note write; retryable.
	ErrRateLimited = errors.New("note writes throttled")
)

// SelectionController is the single owner of the session's selection
// state. Every mutation validates its code against the catalog, performs
// one assignment under the mutex, and emits an activity event; a rejected
// operation leaves the register untouched and the controller usable.
type SelectionController struct {
	store   domrepo.ReferenceStore
	notes   domrepo.NotesStore
	pub     domrepo.ActivityPublisher
	metrics domrepo.Metrics
	limiter *ratelimit.Limiter
	logger  *xlogger.Logger

	noteBurst  float64
	noteRefill float64

	defaultCurrency string
	defaultPair     string

	mu             sync.Mutex
	activeCurrency string
	activePair     string

	broadcast func(models.ActivityEvent)
}

// NewSelectionController initializes the register to the configured
// defaults. Both defaults must be valid catalog keys.
func NewSelectionController(
	store domrepo.ReferenceStore,
	notes domrepo.NotesStore,
	pub domrepo.ActivityPublisher,
	metrics domrepo.Metrics,
	logger *xlogger.Logger,
	defaultCurrency, defaultPair string,
	noteBurst, noteRefill float64,
) (*SelectionController, error) {
	if !store.HasCurrency(defaultCurrency) {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownCurrency, defaultCurrency)
	}
	if !store.HasPair(defaultPair) {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownPair, defaultPair)
	}
	return &SelectionController{
		store:           store,
		notes:           notes,
		pub:             pub,
		metrics:         metrics,
		limiter:         ratelimit.New(),
		logger:          logger,
		noteBurst:       noteBurst,
		noteRefill:      noteRefill,
		defaultCurrency: defaultCurrency,
		defaultPair:     defaultPair,
		activeCurrency:  defaultCurrency,
		activePair:      defaultPair,
	}, nil
}

// SetBroadcast attaches the in-process event fanout (WebSocket hub).
func (s *SelectionController) SetBroadcast(fn func(models.ActivityEvent)) {
	s.broadcast = fn
}

// SelectCurrency sets the active currency. Unknown codes are rejected and
// the prior selection stays in place.
func (s *SelectionController) SelectCurrency(ctx context.Context, code string) error {
	if !s.store.HasCurrency(code) {
		s.metrics.RecordRejected("unknown_currency")
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	s.mu.Lock()
	s.activeCurrency = code
	s.mu.Unlock()

	s.metrics.RecordSelection("currency", code)
	s.emit(ctx, models.ActivityEvent{Kind: models.ActivitySelectCurrency, Code: code, At: time.Now()})
	return nil
}

// SelectPair sets the active pair, with the same rejection contract.
func (s *SelectionController) SelectPair(ctx context.Context, code string) error {
	if !s.store.HasPair(code) {
		s.metrics.RecordRejected("unknown_pair")
		return fmt.Errorf("%w: %s", ErrUnknownPair, code)
	}
	s.mu.Lock()
	s.activePair = code
	s.mu.Unlock()

	s.metrics.RecordSelection("pair", code)
	s.emit(ctx, models.ActivityEvent{Kind: models.ActivitySelectPair, Code: code, At: time.Now()})
	return nil
}

// SetFundamentalNote upserts the note for a catalog currency. Text is
// arbitrary, including empty.
func (s *SelectionController) SetFundamentalNote(ctx context.Context, code, text string) error {
	if !s.store.HasCurrency(code) {
		s.metrics.RecordRejected("unknown_currency")
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	if !s.limiter.Allow("fund:"+code, s.noteBurst, s.noteRefill) {
		s.metrics.RecordRejected("rate_limited")
		return ErrRateLimited
	}
	if err := s.notes.SetFundamentalNote(ctx, code, text); err != nil {
		return err
	}
	s.metrics.RecordNoteWrite("fundamental")
	s.emit(ctx, models.ActivityEvent{Kind: models.ActivityFundamentalNote, Code: code, Note: text, At: time.Now()})
	return nil
}

// SetTechnicalNote upserts the note for a supported pair.
func (s *SelectionController) SetTechnicalNote(ctx context.Context, code, text string) error {
	if !s.store.HasPair(code) {
		s.metrics.RecordRejected("unknown_pair")
		return fmt.Errorf("%w: %s", ErrUnknownPair, code)
	}
	if !s.limiter.Allow("tech:"+code, s.noteBurst, s.noteRefill) {
		s.metrics.RecordRejected("rate_limited")
		return ErrRateLimited
	}
	if err := s.notes.SetTechnicalNote(ctx, code, text); err != nil {
		return err
	}
	s.metrics.RecordNoteWrite("technical")
	s.emit(ctx, models.ActivityEvent{Kind: models.ActivityTechnicalNote, Code: code, Note: text, At: time.Now()})
	return nil
}

// FundamentalNote returns the stored note for code, "" when unset.
func (s *SelectionController) FundamentalNote(ctx context.Context, code string) (string, error) {
	if !s.store.HasCurrency(code) {
		return "", fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return s.notes.GetFundamentalNote(ctx, code)
}

// TechnicalNote returns the stored note for the pair, "" when unset.
func (s *SelectionController) TechnicalNote(ctx context.Context, code string) (string, error) {
	if !s.store.HasPair(code) {
		return "", fmt.Errorf("%w: %s", ErrUnknownPair, code)
	}
	return s.notes.GetTechnicalNote(ctx, code)
}

// ActiveCurrency returns the currently inspected currency code.
func (s *SelectionController) ActiveCurrency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCurrency
}

// ActivePair returns the currently inspected pair code.
func (s *SelectionController) ActivePair() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePair
}

// State returns the full selection snapshot for render bootstrap.
func (s *SelectionController) State(ctx context.Context) (models.SelectionState, error) {
	s.mu.Lock()
	st := models.SelectionState{
		ActiveCurrency: s.activeCurrency,
		ActivePair:     s.activePair,
	}
	s.mu.Unlock()

	codes := make([]string, 0, len(s.store.ListCurrencies()))
	for _, cs := range s.store.ListCurrencies() {
		codes = append(codes, cs.Code)
	}
	fund, err := s.notes.FundamentalNotes(ctx, codes)
	if err != nil {
		return models.SelectionState{}, err
	}
	tech, err := s.notes.TechnicalNotes(ctx, s.store.ListPairs())
	if err != nil {
		return models.SelectionState{}, err
	}
	st.FundamentalNotes = fund
	st.TechnicalNotes = tech
	return st, nil
}

// Reset restores the configured defaults and drops all notes; the session
// teardown path.
func (s *SelectionController) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.activeCurrency = s.defaultCurrency
	s.activePair = s.defaultPair
	s.mu.Unlock()

	if err := s.notes.Reset(ctx); err != nil {
		return err
	}
	s.emit(ctx, models.ActivityEvent{Kind: models.ActivityReset, At: time.Now()})
	return nil
}

// emit fans the event out to the hub and the activity topic. Publishing
// fails soft: an unreachable broker never rejects the user action.
func (s *SelectionController) emit(ctx context.Context, ev models.ActivityEvent) {
	if s.broadcast != nil {
		s.broadcast(ev)
	}
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.logger.Warn("activity publish failed",
			xlogger.String("kind", ev.Kind),
			xlogger.String("code", ev.Code),
			xlogger.Error(err),
		)
	}
}
