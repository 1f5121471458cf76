package models

import "time"

// SelectionState is a snapshot of the analyst's session register: the
// currently inspected currency and pair plus both note maps. There is
// always exactly one active currency and one active pair.
type SelectionState struct {
	ActiveCurrency   string            `json:"active_currency"`
	ActivePair       string            `json:"active_pair"`
	FundamentalNotes map[string]string `json:"fundamental_notes"`
	TechnicalNotes   map[string]string `json:"technical_notes"`
}

// Activity event kinds, one per accepted controller mutation.
const (
	ActivitySelectCurrency  = "select_currency"
	ActivitySelectPair      = "select_pair"
	ActivityFundamentalNote = "fundamental_note"
	ActivityTechnicalNote   = "technical_note"
	ActivityReset           = "reset"
)

// ActivityEvent records one accepted mutation of the selection state.
// Events feed the WebSocket state feed and the optional activity topic.
type ActivityEvent struct {
	Kind string    `json:"kind"`
	Code string    `json:"code,omitempty"`
	Note string    `json:"note,omitempty"`
	At   time.Time `json:"at"`
}
