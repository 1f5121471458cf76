package repository

import (
	"context"
	"errors"
	"time"

	"FXTracker/pkg/cache"
)

const (
	fundamentalNotePrefix = "note:fund"
	technicalNotePrefix   = "note:tech"
)

// NoteBook implements repository.NotesStore over the cache service. The
// default memory backend keeps notes strictly session-scoped; a Redis
// backend keeps multiple dashboard instances coherent, with the TTL
// bounding the note lifetime to the session either way.
type NoteBook struct {
	cache cache.Service
	ttl   time.Duration
}

// NewNoteBook creates a notes store. ttl <= 0 means backend default.
func NewNoteBook(svc cache.Service, ttl time.Duration) *NoteBook {
	return &NoteBook{cache: svc, ttl: ttl}
}

func (n *NoteBook) SetFundamentalNote(ctx context.Context, code, text string) error {
	return n.cache.Set(ctx, cache.GenerateKey(fundamentalNotePrefix, code), text, n.ttl)
}

// GetFundamentalNote returns the note for code, or "" when none was set.
// Absence is a valid default state, not an error.
func (n *NoteBook) GetFundamentalNote(ctx context.Context, code string) (string, error) {
	return n.get(ctx, cache.GenerateKey(fundamentalNotePrefix, code))
}

func (n *NoteBook) FundamentalNotes(ctx context.Context, codes []string) (map[string]string, error) {
	return n.list(ctx, fundamentalNotePrefix, codes)
}

func (n *NoteBook) SetTechnicalNote(ctx context.Context, code, text string) error {
	return n.cache.Set(ctx, cache.GenerateKey(technicalNotePrefix, code), text, n.ttl)
}

// GetTechnicalNote returns the note for the pair, or "" when none was set.
func (n *NoteBook) GetTechnicalNote(ctx context.Context, code string) (string, error) {
	return n.get(ctx, cache.GenerateKey(technicalNotePrefix, code))
}

func (n *NoteBook) TechnicalNotes(ctx context.Context, codes []string) (map[string]string, error) {
	return n.list(ctx, technicalNotePrefix, codes)
}

// Reset drops every note; the session teardown path.
func (n *NoteBook) Reset(ctx context.Context) error {
	if err := n.cache.DeleteByPattern(ctx, cache.BuildPattern(fundamentalNotePrefix)); err != nil {
		return err
	}
	return n.cache.DeleteByPattern(ctx, cache.BuildPattern(technicalNotePrefix))
}

func (n *NoteBook) get(ctx context.Context, key string) (string, error) {
	var text string
	if err := n.cache.Get(ctx, key, &text); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", nil
		}
		return "", err
	}
	return text, nil
}

// list resolves the notes for codes, omitting empty entries.
func (n *NoteBook) list(ctx context.Context, prefix string, codes []string) (map[string]string, error) {
	keys := make([]string, 0, len(codes))
	for _, code := range codes {
		keys = append(keys, cache.GenerateKey(prefix, code))
	}
	raw, err := n.cache.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for i, key := range keys {
		if text, ok := raw[key]; ok && text != "" {
			out[codes[i]] = text
		}
	}
	return out, nil
}
