// Package prefs persists the dashboard's UI preferences (filter, sort, page
// size and search text) as a single JSON blob in a key-value store.
package prefs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/MrSnakeDoc/bookingdash/internal/domain"
	"github.com/MrSnakeDoc/bookingdash/internal/logger"
)

// DefaultKey is the well-known key the blob is stored under.
const DefaultKey = "bookingdash:ui-prefs"

// Prefs is the persisted subset of the dashboard state.
type Prefs struct {
	Filter   domain.Filter  `json:"filter"`
	SortKey  domain.SortKey `json:"sortKey"`
	SortDir  domain.SortDir `json:"sortDir"`
	PageSize int            `json:"pageSize"`
	Query    string         `json:"query"`
}

// Defaults returns the in-memory defaults used when nothing valid is stored.
func Defaults(pageSize int) Prefs {
	if pageSize < 1 {
		pageSize = 10
	}
	return Prefs{
		Filter:   domain.FilterAll,
		SortKey:  domain.SortScheduledAt,
		SortDir:  domain.SortAsc,
		PageSize: pageSize,
		Query:    "",
	}
}

// KV is the durable key-value storage the blob lives in.
// Get reports found=false when the key does not exist.
type KV interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte) error
}

// Repository loads and saves Prefs under one key.
type Repository struct {
	kv       KV
	key      string
	defaults Prefs
	logger   logger.Logger
}

// NewRepository creates a Repository. An empty key selects DefaultKey.
func NewRepository(kv KV, key string, defaults Prefs, log logger.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{
		kv:       kv,
		key:      key,
		defaults: defaults,
		logger:   log,
	}
}

// Load reads the stored preferences. It reports false when nothing usable is
// stored; storage errors and corrupt data are treated as absent.
func (r *Repository) Load(ctx context.Context) (Prefs, bool) {
	data, found, err := r.kv.Get(ctx, r.key)
	if err != nil {
		r.logger.Warn("failed to read ui preferences, using defaults",
			logger.String("key", r.key),
			logger.Error(err))
		return r.defaults, false
	}
	if !found {
		return r.defaults, false
	}

	p, ok := Decode(data, r.defaults)
	if !ok {
		r.logger.Debug("stored ui preferences are unreadable, ignoring",
			logger.String("key", r.key))
	}
	return p, ok
}

// Save writes p, overwriting whatever was stored. Last writer wins.
func (r *Repository) Save(ctx context.Context, p Prefs) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal ui preferences: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("failed to save ui preferences: %w", err)
	}
	return nil
}

// Decode parses a stored blob field by field. Each missing or invalid field
// falls back to its default; only a blob that is not a JSON object is
// rejected as a whole.
func Decode(data []byte, defaults Prefs) (Prefs, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return defaults, false
	}

	p := defaults

	var s string
	if decodeString(raw["filter"], &s) && domain.Filter(s).Valid() {
		p.Filter = domain.Filter(s)
	}
	if decodeString(raw["sortKey"], &s) && domain.SortKey(s).Valid() {
		p.SortKey = domain.SortKey(s)
	}
	if decodeString(raw["sortDir"], &s) && domain.SortDir(s).Valid() {
		p.SortDir = domain.SortDir(s)
	}
	if decodeString(raw["query"], &s) {
		p.Query = s
	}

	var n float64
	if msg, ok := raw["pageSize"]; ok && json.Unmarshal(msg, &n) == nil {
		if n >= 1 && n == math.Trunc(n) && n <= math.MaxInt32 {
			p.PageSize = int(n)
		}
	}

	return p, true
}

// decodeString rejects absent, null and non-string values.
func decodeString(msg json.RawMessage, dst *string) bool {
	if msg == nil || string(bytes.TrimSpace(msg)) == "null" {
		return false
	}
	var v string
	if err := json.Unmarshal(msg, &v); err != nil {
		return false
	}
	*dst = v
	return true
}
