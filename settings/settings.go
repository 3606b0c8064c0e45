// Package settings loads, validates, and persists the configurable session
// durations
package settings

import (
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/store"
)

// Built-in duration defaults, in minutes.
const (
	DefaultWorkMins       = 25
	DefaultShortBreakMins = 5
	DefaultLongBreakMins  = 15
)

// Duration bounds, in minutes.
const (
	MinMins = 1
	MaxMins = 60
)

// Durations is the persisted record of the three configurable session
// lengths, expressed in whole minutes.
type Durations struct {
	Work       int `json:"workDuration"`
	ShortBreak int `json:"shortBreakDuration"`
	LongBreak  int `json:"longBreakDuration"`
}

// Defaults returns the built-in durations record.
func Defaults() Durations {
	return Durations{
		Work:       DefaultWorkMins,
		ShortBreak: DefaultShortBreakMins,
		LongBreak:  DefaultLongBreakMins,
	}
}

// Valid reports whether a duration value is usable: a finite number between
// MinMins and MaxMins inclusive.
func Valid(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}

	return v >= MinMins && v <= MaxMins
}

// Store owns the current durations record. The in-memory record is the
// source of truth for the running session; persistence is best-effort and
// failures are logged rather than surfaced.
type Store struct {
	db      store.DB
	mu      sync.RWMutex
	current Durations
	loaded  bool
}

// NewStore returns a settings store backed by db. The record holds the
// built-in defaults until Load is called.
func NewStore(db store.DB) *Store {
	return &Store{
		db:      db,
		current: Defaults(),
	}
}

// Load reads the persisted durations record. A missing record, malformed
// payload, or storage failure falls back to the defaults without
// propagating the failure. A partially valid record is merged field by
// field: each invalid field is independently replaced by its default while
// valid fields are preserved.
func (s *Store) Load() Durations {
	rec := s.sanitize(s.readPersisted())

	s.mu.Lock()
	s.current = rec
	s.loaded = true
	s.mu.Unlock()

	return rec
}

func (s *Store) readPersisted() map[string]any {
	b, err := s.db.GetPref(store.PrefSettings)
	if err != nil {
		slog.Warn(
			"unable to read persisted settings, using defaults",
			slog.Any("error", err),
		)

		return nil
	}

	if len(b) == 0 {
		return nil
	}

	var payload map[string]any

	err = json.Unmarshal(b, &payload)
	if err != nil {
		slog.Warn(
			"persisted settings are not valid JSON, using defaults",
			slog.Any("error", err),
		)

		return nil
	}

	return payload
}

// sanitize merges a raw persisted payload over the defaults. Unrecognized
// fields carry no meaning here and are dropped.
func (s *Store) sanitize(payload map[string]any) Durations {
	rec := Defaults()

	if payload == nil {
		return rec
	}

	rec.Work = fieldOrDefault(payload, "workDuration", DefaultWorkMins)
	rec.ShortBreak = fieldOrDefault(
		payload,
		"shortBreakDuration",
		DefaultShortBreakMins,
	)
	rec.LongBreak = fieldOrDefault(
		payload,
		"longBreakDuration",
		DefaultLongBreakMins,
	)

	return rec
}

func fieldOrDefault(payload map[string]any, key string, def int) int {
	v, ok := payload[key].(float64)
	if !ok || !Valid(v) {
		return def
	}

	return int(v)
}

// Save replaces the whole record and persists it. Range checking of live
// user input belongs to the editing form; Save updates the in-memory record
// unconditionally, and a persistence failure does not undo that update.
func (s *Store) Save(d Durations) {
	s.mu.Lock()
	s.current = d
	s.mu.Unlock()

	b, err := json.Marshal(d)
	if err == nil {
		err = s.db.SetPref(store.PrefSettings, b)
	}

	if err != nil {
		slog.Warn("unable to persist settings", slog.Any("error", err))
	}
}

// Reset reverts the record to the built-in defaults and removes the
// persisted entry. A removal failure does not prevent the in-memory reset.
func (s *Store) Reset() {
	s.mu.Lock()
	s.current = Defaults()
	s.mu.Unlock()

	err := s.db.DeletePref(store.PrefSettings)
	if err != nil {
		slog.Warn(
			"unable to remove persisted settings",
			slog.Any("error", err),
		)
	}
}

// Current returns the current durations record.
func (s *Store) Current() Durations {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Loaded reports whether Load has completed. Consumers can poll it to avoid
// acting on the defaults before persisted values are known.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loaded
}

// Duration returns the configured length for the named session from the
// latest record.
func (s *Store) Duration(name session.Name) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch name {
	case session.ShortBreak:
		return time.Duration(s.current.ShortBreak) * time.Minute
	case session.LongBreak:
		return time.Duration(s.current.LongBreak) * time.Minute
	default:
		return time.Duration(s.current.Work) * time.Minute
	}
}
