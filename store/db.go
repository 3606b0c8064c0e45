package store

import (
	"time"

	"github.com/ayoisaiah/tomato/internal/session"
)

// DB is the database storage interface.
type DB interface {
	// GetPref retrieves the raw value stored for a preference key. A missing
	// key yields a nil value and no error.
	GetPref(key string) ([]byte, error)
	// SetPref stores the value for a preference key, overwriting any previous
	// value.
	SetPref(key string, value []byte) error
	// DeletePref removes a preference key. Removing a missing key is not an
	// error.
	DeletePref(key string) error
	// UpdateSession updates a session record keyed by its start time. The
	// record is created if it doesn't exist already, or overwritten if it
	// does.
	UpdateSession(sess *session.Session) error
	// GetSessions returns saved sessions according to the time constraints
	GetSessions(startTime, endTime time.Time) ([]session.Session, error)
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}

// Preference keys written by the settings store and its collaborators.
const (
	PrefSettings          = "settings"
	PrefCompletedSessions = "completed_sessions"
	PrefSoundVolume       = "sound_volume"
	PrefTheme             = "theme"
)
