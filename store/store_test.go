package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/tomato/internal/session"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tomato.db")

	c, err := NewClient(dbPath)
	if err != nil {
		t.Fatalf("unable to open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, dbPath
}

func TestPrefRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.SetPref(PrefTheme, []byte("light"))
	assert.NoError(t, err)

	got, err := c.GetPref(PrefTheme)
	assert.NoError(t, err)
	assert.Equal(t, []byte("light"), got)

	err = c.DeletePref(PrefTheme)
	assert.NoError(t, err)

	got, err = c.GetPref(PrefTheme)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteMissingPrefIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t)

	assert.NoError(t, c.DeletePref("nonexistent"))
}

func TestGetSessionsHonorsTimeRange(t *testing.T) {
	c, _ := newTestClient(t)

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	for i := range 5 {
		start := base.Add(time.Duration(i) * time.Hour)

		err := c.UpdateSession(&session.Session{
			StartTime: start,
			EndTime:   start.Add(25 * time.Minute),
			Name:      session.Work,
			Duration:  25 * time.Minute,
			Completed: true,
		})
		assert.NoError(t, err)
	}

	got, err := c.GetSessions(
		base.Add(time.Hour),
		base.Add(3*time.Hour),
	)
	assert.NoError(t, err)

	if assert.Len(t, got, 3) {
		assert.Equal(t, base.Add(time.Hour), got[0].StartTime)
		assert.Equal(t, base.Add(3*time.Hour), got[2].StartTime)
	}
}

func TestSecondOpenReportsRunningInstance(t *testing.T) {
	_, dbPath := newTestClient(t)

	// the first client holds the file lock, so a second open must time out
	// and surface the single-instance error
	_, err := NewClient(dbPath)

	assert.ErrorIs(t, err, errTomatoRunning)
}
