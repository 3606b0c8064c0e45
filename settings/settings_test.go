package settings_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/internal/testutil"
	"github.com/ayoisaiah/tomato/settings"
	"github.com/ayoisaiah/tomato/store"
)

func TestLoadWithoutPersistedRecord(t *testing.T) {
	s := settings.NewStore(testutil.NewFakeDB())

	assert.False(t, s.Loaded())

	got := s.Load()

	assert.True(t, s.Loaded())
	assert.Equal(t, settings.Defaults(), got)
}

func TestLoadMergesFieldByField(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    settings.Durations
	}{
		{
			name:    "all fields valid",
			payload: `{"workDuration":45,"shortBreakDuration":10,"longBreakDuration":25}`,
			want:    settings.Durations{Work: 45, ShortBreak: 10, LongBreak: 25},
		},
		{
			name:    "single valid field is preserved",
			payload: `{"workDuration":45}`,
			want:    settings.Durations{Work: 45, ShortBreak: 5, LongBreak: 15},
		},
		{
			name:    "single invalid field falls back entirely",
			payload: `{"workDuration":0}`,
			want:    settings.Durations{Work: 25, ShortBreak: 5, LongBreak: 15},
		},
		{
			name:    "out-of-range and wrong-type fields replaced independently",
			payload: `{"workDuration":61,"shortBreakDuration":"ten","longBreakDuration":30}`,
			want:    settings.Durations{Work: 25, ShortBreak: 5, LongBreak: 30},
		},
		{
			name:    "unrecognized fields have no effect",
			payload: `{"workDuration":40,"shortBreakDuration":8,"longBreakDuration":20,"theme":"dark"}`,
			want:    settings.Durations{Work: 40, ShortBreak: 8, LongBreak: 20},
		},
		{
			name:    "malformed JSON falls back to defaults",
			payload: `{"workDuration":`,
			want:    settings.Defaults(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.NewFakeDB()
			db.Prefs[store.PrefSettings] = []byte(tc.payload)

			got := settings.NewStore(db).Load()

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("unexpected record (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadSwallowsStorageFailure(t *testing.T) {
	db := testutil.NewFakeDB()
	db.GetErr = errors.New("database unavailable")

	s := settings.NewStore(db)

	assert.Equal(t, settings.Defaults(), s.Load())
	assert.True(t, s.Loaded())
}

func TestSaveRoundTrip(t *testing.T) {
	db := testutil.NewFakeDB()

	rec := settings.Durations{Work: 45, ShortBreak: 10, LongBreak: 25}

	settings.NewStore(db).Save(rec)

	// a new store over the same storage must observe the saved record
	got := settings.NewStore(db).Load()

	assert.Equal(t, rec, got)
}

func TestSaveUpdatesMemoryWhenPersistenceFails(t *testing.T) {
	db := testutil.NewFakeDB()
	db.SetErr = errors.New("quota exceeded")

	s := settings.NewStore(db)
	s.Load()

	rec := settings.Durations{Work: 50, ShortBreak: 10, LongBreak: 20}
	s.Save(rec)

	assert.Equal(t, rec, s.Current())
	assert.Empty(t, db.Prefs[store.PrefSettings])
}

func TestResetRemovesPersistedEntry(t *testing.T) {
	db := testutil.NewFakeDB()

	s := settings.NewStore(db)
	s.Save(settings.Durations{Work: 45, ShortBreak: 10, LongBreak: 25})

	s.Reset()

	assert.Equal(t, settings.Defaults(), s.Current())
	assert.NotContains(t, db.Prefs, store.PrefSettings)
}

func TestResetSurvivesRemovalFailure(t *testing.T) {
	db := testutil.NewFakeDB()
	db.DeleteErr = errors.New("database unavailable")

	s := settings.NewStore(db)
	s.Save(settings.Durations{Work: 45, ShortBreak: 10, LongBreak: 25})
	s.Reset()

	assert.Equal(t, settings.Defaults(), s.Current())
}

func TestDurationReadsLatestRecord(t *testing.T) {
	s := settings.NewStore(testutil.NewFakeDB())
	s.Load()

	assert.Equal(t, 25*time.Minute, s.Duration(session.Work))
	assert.Equal(t, 5*time.Minute, s.Duration(session.ShortBreak))
	assert.Equal(t, 15*time.Minute, s.Duration(session.LongBreak))

	s.Save(settings.Durations{Work: 30, ShortBreak: 7, LongBreak: 21})

	assert.Equal(t, 30*time.Minute, s.Duration(session.Work))
	assert.Equal(t, 7*time.Minute, s.Duration(session.ShortBreak))
	assert.Equal(t, 21*time.Minute, s.Duration(session.LongBreak))
}

func TestValid(t *testing.T) {
	cases := []struct {
		value float64
		want  bool
	}{
		{1, true},
		{60, true},
		{25, true},
		{0, false},
		{61, false},
		{-5, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, settings.Valid(tc.value), "value: %v", tc.value)
	}
}
