package timer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/internal/testutil"
)

func TestWriteStatusRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")

	want := Status{
		EndTime:           time.Now().Add(10 * time.Minute).Truncate(time.Second),
		Name:              session.Work,
		WorkCycle:         2,
		LongBreakInterval: 4,
	}

	err := writeStatus(path, want)
	assert.NoError(t, err)

	b, err := os.ReadFile(path)
	assert.NoError(t, err)

	var got Status

	err = json.Unmarshal(b, &got)
	assert.NoError(t, err)

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.WorkCycle, got.WorkCycle)
	assert.Equal(t, want.LongBreakInterval, got.LongBreakInterval)
	assert.True(t, want.EndTime.Equal(got.EndTime))
}

func TestWriteStatusReportsUnwritablePath(t *testing.T) {
	err := writeStatus(
		filepath.Join(t.TempDir(), "missing", "status.json"),
		Status{},
	)

	assert.Error(t, err)
}

func TestWorkCycle(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
		want int
	}{
		{
			name: "first work session",
			snap: Snapshot{Mode: session.Work, CompletedWorkSessions: 0},
			want: 1,
		},
		{
			name: "third work session",
			snap: Snapshot{Mode: session.Work, CompletedWorkSessions: 2},
			want: 3,
		},
		{
			name: "work session after a long break",
			snap: Snapshot{Mode: session.Work, CompletedWorkSessions: 4},
			want: 1,
		},
		{
			name: "short break keeps the current cycle",
			snap: Snapshot{Mode: session.ShortBreak, CompletedWorkSessions: 2},
			want: 2,
		},
		{
			name: "long break closes the cycle",
			snap: Snapshot{Mode: session.LongBreak, CompletedWorkSessions: 4},
			want: 4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, workCycle(tc.snap, 4))
		})
	}
}

func TestRecordSessionUsesElapsedTime(t *testing.T) {
	db := testutil.NewFakeDB()
	tm := &Timer{db: db}

	tm.recordSession(Completion{
		Name:      session.Work,
		Elapsed:   25 * time.Minute,
		RanToZero: true,
	})

	tm.recordSession(Completion{
		Name:      session.Work,
		Elapsed:   10 * time.Second,
		RanToZero: false,
	})

	if assert.Len(t, db.Sessions, 2) {
		var completed, abandoned *session.Session

		for k := range db.Sessions {
			sess := db.Sessions[k]

			if sess.Completed {
				completed = &sess
			} else {
				abandoned = &sess
			}
		}

		if assert.NotNil(t, completed) {
			assert.Equal(t, 25*time.Minute, completed.Duration)
			assert.Equal(
				t,
				25*time.Minute,
				completed.EndTime.Sub(completed.StartTime),
			)
		}

		if assert.NotNil(t, abandoned) {
			assert.Equal(t, 10*time.Second, abandoned.Duration)
			assert.Equal(
				t,
				10*time.Second,
				abandoned.EndTime.Sub(abandoned.StartTime),
			)
		}
	}
}

func TestRecordSessionSkipsZeroElapsedIntervals(t *testing.T) {
	db := testutil.NewFakeDB()
	tm := &Timer{db: db}

	// skipping before the first tick leaves nothing worth reporting
	tm.recordSession(Completion{Name: session.Work, Elapsed: 0})

	assert.Empty(t, db.Sessions)
}
