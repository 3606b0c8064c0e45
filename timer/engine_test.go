package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/tomato/internal/session"
)

// stubDurations is a mutable duration source so tests can change settings
// mid-session.
type stubDurations struct {
	mu sync.Mutex
	d  session.Duration
}

func newStubDurations() *stubDurations {
	return &stubDurations{
		d: session.Duration{
			session.Work:       25 * time.Minute,
			session.ShortBreak: 5 * time.Minute,
			session.LongBreak:  15 * time.Minute,
		},
	}
}

func (s *stubDurations) Duration(name session.Name) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.d[name]
}

func (s *stubDurations) set(name session.Name, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.d[name] = d
}

// newTestEngine returns an engine whose real ticker never fires so that
// tests can drive ticks deterministically.
func newTestEngine(
	d DurationSource,
	opts ...EngineOption,
) *Engine {
	opts = append(opts, WithTickInterval(time.Hour))

	return NewEngine(d, opts...)
}

func ticks(e *Engine, n int) {
	for range n {
		e.mu.Lock()
		stop := e.stop
		e.mu.Unlock()

		e.tick(stop)
	}
}

func TestNewEngineInitialState(t *testing.T) {
	for _, mins := range []int{1, 25, 60} {
		d := newStubDurations()
		d.set(session.Work, time.Duration(mins)*time.Minute)

		e := newTestEngine(d)

		assert.Equal(t, session.Work, e.Mode())
		assert.Equal(t, Idle, e.State())
		assert.Equal(t, mins*60, e.SecondsRemaining())
		assert.Equal(t, 0, e.CompletedWorkSessions())
	}
}

func TestTickDecrementsBySingleSeconds(t *testing.T) {
	e := newTestEngine(newStubDurations())

	e.Start()
	ticks(e, 90)

	assert.Equal(t, 25*60-90, e.SecondsRemaining())
	assert.Equal(t, Running, e.State())
}

func TestStartIsIdempotent(t *testing.T) {
	e := newTestEngine(newStubDurations())

	e.Start()

	e.mu.Lock()
	first := e.stop
	e.mu.Unlock()

	// a second Start must not acquire another tick source
	e.Start()

	e.mu.Lock()
	second := e.stop
	e.mu.Unlock()

	assert.Equal(t, Running, e.State())

	if first != second {
		t.Fatal("Start acquired a second tick source while running")
	}
}

func TestPausePreservesRemainingTime(t *testing.T) {
	e := newTestEngine(newStubDurations())

	e.Start()
	ticks(e, 30)
	e.Pause()

	remaining := e.SecondsRemaining()
	assert.Equal(t, Paused, e.State())

	// ticks that lost the race against Pause must not mutate state
	ticks(e, 10)
	assert.Equal(t, remaining, e.SecondsRemaining())

	e.Start()
	assert.Equal(t, remaining, e.SecondsRemaining())

	ticks(e, 1)
	assert.Equal(t, remaining-1, e.SecondsRemaining())
}

func TestPauseIsIdempotent(t *testing.T) {
	e := newTestEngine(newStubDurations())

	e.Pause()
	assert.Equal(t, Idle, e.State())

	e.Start()
	ticks(e, 5)
	e.Pause()
	e.Pause()

	assert.Equal(t, Paused, e.State())
	assert.Equal(t, 25*60-5, e.SecondsRemaining())
}

func TestCountdownToZeroTransitions(t *testing.T) {
	var workDone, breakDone int

	d := newStubDurations()
	d.set(session.Work, time.Minute)

	e := newTestEngine(d, WithHooks(Hooks{
		OnWorkComplete:  func(Completion) { workDone++ },
		OnBreakComplete: func(Completion) { breakDone++ },
	}))

	e.Start()
	ticks(e, 60)

	assert.Equal(t, 1, workDone)
	assert.Equal(t, 0, breakDone)
	assert.Equal(t, 1, e.CompletedWorkSessions())
	assert.Equal(t, session.ShortBreak, e.Mode())
	assert.Equal(t, Idle, e.State())
	assert.Equal(t, 5*60, e.SecondsRemaining())
}

func TestSkipInvokesHooksExactlyOnce(t *testing.T) {
	var workDone, breakDone int

	e := newTestEngine(newStubDurations(), WithHooks(Hooks{
		OnWorkComplete:  func(Completion) { workDone++ },
		OnBreakComplete: func(Completion) { breakDone++ },
	}))

	e.Start()
	ticks(e, 10)
	e.Skip()

	assert.Equal(t, 1, workDone)
	assert.Equal(t, 0, breakDone)
	assert.Equal(t, 1, e.CompletedWorkSessions())
	assert.Equal(t, session.ShortBreak, e.Mode())
	assert.Equal(t, Idle, e.State())

	e.Skip()

	assert.Equal(t, 1, workDone)
	assert.Equal(t, 1, breakDone)
	// break completion never increments the session count
	assert.Equal(t, 1, e.CompletedWorkSessions())
	assert.Equal(t, session.Work, e.Mode())
}

func TestLongBreakEveryFourthWorkSession(t *testing.T) {
	e := newTestEngine(newStubDurations())

	wantBreaks := []session.Name{
		session.ShortBreak,
		session.ShortBreak,
		session.ShortBreak,
		session.LongBreak,
		session.ShortBreak,
		session.ShortBreak,
		session.ShortBreak,
		session.LongBreak,
	}

	for i, want := range wantBreaks {
		e.Skip() // complete the work session
		assert.Equal(t, want, e.Mode(), "after work session %d", i+1)
		assert.Equal(t, i+1, e.CompletedWorkSessions())

		e.Skip() // complete the break
		assert.Equal(t, session.Work, e.Mode())
	}
}

func TestLongBreakIntervalOverride(t *testing.T) {
	e := newTestEngine(
		newStubDurations(),
		WithLongBreakInterval(2),
	)

	e.Skip()
	assert.Equal(t, session.ShortBreak, e.Mode())

	e.Skip()
	e.Skip()
	assert.Equal(t, session.LongBreak, e.Mode())
}

func TestStaleTickAfterPauseAndResumeIsRejected(t *testing.T) {
	e := newTestEngine(newStubDurations())

	e.Start()
	ticks(e, 5)

	e.mu.Lock()
	stale := e.stop
	e.mu.Unlock()

	e.Pause()
	e.Start()

	before := e.SecondsRemaining()

	// a tick from the superseded source must not decrement the restarted
	// countdown even though the engine is running again
	assert.False(t, e.tick(stale))
	assert.Equal(t, before, e.SecondsRemaining())

	ticks(e, 1)
	assert.Equal(t, before-1, e.SecondsRemaining())
}

func TestCompletionReportsElapsedTime(t *testing.T) {
	var got []Completion

	d := newStubDurations()
	d.set(session.Work, time.Minute)

	e := newTestEngine(d, WithHooks(Hooks{
		OnWorkComplete:  func(c Completion) { got = append(got, c) },
		OnBreakComplete: func(c Completion) { got = append(got, c) },
	}))

	e.Start()
	ticks(e, 60)

	e.Start()
	ticks(e, 10)
	e.Skip()

	if assert.Len(t, got, 2) {
		assert.Equal(t, session.Work, got[0].Name)
		assert.Equal(t, time.Minute, got[0].Elapsed)
		assert.True(t, got[0].RanToZero)

		assert.Equal(t, session.ShortBreak, got[1].Name)
		assert.Equal(t, 10*time.Second, got[1].Elapsed)
		assert.False(t, got[1].RanToZero)
	}
}

func TestResetReadsLatestSettings(t *testing.T) {
	d := newStubDurations()
	e := newTestEngine(d)

	e.Start()
	ticks(e, 120)

	d.set(session.Work, 45*time.Minute)
	e.Reset()

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, session.Work, e.Mode())
	assert.Equal(t, 45*60, e.SecondsRemaining())
}

func TestTransitionReadsLatestSettings(t *testing.T) {
	d := newStubDurations()
	e := newTestEngine(d)

	d.set(session.ShortBreak, 10*time.Minute)
	e.Skip()

	assert.Equal(t, session.ShortBreak, e.Mode())
	assert.Equal(t, 10*60, e.SecondsRemaining())
}

func TestShutdownReleasesTickSource(t *testing.T) {
	e := newTestEngine(newStubDurations())

	e.Start()
	e.Shutdown()

	e.mu.Lock()
	released := e.stop == nil
	e.mu.Unlock()

	assert.True(t, released)
	assert.Equal(t, Paused, e.State())
}

func TestCountdownRunsOnRealTicker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping wall-clock test in short mode")
	}

	e := NewEngine(
		newStubDurations(),
		WithTickInterval(5*time.Millisecond),
	)

	start := e.SecondsRemaining()

	e.Start()
	time.Sleep(60 * time.Millisecond)
	e.Pause()

	elapsed := start - e.SecondsRemaining()
	assert.Greater(t, elapsed, 0)

	remaining := e.SecondsRemaining()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, remaining, e.SecondsRemaining())
}
