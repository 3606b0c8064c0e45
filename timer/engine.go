package timer

import (
	"sync"
	"time"

	"github.com/ayoisaiah/tomato/internal/session"
)

// DefaultLongBreakInterval is the number of work sessions before a long
// break when no override is configured.
const DefaultLongBreakInterval = 4

// RunState indicates whether the countdown is active.
type RunState int

const (
	Idle RunState = iota
	Running
	Paused
)

func (r RunState) String() string {
	switch r {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Completion describes an interval that just ended. Elapsed is the time the
// countdown actually consumed, so a skipped interval reports only the
// seconds that ran before the skip.
type Completion struct {
	Name      session.Name
	Elapsed   time.Duration
	RanToZero bool
}

// Hooks are fire-and-forget callbacks invoked when an interval completes,
// whether it ran down naturally or was skipped. The engine does not recover
// from failures inside them.
type Hooks struct {
	OnWorkComplete  func(Completion)
	OnBreakComplete func(Completion)
}

// DurationSource supplies the configured length for a session at the moment
// it is needed, so that duration changes take effect on the next reset or
// mode transition rather than mid-countdown.
type DurationSource interface {
	Duration(name session.Name) time.Duration
}

// Snapshot is a consistent view of the engine state for rendering.
type Snapshot struct {
	Mode                  session.Name
	State                 RunState
	SecondsRemaining      int
	CompletedWorkSessions int
}

// Engine drives the countdown and applies the mode-transition policy.
//
// At most one tick source exists at a time: Start is a no-op while the
// countdown is running, and pausing, resetting, or completing an interval
// releases the active source. The tick handler rechecks the run state under
// the engine mutex, so no tick can mutate state after a cancelling
// operation returns.
type Engine struct {
	mu sync.Mutex

	durations         DurationSource
	hooks             Hooks
	longBreakInterval int
	tickInterval      time.Duration

	mode         session.Name
	runState     RunState
	secsLeft     int
	intervalSecs int
	workCount    int

	stop chan struct{}
}

// EngineOption modifies the Engine configuration.
type EngineOption func(*Engine)

// WithHooks sets the interval-completion callbacks.
func WithHooks(h Hooks) EngineOption {
	return func(e *Engine) {
		e.hooks = h
	}
}

// WithLongBreakInterval overrides the number of work sessions before a long
// break. Values less than 1 are ignored.
func WithLongBreakInterval(n int) EngineOption {
	return func(e *Engine) {
		if n >= 1 {
			e.longBreakInterval = n
		}
	}
}

// WithTickInterval overrides the wall-clock length of one countdown tick.
// The countdown still decrements by one second per tick.
func WithTickInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.tickInterval = d
		}
	}
}

// NewEngine returns an idle engine in the work mode, primed with the
// current work duration.
func NewEngine(durations DurationSource, opts ...EngineOption) *Engine {
	e := &Engine{
		durations:         durations,
		longBreakInterval: DefaultLongBreakInterval,
		tickInterval:      time.Second,
		mode:              session.Work,
		runState:          Idle,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.secsLeft = wholeSeconds(durations.Duration(session.Work))
	e.intervalSecs = e.secsLeft

	return e
}

func wholeSeconds(d time.Duration) int {
	secs := int(d / time.Second)
	if secs < 0 {
		return 0
	}

	return secs
}

// Start begins or resumes the countdown. Calling it while the countdown is
// already running has no effect, so a second tick source is never acquired.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.runState == Running {
		return
	}

	e.runState = Running
	e.stop = make(chan struct{})

	go e.run(e.stop)
}

// Pause stops the countdown, preserving the remaining time exactly. It is a
// no-op unless the countdown is running.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.runState != Running {
		return
	}

	e.runState = Paused
	e.releaseTickSource()
}

// Reset stops any active countdown and restores the full duration of the
// current mode, reading the latest configured value.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.releaseTickSource()
	e.runState = Idle
	e.secsLeft = wholeSeconds(e.durations.Duration(e.mode))
	e.intervalSecs = e.secsLeft
}

// Skip ends the current interval immediately, applying the same transition
// as a countdown that reached zero.
func (e *Engine) Skip() {
	e.mu.Lock()
	hook := e.advance()
	e.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Shutdown releases the active tick source on teardown. The countdown can
// be resumed with Start.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.runState == Running {
		e.runState = Paused
	}

	e.releaseTickSource()
}

// Mode returns the current session mode.
func (e *Engine) Mode() session.Name {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.mode
}

// State returns the current run state.
func (e *Engine) State() RunState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.runState
}

// SecondsRemaining returns the seconds left in the current interval.
func (e *Engine) SecondsRemaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.secsLeft
}

// CompletedWorkSessions returns the number of work intervals completed or
// skipped since construction.
func (e *Engine) CompletedWorkSessions() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.workCount
}

// LongBreakInterval returns the number of work sessions per long break.
func (e *Engine) LongBreakInterval() int {
	return e.longBreakInterval
}

// GetSnapshot returns a consistent view of the engine state.
func (e *Engine) GetSnapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Mode:                  e.mode,
		State:                 e.runState,
		SecondsRemaining:      e.secsLeft,
		CompletedWorkSessions: e.workCount,
	}
}

// run owns the ticker for one Running stretch and exits when the stretch
// ends, whether through cancellation or interval completion.
func (e *Engine) run(stop chan struct{}) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !e.tick(stop) {
				return
			}
		}
	}
}

// tick advances the countdown by one second and reports whether the
// countdown should continue. A tick that lost the race against Pause or
// Reset leaves the state untouched: the run state is rechecked and the
// caller's stop channel must still be the active one, so a stale goroutine
// whose ticker fired alongside its cancellation cannot decrement a restarted
// countdown.
func (e *Engine) tick(stop chan struct{}) bool {
	e.mu.Lock()

	if e.runState != Running || e.stop != stop {
		e.mu.Unlock()
		return false
	}

	e.secsLeft--
	if e.secsLeft > 0 {
		e.mu.Unlock()
		return true
	}

	e.secsLeft = 0
	hook := e.advance()
	e.mu.Unlock()

	if hook != nil {
		hook()
	}

	return false
}

// advance applies the mode-transition policy: completing work selects a
// long break on every longBreakInterval-th session (modulo the total count),
// otherwise a short break; completing a break always selects work. The next
// interval is primed from the latest settings and is never auto-started.
// Must be called with e.mu held; returns the completion hook so the caller
// can invoke it outside the lock.
func (e *Engine) advance() func() {
	e.releaseTickSource()

	completed := Completion{
		Name:      e.mode,
		Elapsed:   time.Duration(e.intervalSecs-e.secsLeft) * time.Second,
		RanToZero: e.secsLeft == 0,
	}

	var hook func(Completion)

	next := session.Work

	if e.mode.IsBreak() {
		hook = e.hooks.OnBreakComplete
	} else {
		e.workCount++
		hook = e.hooks.OnWorkComplete

		if e.workCount%e.longBreakInterval == 0 {
			next = session.LongBreak
		} else {
			next = session.ShortBreak
		}
	}

	e.mode = next
	e.secsLeft = wholeSeconds(e.durations.Duration(next))
	e.intervalSecs = e.secsLeft
	e.runState = Idle

	if hook == nil {
		return nil
	}

	return func() { hook(completed) }
}

// releaseTickSource cancels the active ticker goroutine, if any. Must be
// called with e.mu held.
func (e *Engine) releaseTickSource() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}
