// Package session defines tomato work and break sessions
package session

import "time"

// Name represents the session name.
type Name string

const (
	Work       Name = "Work session"
	ShortBreak Name = "Short break"
	LongBreak  Name = "Long break"
)

// IsBreak reports whether the session is a break.
func (n Name) IsBreak() bool {
	return n == ShortBreak || n == LongBreak
}

// Duration maps a session to its length.
type Duration map[Name]time.Duration

// Session represents a single completed or abandoned interval.
type Session struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Name      Name          `json:"name"`
	Duration  time.Duration `json:"duration"`
	Completed bool          `json:"completed"`
}
