// Package stats reports tomato session statistics
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tomato/config"
	"github.com/ayoisaiah/tomato/internal/session"
	"github.com/ayoisaiah/tomato/internal/timeutil"
	"github.com/ayoisaiah/tomato/internal/ui"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for the specified time range"
)

// Opts represents the reporting period.
type Opts struct {
	config.FilterConfig
}

type summary struct {
	byName       map[session.Name]time.Duration
	totalTime    time.Duration
	completed    int
	abandoned    int
	avgCompleted int
	avgAbandoned int
	avgTime      time.Duration
}

// Stats computes and reports statistics over the session history.
type Stats struct {
	Opts Opts

	totals summary
	hourly map[int]time.Duration
}

// sessionDuration returns the elapsed time for a session within the bounds
// of the reporting period.
func (s *Stats) sessionDuration(sess *session.Session) time.Duration {
	start, end := sess.StartTime, sess.EndTime

	if start.Before(s.Opts.StartTime) {
		start = s.Opts.StartTime
	}

	if end.After(s.Opts.EndTime) {
		end = s.Opts.EndTime
	}

	if !end.After(start) {
		return 0
	}

	return end.Sub(start)
}

// updateHourly spreads a session over the hours it spans, minute by minute,
// skipping minutes that fall outside the reporting period.
func (s *Stats) updateHourly(sess *session.Session) {
	for date := sess.StartTime; date.Before(sess.EndTime); date = date.Add(time.Minute) {
		if date.Before(s.Opts.StartTime) {
			continue
		}

		if date.After(s.Opts.EndTime) {
			break
		}

		s.hourly[date.Hour()] += time.Minute
	}
}

// filterSessions ensures that sessions with an invalid end date are ignored.
func filterSessions(sessions []session.Session) []session.Session {
	filtered := sessions[:0]

	for i := range sessions {
		sess := sessions[i]

		if sess.EndTime.IsZero() || sess.EndTime.Before(sess.StartTime) {
			continue
		}

		filtered = append(filtered, sess)
	}

	return filtered
}

// Compute calculates the totals, averages, and hourly breakdown for the
// reporting period.
func (s *Stats) Compute(sessions []session.Session) {
	sessions = filterSessions(sessions)

	// For all-time, set start time to the date of the first session
	if s.Opts.StartTime.IsZero() && len(sessions) > 0 {
		s.Opts.StartTime = timeutil.RoundToStart(sessions[0].StartTime)
	}

	s.totals = summary{
		byName: make(map[session.Name]time.Duration),
	}
	s.hourly = make(map[int]time.Duration)

	for i := 0; i < timeutil.HoursInADay; i++ {
		s.hourly[i] = time.Duration(0)
	}

	for i := range sessions {
		sess := sessions[i]

		duration := s.sessionDuration(&sess)

		s.totals.totalTime += duration
		s.totals.byName[sess.Name] += duration

		if sess.Completed {
			s.totals.completed++
		} else {
			s.totals.abandoned++
		}

		s.updateHourly(&sess)
	}

	hoursDiff := timeutil.Round(
		s.Opts.EndTime.Sub(s.Opts.StartTime).Hours(),
	)

	numberOfDays := hoursDiff / timeutil.HoursInADay
	if numberOfDays < 1 {
		numberOfDays = 1
	}

	s.totals.avgTime = time.Duration(
		float64(s.totals.totalTime) / float64(numberOfDays),
	)
	s.totals.avgCompleted = timeutil.Round(
		float64(s.totals.completed) / float64(numberOfDays),
	)
	s.totals.avgAbandoned = timeutil.Round(
		float64(s.totals.abandoned) / float64(numberOfDays),
	)
}

// Report is the JSON representation of the computed statistics.
type Report struct {
	StartTime         time.Time            `json:"start_time"`
	EndTime           time.Time            `json:"end_time"`
	TotalMinutes      int                  `json:"total_minutes"`
	Completed         int                  `json:"completed"`
	Abandoned         int                  `json:"abandoned"`
	MinutesPerSession map[session.Name]int `json:"minutes_per_session"`
	MinutesPerHour    map[string]int       `json:"minutes_per_hour"`
}

// ToJSON returns the computed statistics as JSON.
func (s *Stats) ToJSON() ([]byte, error) {
	r := Report{
		StartTime:         s.Opts.StartTime,
		EndTime:           s.Opts.EndTime,
		TotalMinutes:      timeutil.Round(s.totals.totalTime.Minutes()),
		Completed:         s.totals.completed,
		Abandoned:         s.totals.abandoned,
		MinutesPerSession: make(map[session.Name]int),
		MinutesPerHour:    make(map[string]int),
	}

	for name, d := range s.totals.byName {
		r.MinutesPerSession[name] = timeutil.Round(d.Minutes())
	}

	for hour, d := range s.hourly {
		if d == 0 {
			continue
		}

		r.MinutesPerHour[fmt.Sprintf("%02d:00", hour)] = timeutil.Round(
			d.Minutes(),
		)
	}

	return json.Marshal(r)
}

func formatDuration(d time.Duration) string {
	hrs, mins := timeutil.MinsToHoursAndMins(timeutil.Round(d.Minutes()))

	if hrs == 0 {
		return fmt.Sprintf("%d mins", mins)
	}

	return fmt.Sprintf("%d hrs %d mins", hrs, mins)
}

// getSummary retrieves the session summary for the reporting period.
func (s *Stats) getSummary() string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	timeLogged := fmt.Sprintf(
		"Time logged: %s\n",
		ui.Green(formatDuration(s.totals.totalTime)),
	)

	completed := fmt.Sprintln(
		"Sessions completed:",
		ui.Green(strconv.Itoa(s.totals.completed)),
	)

	abandoned := fmt.Sprintln(
		"Sessions abandoned:",
		ui.Red(strconv.Itoa(s.totals.abandoned)),
	)

	return header + timeLogged + completed + abandoned
}

func (s *Stats) getAverages() string {
	header := fmt.Sprintf("\n%s\n", ui.Blue("Averages"))

	timeLogged := fmt.Sprintf(
		"Time logged: %s\n",
		ui.Green(formatDuration(s.totals.avgTime)),
	)

	completed := fmt.Sprintln(
		"Sessions completed:",
		ui.Green(strconv.Itoa(s.totals.avgCompleted)),
	)

	abandoned := fmt.Sprintln(
		"Sessions abandoned:",
		ui.Red(strconv.Itoa(s.totals.avgAbandoned)),
	)

	return header + timeLogged + completed + abandoned
}

// getHourlyChart renders the hourly breakdown as a horizontal bar chart,
// omitting hours with no logged time.
func (s *Stats) getHourlyChart() string {
	type keyValue struct {
		value time.Duration
		key   int
	}

	sl := make([]keyValue, 0, len(s.hourly))

	for k, v := range s.hourly {
		if v == 0 {
			continue
		}

		sl = append(sl, keyValue{v, k})
	}

	if len(sl) == 0 {
		return ""
	}

	sort.SliceStable(sl, func(i, j int) bool {
		return sl[i].key < sl[j].key
	})

	var bars pterm.Bars

	for _, v := range sl {
		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(v.value.Minutes()),
			Label: fmt.Sprintf("%02d:00", v.key),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return ui.Blue("\nHourly breakdown (minutes)") + chart
}

// Show displays the relevant statistics for the set time period after making
// the necessary calculations.
func (s *Stats) Show() {
	if s.totals.completed == 0 && s.totals.abandoned == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	reportingStart := s.Opts.StartTime.Format("January 02, 2006")
	reportingEnd := s.Opts.EndTime.Format("January 02, 2006")
	timePeriod := "Reporting period: " + reportingStart + " - " + reportingEnd

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", timePeriod)

	pterm.Println(header)
	pterm.Println(s.getSummary())
	pterm.Println(s.getAverages())

	s.printSessionTable()

	pterm.Println(s.getHourlyChart())
}

// printSessionTable prints the time logged per session type.
func (s *Stats) printSessionTable() {
	names := []session.Name{
		session.Work,
		session.ShortBreak,
		session.LongBreak,
	}

	tableBody := [][]string{{"SESSION", "TIME LOGGED"}}

	for _, name := range names {
		tableBody = append(tableBody, []string{
			string(name),
			formatDuration(s.totals.byName[name]),
		})
	}

	ui.PrintTable(tableBody, os.Stdout)
}
