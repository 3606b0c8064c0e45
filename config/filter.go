package config

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tomato/internal/timeutil"
)

// FilterConfig represents a configuration to filter sessions
// in the database by their start and end time.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
}

// getTimeRange returns the start and end time according to the
// specified time period.
func getTimeRange(period timeutil.Period) (start, end time.Time) {
	now := time.Now()

	start = timeutil.RoundToStart(now)

	end = timeutil.RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
		end = timeutil.RoundToEnd(start)

		return
	case timeutil.PeriodAllTime:
		start = time.Time{}
		return
	default:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
	}

	return
}

// setFilterConfig updates the filter configuration from command-line
// arguments. Dates are parsed leniently so that relative inputs such as
// "2 days ago" work.
func setFilterConfig(ctx *cli.Context) (*FilterConfig, error) {
	filterCfg := &FilterConfig{}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(period)

		return filterCfg, nil
	}

	start := ctx.String("start")
	if start != "" {
		dt, err := dateparser.Parse(nil, start)
		if err != nil {
			return nil, errInvalidStartDate.Wrap(err)
		}

		filterCfg.StartTime = dt.Time
	}

	now := time.Now()

	if now.After(filterCfg.StartTime) {
		filterCfg.EndTime = now
	} else {
		filterCfg.EndTime = timeutil.RoundToEnd(filterCfg.StartTime)
	}

	end := ctx.String("end")
	if end != "" {
		dt, err := dateparser.Parse(nil, end)
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = dt.Time
	}

	if filterCfg.StartTime.IsZero() {
		return nil, errInvalidStartDate
	}

	if filterCfg.EndTime.Before(filterCfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

// Filter initializes and returns a configuration to filter sessions from
// command-line arguments. It defaults to the last 7 days when no period or
// start date is specified.
func Filter(ctx *cli.Context) *FilterConfig {
	if ctx.String("period") == "" && ctx.String("start") == "" {
		start := timeutil.RoundToStart(
			time.Now().AddDate(0, 0, timeutil.Range[timeutil.Period7Days]),
		)

		return &FilterConfig{
			StartTime: start,
			EndTime:   time.Now(),
		}
	}

	cfg, err := setFilterConfig(ctx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return cfg
}
