package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecsToMinsAndSecs(t *testing.T) {
	cases := []struct {
		secs int
		mins int
		rem  int
	}{
		{secs: 0, mins: 0, rem: 0},
		{secs: 59, mins: 0, rem: 59},
		{secs: 60, mins: 1, rem: 0},
		{secs: 1500, mins: 25, rem: 0},
		{secs: 1499, mins: 24, rem: 59},
		{secs: -5, mins: 0, rem: 0},
	}

	for _, tc := range cases {
		mins, secs := SecsToMinsAndSecs(tc.secs)

		assert.Equal(t, tc.mins, mins, "minutes for %d", tc.secs)
		assert.Equal(t, tc.rem, secs, "seconds for %d", tc.secs)
	}
}

func TestMinsToHoursAndMins(t *testing.T) {
	hrs, mins := MinsToHoursAndMins(95)

	assert.Equal(t, 1, hrs)
	assert.Equal(t, 35, mins)
}

func TestRoundToStartAndEnd(t *testing.T) {
	d := time.Date(2024, time.March, 8, 13, 45, 30, 0, time.UTC)

	start := RoundToStart(d)
	end := RoundToEnd(d)

	assert.Equal(t, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(
		t,
		time.Date(2024, time.March, 8, 23, 59, 59, 0, time.UTC),
		end,
	)
}

func TestToKeyOrdering(t *testing.T) {
	earlier := time.Date(2024, time.March, 8, 9, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Minute)

	assert.Less(t, string(ToKey(earlier)), string(ToKey(later)))
}
