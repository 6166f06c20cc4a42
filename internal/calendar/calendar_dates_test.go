package calendar

import (
	"testing"
	"time"

	calendarerrors "github.com/eliezerb2/presence/internal/calendar/errors"
	"github.com/stretchr/testify/assert"
)

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("IDT", 3*60*60)
	// 01:30 local on the 15th is still the 14th in UTC; the local date wins.
	ts := time.Date(2026, 10, 15, 1, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), DateOf(ts))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-10-19 ")
	assert.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = ParseDate("19/10/2026")
	assert.ErrorIs(t, err, calendarerrors.ErrInvalidDateFormat)
}

func TestYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2026-01")
	assert.NoError(t, err)
	assert.Equal(t, "2026-01", ym.String())
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), ym.End())
	assert.Equal(t, YearMonth{Year: 2025, Month: time.December}, ym.Previous())
	assert.True(t, ym.Contains(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, ym.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))

	_, err = ParseYearMonth("2026-13")
	assert.ErrorIs(t, err, calendarerrors.ErrInvalidMonthFormat)
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"sun":       time.Sunday,
		"Monday":    time.Monday,
		"TUE":       time.Tuesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"Fri":       time.Friday,
		"saturday":  time.Saturday,
	}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("weds")
	assert.ErrorIs(t, err, calendarerrors.ErrInvalidWeekday)
}

func TestParseWeekend(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		w, err := ParseWeekend("")
		assert.NoError(t, err)
		assert.True(t, w.Contains(time.Friday))
		assert.True(t, w.Contains(time.Saturday))
		assert.False(t, w.Contains(time.Sunday))
	})

	t.Run("custom", func(t *testing.T) {
		w, err := ParseWeekend("sat,sun")
		assert.NoError(t, err)
		assert.Len(t, w, 2)
		assert.False(t, w.Contains(time.Friday))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseWeekend("sat,someday")
		assert.Error(t, err)
	})

	t.Run("whole week", func(t *testing.T) {
		_, err := ParseWeekend("sun,mon,tue,wed,thu,fri,sat")
		assert.Error(t, err)
	})
}
