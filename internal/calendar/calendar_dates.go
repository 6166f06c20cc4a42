package calendar

import (
	"fmt"
	"strings"
	"time"

	calendarerrors "github.com/eliezerb2/presence/internal/calendar/errors"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// DateOf returns the calendar date of t (in t's own location) as midnight UTC.
// All attendance dates are normalized this way before they touch storage.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, calendarerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

type YearMonth struct {
	Year  int
	Month time.Month
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, calendarerrors.ErrInvalidMonthFormat
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Start is the first day of the month, End the first day of the next one.
func (ym YearMonth) Start() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (ym YearMonth) End() time.Time {
	return ym.Start().AddDate(0, 1, 0)
}

func (ym YearMonth) Previous() YearMonth {
	return YearMonthOf(ym.Start().AddDate(0, -1, 0))
}

func (ym YearMonth) Contains(date time.Time) bool {
	return !date.Before(ym.Start()) && date.Before(ym.End())
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, calendarerrors.ErrInvalidWeekday
	}
	return wd, nil
}

// Weekend is the set of non-instructional weekdays.
type Weekend map[time.Weekday]struct{}

func DefaultWeekend() Weekend {
	return Weekend{time.Friday: {}, time.Saturday: {}}
}

// ParseWeekend reads a comma separated weekday list such as "fri,sat".
// An empty string yields the default weekend.
func ParseWeekend(s string) (Weekend, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultWeekend(), nil
	}
	w := Weekend{}
	for _, part := range strings.Split(s, ",") {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, fmt.Errorf("weekend day %q: %w", part, err)
		}
		w[wd] = struct{}{}
	}
	if len(w) == 7 {
		return nil, fmt.Errorf("weekend cannot cover the whole week")
	}
	return w, nil
}

func (w Weekend) Contains(d time.Weekday) bool {
	_, ok := w[d]
	return ok
}
