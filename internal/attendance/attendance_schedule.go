package attendance

import (
	"fmt"
	"time"

	"github.com/eliezerb2/presence/internal/calendar"
)

// ClockTime is a wall-clock time of day in the school's time zone.
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant of c on the calendar date of date, in loc.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, loc)
}

type Checkpoints struct {
	Reminder  ClockTime
	Late      ClockTime
	YomLoBaLi ClockTime
	AutoClose ClockTime
}

func DefaultCheckpoints() Checkpoints {
	return Checkpoints{
		Reminder:  ClockTime{Hour: 9, Minute: 30},
		Late:      ClockTime{Hour: 10, Minute: 0},
		YomLoBaLi: ClockTime{Hour: 10, Minute: 30},
		AutoClose: ClockTime{Hour: 16, Minute: 0},
	}
}

// Schedule binds the checkpoints to the school's time zone.
type Schedule struct {
	Location    *time.Location
	Checkpoints Checkpoints
}

func DefaultSchedule(loc *time.Location) Schedule {
	if loc == nil {
		loc = time.UTC
	}
	return Schedule{Location: loc, Checkpoints: DefaultCheckpoints()}
}

// DateOf is the school-local calendar date of t.
func (s Schedule) DateOf(t time.Time) time.Time {
	return calendar.DateOf(t.In(s.location()))
}

// Day resolves every checkpoint of date to an instant.
func (s Schedule) Day(date time.Time) Day {
	loc := s.location()
	return Day{
		Date:      calendar.DateOf(date),
		Reminder:  s.Checkpoints.Reminder.On(date, loc),
		Late:      s.Checkpoints.Late.On(date, loc),
		YomLoBaLi: s.Checkpoints.YomLoBaLi.On(date, loc),
		AutoClose: s.Checkpoints.AutoClose.On(date, loc),
	}
}

func (s Schedule) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// Day holds the checkpoint instants of one school date.
type Day struct {
	Date      time.Time
	Reminder  time.Time
	Late      time.Time
	YomLoBaLi time.Time
	AutoClose time.Time
}

// InReminderWindow reports whether now is in [Reminder, Late).
func (d Day) InReminderWindow(now time.Time) bool {
	return !now.Before(d.Reminder) && now.Before(d.Late)
}

// IsLate reports whether a check-in at t counts as late.
func (d Day) IsLate(t time.Time) bool {
	return !t.Before(d.Late)
}
