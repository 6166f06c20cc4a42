package attendance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testDate = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func at(h, m, s int) time.Time {
	return time.Date(2026, 10, 15, h, m, s, 0, time.UTC)
}

func TestNextTransition_Boundaries(t *testing.T) {
	day := DefaultSchedule(time.UTC).Day(testDate)
	notReported := *NewRecord(uuid.New(), testDate)
	checkIn := at(8, 0, 0)
	present := notReported
	present.Status = StatusPresent
	present.CheckInTime = &checkIn

	tests := []struct {
		name     string
		record   Record
		now      time.Time
		wantRule Rule
		wantOK   bool
	}{
		{name: "09:59:59 untouched", record: notReported, now: at(9, 59, 59)},
		{name: "10:00:00 late", record: notReported, now: at(10, 0, 0), wantRule: RuleLate, wantOK: true},
		{name: "10:29:59 still late", record: notReported, now: at(10, 29, 59), wantRule: RuleLate, wantOK: true},
		{name: "10:30:00 yom lo ba li", record: notReported, now: at(10, 30, 0), wantRule: RuleYomLoBaLi, wantOK: true},
		{name: "16:30 not reported becomes yom", record: notReported, now: at(16, 30, 0), wantRule: RuleYomLoBaLi, wantOK: true},
		{name: "15:59:59 present stays", record: present, now: at(15, 59, 59)},
		{name: "16:00:00 present closes", record: present, now: at(16, 0, 0), wantRule: RuleAutoClose, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := NextTransition(tt.record, tt.now, day)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestNextTransition_OnlyPreconditionStatuses(t *testing.T) {
	day := DefaultSchedule(time.UTC).Day(testDate)
	late := at(23, 0, 0)

	for _, st := range AllStatuses() {
		t.Run(string(st), func(t *testing.T) {
			r := *NewRecord(uuid.New(), testDate)
			r.Status = st
			_, ok := NextTransition(r, late, day)
			switch st {
			case StatusNotReported, StatusPresent:
				assert.True(t, ok)
			default:
				assert.False(t, ok, "status %s must never transition", st)
			}
		})
	}
}

func TestNextTransition_Locked(t *testing.T) {
	day := DefaultSchedule(time.UTC).Day(testDate)

	for _, st := range AllStatuses() {
		r := *NewRecord(uuid.New(), testDate)
		r.Status = st
		r.OverrideLocked = true
		for _, now := range []time.Time{at(10, 0, 0), at(10, 30, 0), at(16, 0, 0), at(23, 59, 59)} {
			_, ok := NextTransition(r, now, day)
			assert.False(t, ok, "locked %s at %s", st, now.Format("15:04:05"))
		}
	}
}

func TestNextTransition_PresentWithCheckOut(t *testing.T) {
	day := DefaultSchedule(time.UTC).Day(testDate)
	out := at(12, 0, 0)
	r := *NewRecord(uuid.New(), testDate)
	r.Status = StatusPresent
	r.CheckOutTime = &out

	_, ok := NextTransition(r, at(16, 0, 0), day)
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	day := DefaultSchedule(time.UTC).Day(testDate)

	t.Run("late", func(t *testing.T) {
		r := NewRecord(uuid.New(), testDate)
		now := at(10, 5, 0)
		Apply(r, RuleLate, now, day)
		assert.Equal(t, StatusPresent, r.Status)
		assert.Equal(t, SubStatusLate, r.SubStatus)
		assert.Equal(t, ReportedByAuto, r.ReportedBy)
		assert.Equal(t, now, *r.CheckInTime)
	})

	t.Run("yom lo ba li", func(t *testing.T) {
		r := NewRecord(uuid.New(), testDate)
		Apply(r, RuleYomLoBaLi, at(10, 30, 0), day)
		assert.Equal(t, StatusYomLoBaLi, r.Status)
		assert.Equal(t, SubStatusNone, r.SubStatus)
		assert.Nil(t, r.CheckInTime)
	})

	t.Run("auto close stamps 16:00 not now", func(t *testing.T) {
		r := NewRecord(uuid.New(), testDate)
		r.Status = StatusPresent
		Apply(r, RuleAutoClose, at(18, 45, 0), day)
		assert.Equal(t, StatusLeft, r.Status)
		assert.Equal(t, SubStatusAutoClosed, r.SubStatus)
		assert.Equal(t, ClosedReasonAuto16, r.ClosedReason)
		assert.Equal(t, at(16, 0, 0), *r.CheckOutTime)
	})
}

func TestSchedule_Day(t *testing.T) {
	loc := time.FixedZone("IDT", 3*60*60)
	s := DefaultSchedule(loc)

	// 07:30 UTC is 10:30 in the school zone.
	now := time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC)
	date := s.DateOf(now)
	day := s.Day(date)

	assert.Equal(t, testDate, date)
	assert.True(t, now.Equal(day.YomLoBaLi))
	assert.False(t, day.InReminderWindow(now))
	assert.True(t, day.InReminderWindow(now.Add(-45*time.Minute)))
}

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("07:05")
	assert.NoError(t, err)
	assert.Equal(t, ClockTime{Hour: 7, Minute: 5}, c)
	assert.Equal(t, "07:05", c.String())

	_, err = ParseClockTime("25:00")
	assert.Error(t, err)
}
