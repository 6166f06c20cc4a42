package attendance

import (
	"time"

	"github.com/eliezerb2/presence/internal/audit"
)

// Rule is one automated, time-gated transition.
type Rule string

const (
	RuleLate      Rule = "late"
	RuleYomLoBaLi Rule = "yom_lo_ba_li"
	RuleAutoClose Rule = "auto_close"
)

// Rules lists the time-gated rules in the order a sweep applies them.
func Rules() []Rule {
	return []Rule{RuleLate, RuleYomLoBaLi, RuleAutoClose}
}

func (r Rule) AuditAction() string {
	switch r {
	case RuleLate:
		return audit.ActionAutoLate
	case RuleYomLoBaLi:
		return audit.ActionAutoYomLoBaLi
	case RuleAutoClose:
		return audit.ActionAutoClose
	}
	return string(r)
}

// NextTransition returns the rule that applies to r at now, if any. It is a
// pure function of its inputs; callers must have established that day is a
// school day.
//
//	NOT_REPORTED  [10:00, 10:30)  -> PRESENT / LATE
//	NOT_REPORTED  >= 10:30        -> YOM_LO_BA_LI
//	PRESENT, no check-out, >= 16:00 -> LEFT / AUTO_CLOSED
//
// Locked records and every other status never transition.
func NextTransition(r Record, now time.Time, day Day) (Rule, bool) {
	if r.OverrideLocked {
		return "", false
	}

	switch r.Status {
	case StatusNotReported:
		if !now.Before(day.YomLoBaLi) {
			return RuleYomLoBaLi, true
		}
		if !now.Before(day.Late) {
			return RuleLate, true
		}
		return "", false
	case StatusPresent:
		if r.CheckOutTime == nil && !now.Before(day.AutoClose) {
			return RuleAutoClose, true
		}
		return "", false
	case StatusLeft, StatusYomLoBaLi, StatusApprovedAbsence, StatusPermanentAbsence:
		return "", false
	default:
		return "", false
	}
}

// Apply mutates r according to rule. It does not re-check the precondition;
// use NextTransition first.
func Apply(r *Record, rule Rule, now time.Time, day Day) {
	switch rule {
	case RuleLate:
		r.Status = StatusPresent
		r.SubStatus = SubStatusLate
		r.ReportedBy = ReportedByAuto
		checkIn := now
		r.CheckInTime = &checkIn
	case RuleYomLoBaLi:
		r.Status = StatusYomLoBaLi
		r.SubStatus = SubStatusNone
		r.ReportedBy = ReportedByAuto
	case RuleAutoClose:
		r.Status = StatusLeft
		r.SubStatus = SubStatusAutoClosed
		r.ReportedBy = ReportedByAuto
		checkOut := day.AutoClose
		r.CheckOutTime = &checkOut
		r.ClosedReason = ClosedReasonAuto16
	}
}
