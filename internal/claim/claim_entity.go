package claim

import (
	"strconv"
	"strings"
	"time"

	"github.com/eliezerb2/presence/internal/audit"
	"github.com/google/uuid"
)

type Reason string

const (
	ReasonLateThreshold  Reason = "late_threshold"
	ReasonThirdYomLoBaLi Reason = "third_yom_lo_ba_li"
	ReasonOther          Reason = "other"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonLateThreshold, ReasonThirdYomLoBaLi, ReasonOther:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Claim is an escalation opened by the monthly evaluator. At most one claim
// per (student, reason, opened month) may be OPEN; the partial unique index
// enforces it.
type Claim struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	StudentID   uuid.UUID  `gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_claim_open_student_reason_month,priority:1,where:status = 'OPEN'"`
	Reason      Reason     `gorm:"column:reason;type:varchar(32);not null;uniqueIndex:uq_claim_open_student_reason_month,priority:2,where:status = 'OPEN'"`
	OpenedMonth string     `gorm:"column:opened_month;type:char(7);not null;uniqueIndex:uq_claim_open_student_reason_month,priority:3,where:status = 'OPEN'"`
	Period      string     `gorm:"column:period;type:char(7);not null;index:idx_claim_period"`
	Status      Status     `gorm:"column:status;type:varchar(16);not null;default:OPEN;index"`
	DateOpened  time.Time  `gorm:"column:date_opened;type:date;not null"`
	NotifiedTo  []string   `gorm:"column:notified_to;type:jsonb;serializer:json"`
	Count       int        `gorm:"column:count;not null"`
	Threshold   int        `gorm:"column:threshold;not null"`
	ClosedAt    *time.Time `gorm:"column:closed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Claim) TableName() string {
	return "claims"
}

func (c Claim) Snapshot() audit.Snapshot {
	closedAt := ""
	if c.ClosedAt != nil {
		closedAt = c.ClosedAt.UTC().Format(time.RFC3339)
	}
	return audit.Snapshot{
		"student_id":  c.StudentID.String(),
		"reason":      string(c.Reason),
		"status":      string(c.Status),
		"period":      c.Period,
		"date_opened": c.DateOpened.Format("2006-01-02"),
		"notified_to": strings.Join(c.NotifiedTo, ","),
		"count":       strconv.Itoa(c.Count),
		"threshold":   strconv.Itoa(c.Threshold),
		"closed_at":   closedAt,
	}
}
