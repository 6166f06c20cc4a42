package attendance

import (
	"strconv"
	"time"

	"github.com/eliezerb2/presence/internal/audit"
	"github.com/google/uuid"
)

type Status string

const (
	StatusNotReported      Status = "NOT_REPORTED"
	StatusPresent          Status = "PRESENT"
	StatusLeft             Status = "LEFT"
	StatusYomLoBaLi        Status = "YOM_LO_BA_LI"
	StatusApprovedAbsence  Status = "APPROVED_ABSENCE"
	StatusPermanentAbsence Status = "PERMANENT_ABSENCE"
)

func AllStatuses() []Status {
	return []Status{
		StatusNotReported,
		StatusPresent,
		StatusLeft,
		StatusYomLoBaLi,
		StatusApprovedAbsence,
		StatusPermanentAbsence,
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusNotReported, StatusPresent, StatusLeft, StatusYomLoBaLi, StatusApprovedAbsence, StatusPermanentAbsence:
		return true
	}
	return false
}

type SubStatus string

const (
	SubStatusNone       SubStatus = "NONE"
	SubStatusLate       SubStatus = "LATE"
	SubStatusAutoClosed SubStatus = "AUTO_CLOSED"
)

func (s SubStatus) Valid() bool {
	switch s {
	case SubStatusNone, SubStatusLate, SubStatusAutoClosed:
		return true
	}
	return false
}

type ReportedBy string

const (
	ReportedByStudent ReportedBy = "STUDENT"
	ReportedByManager ReportedBy = "MANAGER"
	ReportedByAuto    ReportedBy = "AUTO"
)

// Actor is the audit actor matching who reported.
func (r ReportedBy) Actor() string {
	switch r {
	case ReportedByStudent:
		return audit.ActorStudent
	case ReportedByManager:
		return audit.ActorManager
	default:
		return audit.ActorAuto
	}
}

type ClosedReason string

const (
	ClosedReasonNA     ClosedReason = "NA"
	ClosedReasonManual ClosedReason = "MANUAL"
	ClosedReasonAuto16 ClosedReason = "AUTO_16"
)

func (c ClosedReason) Valid() bool {
	switch c {
	case ClosedReasonNA, ClosedReasonManual, ClosedReasonAuto16:
		return true
	}
	return false
}

type Record struct {
	ID               uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID        uuid.UUID    `gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_attendance_student_date,priority:1"`
	Date             time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_student_date,priority:2;index:idx_attendance_date"`
	Status           Status       `gorm:"column:status;type:varchar(20);not null;default:NOT_REPORTED"`
	SubStatus        SubStatus    `gorm:"column:sub_status;type:varchar(20);not null;default:NONE"`
	ReportedBy       ReportedBy   `gorm:"column:reported_by;type:varchar(10);not null;default:AUTO"`
	CheckInTime      *time.Time   `gorm:"column:check_in_time;type:timestamptz"`
	CheckOutTime     *time.Time   `gorm:"column:check_out_time;type:timestamptz"`
	ClosedReason     ClosedReason `gorm:"column:closed_reason;type:varchar(10);not null;default:NA"`
	OverrideLocked   bool         `gorm:"column:override_locked;not null;default:false"`
	OverrideLockedAt *time.Time   `gorm:"column:override_locked_at;type:timestamptz"`
	CreatedAt        time.Time    `gorm:"column:created_at"`
	UpdatedAt        time.Time    `gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "attendance_records"
}

// NewRecord returns the state of a record the first time automation touches
// a student on date.
func NewRecord(studentID uuid.UUID, date time.Time) *Record {
	return &Record{
		ID:           uuid.New(),
		StudentID:    studentID,
		Date:         date,
		Status:       StatusNotReported,
		SubStatus:    SubStatusNone,
		ReportedBy:   ReportedByAuto,
		ClosedReason: ClosedReasonNA,
	}
}

func (r Record) Snapshot() audit.Snapshot {
	return audit.Snapshot{
		"student_id":         r.StudentID.String(),
		"date":               r.Date.Format("2006-01-02"),
		"status":             string(r.Status),
		"sub_status":         string(r.SubStatus),
		"reported_by":        string(r.ReportedBy),
		"check_in_time":      formatInstant(r.CheckInTime),
		"check_out_time":     formatInstant(r.CheckOutTime),
		"closed_reason":      string(r.ClosedReason),
		"override_locked":    strconv.FormatBool(r.OverrideLocked),
		"override_locked_at": formatInstant(r.OverrideLockedAt),
	}
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
