package permanentabsence

import (
	"strconv"
	"time"

	"github.com/eliezerb2/presence/internal/audit"
	"github.com/google/uuid"
)

// PermanentAbsence excuses a student on every occurrence of a weekday.
type PermanentAbsence struct {
	ID        uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	StudentID uuid.UUID    `gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_permanent_absence_student_weekday,priority:1"`
	Weekday   time.Weekday `gorm:"column:weekday;type:smallint;not null;uniqueIndex:uq_permanent_absence_student_weekday,priority:2;index:idx_permanent_absence_weekday"`
	Reason    string       `gorm:"column:reason;type:varchar(255)"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
}

func (PermanentAbsence) TableName() string {
	return "permanent_absences"
}

func (p PermanentAbsence) Snapshot() audit.Snapshot {
	return audit.Snapshot{
		"student_id": p.StudentID.String(),
		"weekday":    strconv.Itoa(int(p.Weekday)),
		"reason":     p.Reason,
	}
}
