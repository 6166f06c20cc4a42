package settings

import (
	"time"

	"github.com/google/uuid"
)

// SingletonID is the primary key of the only Settings row.
const SingletonID = 1

type Settings struct {
	ID                        int       `gorm:"column:id;primaryKey"`
	LatenessThresholdDefault  int       `gorm:"column:lateness_threshold_default;not null;default:3"`
	YomLoBaLiThresholdDefault int       `gorm:"column:yom_lo_ba_li_threshold_default;not null;default:3"`
	ManagerName               string    `gorm:"column:manager_name;type:varchar(100)"`
	ManagerPhone              string    `gorm:"column:manager_phone;type:varchar(30)"`
	CourtChairName            string    `gorm:"column:court_chair_name;type:varchar(100)"`
	CourtChairPhone           string    `gorm:"column:court_chair_phone;type:varchar(30)"`
	UpdatedAt                 time.Time `gorm:"column:updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// StudentMonthlyOverride replaces one or both thresholds for a student in a
// single month. A nil field falls back to the default.
type StudentMonthlyOverride struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID          uuid.UUID `gorm:"column:student_id;type:uuid;not null;uniqueIndex:uq_override_student_month,priority:1"`
	YearMonth          string    `gorm:"column:year_month;type:char(7);not null;uniqueIndex:uq_override_student_month,priority:2"`
	LatenessThreshold  *int      `gorm:"column:lateness_threshold"`
	YomLoBaLiThreshold *int      `gorm:"column:yom_lo_ba_li_threshold"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (StudentMonthlyOverride) TableName() string {
	return "student_monthly_overrides"
}

// Thresholds are the effective limits for one student in one month.
type Thresholds struct {
	Late      int
	YomLoBaLi int
}

// Resolve applies o on top of the defaults. A nil override keeps them.
func (d Settings) Resolve(o *StudentMonthlyOverride) Thresholds {
	t := Thresholds{Late: d.LatenessThresholdDefault, YomLoBaLi: d.YomLoBaLiThresholdDefault}
	if o == nil {
		return t
	}
	if o.LatenessThreshold != nil {
		t.Late = *o.LatenessThreshold
	}
	if o.YomLoBaLiThreshold != nil {
		t.YomLoBaLi = *o.YomLoBaLiThreshold
	}
	return t
}
