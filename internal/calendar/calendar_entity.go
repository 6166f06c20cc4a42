package calendar

import (
	"time"

	"github.com/google/uuid"
)

type SchoolHoliday struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Date        time.Time `gorm:"column:holiday_date;type:date;not null;uniqueIndex:uq_school_holiday_date"`
	Description string    `gorm:"column:description;type:varchar(200);not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (SchoolHoliday) TableName() string {
	return "school_holidays"
}
