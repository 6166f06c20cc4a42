package student

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusSuspended = "SUSPENDED"
)

type Student struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentNumber string    `gorm:"column:student_number;type:varchar(30);not null;uniqueIndex:uq_student_number"`
	FirstName     string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName      string    `gorm:"column:last_name;type:varchar(100);not null"`
	Phone         string    `gorm:"column:phone;type:varchar(30)"`
	Status        string    `gorm:"column:status;type:varchar(20);not null;default:ACTIVE;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (Student) TableName() string {
	return "students"
}

func (s Student) IsActive() bool {
	return s.Status == StatusActive
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
