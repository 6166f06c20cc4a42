package student

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope narrows a query on any table with a student_id column. A nil id
// leaves the query untouched.
func Scope(studentID *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if studentID == nil {
			return db
		}
		return db.Where("student_id = ?", *studentID)
	}
}
