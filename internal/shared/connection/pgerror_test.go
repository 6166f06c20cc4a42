package connection

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	t.Run("pg error with constraint", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_student_date"})
		name, ok := UniqueViolation(err)
		assert.True(t, ok)
		assert.Equal(t, "uq_attendance_student_date", name)
	})

	t.Run("other pg error", func(t *testing.T) {
		_, ok := UniqueViolation(&pgconn.PgError{Code: "23503"})
		assert.False(t, ok)
	})

	t.Run("flattened message", func(t *testing.T) {
		_, ok := UniqueViolation(errors.New("ERROR: duplicate key value violates unique constraint"))
		assert.True(t, ok)
	})

	t.Run("nil", func(t *testing.T) {
		_, ok := UniqueViolation(nil)
		assert.False(t, ok)
	})
}
