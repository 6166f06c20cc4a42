package student_test

import (
	"testing"

	"github.com/eliezerb2/presence/internal/student"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type scopedRow struct {
	ID        uuid.UUID
	StudentID uuid.UUID
}

func TestScope(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{DryRun: true})
	assert.NoError(t, err)

	id := uuid.New()
	stmt := gormDB.Scopes(student.Scope(&id)).Find(&[]scopedRow{}).Statement
	assert.Contains(t, stmt.SQL.String(), "student_id = $1")
	assert.Equal(t, []any{id}, stmt.Vars)

	stmt = gormDB.Scopes(student.Scope(nil)).Find(&[]scopedRow{}).Statement
	assert.NotContains(t, stmt.SQL.String(), "WHERE")
}
