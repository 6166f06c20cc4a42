package app

import (
	"context"

	"github.com/eliezerb2/presence/internal/attendance"
	"github.com/eliezerb2/presence/internal/audit"
	"github.com/eliezerb2/presence/internal/calendar"
	"github.com/eliezerb2/presence/internal/claim"
	"github.com/eliezerb2/presence/internal/permanentabsence"
	"github.com/eliezerb2/presence/internal/settings"
	"github.com/eliezerb2/presence/internal/student"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The outbox is written with database/sql, so its schema is plain SQL.
const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             UUID PRIMARY KEY,
	request_id     VARCHAR(64),
	aggregate_type VARCHAR(50)  NOT NULL,
	aggregate_id   VARCHAR(64)  NOT NULL,
	event_type     VARCHAR(100) NOT NULL,
	topic          VARCHAR(200) NOT NULL,
	payload        JSONB        NOT NULL,
	status         VARCHAR(20)  NOT NULL DEFAULT 'pending',
	retry_count    INT          NOT NULL DEFAULT 0,
	error_message  TEXT,
	next_retry_at  TIMESTAMPTZ,
	expires_at     TIMESTAMPTZ,
	processed_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`

const outboxIndexDDL = `
CREATE INDEX IF NOT EXISTS idx_outbox_events_due
	ON outbox_events (next_retry_at, created_at)
	WHERE status IN ('pending', 'failed')`

func Migrate(ctx context.Context, db *gorm.DB) error {
	log := zap.L().Named("app.migrate")

	if err := db.WithContext(ctx).AutoMigrate(
		&student.Student{},
		&attendance.Record{},
		&calendar.SchoolHoliday{},
		&permanentabsence.PermanentAbsence{},
		&settings.Settings{},
		&settings.StudentMonthlyOverride{},
		&claim.Claim{},
		&audit.Entry{},
	); err != nil {
		return err
	}
	for _, ddl := range []string{outboxTableDDL, outboxIndexDDL} {
		if err := db.WithContext(ctx).Exec(ddl).Error; err != nil {
			return err
		}
	}

	log.Info("schema migrated")
	return nil
}
