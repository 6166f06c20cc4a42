package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActorAuto    = "auto"
	ActorManager = "manager"
	ActorStudent = "student"
)

const (
	EntityAttendance       = "attendance_record"
	EntityClaim            = "claim"
	EntitySettings         = "settings"
	EntityMonthlyOverride  = "student_monthly_override"
	EntityPermanentAbsence = "permanent_absence"
)

const (
	ActionCheckIn               = "check_in"
	ActionCheckOut              = "check_out"
	ActionOverrideUpdate        = "override_update"
	ActionOverrideUnlock        = "override_unlock"
	ActionSeedNotReported       = "seed_not_reported"
	ActionPermanentAbsenceApply = "permanent_absence_apply"
	ActionAutoLate              = "auto_late"
	ActionAutoYomLoBaLi         = "auto_yom_lo_ba_li"
	ActionAutoClose             = "auto_close_16"
	ActionCreateClaim           = "create_claim"
	ActionCloseClaim            = "close_claim"
	ActionSettingsUpdate        = "settings_update"
	ActionMonthlyOverrideUpsert = "monthly_override_upsert"
	ActionMonthlyOverrideDelete = "monthly_override_delete"
	ActionPermanentAbsenceAdd   = "permanent_absence_create"
	ActionPermanentAbsenceDrop  = "permanent_absence_delete"

	// Error actions. These never carry a state change.
	ActionSweepRecordError      = "sweep_record_error"
	ActionReminderDispatchError = "reminder_dispatch_error"
	ActionClaimNotifyError      = "claim_notify_error"
)

// Snapshot is a flat field -> value view of an entity. Values are already
// formatted; an absent key and an empty string both mean "unset".
type Snapshot map[string]string

type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Entry is append-only: the repository exposes no update or delete.
type Entry struct {
	ID         uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	Actor      string        `gorm:"column:actor;type:varchar(20);not null;index:idx_audit_actor"`
	Action     string        `gorm:"column:action;type:varchar(50);not null"`
	Entity     string        `gorm:"column:entity;type:varchar(50);not null;index:idx_audit_entity,priority:1"`
	EntityID   string        `gorm:"column:entity_id;type:varchar(64);not null;index:idx_audit_entity,priority:2"`
	Before     Snapshot      `gorm:"column:before;type:jsonb;serializer:json"`
	After      Snapshot      `gorm:"column:after;type:jsonb;serializer:json"`
	Changes    []FieldChange `gorm:"column:changes;type:jsonb;serializer:json"`
	Detail     string        `gorm:"column:detail;type:text"`
	RequestID  string        `gorm:"column:request_id;type:varchar(64)"`
	OccurredAt time.Time     `gorm:"column:occurred_at;not null;index:idx_audit_occurred_at"`
}

func (Entry) TableName() string {
	return "audit_entries"
}
