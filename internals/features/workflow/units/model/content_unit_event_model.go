package model

import (
	"time"

	"gorm.io/datatypes"
)

// Aksi jurnal transisi
const (
	ActionCreate   = "create"
	ActionAssign   = "assign"
	ActionRelease  = "release"
	ActionSubmit   = "submit"
	ActionApprove  = "approve"
	ActionReassign = "reassign"
	ActionCorrect  = "correct"
	ActionPatch    = "patch"
)

// ContentUnitEventModel: jurnal append-only setiap transisi workflow.
type ContentUnitEventModel struct {
	UnitEventID         uint              `gorm:"column:unit_event_id;primaryKey;autoIncrement" json:"unit_event_id"`
	UnitEventUnitID     uint              `gorm:"column:unit_event_unit_id;not null;index" json:"unit_event_unit_id"`
	UnitEventKind       ContentKind       `gorm:"column:unit_event_kind;type:varchar(16);not null" json:"unit_event_kind"`
	UnitEventAction     string            `gorm:"column:unit_event_action;type:varchar(16);not null" json:"unit_event_action"`
	UnitEventLanguage   *string           `gorm:"column:unit_event_language;type:varchar(4)" json:"unit_event_language,omitempty"`
	UnitEventFromStatus *string           `gorm:"column:unit_event_from_status;type:varchar(16)" json:"unit_event_from_status,omitempty"`
	UnitEventToStatus   *string           `gorm:"column:unit_event_to_status;type:varchar(16)" json:"unit_event_to_status,omitempty"`
	UnitEventActor      string            `gorm:"column:unit_event_actor;type:varchar(50);not null" json:"unit_event_actor"`
	UnitEventPayload    datatypes.JSONMap `gorm:"column:unit_event_payload" json:"unit_event_payload,omitempty"`
	UnitEventCreatedAt  time.Time         `gorm:"column:unit_event_created_at;autoCreateTime" json:"unit_event_created_at"`
}

func (ContentUnitEventModel) TableName() string { return "content_unit_events" }
