// file: internals/features/workflow/units/model/content_unit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ContentUnitModel: satu unit terjemahan (activity / daily / tenday).
// Isi per bahasa disimpan di content_unit_slots, bukan kolom per bahasa.
type ContentUnitModel struct {
	ContentUnitID   uint        `gorm:"column:content_unit_id;primaryKey;autoIncrement" json:"content_unit_id"`
	ContentUnitKind ContentKind `gorm:"column:content_unit_kind;type:varchar(16);not null;index:idx_content_units_pool,priority:1" json:"content_unit_kind"`

	// NULL = tersedia untuk assignment (satu-satunya sinyal yang sah)
	ContentUnitAssignedTo      *string    `gorm:"column:content_unit_assigned_to;type:varchar(50);index:idx_content_units_pool,priority:2" json:"content_unit_assigned_to,omitempty"`
	ContentUnitAssignmentBatch *uuid.UUID `gorm:"column:content_unit_assignment_batch;type:uuid;index" json:"content_unit_assignment_batch,omitempty"`
	ContentUnitAssignedAt      *time.Time `gorm:"column:content_unit_assigned_at" json:"content_unit_assigned_at,omitempty"`
	ContentUnitWorkStatus      WorkStatus `gorm:"column:content_unit_work_status;type:varchar(16);not null" json:"content_unit_work_status"`

	// cache, selalu dihitung ulang dari isi slot
	ContentUnitOverallStatus OverallStatus `gorm:"column:content_unit_overall_status;type:varchar(16);not null;index" json:"content_unit_overall_status"`

	ContentUnitFromDate  *time.Time `gorm:"column:content_unit_from_date;type:date;index" json:"content_unit_from_date,omitempty"`
	ContentUnitToDate    *time.Time `gorm:"column:content_unit_to_date;type:date" json:"content_unit_to_date,omitempty"`
	ContentUnitSign      *string    `gorm:"column:content_unit_sign;type:varchar(32)" json:"content_unit_sign,omitempty"`
	ContentUnitSourceRef *string    `gorm:"column:content_unit_source_ref;type:text" json:"content_unit_source_ref,omitempty"`

	ContentUnitCreatedAt time.Time `gorm:"column:content_unit_created_at;autoCreateTime" json:"content_unit_created_at"`
	ContentUnitUpdatedAt time.Time `gorm:"column:content_unit_updated_at;autoUpdateTime" json:"content_unit_updated_at"`

	Slots []ContentUnitSlotModel `gorm:"foreignKey:UnitSlotUnitID;references:ContentUnitID" json:"slots,omitempty"`
}

func (ContentUnitModel) TableName() string { return "content_units" }

// Slot mengembalikan slot bahasa (nil kalau belum ada).
func (u *ContentUnitModel) Slot(lang Language) *ContentUnitSlotModel {
	for i := range u.Slots {
		if u.Slots[i].UnitSlotLanguage == lang {
			return &u.Slots[i]
		}
	}
	return nil
}

// SlotStatusOf: slot yang belum ada dianggap pending.
func (u *ContentUnitModel) SlotStatusOf(lang Language) SlotStatus {
	if s := u.Slot(lang); s != nil {
		return s.UnitSlotStatus
	}
	return StatusPending
}

// ContentUnitSlotModel: pasangan isi/status untuk satu bahasa.
type ContentUnitSlotModel struct {
	UnitSlotID       uint       `gorm:"column:unit_slot_id;primaryKey;autoIncrement" json:"-"`
	UnitSlotUnitID   uint       `gorm:"column:unit_slot_unit_id;not null;uniqueIndex:uq_unit_slot_language,priority:1" json:"unit_slot_unit_id"`
	UnitSlotLanguage Language   `gorm:"column:unit_slot_language;type:varchar(4);not null;uniqueIndex:uq_unit_slot_language,priority:2" json:"unit_slot_language"`
	UnitSlotContent  string     `gorm:"column:unit_slot_content;type:text;not null" json:"unit_slot_content"`
	UnitSlotName     string     `gorm:"column:unit_slot_name;type:text;not null" json:"unit_slot_name"`
	UnitSlotStatus   SlotStatus `gorm:"column:unit_slot_status;type:varchar(16);not null;index" json:"unit_slot_status"`

	UnitSlotUpdatedAt time.Time `gorm:"column:unit_slot_updated_at;autoUpdateTime" json:"unit_slot_updated_at"`
}

func (ContentUnitSlotModel) TableName() string { return "content_unit_slots" }

func (s ContentUnitSlotModel) HasContent() bool { return s.UnitSlotContent != "" }
func (s ContentUnitSlotModel) HasName() bool    { return s.UnitSlotName != "" }
