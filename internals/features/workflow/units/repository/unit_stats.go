package repository

import (
	"context"
	"fmt"

	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/helpers/apperror"
)

type LanguageStats struct {
	Language      model.Language             `json:"language"`
	ByStatus      map[model.SlotStatus]int64 `json:"by_status"`
	ContentFilled int64                      `json:"content_filled"`
	NameFilled    int64                      `json:"name_filled"`
	Total         int64                      `json:"total"`
}

type Stats struct {
	Kind             model.ContentKind             `json:"kind"`
	ByStatus         map[model.OverallStatus]int64 `json:"by_status"`
	Total            int64                         `json:"total"`
	LanguageSpecific *LanguageStats                `json:"language_specific,omitempty"`
}

// BacklogRow: jumlah slot per (kind, language, status), sumber gauge metrics.
type BacklogRow struct {
	Kind     model.ContentKind
	Language model.Language
	Status   model.SlotStatus
	Count    int64
}

// Stats: ringkasan per overall_status, plus hitungan per slot jika lang diisi.
func (s *UnitStore) Stats(ctx context.Context, kind model.ContentKind, lang *model.Language) (*Stats, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, kind)
	}
	if lang != nil && !lang.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, *lang)
	}
	db := s.DB.WithContext(ctx)

	out := &Stats{Kind: kind, ByStatus: map[model.OverallStatus]int64{}}
	for _, st := range model.AllOverallStatuses {
		out.ByStatus[st] = 0
	}

	var overall []struct {
		Status string
		Total  int64
	}
	if err := db.Model(&model.ContentUnitModel{}).
		Select("content_unit_overall_status AS status, COUNT(*) AS total").
		Where("content_unit_kind = ?", kind).
		Group("content_unit_overall_status").
		Scan(&overall).Error; err != nil {
		return nil, apperror.Store("stats by status", err)
	}
	for _, r := range overall {
		out.ByStatus[model.OverallStatus(r.Status)] += r.Total
		out.Total += r.Total
	}

	if lang == nil {
		return out, nil
	}

	ls := &LanguageStats{Language: *lang, ByStatus: map[model.SlotStatus]int64{}}
	for _, st := range model.AllSlotStatuses {
		ls.ByStatus[st] = 0
	}
	var perSlot []struct {
		Status        string
		Total         int64
		ContentFilled int64
		NameFilled    int64
	}
	if err := db.Table("content_unit_slots AS s").
		Select(`s.unit_slot_status AS status, COUNT(*) AS total,
			SUM(CASE WHEN s.unit_slot_content <> '' THEN 1 ELSE 0 END) AS content_filled,
			SUM(CASE WHEN s.unit_slot_name <> '' THEN 1 ELSE 0 END) AS name_filled`).
		Joins("JOIN content_units u ON u.content_unit_id = s.unit_slot_unit_id").
		Where("u.content_unit_kind = ? AND s.unit_slot_language = ?", kind, *lang).
		Group("s.unit_slot_status").
		Scan(&perSlot).Error; err != nil {
		return nil, apperror.Store("stats by language", err)
	}
	for _, r := range perSlot {
		ls.ByStatus[model.SlotStatus(r.Status)] += r.Total
		ls.ContentFilled += r.ContentFilled
		ls.NameFilled += r.NameFilled
		ls.Total += r.Total
	}
	out.LanguageSpecific = ls
	return out, nil
}

// Backlog dipakai refresher metrics (read-only).
func (s *UnitStore) Backlog(ctx context.Context) ([]BacklogRow, error) {
	var rows []struct {
		Kind     string
		Language string
		Status   string
		Total    int64
	}
	if err := s.DB.WithContext(ctx).Table("content_unit_slots AS s").
		Select("u.content_unit_kind AS kind, s.unit_slot_language AS language, s.unit_slot_status AS status, COUNT(*) AS total").
		Joins("JOIN content_units u ON u.content_unit_id = s.unit_slot_unit_id").
		Group("u.content_unit_kind, s.unit_slot_language, s.unit_slot_status").
		Scan(&rows).Error; err != nil {
		return nil, apperror.Store("backlog", err)
	}
	out := make([]BacklogRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, BacklogRow{
			Kind:     model.ContentKind(r.Kind),
			Language: model.Language(r.Language),
			Status:   model.SlotStatus(r.Status),
			Count:    r.Total,
		})
	}
	return out, nil
}
