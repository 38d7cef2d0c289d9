package repository

import (
	"fmt"
	"strings"

	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/helpers/apperror"
)

// SlotUpdate: nil = tidak diubah.
type SlotUpdate struct {
	Content *string
	Name    *string
	Status  *model.SlotStatus
}

// EventDraft dicatat ke jurnal dalam transaksi yang sama dengan update.
type EventDraft struct {
	Action   string
	Actor    string
	Language *model.Language
	Payload  map[string]any
}

// UnitUpdate adalah partial update yang sudah bertipe.
type UnitUpdate struct {
	AssignedTo    *string
	ClearAssignee bool
	WorkStatus    *model.WorkStatus
	SourceRef     *string
	Sign          *string

	Slots map[model.Language]SlotUpdate

	Event *EventDraft
}

func (u *UnitUpdate) slot(lang model.Language) SlotUpdate {
	if u.Slots == nil {
		u.Slots = map[model.Language]SlotUpdate{}
	}
	return u.Slots[lang]
}

// SetSlot menggabungkan perubahan ke slot bahasa.
func (u *UnitUpdate) SetSlot(lang model.Language, fn func(*SlotUpdate)) {
	s := u.slot(lang)
	fn(&s)
	u.Slots[lang] = s
}

func (u UnitUpdate) isEmpty() bool {
	return u.AssignedTo == nil && !u.ClearAssignee && u.WorkStatus == nil &&
		u.SourceRef == nil && u.Sign == nil && len(u.Slots) == 0
}

/* ===============================
   Allow-list field names
=================================*/

// Kolom unit yang boleh ditulis lewat nama field.
var writableUnitFields = map[string]struct{}{
	"assigned_to": {},
	"work_status": {},
	"source_ref":  {},
	"sign":        {},
}

// Field per bahasa: "<field>.<lang>"
var writableSlotFields = map[string]struct{}{
	"content": {},
	"name":    {},
	"status":  {},
}

// ParseFields mengubah map nama-field (dari caller) menjadi UnitUpdate.
// Nama di luar allow-list -> ErrInvalidField.
func ParseFields(kind model.ContentKind, fields map[string]any) (UnitUpdate, error) {
	var upd UnitUpdate
	if len(fields) == 0 {
		return upd, fmt.Errorf("%w: no fields supplied", apperror.ErrInvalidField)
	}

	for rawKey, raw := range fields {
		key := strings.ToLower(strings.TrimSpace(rawKey))

		if base, langCode, ok := strings.Cut(key, "."); ok {
			if _, allowed := writableSlotFields[base]; !allowed {
				return UnitUpdate{}, fmt.Errorf("%w: %q", apperror.ErrInvalidField, rawKey)
			}
			lang, err := model.ParseLanguage(langCode)
			if err != nil {
				return UnitUpdate{}, fmt.Errorf("%w: %q", apperror.ErrInvalidField, rawKey)
			}
			if base == "name" && !kind.HasName() {
				return UnitUpdate{}, fmt.Errorf("%w: %q not available for %s", apperror.ErrInvalidField, rawKey, kind)
			}
			str, err := stringValue(rawKey, raw)
			if err != nil {
				return UnitUpdate{}, err
			}
			switch base {
			case "content":
				v := strings.TrimSpace(str)
				upd.SetSlot(lang, func(s *SlotUpdate) { s.Content = &v })
			case "name":
				v := strings.TrimSpace(str)
				upd.SetSlot(lang, func(s *SlotUpdate) { s.Name = &v })
			case "status":
				st, err := model.ParseSlotStatus(str)
				if err != nil {
					return UnitUpdate{}, err
				}
				upd.SetSlot(lang, func(s *SlotUpdate) { s.Status = &st })
			}
			continue
		}

		if _, allowed := writableUnitFields[key]; !allowed {
			return UnitUpdate{}, fmt.Errorf("%w: %q", apperror.ErrInvalidField, rawKey)
		}

		switch key {
		case "assigned_to":
			if raw == nil {
				upd.ClearAssignee = true
				continue
			}
			str, err := stringValue(rawKey, raw)
			if err != nil {
				return UnitUpdate{}, err
			}
			if v := strings.TrimSpace(str); v != "" {
				upd.AssignedTo = &v
			} else {
				upd.ClearAssignee = true
			}
		case "work_status":
			str, err := stringValue(rawKey, raw)
			if err != nil {
				return UnitUpdate{}, err
			}
			ws := model.WorkStatus(strings.ToLower(strings.TrimSpace(str)))
			if !ws.Valid() {
				return UnitUpdate{}, fmt.Errorf("%w: work_status %q", apperror.ErrInvalidStatus, str)
			}
			upd.WorkStatus = &ws
		case "source_ref":
			str, err := stringValue(rawKey, raw)
			if err != nil {
				return UnitUpdate{}, err
			}
			v := strings.TrimSpace(str)
			upd.SourceRef = &v
		case "sign":
			str, err := stringValue(rawKey, raw)
			if err != nil {
				return UnitUpdate{}, err
			}
			v := strings.TrimSpace(str)
			upd.Sign = &v
		}
	}
	return upd, nil
}

func stringValue(key string, raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q must be a string", apperror.ErrInvalidField, key)
	}
}
