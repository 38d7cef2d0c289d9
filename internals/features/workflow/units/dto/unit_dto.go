// file: internals/features/workflow/units/dto/unit_dto.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/helpers/apperror"
)

/* =========================================================
   RESPONSE
========================================================= */

type UnitResponse struct {
	ID              uint                `json:"content_unit_id"`
	Kind            model.ContentKind   `json:"content_unit_kind"`
	AssignedTo      *string             `json:"assigned_to"`
	AssignmentBatch *string             `json:"assignment_batch,omitempty"`
	AssignedAt      *time.Time          `json:"assigned_at,omitempty"`
	WorkStatus      model.WorkStatus    `json:"work_status"`
	OverallStatus   model.OverallStatus `json:"overall_status"`

	FromDate  *string `json:"from_date,omitempty"`
	ToDate    *string `json:"to_date,omitempty"`
	Sign      *string `json:"sign,omitempty"`
	SourceRef *string `json:"source_ref,omitempty"`

	Content map[model.Language]string           `json:"content"`
	Name    map[model.Language]string           `json:"name,omitempty"`
	Status  map[model.Language]model.SlotStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m *model.ContentUnitModel) UnitResponse {
	out := UnitResponse{
		ID:            m.ContentUnitID,
		Kind:          m.ContentUnitKind,
		AssignedTo:    m.ContentUnitAssignedTo,
		AssignedAt:    m.ContentUnitAssignedAt,
		WorkStatus:    m.ContentUnitWorkStatus,
		OverallStatus: m.ContentUnitOverallStatus,
		FromDate:      formatDate(m.ContentUnitFromDate),
		ToDate:        formatDate(m.ContentUnitToDate),
		Sign:          m.ContentUnitSign,
		SourceRef:     m.ContentUnitSourceRef,
		Content:       make(map[model.Language]string, len(model.AllLanguages)),
		Status:        make(map[model.Language]model.SlotStatus, len(model.AllLanguages)),
		CreatedAt:     m.ContentUnitCreatedAt,
		UpdatedAt:     m.ContentUnitUpdatedAt,
	}
	if m.ContentUnitAssignmentBatch != nil {
		b := m.ContentUnitAssignmentBatch.String()
		out.AssignmentBatch = &b
	}
	if m.ContentUnitKind.HasName() {
		out.Name = make(map[model.Language]string, len(model.AllLanguages))
	}
	for _, lang := range model.AllLanguages {
		out.Status[lang] = m.SlotStatusOf(lang)
		if s := m.Slot(lang); s != nil {
			out.Content[lang] = s.UnitSlotContent
			if out.Name != nil {
				out.Name[lang] = s.UnitSlotName
			}
		} else {
			out.Content[lang] = ""
		}
	}
	return out
}

func FromModels(list []model.ContentUnitModel) []UnitResponse {
	out := make([]UnitResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

type EventResponse struct {
	ID         uint           `json:"event_id"`
	Action     string         `json:"action"`
	Language   *string        `json:"language,omitempty"`
	FromStatus *string        `json:"from_status,omitempty"`
	ToStatus   *string        `json:"to_status,omitempty"`
	Actor      string         `json:"actor"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func FromEvents(list []model.ContentUnitEventModel) []EventResponse {
	out := make([]EventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, EventResponse{
			ID:         e.UnitEventID,
			Action:     e.UnitEventAction,
			Language:   e.UnitEventLanguage,
			FromStatus: e.UnitEventFromStatus,
			ToStatus:   e.UnitEventToStatus,
			Actor:      e.UnitEventActor,
			Payload:    map[string]any(e.UnitEventPayload),
			CreatedAt:  e.UnitEventCreatedAt,
		})
	}
	return out
}

/* =========================================================
   CREATE (ingestion)
========================================================= */

const DateLayout = "2006-01-02"

type CreateUnitRequest struct {
	ID        uint              `json:"content_unit_id" validate:"omitempty,min=1"`
	FromDate  string            `json:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate    string            `json:"to_date" validate:"omitempty,datetime=2006-01-02"`
	Date      string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Sign      *string           `json:"sign" validate:"omitempty,max=32"`
	SourceRef *string           `json:"source_ref" validate:"omitempty,url"`
	Content   map[string]string `json:"content"`
	Name      map[string]string `json:"name"`
}

// ToNewUnit: "date" tunggal (daily) dipakai untuk from & to.
func (r CreateUnitRequest) ToNewUnit(kind model.ContentKind, actor string) (repository.NewUnit, error) {
	in := repository.NewUnit{
		ID:        r.ID,
		Kind:      kind,
		Sign:      trimPtr(r.Sign),
		SourceRef: trimPtr(r.SourceRef),
		Content:   map[model.Language]string{},
		Names:     map[model.Language]string{},
		Actor:     actor,
	}

	from, to := r.FromDate, r.ToDate
	if strings.TrimSpace(r.Date) != "" {
		from, to = r.Date, r.Date
	}
	var err error
	if in.FromDate, err = ParseDatePtr(from); err != nil {
		return in, err
	}
	if in.ToDate, err = ParseDatePtr(to); err != nil {
		return in, err
	}

	for code, text := range r.Content {
		lang, err := model.ParseLanguage(code)
		if err != nil {
			return in, err
		}
		in.Content[lang] = text
	}
	for code, text := range r.Name {
		lang, err := model.ParseLanguage(code)
		if err != nil {
			return in, err
		}
		in.Names[lang] = text
	}
	return in, nil
}

/* =========================================================
   Helpers
========================================================= */

func ParseDatePtr(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperror.ErrValidation, s)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
