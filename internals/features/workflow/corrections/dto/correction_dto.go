package dto

import (
	"strings"

	"bhashaflow_backend/internals/features/workflow/corrections/service"
	"bhashaflow_backend/internals/features/workflow/units/model"
)

type ApplyRequest struct {
	UnitID           uint    `json:"unit_id" validate:"required,min=1"`
	Kind             string  `json:"kind" validate:"required"`
	Language         string  `json:"language" validate:"required"`
	CorrectedContent *string `json:"corrected_content"`
	CorrectedName    *string `json:"corrected_name"`
}

func (r ApplyRequest) ToInput(actor string) (service.ApplyInput, error) {
	kind, err := model.ParseKind(r.Kind)
	if err != nil {
		return service.ApplyInput{}, err
	}
	lang, err := model.ParseLanguage(r.Language)
	if err != nil {
		return service.ApplyInput{}, err
	}
	return service.ApplyInput{
		Kind:     kind,
		UnitID:   r.UnitID,
		Language: lang,
		Content:  r.CorrectedContent,
		Name:     r.CorrectedName,
		Actor:    actor,
	}, nil
}

// ParseOptionalLanguage: query kosong -> nil.
func ParseOptionalLanguage(s string) (*model.Language, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	lang, err := model.ParseLanguage(s)
	if err != nil {
		return nil, err
	}
	return &lang, nil
}
