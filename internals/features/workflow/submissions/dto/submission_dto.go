package dto

import (
	"bhashaflow_backend/internals/features/workflow/submissions/service"
	"bhashaflow_backend/internals/features/workflow/units/model"
)

type SubmitRequest struct {
	UnitID   uint    `json:"unit_id" validate:"required,min=1"`
	Language string  `json:"language" validate:"required"`
	Content  string  `json:"content"`
	Name     *string `json:"name"`
}

func (r SubmitRequest) ToInput(kind model.ContentKind, actor string) (service.SubmitInput, error) {
	lang, err := model.ParseLanguage(r.Language)
	if err != nil {
		return service.SubmitInput{}, err
	}
	return service.SubmitInput{
		Kind:     kind,
		UnitID:   r.UnitID,
		Language: lang,
		Content:  r.Content,
		Name:     r.Name,
		Actor:    actor,
	}, nil
}

type SubmitResponse struct {
	UnitID        uint                `json:"unit_id"`
	Language      model.Language      `json:"language"`
	Status        model.SlotStatus    `json:"status"`
	OverallStatus model.OverallStatus `json:"overall_status"`
}

func FromResult(r *service.SubmitResult) SubmitResponse {
	return SubmitResponse{
		UnitID:        r.UnitID,
		Language:      r.Language,
		Status:        r.Status,
		OverallStatus: r.OverallStatus,
	}
}
