package dto

import (
	"bhashaflow_backend/internals/features/workflow/reviews/service"
	"bhashaflow_backend/internals/features/workflow/units/model"
)

type DecideRequest struct {
	UnitID   uint   `json:"unit_id" validate:"required,min=1"`
	Language string `json:"language" validate:"required"`
	Decision string `json:"decision" validate:"required"`
}

func (r DecideRequest) ToInput(kind model.ContentKind, actor string) (service.DecideInput, error) {
	lang, err := model.ParseLanguage(r.Language)
	if err != nil {
		return service.DecideInput{}, err
	}
	decision, err := model.ParseDecision(r.Decision)
	if err != nil {
		return service.DecideInput{}, err
	}
	return service.DecideInput{
		Kind:     kind,
		UnitID:   r.UnitID,
		Language: lang,
		Decision: decision,
		Actor:    actor,
	}, nil
}

type DecideResponse struct {
	UnitID    uint             `json:"unit_id"`
	Language  model.Language   `json:"language"`
	NewStatus model.SlotStatus `json:"new_status"`
}

func FromResult(r *service.DecideResult) DecideResponse {
	return DecideResponse{
		UnitID:    r.UnitID,
		Language:  r.Language,
		NewStatus: r.NewStatus,
	}
}
