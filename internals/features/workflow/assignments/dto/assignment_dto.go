package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bhashaflow_backend/internals/features/workflow/assignments/service"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/helpers/apperror"
)

type AssignRequest struct {
	WorkerID string  `json:"worker_id" validate:"required,uuid"`
	Count    int     `json:"count" validate:"required,min=1,max=500"`
	Language *string `json:"language" validate:"omitempty"`
}

func (r AssignRequest) ToInput(kind model.ContentKind, actor string) (service.AssignInput, error) {
	in := service.AssignInput{Kind: kind, Count: r.Count, Actor: actor}
	id, err := uuid.Parse(strings.TrimSpace(r.WorkerID))
	if err != nil {
		return in, fmt.Errorf("%w: worker_id %q", apperror.ErrValidation, r.WorkerID)
	}
	in.WorkerID = id
	if r.Language != nil && strings.TrimSpace(*r.Language) != "" {
		lang, err := model.ParseLanguage(*r.Language)
		if err != nil {
			return in, err
		}
		in.Language = &lang
	}
	return in, nil
}

type AssignResponse struct {
	AssignedCount  int    `json:"assigned_count"`
	WorkerUsername string `json:"worker_username"`
	UnitIDs        []uint `json:"unit_ids"`
}

func FromResult(r *service.AssignResult) AssignResponse {
	ids := r.UnitIDs
	if ids == nil {
		ids = []uint{}
	}
	return AssignResponse{
		AssignedCount:  r.AssignedCount,
		WorkerUsername: r.WorkerUsername,
		UnitIDs:        ids,
	}
}
