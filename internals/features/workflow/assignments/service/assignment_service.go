package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	workerModel "bhashaflow_backend/internals/features/users/workers/model"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/helpers/apperror"
	"bhashaflow_backend/internals/metrics"
)

type Claimer interface {
	ClaimUnassigned(ctx context.Context, req repository.ClaimRequest) ([]model.ContentUnitModel, error)
}

type WorkerLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*workerModel.UserModel, error)
}

type AssignmentService struct {
	Units   Claimer
	Workers WorkerLookup
}

func NewAssignmentService(units Claimer, workers WorkerLookup) *AssignmentService {
	return &AssignmentService{Units: units, Workers: workers}
}

type AssignInput struct {
	Kind     model.ContentKind
	WorkerID uuid.UUID
	Count    int
	Language *model.Language
	Actor    string
}

type AssignResult struct {
	AssignedCount  int
	WorkerUsername string
	UnitIDs        []uint
	Units          []model.ContentUnitModel
}

// Assign mengikat sampai Count unit kosong ke worker dalam satu klaim atomik.
func (s *AssignmentService) Assign(ctx context.Context, in AssignInput) (*AssignResult, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, in.Kind)
	}
	if in.WorkerID == uuid.Nil {
		return nil, fmt.Errorf("%w: worker_id required", apperror.ErrValidation)
	}
	if in.Count <= 0 {
		return nil, fmt.Errorf("%w: count must be > 0", apperror.ErrValidation)
	}
	if in.Language != nil && !in.Language.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, *in.Language)
	}

	worker, err := s.Workers.FindByID(ctx, in.WorkerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsActive {
		return nil, fmt.Errorf("%w: worker %s is not active", apperror.ErrNotFound, in.WorkerID)
	}

	units, err := s.Units.ClaimUnassigned(ctx, repository.ClaimRequest{
		Kind:     in.Kind,
		Username: worker.UserName,
		Count:    in.Count,
		Language: in.Language,
		Actor:    in.Actor,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ContentUnitID)
	}

	lang := ""
	if in.Language != nil {
		lang = string(*in.Language)
	}
	metrics.RecordAssigned(string(in.Kind), len(ids))
	metrics.RecordTransition(string(in.Kind), lang, model.ActionAssign, len(ids))

	logrus.WithFields(logrus.Fields{
		"kind":     in.Kind,
		"worker":   worker.UserName,
		"count":    len(ids),
		"language": lang,
		"by":       in.Actor,
	}).Info("units assigned")

	return &AssignResult{
		AssignedCount:  len(ids),
		WorkerUsername: worker.UserName,
		UnitIDs:        ids,
		Units:          units,
	}, nil
}
