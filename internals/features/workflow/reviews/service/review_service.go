package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/helpers/apperror"
	"bhashaflow_backend/internals/metrics"
)

type ReviewStore interface {
	Find(ctx context.Context, kind model.ContentKind, id uint) (*model.ContentUnitModel, error)
	FindByStatus(ctx context.Context, kind model.ContentKind, lang model.Language, status model.SlotStatus, window repository.DateWindow) ([]model.ContentUnitModel, error)
	Update(ctx context.Context, kind model.ContentKind, id uint, upd repository.UnitUpdate) (*model.ContentUnitModel, error)
}

type ReviewService struct {
	Units ReviewStore
}

func NewReviewService(units ReviewStore) *ReviewService {
	return &ReviewService{Units: units}
}

// ListPending: unit dengan status[lang] == inreview, opsional overlap tanggal.
func (s *ReviewService) ListPending(ctx context.Context, kind model.ContentKind, lang model.Language, window repository.DateWindow) ([]model.ContentUnitModel, error) {
	if window.From != nil && window.To != nil && window.To.Before(*window.From) {
		return nil, fmt.Errorf("%w: date_to before date_from", apperror.ErrValidation)
	}
	return s.Units.FindByStatus(ctx, kind, lang, model.StatusInReview, window)
}

type DecideInput struct {
	Kind     model.ContentKind
	UnitID   uint
	Language model.Language
	Decision model.Decision
	Actor    string
}

type DecideResult struct {
	UnitID    uint
	Language  model.Language
	NewStatus model.SlotStatus
	Unit      *model.ContentUnitModel
}

// Decide: approve -> approved, reassign -> working. Hanya status bahasa itu
// yang berubah; assigned_to dan isi tidak disentuh. Approve ulang idempoten
// tanpa efek samping.
func (s *ReviewService) Decide(ctx context.Context, in DecideInput) (*DecideResult, error) {
	decision, err := model.ParseDecision(string(in.Decision))
	if err != nil {
		return nil, err
	}
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, in.Kind)
	}
	if !in.Language.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, in.Language)
	}

	target := decision.Target()

	// approve ulang: status sudah approved, tidak ada jurnal atau metrik baru
	if decision == model.DecisionApprove {
		current, err := s.Units.Find(ctx, in.Kind, in.UnitID)
		if err != nil {
			return nil, err
		}
		if current.SlotStatusOf(in.Language) == model.StatusApproved {
			return &DecideResult{
				UnitID:    current.ContentUnitID,
				Language:  in.Language,
				NewStatus: model.StatusApproved,
				Unit:      current,
			}, nil
		}
	}

	var upd repository.UnitUpdate
	upd.SetSlot(in.Language, func(su *repository.SlotUpdate) {
		su.Status = &target
	})
	upd.Event = &repository.EventDraft{
		Action:   string(decision),
		Actor:    in.Actor,
		Language: &in.Language,
	}

	unit, err := s.Units.Update(ctx, in.Kind, in.UnitID, upd)
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(in.Kind), string(in.Language), string(decision), 1)
	logrus.WithFields(logrus.Fields{
		"kind":     in.Kind,
		"unit_id":  in.UnitID,
		"language": in.Language,
		"decision": decision,
		"by":       in.Actor,
	}).Info("review decided")

	return &DecideResult{
		UnitID:    unit.ContentUnitID,
		Language:  in.Language,
		NewStatus: unit.SlotStatusOf(in.Language),
		Unit:      unit,
	}, nil
}
