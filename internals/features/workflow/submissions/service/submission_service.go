package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/helpers/apperror"
	"bhashaflow_backend/internals/metrics"
)

type UnitUpdater interface {
	Update(ctx context.Context, kind model.ContentKind, id uint, upd repository.UnitUpdate) (*model.ContentUnitModel, error)
}

type SubmissionService struct {
	Units UnitUpdater
}

func NewSubmissionService(units UnitUpdater) *SubmissionService {
	return &SubmissionService{Units: units}
}

type SubmitInput struct {
	Kind     model.ContentKind
	UnitID   uint
	Language model.Language
	Content  string
	Name     *string
	Actor    string
}

type SubmitResult struct {
	UnitID        uint
	Language      model.Language
	Status        model.SlotStatus
	OverallStatus model.OverallStatus
	Unit          *model.ContentUnitModel
}

// Submit menulis terjemahan satu bahasa lalu status bahasa itu -> inreview.
// Isi kosong tetap disimpan (kosong = belum ada isi). Nama hanya untuk activity;
// nama kosong tidak menimpa nama yang sudah ada.
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, in.Kind)
	}
	if !in.Language.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, in.Language)
	}
	if in.UnitID == 0 {
		return nil, fmt.Errorf("%w: unit_id required", apperror.ErrValidation)
	}

	content := strings.TrimSpace(in.Content)
	var name *string
	if in.Kind.HasName() && in.Name != nil {
		if n := strings.TrimSpace(*in.Name); n != "" {
			name = &n
		}
	}

	var upd repository.UnitUpdate
	upd.SetSlot(in.Language, func(su *repository.SlotUpdate) {
		st := model.StatusInReview
		su.Content = &content
		su.Name = name
		su.Status = &st
	})
	upd.Event = &repository.EventDraft{
		Action:   model.ActionSubmit,
		Actor:    in.Actor,
		Language: &in.Language,
		Payload: map[string]any{
			"content_empty": content == "",
			"name_set":      name != nil,
		},
	}

	unit, err := s.Units.Update(ctx, in.Kind, in.UnitID, upd)
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(in.Kind), string(in.Language), model.ActionSubmit, 1)
	logrus.WithFields(logrus.Fields{
		"kind":     in.Kind,
		"unit_id":  in.UnitID,
		"language": in.Language,
		"by":       in.Actor,
	}).Info("translation submitted")

	return &SubmitResult{
		UnitID:        unit.ContentUnitID,
		Language:      in.Language,
		Status:        unit.SlotStatusOf(in.Language),
		OverallStatus: unit.ContentUnitOverallStatus,
		Unit:          unit,
	}, nil
}
