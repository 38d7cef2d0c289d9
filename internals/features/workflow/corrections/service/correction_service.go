package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/helpers/apperror"
	"bhashaflow_backend/internals/metrics"
)

type CorrectionStore interface {
	Update(ctx context.Context, kind model.ContentKind, id uint, upd repository.UnitUpdate) (*model.ContentUnitModel, error)
	LoadCandidates(ctx context.Context, kind model.ContentKind, lang model.Language, date *time.Time) ([]model.ContentUnitModel, error)
	Stats(ctx context.Context, kind model.ContentKind, lang *model.Language) (*repository.Stats, error)
}

type CorrectionService struct {
	Units CorrectionStore
}

func NewCorrectionService(units CorrectionStore) *CorrectionService {
	return &CorrectionService{Units: units}
}

type ApplyInput struct {
	Kind     model.ContentKind
	UnitID   uint
	Language model.Language
	Content  *string
	Name     *string
	Actor    string
}

// Apply menimpa isi/nama satu bahasa dan langsung approved, apa pun status
// sebelumnya. Teks kosong setelah trim dianggap tidak dikirim.
func (s *CorrectionService) Apply(ctx context.Context, in ApplyInput) (*model.ContentUnitModel, error) {
	if !in.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidKind, in.Kind)
	}
	if !in.Language.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidLanguage, in.Language)
	}
	if in.UnitID == 0 {
		return nil, fmt.Errorf("%w: unit_id required", apperror.ErrValidation)
	}

	content := nonBlank(in.Content)
	var name *string
	if in.Kind.HasName() {
		name = nonBlank(in.Name)
	}
	if content == nil && name == nil {
		return nil, fmt.Errorf("%w: corrected_content or corrected_name required", apperror.ErrInvalidField)
	}

	approved := model.StatusApproved
	var upd repository.UnitUpdate
	upd.SetSlot(in.Language, func(su *repository.SlotUpdate) {
		su.Content = content
		su.Name = name
		su.Status = &approved
	})
	upd.Event = &repository.EventDraft{
		Action:   model.ActionCorrect,
		Actor:    in.Actor,
		Language: &in.Language,
		Payload: map[string]any{
			"content_corrected": content != nil,
			"name_corrected":    name != nil,
		},
	}

	unit, err := s.Units.Update(ctx, in.Kind, in.UnitID, upd)
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(in.Kind), string(in.Language), model.ActionCorrect, 1)
	logrus.WithFields(logrus.Fields{
		"kind":     in.Kind,
		"unit_id":  in.UnitID,
		"language": in.Language,
		"by":       in.Actor,
	}).Info("correction applied")
	return unit, nil
}

// Candidates: unit yang sudah punya isi atau nama di bahasa tsb.
func (s *CorrectionService) Candidates(ctx context.Context, kind model.ContentKind, lang model.Language, date *time.Time) ([]model.ContentUnitModel, error) {
	return s.Units.LoadCandidates(ctx, kind, lang, date)
}

func (s *CorrectionService) Stats(ctx context.Context, kind model.ContentKind, lang *model.Language) (*repository.Stats, error) {
	return s.Units.Stats(ctx, kind, lang)
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
