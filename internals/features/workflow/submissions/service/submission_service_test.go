package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhashaflow_backend/internals/databases/testdb"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/helpers/apperror"
)

func setup(t *testing.T, kind model.ContentKind, id uint) (*repository.UnitStore, *SubmissionService) {
	t.Helper()
	store := repository.NewUnitStore(testdb.New(t))
	_, err := store.Create(context.Background(), repository.NewUnit{
		ID:      id,
		Kind:    kind,
		Content: map[model.Language]string{model.LangEnglish: "Hello"},
		Names:   map[model.Language]string{},
	})
	require.NoError(t, err)
	return store, NewSubmissionService(store)
}

func TestSubmitMovesOnlyTargetLanguage(t *testing.T) {
	store, svc := setup(t, model.KindDaily, 42)

	res, err := svc.Submit(context.Background(), SubmitInput{
		Kind: model.KindDaily, UnitID: 42, Language: model.LangHindi, Content: " नमस्ते ", Actor: "ravi",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInReview, res.Status)
	assert.Equal(t, model.OverallWorking, res.OverallStatus)

	u, err := store.Find(context.Background(), model.KindDaily, 42)
	require.NoError(t, err)
	assert.Equal(t, "नमस्ते", u.Slot(model.LangHindi).UnitSlotContent)
	for _, lang := range model.AllLanguages {
		if lang == model.LangHindi {
			continue
		}
		assert.Equal(t, model.StatusPending, u.SlotStatusOf(lang), lang)
	}
	assert.Equal(t, "Hello", u.Slot(model.LangEnglish).UnitSlotContent)

	events, err := store.History(context.Background(), model.KindDaily, 42)
	require.NoError(t, err)
	assert.Equal(t, model.ActionSubmit, events[0].UnitEventAction)
	assert.Equal(t, "ravi", events[0].UnitEventActor)
}

func TestSubmitEmptyContentStillInReview(t *testing.T) {
	store, svc := setup(t, model.KindDaily, 1)

	res, err := svc.Submit(context.Background(), SubmitInput{
		Kind: model.KindDaily, UnitID: 1, Language: model.LangEnglish, Content: "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInReview, res.Status)

	u, err := store.Find(context.Background(), model.KindDaily, 1)
	require.NoError(t, err)
	assert.Equal(t, "", u.Slot(model.LangEnglish).UnitSlotContent)
	assert.Equal(t, model.OverallPending, u.ContentUnitOverallStatus)
}

func TestSubmitNameOnlyForActivity(t *testing.T) {
	store, svc := setup(t, model.KindActivity, 7)
	name := "सुबह की सैर"

	_, err := svc.Submit(context.Background(), SubmitInput{
		Kind: model.KindActivity, UnitID: 7, Language: model.LangHindi, Content: "रोज़ चलें", Name: &name,
	})
	require.NoError(t, err)

	blank := " "
	_, err = svc.Submit(context.Background(), SubmitInput{
		Kind: model.KindActivity, UnitID: 7, Language: model.LangHindi, Content: "रोज़ टहलें", Name: &blank,
	})
	require.NoError(t, err)

	u, err := store.Find(context.Background(), model.KindActivity, 7)
	require.NoError(t, err)
	assert.Equal(t, name, u.Slot(model.LangHindi).UnitSlotName)
	assert.Equal(t, "रोज़ टहलें", u.Slot(model.LangHindi).UnitSlotContent)

	// daily: nama diabaikan
	_, dailySvc := setup(t, model.KindDaily, 8)
	res, err := dailySvc.Submit(context.Background(), SubmitInput{
		Kind: model.KindDaily, UnitID: 8, Language: model.LangHindi, Content: "x", Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "", res.Unit.Slot(model.LangHindi).UnitSlotName)
}

func TestSubmitErrors(t *testing.T) {
	_, svc := setup(t, model.KindDaily, 1)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitInput{Kind: model.KindDaily, UnitID: 1, Language: "ta"})
	assert.ErrorIs(t, err, apperror.ErrInvalidLanguage)

	_, err = svc.Submit(ctx, SubmitInput{Kind: "weekly", UnitID: 1, Language: model.LangHindi})
	assert.ErrorIs(t, err, apperror.ErrInvalidKind)

	_, err = svc.Submit(ctx, SubmitInput{Kind: model.KindDaily, UnitID: 99, Language: model.LangHindi})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Submit(ctx, SubmitInput{Kind: model.KindTenDay, UnitID: 1, Language: model.LangHindi})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
