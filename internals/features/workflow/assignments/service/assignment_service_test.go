package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhashaflow_backend/internals/databases/testdb"
	workerModel "bhashaflow_backend/internals/features/users/workers/model"
	workerRepo "bhashaflow_backend/internals/features/users/workers/repository"
	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
	"bhashaflow_backend/internals/helpers/apperror"
)

type fixture struct {
	units   *repository.UnitStore
	workers *workerRepo.WorkerRepository
	svc     *AssignmentService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testdb.New(t)
	units := repository.NewUnitStore(db)
	workers := workerRepo.NewWorkerRepository(db)
	return fixture{units: units, workers: workers, svc: NewAssignmentService(units, workers)}
}

func (f fixture) worker(t *testing.T, name string, active bool) *workerModel.UserModel {
	t.Helper()
	u := &workerModel.UserModel{UserName: name, Password: "x", Role: "translator", IsActive: active}
	require.NoError(t, f.workers.Create(context.Background(), u))
	return u
}

func (f fixture) unit(t *testing.T, kind model.ContentKind, id uint) {
	t.Helper()
	_, err := f.units.Create(context.Background(), repository.NewUnit{
		ID: id, Kind: kind, Content: map[model.Language]string{model.LangEnglish: "source"},
	})
	require.NoError(t, err)
}

func TestAssignClaimsOldestFirst(t *testing.T) {
	f := newFixture(t)
	ravi := f.worker(t, "ravi", true)
	for _, id := range []uint{3, 1, 2} {
		f.unit(t, model.KindActivity, id)
	}

	res, err := f.svc.Assign(context.Background(), AssignInput{
		Kind: model.KindActivity, WorkerID: ravi.ID, Count: 2, Actor: "sana",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.AssignedCount)
	assert.Equal(t, "ravi", res.WorkerUsername)
	assert.Equal(t, []uint{1, 2}, res.UnitIDs)

	// sisa pool lebih kecil dari count -> dapat sisanya saja
	res, err = f.svc.Assign(context.Background(), AssignInput{
		Kind: model.KindActivity, WorkerID: ravi.ID, Count: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, res.UnitIDs)
}

func TestAssignEmptyPool(t *testing.T) {
	f := newFixture(t)
	ravi := f.worker(t, "ravi", true)

	_, err := f.svc.Assign(context.Background(), AssignInput{
		Kind: model.KindDaily, WorkerID: ravi.ID, Count: 5,
	})
	assert.ErrorIs(t, err, apperror.ErrNoWorkAvailable)
	assert.Equal(t, "NO_WORK_AVAILABLE", apperror.Code(err))
}

func TestAssignUnknownOrInactiveWorker(t *testing.T) {
	f := newFixture(t)
	f.unit(t, model.KindDaily, 1)
	idle := f.worker(t, "idle", false)

	_, err := f.svc.Assign(context.Background(), AssignInput{
		Kind: model.KindDaily, WorkerID: uuid.New(), Count: 1,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Assign(context.Background(), AssignInput{
		Kind: model.KindDaily, WorkerID: idle.ID, Count: 1,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	// tidak ada yang ter-assign
	u, err := f.units.Find(context.Background(), model.KindDaily, 1)
	require.NoError(t, err)
	assert.Nil(t, u.ContentUnitAssignedTo)
}

func TestAssignValidation(t *testing.T) {
	f := newFixture(t)
	ravi := f.worker(t, "ravi", true)
	bad := model.Language("ta")

	cases := []AssignInput{
		{Kind: "weekly", WorkerID: ravi.ID, Count: 1},
		{Kind: model.KindDaily, WorkerID: uuid.Nil, Count: 1},
		{Kind: model.KindDaily, WorkerID: ravi.ID, Count: 0},
		{Kind: model.KindDaily, WorkerID: ravi.ID, Count: 1, Language: &bad},
	}
	for _, in := range cases {
		_, err := f.svc.Assign(context.Background(), in)
		assert.ErrorIs(t, err, apperror.ErrValidation, "%+v", in)
	}
}
