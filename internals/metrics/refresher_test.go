package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhashaflow_backend/internals/features/workflow/units/model"
	"bhashaflow_backend/internals/features/workflow/units/repository"
)

type fakeBacklog struct {
	rows []repository.BacklogRow
	err  error
}

func (f fakeBacklog) Backlog(context.Context) ([]repository.BacklogRow, error) {
	return f.rows, f.err
}

func TestRefreshBacklog(t *testing.T) {
	src := fakeBacklog{rows: []repository.BacklogRow{
		{Kind: model.KindDaily, Language: model.LangHindi, Status: model.StatusInReview, Count: 4},
		{Kind: model.KindDaily, Language: model.LangHindi, Status: model.StatusPending, Count: 9},
	}}
	require.NoError(t, RefreshBacklog(context.Background(), src))
	assert.Equal(t, 4.0, testutil.ToFloat64(SlotBacklog.WithLabelValues("daily", "hi", "inreview")))
	assert.Equal(t, 9.0, testutil.ToFloat64(SlotBacklog.WithLabelValues("daily", "hi", "pending")))

	// gagal -> gauge lama tidak dihapus
	err := RefreshBacklog(context.Background(), fakeBacklog{err: errors.New("db down")})
	assert.Error(t, err)
	assert.Equal(t, 4.0, testutil.ToFloat64(SlotBacklog.WithLabelValues("daily", "hi", "inreview")))
}

func TestStartBacklogRefresherRejectsBadSchedule(t *testing.T) {
	_, err := StartBacklogRefresher(fakeBacklog{}, "every now and then")
	assert.Error(t, err)

	c, err := StartBacklogRefresher(fakeBacklog{}, "")
	require.NoError(t, err)
	c.Stop()
}

func TestRecordTransition(t *testing.T) {
	before := testutil.ToFloat64(TransitionsTotal.WithLabelValues("tenday", "-", "release"))
	RecordTransition("tenday", "", "release", 0)
	after := testutil.ToFloat64(TransitionsTotal.WithLabelValues("tenday", "-", "release"))
	assert.Equal(t, before+1, after)
}
