package metrics

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"bhashaflow_backend/internals/features/workflow/units/repository"
)

const DefaultBacklogSchedule = "@every 1m"

// BacklogSource: sumber data gauge backlog (read-only).
type BacklogSource interface {
	Backlog(ctx context.Context) ([]repository.BacklogRow, error)
}

// RefreshBacklog mengisi ulang gauge SlotBacklog dari store.
func RefreshBacklog(ctx context.Context, src BacklogSource) error {
	rows, err := src.Backlog(ctx)
	if err != nil {
		return err
	}
	SlotBacklog.Reset()
	for _, r := range rows {
		SlotBacklog.WithLabelValues(string(r.Kind), string(r.Language), string(r.Status)).Set(float64(r.Count))
	}
	return nil
}

// StartBacklogRefresher menjalankan RefreshBacklog sesuai jadwal cron.
// Pemanggil wajib memanggil Stop() saat shutdown.
func StartBacklogRefresher(src BacklogSource, schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultBacklogSchedule
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := RefreshBacklog(ctx, src); err != nil {
			logrus.WithError(err).Warn("[METRICS] refresh backlog gagal")
		}
	})
	if err != nil {
		return nil, err
	}

	// isi sekali saat start supaya /metrics tidak kosong
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := RefreshBacklog(ctx, src); err != nil {
		logrus.WithError(err).Warn("[METRICS] refresh backlog awal gagal")
	}
	cancel()

	c.Start()
	logrus.WithField("schedule", schedule).Info("[METRICS] backlog refresher started")
	return c, nil
}
