package app

import (
	"time"

	"carteira/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	draftRetention    = 30 * 24 * time.Hour
	snapshotRetention = 90 * 24 * time.Hour
)

// StartMaintenance schedules the nightly purge of stale drafts and abandoned
// snapshots. The returned cron must be stopped on shutdown.
func StartMaintenance(
	log *zap.SugaredLogger,
	draftRepository repository.DraftRepository,
	snapshotRepository repository.SnapshotRepository,
) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		drafts, err := draftRepository.DeleteOlderThan(time.Now().UTC().Add(-draftRetention))
		if err != nil {
			log.Errorw("draft purge failed", "error", err)
		}
		snapshots, err := snapshotRepository.DeleteOlderThan(time.Now().UTC().Add(-snapshotRetention))
		if err != nil {
			log.Errorw("snapshot purge failed", "error", err)
		}
		log.Infow("maintenance completed", "draftsPurged", drafts, "snapshotsPurged", snapshots)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
