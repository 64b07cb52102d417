package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/voz-urbana/api-go/models"
	"gorm.io/gorm"
)

// Uploads get a grace period before the orphan sweep may touch them, so a
// presigned PUT that has not been confirmed yet is never deleted.
const orphanGracePeriod = 24 * time.Hour

// ObjectStore is the slice of the storage client the sweep needs.
// *storage.Client satisfies it; tests substitute a stub.
type ObjectStore interface {
	ListOlderThan(ctx context.Context, prefix string, cutoff time.Time) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// Cleanup owns the background maintenance jobs: expired refresh token purge
// and the orphaned-upload sweep.
type Cleanup struct {
	DB      *gorm.DB
	Storage ObjectStore
	cron    *cron.Cron
}

func NewCleanup(db *gorm.DB, store ObjectStore) *Cleanup {
	return &Cleanup{
		DB:      db,
		Storage: store,
		cron:    cron.New(),
	}
}

// Start registers the jobs and launches the cron scheduler.
func (cl *Cleanup) Start() error {
	if _, err := cl.cron.AddFunc("@hourly", cl.PurgeExpiredTokens); err != nil {
		return err
	}
	if _, err := cl.cron.AddFunc("@daily", cl.SweepOrphanedUploads); err != nil {
		return err
	}
	cl.cron.Start()
	logrus.Info("Cleanup scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs.
func (cl *Cleanup) Stop() {
	ctx := cl.cron.Stop()
	<-ctx.Done()
}

// PurgeExpiredTokens deletes refresh tokens past their expiration date.
func (cl *Cleanup) PurgeExpiredTokens() {
	result := cl.DB.Unscoped().
		Where("expiration_date < ?", time.Now()).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to purge expired refresh tokens")
		return
	}
	if result.RowsAffected > 0 {
		logrus.WithField("count", result.RowsAffected).Info("Purged expired refresh tokens")
	}
}

// SweepOrphanedUploads deletes bucket objects older than the grace period
// that no report or event photo references. These are uploads whose presigned
// PUT succeeded but whose confirm call never came.
func (cl *Cleanup) SweepOrphanedUploads() {
	ctx := context.Background()
	cutoff := time.Now().Add(-orphanGracePeriod)

	keys, err := cl.Storage.ListOlderThan(ctx, "photos/", cutoff)
	if err != nil {
		logrus.WithError(err).Error("Failed to list uploads for orphan sweep")
		return
	}
	if len(keys) == 0 {
		return
	}

	referenced := make(map[string]bool)

	var reports []models.Report
	if err := cl.DB.Select("s3_key", "thumbnail_key").Find(&reports).Error; err != nil {
		logrus.WithError(err).Error("Failed to load report keys for orphan sweep")
		return
	}
	for i := range reports {
		if reports[i].S3Key != "" {
			referenced[reports[i].S3Key] = true
		}
		if reports[i].ThumbnailKey != "" {
			referenced[reports[i].ThumbnailKey] = true
		}
	}

	var photos []models.EventPhoto
	if err := cl.DB.Select("s3_key").Find(&photos).Error; err != nil {
		logrus.WithError(err).Error("Failed to load event photo keys for orphan sweep")
		return
	}
	for i := range photos {
		if photos[i].S3Key != "" {
			referenced[photos[i].S3Key] = true
		}
	}

	deleted := 0
	for _, key := range keys {
		if referenced[key] {
			continue
		}
		if err := cl.Storage.Delete(ctx, key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to delete orphaned upload")
			continue
		}
		deleted++
	}

	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"scanned": len(keys),
			"deleted": deleted,
		}).Info("Orphaned upload sweep completed")
	}
}
