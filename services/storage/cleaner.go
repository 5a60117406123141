package storage

import (
	"context"

	"go.uber.org/zap"
)

// MediaScheduler queues asynchronous asset deletion.
type MediaScheduler interface {
	ScheduleMediaDelete(ctx context.Context, publicID string) error
}

// Cleaner discards images that are no longer referenced. URLs not served by
// the media host are ignored.
type Cleaner struct {
	storage   StorageService
	scheduler MediaScheduler
	logger    *zap.Logger
}

func NewCleaner(storage StorageService, scheduler MediaScheduler, logger *zap.Logger) *Cleaner {
	return &Cleaner{storage: storage, scheduler: scheduler, logger: logger}
}

func (c *Cleaner) Discard(ctx context.Context, imageURL string) {
	if c == nil || imageURL == "" {
		return
	}
	publicID, ok := c.storage.PublicIDFromURL(imageURL)
	if !ok {
		return
	}
	if err := c.scheduler.ScheduleMediaDelete(ctx, publicID); err != nil {
		c.logger.Warn("Discard: failed to schedule media deletion", zap.String("publicId", publicID), zap.Error(err))
	}
}
