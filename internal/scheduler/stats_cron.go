package scheduler

import (
	"context"
	"fmt"

	"github.com/Dias221467/Wish_Collector/internal/services"
	"github.com/Dias221467/Wish_Collector/pkg/metrics"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefreshStoreStats records the current number of stored wishes.
func RefreshStoreStats(ctx context.Context, wishService *services.WishService) error {
	count, err := wishService.CountWishes(ctx)
	if err != nil {
		return err
	}
	metrics.StoredRecords.Set(float64(count))
	return nil
}

// StartStatsCronJobs refreshes the store gauge on the given cron schedule.
// The caller stops the returned scheduler on shutdown.
func StartStatsCronJobs(schedule string, wishService *services.WishService) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if err := RefreshStoreStats(context.Background(), wishService); err != nil {
			logrus.WithError(err).Error("RefreshStoreStats failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", schedule, err)
	}

	c.Start()
	return c, nil
}
