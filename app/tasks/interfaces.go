package tasks

import (
	"context"

	"github.com/lysyi3m/feedshelf/app/config"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Example usage:
//
//	scheduler := NewScheduler(workerCount, taskTimeout)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewImportFeedTask(sub, library))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	GetStats() Stats
}

// SubscriptionImporter adds a single subscription, reporting false when it was already stored.
type SubscriptionImporter interface {
	ImportSubscription(ctx context.Context, sub config.Subscription) (bool, error)
}
