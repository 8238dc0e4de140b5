package tasks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lysyi3m/feedshelf/app/config"
	"github.com/lysyi3m/feedshelf/app/feed"
)

type ImportFeedTask struct {
	Task
	Subscription config.Subscription
	importer     SubscriptionImporter
}

func NewImportFeedTask(sub config.Subscription, importer SubscriptionImporter) *ImportFeedTask {
	return &ImportFeedTask{
		Task:         NewTask(TaskTypeImportFeed, sub.URL),
		Subscription: sub,
		importer:     importer,
	}
}

func (t *ImportFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	added, err := t.importer.ImportSubscription(ctx, t.Subscription)
	if err != nil {
		return err
	}

	if added {
		slog.Info("Subscription imported", "url", t.Subscription.URL, "category", t.Subscription.Category, "duration", t.GetDuration().String())
	} else {
		slog.Debug("Subscription already present", "url", t.Subscription.URL)
	}

	return nil
}

// Retryable reports whether the import should be attempted again. Of the feed failures
// only transport errors qualify.
func (t *ImportFeedTask) Retryable(err error) bool {
	var parseErr *feed.FetchOrParseError
	if errors.As(err, &parseErr) {
		return errors.Is(err, feed.ErrTransport)
	}
	return err != nil
}
