package api

import (
	"context"

	"github.com/lysyi3m/feedshelf/app/config"
	"github.com/lysyi3m/feedshelf/app/feed"
	"github.com/lysyi3m/feedshelf/app/library"
	"github.com/lysyi3m/feedshelf/app/tasks"
)

type LibraryService interface {
	AddFeed(ctx context.Context, url, category string) (*library.Subscription, error)
	UpdateFeed(ctx context.Context, id int64, url, category string) (*library.Subscription, error)
	SetFavorite(ctx context.Context, feedID, itemID int64, favorite bool) (*library.Entry, error)
	DeleteFeed(ctx context.Context, id int64) (bool, error)
	ListFeeds(ctx context.Context) ([]library.Subscription, error)
	ListFavorites(ctx context.Context) ([]library.Subscription, error)
	FilterByCategory(ctx context.Context, category string) ([]library.Subscription, error)
	Preview(ctx context.Context, url string) (*feed.Feed, error)
	FeedCount(ctx context.Context) (int, error)
	ImportSubscriptions(ctx context.Context, subs []config.Subscription) (int, error)
}

// StatsProvider reports background import progress.
type StatsProvider interface {
	GetStats() tasks.Stats
}

var _ StatsProvider = (*tasks.Scheduler)(nil)

var _ LibraryService = (*library.Library)(nil)

type Handler struct {
	library LibraryService
	stats   StatsProvider
	version string
}

type feedRequest struct {
	URL      string `json:"url" binding:"required,url"`
	Category string `json:"category" binding:"required"`
}

type favoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}
