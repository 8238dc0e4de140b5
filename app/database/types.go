package database

import (
	"context"
	"time"
)

type Feed struct {
	ID          int64
	URL         string
	Category    string
	CategoryKey string  // case-folded category used for filtering
	Title       *string // nil when the feed declares no title
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Item struct {
	ID                int64
	FeedID            int64
	Position          int
	Title             string
	Link              string
	Description       string
	Content           string
	ImageSource       *string
	Author            string
	PublishedAt       string     // verbatim from the feed
	PublishedAtParsed *time.Time // best-effort parse of PublishedAt, used for ordering
	Favorite          bool
	CreatedAt         time.Time
}

// FeedItem is an item ready to be stored.
type FeedItem struct {
	Title             string
	Link              string
	Description       string
	Content           string
	ImageSource       *string
	Author            string
	PublishedAt       string
	PublishedAtParsed *time.Time
	Favorite          bool
}

type FeedRepository interface {
	CreateFeedWithItems(ctx context.Context, url, category, categoryKey string, title *string, items []FeedItem) (*Feed, []Item, error)
	GetFeed(ctx context.Context, id int64) (*Feed, error)
	FindFeedByURL(ctx context.Context, url string) (*Feed, error)
	ListFeeds(ctx context.Context) ([]Feed, error)
	ListFeedsByCategory(ctx context.Context, categoryKey string) ([]Feed, error)
	GetFeedCount(ctx context.Context) (int, error)

	UpdateFeed(ctx context.Context, id int64, url, category, categoryKey string, title *string) (bool, error)
	DeleteFeed(ctx context.Context, id int64) (bool, error)
}

type ItemRepository interface {
	GetItems(ctx context.Context, feedID int64) ([]Item, error)
	GetFavoriteItems(ctx context.Context, feedID int64) ([]Item, error)
	GetItem(ctx context.Context, feedID, itemID int64) (*Item, error)

	UpdateFavorite(ctx context.Context, feedID, itemID int64, favorite bool) (bool, error)
}

var _ FeedRepository = (*SQLFeedRepository)(nil)
var _ ItemRepository = (*SQLItemRepository)(nil)
