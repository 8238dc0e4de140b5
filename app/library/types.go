package library

import (
	"context"

	"github.com/lysyi3m/feedshelf/app/feed"
)

// Subscription is a stored feed together with its items.
type Subscription struct {
	ID           int64   `json:"id"`
	URL          string  `json:"url"`
	Category     string  `json:"category"`
	FeedTitle    *string `json:"feedTitle"`
	ContentGroup []Entry `json:"contentGroup"`
}

// Entry is a feed item as served to clients. ID is zero for items that were not stored.
type Entry struct {
	ID          int64   `json:"id,omitempty"`
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	ImageSource *string `json:"imageSource"`
	Author      string  `json:"author"`
	PublishedAt string  `json:"publishedAt"`
	Favorite    bool    `json:"favorite"`
}

type FeedParser interface {
	ParseFeed(ctx context.Context, url string) (*feed.Feed, error)
}

var _ FeedParser = (*feed.Parser)(nil)
