package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/lysyi3m/feedshelf/app/config"
	"github.com/lysyi3m/feedshelf/app/database"
	"github.com/lysyi3m/feedshelf/app/feed"
	"golang.org/x/text/cases"
)

// Library keeps the user's subscriptions and favorites.
type Library struct {
	parser   FeedParser
	feedRepo database.FeedRepository
	itemRepo database.ItemRepository
}

func New(parser FeedParser, feedRepo database.FeedRepository, itemRepo database.ItemRepository) *Library {
	return &Library{
		parser:   parser,
		feedRepo: feedRepo,
		itemRepo: itemRepo,
	}
}

// AddFeed fetches and parses url, then stores the feed and its items.
// Nothing is stored when parsing fails.
func (l *Library) AddFeed(ctx context.Context, url, category string) (*Subscription, error) {
	parsed, err := l.parser.ParseFeed(ctx, url)
	if err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)

	stored, items, err := l.feedRepo.CreateFeedWithItems(ctx, url, category, categoryKey(category), parsed.Title, toFeedItems(parsed.Items))
	if err != nil {
		return nil, fmt.Errorf("failed to store feed: %w", err)
	}

	slog.Info("Feed added", "feed_id", stored.ID, "url", url, "category", category, "items", len(items))

	return subscriptionOf(stored, items), nil
}

// UpdateFeed re-parses url and points the subscription at it. The returned items
// come straight from the parse and are not stored. It returns nil without fetching
// anything when id is unknown.
func (l *Library) UpdateFeed(ctx context.Context, id int64, url, category string) (*Subscription, error) {
	existing, err := l.feedRepo.GetFeed(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up feed %d: %w", id, err)
	}
	if existing == nil {
		slog.Debug("No feed to update", "feed_id", id)
		return nil, nil
	}

	parsed, err := l.parser.ParseFeed(ctx, url)
	if err != nil {
		return nil, err
	}

	category = strings.TrimSpace(category)

	ok, err := l.feedRepo.UpdateFeed(ctx, id, url, category, categoryKey(category), parsed.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to update feed: %w", err)
	}
	if !ok {
		return nil, nil
	}

	slog.Info("Feed updated", "feed_id", id, "previous_url", existing.URL, "url", url, "category", category)

	entries := make([]Entry, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		entries = append(entries, entryOfParsed(it))
	}

	return &Subscription{
		ID:           id,
		URL:          url,
		Category:     category,
		FeedTitle:    parsed.Title,
		ContentGroup: entries,
	}, nil
}

// SetFavorite marks or unmarks an item. It returns nil when the item does not belong to the feed.
func (l *Library) SetFavorite(ctx context.Context, feedID, itemID int64, favorite bool) (*Entry, error) {
	ok, err := l.itemRepo.UpdateFavorite(ctx, feedID, itemID, favorite)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Debug("No item to update", "feed_id", feedID, "item_id", itemID)
		return nil, nil
	}

	item, err := l.itemRepo.GetItem(ctx, feedID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	entry := entryOf(*item)
	return &entry, nil
}

func (l *Library) DeleteFeed(ctx context.Context, id int64) (bool, error) {
	deleted, err := l.feedRepo.DeleteFeed(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		slog.Info("Feed deleted", "feed_id", id)
	} else {
		slog.Debug("No feed to delete", "feed_id", id)
	}

	return deleted, nil
}

func (l *Library) ListFeeds(ctx context.Context) ([]Subscription, error) {
	feeds, err := l.feedRepo.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}
	return l.withItems(ctx, feeds, l.itemRepo.GetItems, false)
}

// FilterByCategory lists subscriptions whose category matches regardless of case.
func (l *Library) FilterByCategory(ctx context.Context, category string) ([]Subscription, error) {
	feeds, err := l.feedRepo.ListFeedsByCategory(ctx, categoryKey(category))
	if err != nil {
		return nil, err
	}
	return l.withItems(ctx, feeds, l.itemRepo.GetItems, false)
}

// ListFavorites lists subscriptions that have favorite items, with only those items, newest first.
func (l *Library) ListFavorites(ctx context.Context) ([]Subscription, error) {
	feeds, err := l.feedRepo.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}
	return l.withItems(ctx, feeds, l.itemRepo.GetFavoriteItems, true)
}

// Preview parses url without storing anything.
func (l *Library) Preview(ctx context.Context, url string) (*feed.Feed, error) {
	return l.parser.ParseFeed(ctx, url)
}

func (l *Library) FeedCount(ctx context.Context) (int, error) {
	return l.feedRepo.GetFeedCount(ctx)
}

// ImportSubscriptions adds the given subscriptions unless a feed with the same URL is already stored.
// Feeds that cannot be added are logged and skipped.
func (l *Library) ImportSubscriptions(ctx context.Context, subs []config.Subscription) (int, error) {
	imported := 0

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return imported, err
		}

		added, err := l.ImportSubscription(ctx, sub)
		if err != nil {
			var parseErr *feed.FetchOrParseError
			if !errors.As(err, &parseErr) {
				return imported, err
			}
			slog.Warn("Failed to import subscription", "url", sub.URL, "error", err)
			continue
		}
		if added {
			imported++
		}
	}

	return imported, nil
}

// ImportSubscription adds a single subscription and reports false when its URL is already stored.
func (l *Library) ImportSubscription(ctx context.Context, sub config.Subscription) (bool, error) {
	existing, err := l.feedRepo.FindFeedByURL(ctx, sub.URL)
	if err != nil {
		return false, fmt.Errorf("failed to look up feed %s: %w", sub.URL, err)
	}
	if existing != nil {
		slog.Debug("Subscription already stored", "url", sub.URL, "feed_id", existing.ID)
		return false, nil
	}

	if _, err := l.AddFeed(ctx, sub.URL, sub.Category); err != nil {
		return false, err
	}

	return true, nil
}

type itemLoader func(ctx context.Context, feedID int64) ([]database.Item, error)

func (l *Library) withItems(ctx context.Context, feeds []database.Feed, load itemLoader, skipEmpty bool) ([]Subscription, error) {
	subs := make([]Subscription, 0, len(feeds))

	for i := range feeds {
		items, err := load(ctx, feeds[i].ID)
		if err != nil {
			return nil, err
		}
		if skipEmpty && len(items) == 0 {
			continue
		}
		subs = append(subs, *subscriptionOf(&feeds[i], items))
	}

	return subs, nil
}

func categoryKey(category string) string {
	return cases.Fold().String(strings.TrimSpace(category))
}

// publishedTime parses the verbatim published string for ordering; nil when it is not a date.
func publishedTime(published string) *time.Time {
	published = strings.TrimSpace(published)
	if published == "" {
		return nil
	}

	t, err := dateparse.ParseAny(published)
	if err != nil {
		slog.Debug("Unparseable publish date", "published_at", published, "error", err)
		return nil
	}

	t = t.UTC()
	return &t
}

func toFeedItems(items []feed.Item) []database.FeedItem {
	out := make([]database.FeedItem, 0, len(items))
	for _, it := range items {
		out = append(out, database.FeedItem{
			Title:             it.Title,
			Link:              it.Link,
			Description:       it.Description,
			Content:           it.Content,
			ImageSource:       it.ImageSource,
			Author:            it.Author,
			PublishedAt:       it.PublishedAt,
			PublishedAtParsed: publishedTime(it.PublishedAt),
			Favorite:          it.Favorite,
		})
	}
	return out
}

func subscriptionOf(f *database.Feed, items []database.Item) *Subscription {
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, entryOf(it))
	}

	return &Subscription{
		ID:           f.ID,
		URL:          f.URL,
		Category:     f.Category,
		FeedTitle:    f.Title,
		ContentGroup: entries,
	}
}

func entryOf(it database.Item) Entry {
	return Entry{
		ID:          it.ID,
		Title:       it.Title,
		Link:        it.Link,
		Description: it.Description,
		Content:     it.Content,
		ImageSource: it.ImageSource,
		Author:      it.Author,
		PublishedAt: it.PublishedAt,
		Favorite:    it.Favorite,
	}
}

func entryOfParsed(it feed.Item) Entry {
	return Entry{
		Title:       it.Title,
		Link:        it.Link,
		Description: it.Description,
		Content:     it.Content,
		ImageSource: it.ImageSource,
		Author:      it.Author,
		PublishedAt: it.PublishedAt,
		Favorite:    it.Favorite,
	}
}
