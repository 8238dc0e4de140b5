package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	version, dirty, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("Expected clean migration version 1, got: %d (dirty=%v)", version, dirty)
	}

	return db
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestRunMigrationsIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	version, _, err := RunMigrations(db)
	if err != nil {
		t.Fatalf("Expected no error on second run, got: %v", err)
	}
	if version != 1 {
		t.Errorf("Expected version 1, got: %d", version)
	}
}

func TestCreateFeedWithItems(t *testing.T) {
	db := newTestDB(t)
	feeds := NewFeedRepository(db)
	items := NewItemRepository(db)
	ctx := context.Background()

	feed, stored, err := feeds.CreateFeedWithItems(ctx, "https://example.com/rss", "Tech", "tech", strPtr("Example"), []FeedItem{
		{Title: "First", Link: "https://example.com/1", ImageSource: strPtr("a.png")},
		{Title: "Second", Link: "https://example.com/2", Author: "Jane"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if feed.ID == 0 {
		t.Error("Expected feed ID to be assigned")
	}
	if len(stored) != 2 {
		t.Fatalf("Expected 2 stored items, got: %d", len(stored))
	}
	if stored[1].Position != 1 || stored[1].FeedID != feed.ID {
		t.Errorf("Expected second item at position 1 of feed %d, got: %+v", feed.ID, stored[1])
	}

	got, err := feeds.GetFeed(ctx, feed.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got == nil || got.URL != "https://example.com/rss" || got.Category != "Tech" {
		t.Fatalf("Expected stored feed, got: %+v", got)
	}
	if got.Title == nil || *got.Title != "Example" {
		t.Errorf("Expected title 'Example', got: %v", got.Title)
	}

	list, err := items.GetItems(ctx, feed.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(list) != 2 || list[0].Title != "First" || list[1].Title != "Second" {
		t.Fatalf("Expected items in document order, got: %+v", list)
	}
	if list[0].ImageSource == nil || *list[0].ImageSource != "a.png" {
		t.Errorf("Expected image source 'a.png', got: %v", list[0].ImageSource)
	}
	if list[1].ImageSource != nil {
		t.Errorf("Expected nil image source, got: %v", *list[1].ImageSource)
	}

	if len(list) != 2 {
		t.Errorf("Expected 2 items, got: %d", len(list))
	}
}

func TestFeedWithoutTitle(t *testing.T) {
	db := newTestDB(t)
	feeds := NewFeedRepository(db)
	ctx := context.Background()

	feed, _, err := feeds.CreateFeedWithItems(ctx, "https://example.com/atom", "general", "general", nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got, err := feeds.GetFeed(ctx, feed.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got.Title != nil {
		t.Errorf("Expected nil title, got: %q", *got.Title)
	}
}

func TestGetFeedNotFound(t *testing.T) {
	db := newTestDB(t)
	feeds := NewFeedRepository(db)

	feed, err := feeds.GetFeed(context.Background(), 42)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if feed != nil {
		t.Errorf("Expected nil feed, got: %+v", feed)
	}
}

func TestListAndFindFeeds(t *testing.T) {
	db := newTestDB(t)
	feeds := NewFeedRepository(db)
	ctx := context.Background()

	for _, f := range []struct{ url, category, key string }{
		{"https://a.example/rss", "Tech", "tech"},
		{"https://b.example/rss", "News", "news"},
		{"https://c.example/rss", "TECH", "tech"},
	} {
		if _, _, err := feeds.CreateFeedWithItems(ctx, f.url, f.category, f.key, nil, nil); err != nil {
			t.Fatalf("Failed to create feed: %v", err)
		}
	}

	all, err := feeds.ListFeeds(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("Expected 3 feeds, got: %d (err=%v)", len(all), err)
	}

	tech, err := feeds.ListFeedsByCategory(ctx, "tech")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(tech) != 2 || tech[0].URL != "https://a.example/rss" || tech[1].URL != "https://c.example/rss" {
		t.Errorf("Expected two tech feeds in insertion order, got: %+v", tech)
	}

	none, err := feeds.ListFeedsByCategory(ctx, "sports")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("Expected empty non-nil list, got: %v (err=%v)", none, err)
	}

	found, err := feeds.FindFeedByURL(ctx, "https://b.example/rss")
	if err != nil || found == nil || found.Category != "News" {
		t.Errorf("Expected to find news feed, got: %+v (err=%v)", found, err)
	}

	missing, err := feeds.FindFeedByURL(ctx, "https://missing.example/rss")
	if err != nil || missing != nil {
		t.Errorf("Expected nil for unknown URL, got: %+v (err=%v)", missing, err)
	}

	count, err := feeds.GetFeedCount(ctx)
	if err != nil || count != 3 {
		t.Errorf("Expected count 3, got: %d (err=%v)", count, err)
	}
}

func TestUpdateFeed(t *testing.T) {
	db := newTestDB(t)
	feeds := NewFeedRepository(db)
	ctx := context.Background()

	feed, _, err := feeds.CreateFeedWithItems(ctx, "https://old.example/rss", "Old", "old", strPtr("Old title"), nil)
	if err != nil {
		t.Fatalf("Failed to create feed: %v", err)
	}

	ok, err := feeds.UpdateFeed(ctx, feed.ID, "https://new.example/rss", "New", "new", strPtr("New title"))
	if err != nil || !ok {
		t.Fatalf("Expected update to succeed, got: %v (err=%v)", ok, err)
	}

	got, _ := feeds.GetFeed(ctx, feed.ID)
	if got.URL != "https://new.example/rss" || got.Category != "New" || got.CategoryKey != "new" {
		t.Errorf("Expected updated feed, got: %+v", got)
	}
	if got.Title == nil || *got.Title != "New title" {
		t.Errorf("Expected 'New title', got: %v", got.Title)
	}

	ok, err = feeds.UpdateFeed(ctx, 999, "https://x.example/rss", "X", "x", nil)
	if err != nil || ok {
		t.Errorf("Expected no update for unknown feed, got: %v (err=%v)", ok, err)
	}
}

func TestDeleteFeedCascadesItems(t *testing.T) {
	db := newTestDB(t)
	feeds := NewFeedRepository(db)
	items := NewItemRepository(db)
	ctx := context.Background()

	feed, _, err := feeds.CreateFeedWithItems(ctx, "https://example.com/rss", "Tech", "tech", nil, []FeedItem{{Title: "one"}})
	if err != nil {
		t.Fatalf("Failed to create feed: %v", err)
	}

	ok, err := feeds.DeleteFeed(ctx, feed.ID)
	if err != nil || !ok {
		t.Fatalf("Expected delete to succeed, got: %v (err=%v)", ok, err)
	}

	remaining, err := items.GetItems(ctx, feed.ID)
	if err != nil || len(remaining) != 0 {
		t.Errorf("Expected items to be removed, got: %d (err=%v)", len(remaining), err)
	}

	ok, err = feeds.DeleteFeed(ctx, feed.ID)
	if err != nil || ok {
		t.Errorf("Expected second delete to report false, got: %v (err=%v)", ok, err)
	}
}

func TestFavoriteItems(t *testing.T) {
	db := newTestDB(t)
	feeds := NewFeedRepository(db)
	items := NewItemRepository(db)
	ctx := context.Background()

	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	feed, stored, err := feeds.CreateFeedWithItems(ctx, "https://example.com/rss", "Tech", "tech", nil, []FeedItem{
		{Title: "undated"},
		{Title: "older", PublishedAtParsed: timePtr(older)},
		{Title: "newer", PublishedAtParsed: timePtr(newer)},
		{Title: "skipped", PublishedAtParsed: timePtr(newer)},
	})
	if err != nil {
		t.Fatalf("Failed to create feed: %v", err)
	}

	for _, it := range stored[:3] {
		ok, err := items.UpdateFavorite(ctx, feed.ID, it.ID, true)
		if err != nil || !ok {
			t.Fatalf("Expected favorite update to succeed, got: %v (err=%v)", ok, err)
		}
	}

	favorites, err := items.GetFavoriteItems(ctx, feed.ID)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"newer", "older", "undated"}
	if len(favorites) != len(want) {
		t.Fatalf("Expected %d favorites, got: %d", len(want), len(favorites))
	}
	for i, title := range want {
		if favorites[i].Title != title {
			t.Errorf("Expected favorite %d to be %q, got: %q", i, title, favorites[i].Title)
		}
		if !favorites[i].Favorite {
			t.Errorf("Expected favorite flag on %q", favorites[i].Title)
		}
	}
	if favorites[0].PublishedAtParsed == nil || !favorites[0].PublishedAtParsed.Equal(newer) {
		t.Errorf("Expected parsed date %v, got: %v", newer, favorites[0].PublishedAtParsed)
	}

	item, err := items.GetItem(ctx, feed.ID, stored[0].ID)
	if err != nil || item == nil || !item.Favorite {
		t.Errorf("Expected favorite item, got: %+v (err=%v)", item, err)
	}

	ok, err := items.UpdateFavorite(ctx, feed.ID+1, stored[0].ID, false)
	if err != nil || ok {
		t.Errorf("Expected no update for item of another feed, got: %v (err=%v)", ok, err)
	}

	missing, err := items.GetItem(ctx, feed.ID, 12345)
	if err != nil || missing != nil {
		t.Errorf("Expected nil for unknown item, got: %+v (err=%v)", missing, err)
	}
}
