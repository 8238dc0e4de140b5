package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const feedColumns = `id, url, category, category_key, feed_title, created_at, updated_at`

// SQLFeedRepository handles database operations for subscribed feeds
type SQLFeedRepository struct {
	db *DB
}

func NewFeedRepository(db *DB) *SQLFeedRepository {
	return &SQLFeedRepository{db: db}
}

// CreateFeedWithItems stores a feed and its items in one transaction.
func (r *SQLFeedRepository) CreateFeedWithItems(ctx context.Context, url, category, categoryKey string, title *string, items []FeedItem) (*Feed, []Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO feeds (url, category, category_key, feed_title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, url, category, categoryKey, title, now, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert feed: %w", err)
	}

	feedID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get feed id: %w", err)
	}

	stored, err := insertItems(ctx, tx, feedID, items, now)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit feed: %w", err)
	}

	feed := &Feed{
		ID:          feedID,
		URL:         url,
		Category:    category,
		CategoryKey: categoryKey,
		Title:       title,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return feed, stored, nil
}

func (r *SQLFeedRepository) GetFeed(ctx context.Context, id int64) (*Feed, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE id = ?`, id)

	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}

	return feed, nil
}

func (r *SQLFeedRepository) FindFeedByURL(ctx context.Context, url string) (*Feed, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE url = ? ORDER BY id LIMIT 1`, url)

	feed, err := scanFeed(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feed by URL: %w", err)
	}

	return feed, nil
}

func (r *SQLFeedRepository) ListFeeds(ctx context.Context) ([]Feed, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+feedColumns+` FROM feeds ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds: %w", err)
	}
	return collectFeeds(rows)
}

func (r *SQLFeedRepository) ListFeedsByCategory(ctx context.Context, categoryKey string) ([]Feed, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE category_key = ? ORDER BY id`, categoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list feeds by category: %w", err)
	}
	return collectFeeds(rows)
}

func (r *SQLFeedRepository) GetFeedCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feeds`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count feeds: %w", err)
	}
	return count, nil
}

// UpdateFeed changes a feed's source and category. It reports false when no feed has the id.
func (r *SQLFeedRepository) UpdateFeed(ctx context.Context, id int64, url, category, categoryKey string, title *string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE feeds
		SET url = ?, category = ?, category_key = ?, feed_title = ?, updated_at = ?
		WHERE id = ?
	`, url, category, categoryKey, title, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to update feed: %w", err)
	}
	return affected(res)
}

// DeleteFeed removes a feed; its items go with it.
func (r *SQLFeedRepository) DeleteFeed(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM feeds WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete feed: %w", err)
	}
	return affected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeed(row rowScanner) (*Feed, error) {
	var feed Feed
	var title sql.NullString
	err := row.Scan(&feed.ID, &feed.URL, &feed.Category, &feed.CategoryKey, &title, &feed.CreatedAt, &feed.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if title.Valid {
		feed.Title = &title.String
	}
	return &feed, nil
}

func collectFeeds(rows *sql.Rows) ([]Feed, error) {
	defer rows.Close()

	feeds := []Feed{}
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		feeds = append(feeds, *feed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return feeds, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}
