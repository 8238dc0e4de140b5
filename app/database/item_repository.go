package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const itemColumns = `id, feed_id, position, title, link, description, content,
	image_source, author, published_at, published_at_parsed, favorite, created_at`

// SQLItemRepository handles database operations for feed items
type SQLItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *SQLItemRepository {
	return &SQLItemRepository{db: db}
}

// GetItems returns a feed's items in document order.
func (r *SQLItemRepository) GetItems(ctx context.Context, feedID int64) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM feed_items
		WHERE feed_id = ?
		ORDER BY position
	`, feedID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	return collectItems(rows)
}

// GetFavoriteItems returns a feed's favorite items, newest first. Items without a parseable date go last.
func (r *SQLItemRepository) GetFavoriteItems(ctx context.Context, feedID int64) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM feed_items
		WHERE feed_id = ? AND favorite = 1
		ORDER BY published_at_parsed IS NULL, published_at_parsed DESC, position
	`, feedID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite items: %w", err)
	}
	return collectItems(rows)
}

func (r *SQLItemRepository) GetItem(ctx context.Context, feedID, itemID int64) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM feed_items
		WHERE feed_id = ? AND id = ?
	`, feedID, itemID)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

func (r *SQLItemRepository) UpdateFavorite(ctx context.Context, feedID, itemID int64, favorite bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE feed_items
		SET favorite = ?
		WHERE feed_id = ? AND id = ?
	`, favorite, feedID, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to update item favorite: %w", err)
	}
	return affected(res)
}

func insertItems(ctx context.Context, tx *sql.Tx, feedID int64, items []FeedItem, now time.Time) ([]Item, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO feed_items (
			feed_id, position, title, link, description, content,
			image_source, author, published_at, published_at_parsed, favorite, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer stmt.Close()

	stored := make([]Item, 0, len(items))
	for i, it := range items {
		res, err := stmt.ExecContext(ctx, feedID, i, it.Title, it.Link, it.Description, it.Content,
			it.ImageSource, it.Author, it.PublishedAt, it.PublishedAtParsed, it.Favorite, now)
		if err != nil {
			return nil, fmt.Errorf("failed to store item: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get item id: %w", err)
		}

		stored = append(stored, Item{
			ID:                id,
			FeedID:            feedID,
			Position:          i,
			Title:             it.Title,
			Link:              it.Link,
			Description:       it.Description,
			Content:           it.Content,
			ImageSource:       it.ImageSource,
			Author:            it.Author,
			PublishedAt:       it.PublishedAt,
			PublishedAtParsed: it.PublishedAtParsed,
			Favorite:          it.Favorite,
			CreatedAt:         now,
		})
	}

	return stored, nil
}

func scanItem(row rowScanner) (*Item, error) {
	var item Item
	var imageSource sql.NullString
	var parsed sql.NullTime
	err := row.Scan(
		&item.ID, &item.FeedID, &item.Position, &item.Title, &item.Link,
		&item.Description, &item.Content, &imageSource, &item.Author,
		&item.PublishedAt, &parsed, &item.Favorite, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if imageSource.Valid {
		item.ImageSource = &imageSource.String
	}
	if parsed.Valid {
		item.PublishedAtParsed = &parsed.Time
	}
	return &item, nil
}

func collectItems(rows *sql.Rows) ([]Item, error) {
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}
