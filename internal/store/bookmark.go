// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/fault"
	"inkwell/internal/models"
)

// BookmarkStore manages the per-user bookmark sets. Bookmarks hold a
// soft reference to articles: the referenced article may have been
// deleted since, and listing filters such rows out.
type BookmarkStore struct {
	db *sql.DB
}

// NewBookmarkStore creates a new BookmarkStore with the given database connection.
func NewBookmarkStore(db *sql.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// Add bookmarks an article for a user. Adding an already-bookmarked
// article is a no-op: the set never holds duplicates. The article must
// exist at the time of bookmarking.
func (s *BookmarkStore) Add(userID, articleID uuid.UUID) error {
	var articleExists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1)`, articleID).Scan(&articleExists)
	if err != nil {
		return fmt.Errorf("check article for bookmark: %w", err)
	}
	if !articleExists {
		return fault.NotFound("no article found")
	}

	_, err = s.db.Exec(`
		INSERT INTO bookmarks (user_id, article_id) VALUES ($1, $2)
		ON CONFLICT (user_id, article_id) DO NOTHING
	`, userID, articleID)
	if err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// Remove deletes a bookmark. Removing an id that is not bookmarked —
// including one left dangling by an article deletion — succeeds as a
// no-op.
func (s *BookmarkStore) Remove(userID, articleID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM bookmarks WHERE user_id = $1 AND article_id = $2
	`, userID, articleID)
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// List returns the user's bookmarked articles, most recently bookmarked
// first. The join drops bookmarks whose article no longer exists.
func (s *BookmarkStore) List(userID uuid.UUID) ([]models.Article, error) {
	rows, err := s.db.Query(listQuery+`
		JOIN bookmarks b ON b.article_id = a.id
		WHERE b.user_id = $1
	`+listGroupBy+`, b.created_at ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmarked article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}
