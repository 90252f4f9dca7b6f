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

// React records a like or dislike by the acting user on an article and
// returns the updated article.
//
// Rules, in order: the article and user must exist; the author cannot
// react to their own article; repeating the same reaction is a
// conflict; switching kinds moves the user between the two sets.
//
// The switch happens in ONE statement: the upsert flips the kind only
// when it differs, so concurrent reactions from different users cannot
// lose updates, and a user can never occupy both sets. Counts are
// derived from the rows, so they stay equal to the set sizes by
// construction.
func (s *ArticleStore) React(articleID, actingUserID uuid.UUID, kind models.ReactionKind) (*models.Article, error) {
	if !kind.Valid() {
		return nil, fault.Invalid("unknown reaction kind")
	}

	var authorID uuid.UUID
	err := s.db.QueryRow(`SELECT author_id FROM articles WHERE id = $1`, articleID).Scan(&authorID)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound("no article found")
	}
	if err != nil {
		return nil, fmt.Errorf("load article for reaction: %w", err)
	}

	var userExists bool
	if err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, actingUserID).Scan(&userExists); err != nil {
		return nil, fmt.Errorf("check user for reaction: %w", err)
	}
	if !userExists {
		return nil, fault.NotFound("no user found")
	}

	if authorID == actingUserID {
		return nil, fault.Denied(fmt.Sprintf("cannot %s your own article", kind))
	}

	res, err := s.db.Exec(`
		INSERT INTO article_reactions (article_id, user_id, kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (article_id, user_id)
		DO UPDATE SET kind = EXCLUDED.kind, created_at = NOW()
		WHERE article_reactions.kind <> EXCLUDED.kind
	`, articleID, actingUserID, kind)
	if err != nil {
		return nil, fmt.Errorf("upsert reaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reaction rows: %w", err)
	}
	if n == 0 {
		return nil, fault.Conflict(fmt.Sprintf("already %sd this article", kind))
	}

	return s.FindByID(articleID)
}
