// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"inkwell/internal/fault"
	"inkwell/internal/models"
)

// MaxCommentLen is the maximum length, in runes, of a comment or reply body.
const MaxCommentLen = 200

// validateBody enforces the shared length rule for comments and replies.
func validateBody(body, what string) error {
	if strings.TrimSpace(body) == "" {
		return fault.Invalid("no " + what + " provided")
	}
	if utf8.RuneCountInString(body) > MaxCommentLen {
		return fault.Invalid(fmt.Sprintf("%s may not exceed %d characters", what, MaxCommentLen))
	}
	return nil
}

// CreateComment appends a comment to an article and returns the article
// with its comment list populated. The article and the commenting user
// must both exist.
func (s *ArticleStore) CreateComment(articleID, actingUserID uuid.UUID, body string) (*models.Article, error) {
	if err := validateBody(body, "comment"); err != nil {
		return nil, err
	}
	if err := s.requireUserAndArticle(articleID, actingUserID); err != nil {
		return nil, err
	}

	_, err := s.db.Exec(`
		INSERT INTO comments (article_id, commentator_id, body) VALUES ($1, $2, $3)
	`, articleID, actingUserID, body)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.FindByID(articleID)
}

// CreateReply appends a reply to a comment and returns the updated
// article. The (article, comment) pair must exist: a comment id that
// does not belong to the article reports NotFound rather than creating
// anything.
func (s *ArticleStore) CreateReply(articleID, commentID, actingUserID uuid.UUID, body string) (*models.Article, error) {
	if err := validateBody(body, "reply"); err != nil {
		return nil, err
	}
	if err := s.requireUserAndArticle(articleID, actingUserID); err != nil {
		return nil, err
	}

	// The insert succeeds only if the comment belongs to this article,
	// so a stale or foreign comment id can never spawn a new record.
	res, err := s.db.Exec(`
		INSERT INTO replies (comment_id, replier_id, body)
		SELECT c.id, $3, $4 FROM comments c
		WHERE c.id = $2 AND c.article_id = $1
	`, articleID, commentID, actingUserID, body)
	if err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("create reply rows: %w", err)
	}
	if n == 0 {
		return nil, fault.NotFound("no comment found on this article")
	}
	return s.FindByID(articleID)
}

// requireUserAndArticle verifies both ends of an interaction exist.
func (s *ArticleStore) requireUserAndArticle(articleID, userID uuid.UUID) error {
	var articleExists, userExists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM articles WHERE id = $1),
		       EXISTS (SELECT 1 FROM users WHERE id = $2)
	`, articleID, userID).Scan(&articleExists, &userExists)
	if err != nil {
		return fmt.Errorf("check article and user: %w", err)
	}
	if !articleExists {
		return fault.NotFound("no article found")
	}
	if !userExists {
		return fault.NotFound("no user found")
	}
	return nil
}
