// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReactionKind is the type of a user's reaction to an article.
// A user holds at most one reaction per article.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Opposite returns the other reaction kind.
func (k ReactionKind) Opposite() ReactionKind {
	if k == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}

// Valid reports whether k is a known reaction kind.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Article represents a published article. Like/dislike counts are
// derived from the reactions table and never stored, so they cannot
// drift from the underlying sets.
type Article struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Subtitle    *string    `json:"subtitle,omitempty"`
	Content     string     `json:"content"`
	ContentHTML string     `json:"content_html,omitempty"` // Rendered Markdown, detail views only
	ImageKey    string     `json:"-"`
	ImageURL    string     `json:"image_url,omitempty"`
	Category    string     `json:"category"`
	Tag         string     `json:"tag"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Author      *UserRef   `json:"author,omitempty"` // Resolved display identity
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Likes      int         `json:"likes"`
	Dislikes   int         `json:"dislikes"`
	LikedBy    []uuid.UUID `json:"liked_by,omitempty"`
	DislikedBy []uuid.UUID `json:"disliked_by,omitempty"`

	Comments []Comment `json:"comments,omitempty"`
}

// Comment is a top-level comment on an article.
type Comment struct {
	ID          uuid.UUID `json:"id"`
	ArticleID   uuid.UUID `json:"article_id"`
	Commentator UserRef   `json:"commentator"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
	Replies     []Reply   `json:"replies,omitempty"`
}

// Reply is a nested reply to a comment.
type Reply struct {
	ID        uuid.UUID `json:"id"`
	CommentID uuid.UUID `json:"comment_id"`
	Replier   UserRef   `json:"replier"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
