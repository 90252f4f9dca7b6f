// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/fault"
	"inkwell/internal/models"
)

// ArticleStore handles all article-related database operations: the
// article rows themselves plus their derived like/dislike state.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// listQuery joins the author identity and derives reaction counts in a
// single pass. Counts are computed from the reactions table, so they
// always equal the cardinality of the underlying sets.
const listQuery = `
	SELECT a.id, a.title, a.subtitle, a.content, a.image_key, a.category, a.tag,
	       a.author_id, a.created_at, a.updated_at,
	       u.name, u.avatar_key,
	       COUNT(r.*) FILTER (WHERE r.kind = 'like')    AS likes,
	       COUNT(r.*) FILTER (WHERE r.kind = 'dislike') AS dislikes
	FROM articles a
	JOIN users u ON u.id = a.author_id
	LEFT JOIN article_reactions r ON r.article_id = a.id
`

const listGroupBy = ` GROUP BY a.id, u.name, u.avatar_key`

func scanArticleRow(scanner interface{ Scan(...any) error }) (*models.Article, error) {
	var a models.Article
	var authorName, authorAvatar string
	err := scanner.Scan(
		&a.ID, &a.Title, &a.Subtitle, &a.Content, &a.ImageKey, &a.Category, &a.Tag,
		&a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
		&authorName, &authorAvatar,
		&a.Likes, &a.Dislikes,
	)
	if err != nil {
		return nil, err
	}
	a.Author = &models.UserRef{ID: a.AuthorID, Name: authorName, AvatarKey: authorAvatar}
	return &a, nil
}

func (s *ArticleStore) queryList(query string, args ...any) ([]models.Article, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// List returns all articles, newest first, with resolved author
// identities and derived reaction counts.
func (s *ArticleStore) List() ([]models.Article, error) {
	return s.queryList(listQuery + listGroupBy + ` ORDER BY a.created_at DESC`)
}

// ListByAuthor returns the given user's articles, newest first. The
// author's article set is derived from the author_id column, so it can
// never reference a deleted article.
func (s *ArticleStore) ListByAuthor(authorID uuid.UUID) ([]models.Article, error) {
	return s.queryList(listQuery+` WHERE a.author_id = $1`+listGroupBy+` ORDER BY a.created_at DESC`, authorID)
}

// Search returns articles whose title, subtitle, or content contains
// the query as a case-insensitive substring.
func (s *ArticleStore) Search(query string) ([]models.Article, error) {
	pattern := "%" + escapeLike(query) + "%"
	return s.queryList(listQuery+`
		WHERE a.title ILIKE $1 ESCAPE '\'
		   OR a.subtitle ILIKE $1 ESCAPE '\'
		   OR a.content ILIKE $1 ESCAPE '\'`+listGroupBy+` ORDER BY a.created_at DESC`, pattern)
}

// escapeLike neutralizes LIKE metacharacters so the search query is
// matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// FindByID retrieves a single article with comments, replies, reaction
// sets, and all user references resolved to display form. Returns nil
// if not found.
func (s *ArticleStore) FindByID(id uuid.UUID) (*models.Article, error) {
	row := s.db.QueryRow(listQuery+` WHERE a.id = $1`+listGroupBy, id)
	a, err := scanArticleRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}

	if a.LikedBy, a.DislikedBy, err = s.reactionSets(id); err != nil {
		return nil, err
	}
	if a.Comments, err = s.comments(id); err != nil {
		return nil, err
	}
	return a, nil
}

// reactionSets loads the like and dislike user-id sets for an article.
func (s *ArticleStore) reactionSets(articleID uuid.UUID) (liked, disliked []uuid.UUID, err error) {
	rows, err := s.db.Query(`
		SELECT user_id, kind FROM article_reactions
		WHERE article_id = $1 ORDER BY created_at ASC
	`, articleID)
	if err != nil {
		return nil, nil, fmt.Errorf("load reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID uuid.UUID
		var kind models.ReactionKind
		if err := rows.Scan(&userID, &kind); err != nil {
			return nil, nil, fmt.Errorf("scan reaction: %w", err)
		}
		if kind == models.ReactionLike {
			liked = append(liked, userID)
		} else {
			disliked = append(disliked, userID)
		}
	}
	return liked, disliked, rows.Err()
}

// comments loads the ordered comment sequence with nested replies and
// resolved commentator/replier identities.
func (s *ArticleStore) comments(articleID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.article_id, c.body, c.created_at, u.id, u.name, u.avatar_key
		FROM comments c
		JOIN users u ON u.id = c.commentator_id
		WHERE c.article_id = $1
		ORDER BY c.created_at ASC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.ArticleID, &c.Body, &c.CreatedAt,
			&c.Commentator.ID, &c.Commentator.Name, &c.Commentator.AvatarKey,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		index[c.ID] = len(comments)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, nil
	}

	replyRows, err := s.db.Query(`
		SELECT r.id, r.comment_id, r.body, r.created_at, u.id, u.name, u.avatar_key
		FROM replies r
		JOIN comments c ON c.id = r.comment_id
		JOIN users u ON u.id = r.replier_id
		WHERE c.article_id = $1
		ORDER BY r.created_at ASC
	`, articleID)
	if err != nil {
		return nil, fmt.Errorf("load replies: %w", err)
	}
	defer replyRows.Close()

	for replyRows.Next() {
		var r models.Reply
		if err := replyRows.Scan(
			&r.ID, &r.CommentID, &r.Body, &r.CreatedAt,
			&r.Replier.ID, &r.Replier.Name, &r.Replier.AvatarKey,
		); err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		if i, ok := index[r.CommentID]; ok {
			comments[i].Replies = append(comments[i].Replies, r)
		}
	}
	return comments, replyRows.Err()
}

// Create inserts a new article and returns it with the author resolved.
// The author's article set needs no separate update: it is derived from
// author_id.
func (s *ArticleStore) Create(a *models.Article) (*models.Article, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, a.AuthorID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check author: %w", err)
	}
	if !exists {
		return nil, fault.NotFound("no user found")
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO articles (title, subtitle, content, image_key, category, tag, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, a.Title, a.Subtitle, a.Content, a.ImageKey, a.Category, a.Tag, a.AuthorID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies an article's title and content. Only the author may
// update, and no other field is mutable through this path.
func (s *ArticleStore) Update(articleID, actingUserID uuid.UUID, title, content string) (*models.Article, error) {
	if err := s.requireOwnership(articleID, actingUserID); err != nil {
		return nil, err
	}

	_, err := s.db.Exec(`
		UPDATE articles SET title = $1, content = $2, updated_at = NOW() WHERE id = $3
	`, title, content, articleID)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return s.FindByID(articleID)
}

// Delete removes an article after an ownership check. Comments,
// replies, and reactions cascade in the database; bookmark rows are
// soft references that list queries filter out. The stored image key is
// returned so the caller can release the image best-effort.
func (s *ArticleStore) Delete(articleID, actingUserID uuid.UUID) (imageKey string, err error) {
	var authorID uuid.UUID
	err = s.db.QueryRow(`SELECT author_id, image_key FROM articles WHERE id = $1`, articleID).
		Scan(&authorID, &imageKey)
	if err == sql.ErrNoRows {
		return "", fault.NotFound("no article found")
	}
	if err != nil {
		return "", fmt.Errorf("load article for delete: %w", err)
	}
	if authorID != actingUserID {
		return "", fault.Denied("not allowed to perform this operation")
	}

	_, err = s.db.Exec(`DELETE FROM articles WHERE id = $1 AND author_id = $2`, articleID, actingUserID)
	if err != nil {
		return "", fmt.Errorf("delete article: %w", err)
	}
	return imageKey, nil
}

// requireOwnership loads the article's author and checks it against the
// acting user. Identity comparison happens on uuid values only, never
// on string forms.
func (s *ArticleStore) requireOwnership(articleID, actingUserID uuid.UUID) error {
	var authorID uuid.UUID
	err := s.db.QueryRow(`SELECT author_id FROM articles WHERE id = $1`, articleID).Scan(&authorID)
	if err == sql.ErrNoRows {
		return fault.NotFound("no article found")
	}
	if err != nil {
		return fmt.Errorf("load article author: %w", err)
	}
	if authorID != actingUserID {
		return fault.Denied("not allowed to perform this operation")
	}
	return nil
}
