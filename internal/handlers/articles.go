// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/cache"
	"inkwell/internal/markdown"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

// Articles groups the article, comment, reaction, and bookmark HTTP
// handlers. Read endpoints are backed by the Valkey response cache;
// every mutation invalidates the touched keys.
type Articles struct {
	articles  *store.ArticleStore
	bookmarks *store.BookmarkStore
	users     *store.UserStore
	storage   *storage.Client     // may be nil if S3 is not configured
	cache     *cache.ArticleCache // may be nil if Valkey is not configured
}

// NewArticles creates a new Articles handler group.
func NewArticles(articles *store.ArticleStore, bookmarks *store.BookmarkStore, users *store.UserStore, sc *storage.Client, ac *cache.ArticleCache) *Articles {
	return &Articles{
		articles:  articles,
		bookmarks: bookmarks,
		users:     users,
		storage:   sc,
		cache:     ac,
	}
}

// urlID parses the {id} URL parameter.
func urlID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

// serveCached writes the cached payload for key if present. Returns
// true when the response was served.
func (h *Articles) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.cache == nil {
		return false
	}
	payload, ok := h.cache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
	return true
}

// respondAndCache writes v as JSON and stores the payload under key.
func (h *Articles) respondAndCache(w http.ResponseWriter, r *http.Request, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		respondError(w, err)
		return
	}
	if h.cache != nil {
		h.cache.Set(r.Context(), key, payload)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// invalidate drops the article's cached detail and every listing.
func (h *Articles) invalidate(r *http.Request, id uuid.UUID) {
	if h.cache != nil {
		h.cache.InvalidateArticle(r.Context(), id)
	}
}

// List returns all articles, newest first.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	if h.serveCached(w, r, cache.ListKey()) {
		return
	}

	items, err := h.articles.List()
	if err != nil {
		respondError(w, err)
		return
	}
	resolveArticles(h.storage, items)
	h.respondAndCache(w, r, cache.ListKey(), items)
}

// Search returns articles whose title, subtitle, or content contains
// the query as a case-insensitive substring.
func (h *Articles) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondMessage(w, http.StatusBadRequest, "no search query provided")
		return
	}

	items, err := h.articles.Search(q)
	if err != nil {
		respondError(w, err)
		return
	}
	resolveArticles(h.storage, items)
	respondJSON(w, http.StatusOK, items)
}

// Admin returns the full article listing for moderation. Only users
// with the admin role may call it.
func (h *Articles) Admin(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	user, err := h.users.FindByID(id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || !user.IsAdmin() {
		respondMessage(w, http.StatusForbidden, "not allowed to perform this operation")
		return
	}

	items, err := h.articles.List()
	if err != nil {
		respondError(w, err)
		return
	}
	resolveArticles(h.storage, items)
	respondJSON(w, http.StatusOK, items)
}

// Get returns a single article with comments, replies, reaction sets,
// and the Markdown body rendered to HTML.
func (h *Articles) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if h.serveCached(w, r, cache.ArticleKey(id)) {
		return
	}

	article, err := h.articles.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if article == nil {
		respondMessage(w, http.StatusNotFound, "no article found")
		return
	}

	h.present(article)
	h.respondAndCache(w, r, cache.ArticleKey(id), article)
}

// present renders the article body and resolves media URLs for a
// detail response.
func (h *Articles) present(a *models.Article) {
	html, err := markdown.ToHTML(a.Content)
	if err != nil {
		slog.Warn("markdown render failed", "article", a.ID, "error", err)
	} else {
		a.ContentHTML = html
	}
	resolveArticle(h.storage, a)
}

// Create adds a new article. The body is a multipart form with title,
// subtitle, content, category, tag, and an optional cover image. The
// image is stored before the row is inserted.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	title := r.FormValue("title")
	subtitle := r.FormValue("subtitle")
	content := r.FormValue("content")
	category := r.FormValue("category")
	tag := r.FormValue("tag")
	if msg := validateArticle(title, subtitle, content, category, tag); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	imageData, err := readImageUpload(r, "image")
	if err != nil {
		respondError(w, err)
		return
	}
	imageKey, err := storeCover(r.Context(), h.storage, imageData)
	if err != nil {
		respondError(w, err)
		return
	}

	article := &models.Article{
		Title:    title,
		Content:  content,
		Category: category,
		Tag:      tag,
		ImageKey: imageKey,
		AuthorID: id.UserID,
	}
	if subtitle != "" {
		article.Subtitle = &subtitle
	}

	created, err := h.articles.Create(article)
	if err != nil {
		// The row was not created, so the stored image is orphaned.
		if imageKey != "" {
			h.releaseImage(r, imageKey)
		}
		respondError(w, err)
		return
	}

	h.invalidate(r, created.ID)
	h.present(created)
	slog.Info("article created", "article", created.ID, "author", id.UserID)
	respondJSON(w, http.StatusCreated, created)
}

// Update modifies an article's title and content. Author only.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid article id")
		return
	}
	caller := middleware.IdentityFromCtx(r.Context())

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateArticleUpdate(req.Title, req.Content); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.articles.Update(id, caller.UserID, req.Title, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	h.invalidate(r, id)
	h.present(updated)
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes an article. Comments and reactions cascade in the
// database; the cover image is released best-effort afterwards.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid article id")
		return
	}
	caller := middleware.IdentityFromCtx(r.Context())

	imageKey, err := h.articles.Delete(id, caller.UserID)
	if err != nil {
		respondError(w, err)
		return
	}

	if imageKey != "" {
		h.releaseImage(r, imageKey)
	}
	h.invalidate(r, id)
	slog.Info("article deleted", "article", id, "author", caller.UserID)
	respondMessage(w, http.StatusOK, "article deleted")
}

// releaseImage deletes a stored image, logging failures only. The
// article mutation has already committed; a leaked object is preferable
// to a failed request.
func (h *Articles) releaseImage(r *http.Request, key string) {
	if h.storage == nil {
		return
	}
	if err := h.storage.Release(r.Context(), key); err != nil {
		slog.Warn("image release failed", "key", key, "error", err)
	}
}

// Comment appends a comment to an article and returns the updated article.
func (h *Articles) Comment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid article id")
		return
	}
	caller := middleware.IdentityFromCtx(r.Context())

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articles.CreateComment(id, caller.UserID, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}

	h.invalidate(r, id)
	h.present(article)
	respondJSON(w, http.StatusCreated, article)
}

// Reply appends a reply to a comment and returns the updated article.
// The comment must belong to the article in the URL.
func (h *Articles) Reply(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid article id")
		return
	}
	commentID, ok := urlID(r, "commentID")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	caller := middleware.IdentityFromCtx(r.Context())

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.articles.CreateReply(id, commentID, caller.UserID, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}

	h.invalidate(r, id)
	h.present(article)
	respondJSON(w, http.StatusCreated, article)
}

// Like records a like by the caller.
func (h *Articles) Like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, models.ReactionLike)
}

// Dislike records a dislike by the caller.
func (h *Articles) Dislike(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, models.ReactionDislike)
}

func (h *Articles) react(w http.ResponseWriter, r *http.Request, kind models.ReactionKind) {
	id, ok := urlID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid article id")
		return
	}
	caller := middleware.IdentityFromCtx(r.Context())

	article, err := h.articles.React(id, caller.UserID, kind)
	if err != nil {
		respondError(w, err)
		return
	}

	h.invalidate(r, id)
	h.present(article)
	respondJSON(w, http.StatusOK, article)
}

// Bookmark adds the article to the caller's bookmark set. Adding an
// already-bookmarked article is a no-op.
func (h *Articles) Bookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid article id")
		return
	}
	caller := middleware.IdentityFromCtx(r.Context())

	if err := h.bookmarks.Add(caller.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "article bookmarked")
}

// Unbookmark removes the article from the caller's bookmark set.
// Removing an id that is not bookmarked succeeds as a no-op.
func (h *Articles) Unbookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondMessage(w, http.StatusBadRequest, "invalid article id")
		return
	}
	caller := middleware.IdentityFromCtx(r.Context())

	if err := h.bookmarks.Remove(caller.UserID, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "bookmark removed")
}
