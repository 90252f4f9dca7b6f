// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

// Users groups the account and profile HTTP handlers.
type Users struct {
	users     *store.UserStore
	articles  *store.ArticleStore
	bookmarks *store.BookmarkStore
	issuer    *auth.Issuer
	storage   *storage.Client // may be nil if S3 is not configured
}

// NewUsers creates a new Users handler group.
func NewUsers(users *store.UserStore, articles *store.ArticleStore, bookmarks *store.BookmarkStore, issuer *auth.Issuer, sc *storage.Client) *Users {
	return &Users{
		users:     users,
		articles:  articles,
		bookmarks: bookmarks,
		issuer:    issuer,
		storage:   sc,
	}
}

// Signup registers a new account. The body is a multipart form with
// name, email, password, bio, and an optional avatar image.
func (h *Users) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")
	bio := r.FormValue("bio")
	if msg := validateSignup(name, email, password, bio); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	avatarData, err := readImageUpload(r, "avatar")
	if err != nil {
		respondError(w, err)
		return
	}
	avatarKey, err := storeAvatar(r.Context(), h.storage, avatarData)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.Create(name, email, password, bio, avatarKey)
	if err != nil {
		respondError(w, err)
		return
	}

	resolveUser(h.storage, user)
	slog.Info("user signed up", "user", user.ID, "email", user.Email)
	respondJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and returns a bearer token with the user.
func (h *Users) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil || !h.users.CheckPassword(user, req.Password) {
		respondMessage(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	resolveUser(h.storage, user)
	slog.Info("user logged in", "user", user.ID)
	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// List returns every member except the caller.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	users, err := h.users.ListExcluding(id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	for i := range users {
		resolveUser(h.storage, &users[i])
	}
	respondJSON(w, http.StatusOK, users)
}

// Get returns a member profile with their articles and the ids of the
// articles they like. Both sets are derived, never stored on the user.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondMessage(w, http.StatusNotFound, "no user found")
		return
	}

	articles, err := h.articles.ListByAuthor(id)
	if err != nil {
		respondError(w, err)
		return
	}
	likes, err := h.users.LikedArticleIDs(id)
	if err != nil {
		respondError(w, err)
		return
	}

	resolveUser(h.storage, user)
	resolveArticles(h.storage, articles)
	respondJSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"articles": articles,
		"likes":    likes,
	})
}

// Bookmarks returns the caller's bookmarked articles, most recently
// bookmarked first. Bookmarks whose article was deleted are filtered.
func (h *Users) Bookmarks(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromCtx(r.Context())

	items, err := h.bookmarks.List(id.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	resolveArticles(h.storage, items)
	respondJSON(w, http.StatusOK, items)
}
