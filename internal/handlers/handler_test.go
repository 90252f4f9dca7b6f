// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Integration tests exercising the handler groups over a real
// PostgreSQL database. Skipped when the database is unavailable.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/auth"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "postgres://" + envOr("POSTGRES_USER", "inkwell") + ":" +
		envOr("POSTGRES_PASSWORD", "changeme") + "@" +
		envOr("POSTGRES_HOST", "localhost") + ":" +
		envOr("POSTGRES_PORT", "5432") + "/" +
		envOr("POSTGRES_DB", "inkwell") + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testAPI wires the handler groups onto a router with the real auth
// middleware. Storage and cache stay nil: uploads are skipped and reads
// go straight to the database.
func testAPI(t *testing.T, db *sql.DB) http.Handler {
	t.Helper()

	issuer := auth.NewIssuer("handler-test-secret")
	users := NewUsers(store.NewUserStore(db), store.NewArticleStore(db), store.NewBookmarkStore(db), issuer, nil)
	articles := NewArticles(store.NewArticleStore(db), store.NewBookmarkStore(db), store.NewUserStore(db), nil, nil)

	r := chi.NewRouter()
	r.Use(middleware.Authenticate(issuer))
	r.Post("/api/users/signup", users.Signup)
	r.Post("/api/users/login", users.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/api/articles", articles.Create)
		r.Post("/api/articles/{id}/comments", articles.Comment)
		r.Post("/api/articles/{id}/like", articles.Like)
	})
	return r
}

func cleanEmails(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		var id string
		if err := db.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&id); err != nil {
			continue
		}
		db.Exec(`DELETE FROM replies WHERE replier_id = $1`, id)
		db.Exec(`DELETE FROM comments WHERE commentator_id = $1`, id)
		db.Exec(`DELETE FROM articles WHERE author_id = $1`, id)
		db.Exec(`DELETE FROM users WHERE id = $1`, id)
	}
}

// multipartBody builds a multipart form from field pairs.
func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func signupAndLogin(t *testing.T, api http.Handler, email string) string {
	t.Helper()

	body, ct := multipartBody(t, map[string]string{
		"name":     "User " + email,
		"email":    email,
		"password": "testpass123",
		"bio":      "",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("signup: got %d: %s", rr.Code, rr.Body.String())
	}

	login := strings.NewReader(`{"email":"` + email + `","password":"testpass123"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/users/login", login)
	rr = httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login: got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login response missing token")
	}
	return resp.Token
}

func TestSignupLoginAndArticleFlow(t *testing.T) {
	db := testDB(t)
	api := testAPI(t, db)

	authorEmail := "flow-author@handler-test.local"
	readerEmail := "flow-reader@handler-test.local"
	t.Cleanup(func() { cleanEmails(t, db, authorEmail, readerEmail) })

	authorToken := signupAndLogin(t, api, authorEmail)
	readerToken := signupAndLogin(t, api, readerEmail)

	// Author publishes an article.
	body, ct := multipartBody(t, map[string]string{
		"title":    "Handler Flow",
		"content":  "article body",
		"category": "testing",
		"tag":      "test",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/articles", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+authorToken)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create article: got %d: %s", rr.Code, rr.Body.String())
	}

	var article models.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &article); err != nil {
		t.Fatalf("decode article: %v", err)
	}
	if article.ContentHTML == "" {
		t.Error("detail response missing rendered content")
	}

	// Reader comments on it.
	req = httptest.NewRequest(http.MethodPost, "/api/articles/"+article.ID.String()+"/comments",
		strings.NewReader(`{"body":"nice one"}`))
	req.Header.Set("Authorization", "Bearer "+readerToken)
	rr = httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("comment: got %d: %s", rr.Code, rr.Body.String())
	}

	// Reader likes it.
	req = httptest.NewRequest(http.MethodPost, "/api/articles/"+article.ID.String()+"/like", nil)
	req.Header.Set("Authorization", "Bearer "+readerToken)
	rr = httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("like: got %d: %s", rr.Code, rr.Body.String())
	}
	var liked models.Article
	if err := json.Unmarshal(rr.Body.Bytes(), &liked); err != nil {
		t.Fatalf("decode liked article: %v", err)
	}
	if liked.Likes != 1 {
		t.Errorf("likes: got %d, want 1", liked.Likes)
	}

	// The author cannot like their own article.
	req = httptest.NewRequest(http.MethodPost, "/api/articles/"+article.ID.String()+"/like", nil)
	req.Header.Set("Authorization", "Bearer "+authorToken)
	rr = httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("self-like: got %d, want 403", rr.Code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := testDB(t)
	api := testAPI(t, db)

	email := "dup@handler-test.local"
	t.Cleanup(func() { cleanEmails(t, db, email) })

	signupAndLogin(t, api, email)

	body, ct := multipartBody(t, map[string]string{
		"name":     "Second",
		"email":    email,
		"password": "testpass123",
		"bio":      "",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users/signup", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate signup: got %d, want 409", rr.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := testDB(t)
	api := testAPI(t, db)

	email := "wrongpass@handler-test.local"
	t.Cleanup(func() { cleanEmails(t, db, email) })
	signupAndLogin(t, api, email)

	req := httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"`+email+`","password":"not-the-password"}`))
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: got %d, want 401", rr.Code)
	}
}
