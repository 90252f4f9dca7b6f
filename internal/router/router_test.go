// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, the
// authentication gates on write routes, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/handlers"
)

// newTestRouter builds the full route tree with nil stores. Routes that
// reach a store would panic, so tests exercise only the middleware
// gates in front of the handlers.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	issuer := auth.NewIssuer("router-test-secret")
	users := handlers.NewUsers(nil, nil, nil, issuer, nil)
	articles := handlers.NewArticles(nil, nil, nil, nil, nil)
	categories := handlers.NewRegistry(nil)
	tags := handlers.NewRegistry(nil)

	r, limiter := New(issuer, users, articles, categories, tags)
	t.Cleanup(limiter.Stop)
	return r
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestHealthThroughRouter(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d, want 200", w.Code)
	}
}

func TestWriteRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)
	id := "0d2cb9b6-4c3f-4b84-9d3c-111111111111"

	routes := []struct{ method, path string }{
		{"POST", "/api/articles/"},
		{"PUT", "/api/articles/" + id},
		{"DELETE", "/api/articles/" + id},
		{"POST", "/api/articles/" + id + "/comments"},
		{"POST", "/api/articles/" + id + "/comments/" + id + "/replies"},
		{"POST", "/api/articles/" + id + "/like"},
		{"POST", "/api/articles/" + id + "/dislike"},
		{"POST", "/api/articles/" + id + "/bookmark"},
		{"DELETE", "/api/articles/" + id + "/bookmark"},
		{"GET", "/api/articles/admin/all"},
		{"GET", "/api/users/"},
		{"GET", "/api/users/bookmarks"},
		{"GET", "/api/users/" + id},
		{"POST", "/api/categories/"},
		{"DELETE", "/api/categories/" + id},
		{"POST", "/api/tags/"},
		{"DELETE", "/api/tags/" + id},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))

			if w.Code != http.StatusUnauthorized {
				t.Errorf("unauthenticated %s %s: got %d, want 401", rt.method, rt.path, w.Code)
			}
		})
	}
}

func TestSecureHeadersApplied(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q, want nosniff", got)
	}
}
