// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/fault"
)

func TestBookmarkAddListRemove(t *testing.T) {
	db := testDB(t)
	s := NewBookmarkStore(db)

	authorEmail := "bookmark-author@store-test.local"
	readerEmail := "bookmark-reader@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, authorEmail, readerEmail) })
	author := makeUser(t, db, authorEmail)
	reader := makeUser(t, db, readerEmail)

	article := makeArticle(t, db, author.ID, "Bookmark Me")

	if err := s.Add(reader.ID, article.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Re-adding is a no-op, never a duplicate.
	if err := s.Add(reader.ID, article.ID); err != nil {
		t.Fatalf("Add repeat: %v", err)
	}

	list, err := s.List(reader.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(list))
	}
	if list[0].ID != article.ID {
		t.Errorf("bookmarked article: got %s, want %s", list[0].ID, article.ID)
	}

	if err := s.Remove(reader.ID, article.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	// Removing again still succeeds.
	if err := s.Remove(reader.ID, article.ID); err != nil {
		t.Fatalf("Remove repeat: %v", err)
	}

	list, err = s.List(reader.ID)
	if err != nil {
		t.Fatalf("List after remove: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty bookmark list, got %d entries", len(list))
	}
}

func TestBookmarkMissingArticle(t *testing.T) {
	db := testDB(t)
	s := NewBookmarkStore(db)

	email := "bookmark-missing@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })
	reader := makeUser(t, db, email)

	if err := s.Add(reader.ID, uuid.New()); fault.KindOf(err) != fault.KindNotFound {
		t.Errorf("expected NotFound bookmarking a missing article, got %v", err)
	}
}

func TestBookmarkDanglingAfterArticleDelete(t *testing.T) {
	db := testDB(t)
	bookmarks := NewBookmarkStore(db)
	articles := NewArticleStore(db)

	authorEmail := "bookmark-dangle-author@store-test.local"
	readerEmail := "bookmark-dangle-reader@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, authorEmail, readerEmail) })
	author := makeUser(t, db, authorEmail)
	reader := makeUser(t, db, readerEmail)

	article := makeArticle(t, db, author.ID, "Soon Deleted")
	if err := bookmarks.Add(reader.ID, article.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, err := articles.Delete(article.ID, author.ID); err != nil {
		t.Fatalf("Delete article: %v", err)
	}

	// The dangling bookmark is filtered out of the listing, and removing
	// it afterwards still succeeds.
	list, err := bookmarks.List(reader.ID)
	if err != nil {
		t.Fatalf("List with dangling bookmark: %v", err)
	}
	for _, a := range list {
		if a.ID == article.ID {
			t.Error("deleted article surfaced in bookmark list")
		}
	}
	if err := bookmarks.Remove(reader.ID, article.ID); err != nil {
		t.Errorf("Remove dangling bookmark: %v", err)
	}
}
