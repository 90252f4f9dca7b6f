// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"inkwell/internal/models"
	"inkwell/internal/storage"
)

// resolveUser fills the avatar URL from the stored key. A nil storage
// client leaves the URL empty.
func resolveUser(sc *storage.Client, u *models.User) {
	if sc != nil && u.AvatarKey != "" {
		u.AvatarURL = sc.FileURL(u.AvatarKey)
	}
}

// resolveRef fills the avatar URL on an embedded user reference.
func resolveRef(sc *storage.Client, ref *models.UserRef) {
	if sc != nil && ref.AvatarKey != "" {
		ref.AvatarURL = sc.FileURL(ref.AvatarKey)
	}
}

// resolveArticle fills every media URL reachable from an article: the
// cover image, the author, and each commentator and replier.
func resolveArticle(sc *storage.Client, a *models.Article) {
	if sc == nil {
		return
	}
	if a.ImageKey != "" {
		a.ImageURL = sc.FileURL(a.ImageKey)
	}
	if a.Author != nil {
		resolveRef(sc, a.Author)
	}
	for i := range a.Comments {
		resolveRef(sc, &a.Comments[i].Commentator)
		for j := range a.Comments[i].Replies {
			resolveRef(sc, &a.Comments[i].Replies[j].Replier)
		}
	}
}

// resolveArticles resolves media URLs across a listing.
func resolveArticles(sc *storage.Client, items []models.Article) {
	for i := range items {
		resolveArticle(sc, &items[i])
	}
}
