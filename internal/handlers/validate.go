// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for article and account fields.
const (
	maxTitleLen    = 300
	maxSubtitleLen = 300
	maxContentLen  = 100_000
	maxNameLen     = 100
	maxBioLen      = 1_000
	minPasswordLen = 8
)

// validateArticle checks article form inputs and returns the first error found.
func validateArticle(title, subtitle, content, category, tag string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(subtitle) > maxSubtitleLen {
		return "Subtitle is too long (max 300 characters)."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if strings.TrimSpace(category) == "" {
		return "Category is required."
	}
	if strings.TrimSpace(tag) == "" {
		return "Tag is required."
	}
	return ""
}

// validateArticleUpdate checks the mutable article fields.
func validateArticleUpdate(title, content string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	return ""
}

// validateSignup checks new-account inputs and returns the first error found.
func validateSignup(name, email, password, bio string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 100 characters)."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "A valid email address is required."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if utf8.RuneCountInString(bio) > maxBioLen {
		return "Bio is too long (max 1,000 characters)."
	}
	return ""
}

// validateOwnedEntity checks category/tag inputs.
func validateOwnedEntity(name, description string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(description) > maxBioLen {
		return "Description is too long (max 1,000 characters)."
	}
	return ""
}
