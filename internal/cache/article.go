// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// article.go provides a Valkey-backed cache for serialized article
// responses. Read endpoints store their JSON payloads here so repeated
// fetches of popular articles and listings skip the database entirely.
// Every write to an article invalidates its entry and the listings.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// articleKeyPrefix is the Valkey key prefix for single articles.
	articleKeyPrefix = "article:"

	// listKeyPrefix is the Valkey key prefix for article listings.
	listKeyPrefix = "articles:"

	// DefaultArticleTTL is how long a cached response stays fresh.
	DefaultArticleTTL = 5 * time.Minute
)

// ArticleCache manages cached article JSON in Valkey. All failures are
// logged and swallowed: the cache being down never fails a request.
type ArticleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewArticleCache creates an article cache backed by the given Valkey client.
func NewArticleCache(client *redis.Client, ttl time.Duration) *ArticleCache {
	if ttl == 0 {
		ttl = DefaultArticleTTL
	}
	return &ArticleCache{client: client, ttl: ttl}
}

// ArticleKey returns the cache key for a single article.
func ArticleKey(id uuid.UUID) string {
	return articleKeyPrefix + id.String()
}

// ListKey returns the cache key for the global article listing.
func ListKey() string {
	return listKeyPrefix + "all"
}

// AuthorListKey returns the cache key for one author's listing.
func AuthorListKey(authorID uuid.UUID) string {
	return listKeyPrefix + "author:" + authorID.String()
}

// Get retrieves a cached payload. Returns (nil, false) on miss.
func (ac *ArticleCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := ac.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("article cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("article cache hit", "key", key)
	return val, true
}

// Set stores a payload under the key with the configured TTL.
func (ac *ArticleCache) Set(ctx context.Context, key string, payload []byte) {
	if err := ac.client.Set(ctx, key, payload, ac.ttl).Err(); err != nil {
		slog.Warn("article cache set error", "key", key, "error", err)
	}
}

// InvalidateArticle removes one article's cached entry along with every
// listing, since any of them may embed the stale version.
func (ac *ArticleCache) InvalidateArticle(ctx context.Context, id uuid.UUID) {
	if err := ac.client.Del(ctx, ArticleKey(id)).Err(); err != nil {
		slog.Warn("article cache invalidate error", "id", id, "error", err)
	}
	ac.InvalidateLists(ctx)
}

// InvalidateLists removes all cached listings by scanning for the prefix.
func (ac *ArticleCache) InvalidateLists(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := ac.client.Scan(ctx, cursor, listKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("article cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := ac.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("article cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("article listings cleared", "deleted", deleted)
	}
}
