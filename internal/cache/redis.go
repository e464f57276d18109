// Package cache adds a Redis read-through layer in front of the ranking
// engine. Caching is best effort: any Redis failure falls through to the
// engine so a cache outage never degrades answers.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"consult-ranking/internal/common/logger"
	"consult-ranking/internal/common/metrics"
	"consult-ranking/internal/models"
	"consult-ranking/internal/ranking"
)

const keyPrefix = "consult:ranking:"

// RecommenderCache decorates a ranking.Recommender with a Redis result
// cache keyed by the canonical form of the query.
type RecommenderCache struct {
	next   ranking.Recommender
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRecommenderCache(next ranking.Recommender, client *redis.Client, ttl time.Duration, log logger.Logger) *RecommenderCache {
	return &RecommenderCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "ranking-cache"}),
	}
}

func (c *RecommenderCache) Recommend(ctx context.Context, q *models.Query) (*models.Result, error) {
	key, ok := cacheKey(q)
	if !ok {
		return c.next.Recommend(ctx, q)
	}

	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		var result models.Result
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			metrics.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return &result, nil
		}
		// Unreadable entry, treat as a miss and overwrite below.
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
	} else if err != redis.Nil {
		metrics.CacheRequestsTotal.WithLabelValues("error").Inc()
		c.logger.WithError(err).Warn("cache read failed", map[string]interface{}{"key": key})
	} else {
		metrics.CacheRequestsTotal.WithLabelValues("miss").Inc()
	}

	result, err := c.next.Recommend(ctx, q)
	if err != nil {
		return nil, err
	}

	if payload, merr := json.Marshal(result); merr == nil {
		if serr := c.client.Set(ctx, key, payload, c.ttl).Err(); serr != nil {
			c.logger.WithError(serr).Warn("cache write failed", map[string]interface{}{"key": key})
		}
	}
	return result, nil
}

// cacheKey builds a deterministic key from the canonical query: sorted
// active flags, lowercased sorted brands, normalized budgets and text.
// Queries that fail canonicalization are simply not cached.
func cacheKey(q *models.Query) (string, bool) {
	if q == nil {
		return "", false
	}

	brands := make([]string, len(q.Brands))
	for i, b := range q.Brands {
		brands[i] = strings.ToLower(strings.TrimSpace(b))
	}
	sort.Strings(brands)

	canonical := struct {
		DeviceType string   `json:"deviceType"`
		Flags      []string `json:"flags"`
		MinBudget  *int64   `json:"minBudget"`
		MaxBudget  *int64   `json:"maxBudget"`
		Brands     []string `json:"brands"`
		FreeText   string   `json:"freeText"`
		TopK       int      `json:"topK"`
	}{
		DeviceType: string(q.DeviceType),
		Flags:      q.ActiveFlags(),
		MinBudget:  q.MinBudget,
		MaxBudget:  q.MaxBudget,
		Brands:     brands,
		FreeText:   strings.TrimSpace(strings.ToLower(q.FreeText)),
		TopK:       q.TopK,
	}

	payload, err := json.Marshal(canonical)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(payload)
	return keyPrefix + hex.EncodeToString(sum[:]), true
}
