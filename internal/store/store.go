// Package store defines the contracts between the ranking engine and its
// backing stores. Each deployment supplies concrete adapters; the engine
// only sees these interfaces.
package store

import (
	"context"

	"consult-ranking/internal/models"
)

// Catalog is the relational store: product groups, their feature tags and
// their variant prices.
type Catalog interface {
	// GroupIDs returns the IDs of all groups of the given device type,
	// restricted to the given brands when non-empty. Brand matching is
	// case-insensitive exact match on the brand column.
	GroupIDs(ctx context.Context, deviceType string, brands []string) ([]string, error)

	// GroupIDsTagged returns the IDs of groups carrying the tag, restricted
	// to the universe when non-empty. Order is whatever the store returns;
	// the caller assigns positional ranks from it, so no sort is imposed.
	GroupIDsTagged(ctx context.Context, tag string, universe []string) ([]string, error)

	// MinPrices returns the minimum current variant price per group, in the
	// smallest currency unit. Groups without any priced variant are absent
	// from the map.
	MinPrices(ctx context.Context, groupIDs []string) (map[string]int64, error)

	// Groups resolves group IDs to their catalog records.
	Groups(ctx context.Context, groupIDs []string) (map[string]models.ProductGroup, error)
}

// TextIndex is the full-text relevance source.
type TextIndex interface {
	// Search runs a weighted multi-field query (document body + boosted
	// name) filtered to the given group IDs when non-empty, returning
	// native-relevance hits in score order.
	Search(ctx context.Context, text string, groupIDs []string, size int) ([]models.RelevanceScore, error)
}

// VectorIndex is the semantic relevance source.
type VectorIndex interface {
	// Search runs a cosine nearest-neighbor query filtered to the given
	// group IDs when non-empty, returning similarity-scored hits.
	Search(ctx context.Context, vector []float32, groupIDs []string, size int) ([]models.RelevanceScore, error)
}

// Embedder turns free text into the vector space of the vector index. The
// model distinguishes queries from stored passages, hence two methods.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedPassage(ctx context.Context, text string) ([]float32, error)
}
