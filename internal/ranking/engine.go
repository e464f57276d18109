// Package ranking implements the multi-source candidate ranking engine for
// the shopping assistant: structured tag filtering, price filtering,
// full-text and semantic relevance, fused into one deterministic ordering
// with graceful degradation of the relevance sources.
package ranking

import (
	"context"
	"sort"
	"time"

	apperrors "consult-ranking/internal/common/errors"
	"consult-ranking/internal/common/logger"
	"consult-ranking/internal/common/metrics"
	"consult-ranking/internal/models"
	"consult-ranking/internal/store"
)

// Recommender is the engine's consumer-facing contract. The Redis result
// cache decorates it; the dialogue layer only ever sees this interface.
type Recommender interface {
	Recommend(ctx context.Context, q *models.Query) (*models.Result, error)
}

// Engine runs the ranking pipeline over injected store adapters. It holds
// no per-query state: everything request-scoped lives in a queryState
// threaded through the stages, so concurrent queries never share
// accumulators.
type Engine struct {
	catalog  store.Catalog
	text     store.TextIndex
	vector   store.VectorIndex
	embedder store.Embedder
	opts     Options
	logger   logger.Logger
}

func NewEngine(catalog store.Catalog, text store.TextIndex, vector store.VectorIndex, embedder store.Embedder, opts Options, log logger.Logger) *Engine {
	return &Engine{
		catalog:  catalog,
		text:     text,
		vector:   vector,
		embedder: embedder,
		opts:     opts,
		logger:   log.WithFields(map[string]interface{}{"component": "ranking-engine"}),
	}
}

// Recommend answers one consultation query.
//
// Fatal paths (relational store down, invalid query) return an error; every
// other shortfall is expressed in the Result: distinct outcomes for "brand
// not carried", "nothing in that price range" and a plain miss, and silent
// zero contribution for degraded relevance sources.
func (e *Engine) Recommend(ctx context.Context, q *models.Query) (*models.Result, error) {
	start := time.Now()

	if err := ValidateQuery(q); err != nil {
		metrics.ConsultQueriesFailed.WithLabelValues(apperrors.CodeOf(err)).Inc()
		return nil, err
	}

	st := newQueryState(q)
	log := e.logger.WithFields(map[string]interface{}{
		"requestId":  st.requestID,
		"deviceType": q.DeviceType,
	})

	result, err := e.run(ctx, st, log)

	if err != nil {
		metrics.ConsultQueriesFailed.WithLabelValues(apperrors.CodeOf(err)).Inc()
		log.WithError(err).Error("query failed", map[string]interface{}{
			"mode": string(st.mode),
		})
		return nil, err
	}

	metrics.ConsultQueriesTotal.WithLabelValues(string(result.Outcome)).Inc()
	metrics.ConsultQueryDuration.WithLabelValues(string(st.mode)).Observe(time.Since(start).Seconds())
	log.Info("query completed", map[string]interface{}{
		"mode":       string(st.mode),
		"outcome":    string(result.Outcome),
		"candidates": len(result.GroupIDs),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return result, nil
}

func (e *Engine) run(ctx context.Context, st *queryState, log logger.Logger) (*models.Result, error) {
	q := st.query

	// Brand/type pre-filter: the candidate universe every later stage is
	// scoped to.
	universe, err := e.catalog.GroupIDs(ctx, string(q.DeviceType), q.Brands)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}
	st.universe = universe

	if len(universe) == 0 {
		// An explicit brand preference that filters to nothing terminates
		// early with its own message; the filter is never silently ignored.
		if len(q.Brands) > 0 {
			return emptyResult(models.OutcomeNoBrandMatch), nil
		}
		return emptyResult(models.OutcomeNoCandidates), nil
	}

	flags := q.ActiveFlags()

	var fused []models.FusedCandidate
	switch {
	case len(flags) > 0:
		st.mode = modeRankSum
		lists, err := e.structuredRankLists(ctx, st, flags)
		if err != nil {
			return nil, err
		}
		st.structuredSums = mergeRankLists(lists)
		if len(st.structuredSums) == 0 {
			return emptyResult(models.OutcomeNoCandidates), nil
		}
		st.candidates = sortedKeys(st.structuredSums)
		if q.FreeText != "" {
			e.fetchRelevance(ctx, st)
		}
		fused = e.fuseRankSum(st)

	case q.FreeText != "":
		// Pure retrieval: no structured signal, the relevance sources rank
		// the whole brand/type universe.
		st.mode = modeWeighted
		st.candidates = universe
		e.fetchRelevance(ctx, st)
		fused = e.fuseWeighted(st)
		if len(fused) == 0 {
			return emptyResult(models.OutcomeNoCandidates), nil
		}

	case q.HasBudget():
		// Price is the sole criterion: rank the price-filtered set by
		// price descending (ordering applied after prices are fetched).
		st.mode = modePriceOnly
		st.candidates = universe
		fused = passthroughCandidates(universe)

	default:
		// Brand/type browse: the universe as the store returned it, no
		// ranking computation.
		st.mode = modeBrowse
		st.candidates = universe
		fused = passthroughCandidates(universe)
	}

	prices, err := e.catalog.MinPrices(ctx, candidateIDs(fused))
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}

	hadCandidates := len(fused) > 0
	fused = filterByPrice(fused, prices, q.MinBudget, q.MaxBudget)
	if st.mode == modePriceOnly {
		sortByPriceDesc(fused, prices)
	}

	if len(fused) == 0 {
		if hadCandidates && q.HasBudget() {
			return emptyResult(models.OutcomeNoPriceMatch), nil
		}
		return emptyResult(models.OutcomeNoCandidates), nil
	}

	fused = e.topK(fused, q.TopK)

	for _, c := range fused {
		log.Debug("fused candidate", map[string]interface{}{
			"groupId":           c.GroupID,
			"combined":          c.Combined,
			"structuredRankSum": c.Breakdown.StructuredRankSum,
			"textScore":         c.Breakdown.TextScore,
			"vectorScore":       c.Breakdown.VectorScore,
		})
	}

	groups, err := e.catalog.Groups(ctx, candidateIDs(fused))
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(err)
	}

	return st.formatResult(fused, groups, prices), nil
}

func candidateIDs(fused []models.FusedCandidate) []string {
	ids := make([]string, len(fused))
	for i, c := range fused {
		ids[i] = c.GroupID
	}
	return ids
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
