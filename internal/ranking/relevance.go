// internal/ranking/relevance.go
package ranking

import (
	"context"

	"golang.org/x/sync/errgroup"

	"consult-ranking/internal/common/metrics"
	"consult-ranking/internal/models"
)

// fetchRelevance fans out to the text and vector indexes concurrently and
// joins under a bounded timeout. Both fetches are scoped to the current
// candidate set. A failure or timeout on either source degrades that
// source to zero contribution; it never fails the query, and the closures
// always return nil so one source cannot cancel the other.
func (e *Engine) fetchRelevance(ctx context.Context, st *queryState) {
	sctx, cancel := context.WithTimeout(ctx, e.opts.SourceTimeout)
	defer cancel()

	freeText := st.query.FreeText
	candidates := st.candidates
	size := e.opts.RelevanceSize

	var g errgroup.Group

	g.Go(func() error {
		hits, err := e.text.Search(sctx, freeText, candidates, size)
		if err != nil {
			st.textDegraded = true
			e.degradeSource(st, "text", err)
			return nil
		}
		st.textRaw = scoreMap(hits)
		return nil
	})

	g.Go(func() error {
		vec, err := e.embedder.EmbedQuery(sctx, freeText)
		if err != nil {
			st.vectorDegraded = true
			e.degradeSource(st, "vector", err)
			return nil
		}
		hits, err := e.vector.Search(sctx, vec, candidates, size)
		if err != nil {
			st.vectorDegraded = true
			e.degradeSource(st, "vector", err)
			return nil
		}
		st.vectorRaw = scoreMap(hits)
		return nil
	})

	_ = g.Wait()

	st.textNorm = normalizeScores(st.textRaw)
	st.vectorNorm = normalizeScores(st.vectorRaw)
}

func (e *Engine) degradeSource(st *queryState, source string, err error) {
	metrics.SourceDegradedTotal.WithLabelValues(source).Inc()
	e.logger.Warn("relevance source degraded", map[string]interface{}{
		"requestId": st.requestID,
		"source":    source,
		"error":     err.Error(),
	})
}

func scoreMap(hits []models.RelevanceScore) map[string]float64 {
	m := make(map[string]float64, len(hits))
	for _, h := range hits {
		// Keep the best score when the index returns a group twice.
		if prev, ok := m[h.GroupID]; !ok || h.Raw > prev {
			m[h.GroupID] = h.Raw
		}
	}
	return m
}
