// internal/ranking/fusion.go
package ranking

import (
	"sort"

	"consult-ranking/internal/models"
)

// fuseRankSum orders candidates by structured rank sum ascending, with the
// fused normalized relevance (when free text was given) as the descending
// secondary key. Ties break on group ID ascending so identical inputs
// always produce identical output.
func (e *Engine) fuseRankSum(st *queryState) []models.FusedCandidate {
	fused := make([]models.FusedCandidate, 0, len(st.structuredSums))
	for id, sum := range st.structuredSums {
		fused = append(fused, models.FusedCandidate{
			GroupID:   id,
			Combined:  float64(sum),
			Breakdown: st.breakdown(id),
		})
	}

	sort.Slice(fused, func(i, j int) bool {
		a, b := fused[i], fused[j]
		if a.Combined != b.Combined {
			return a.Combined < b.Combined
		}
		ra := st.relevance(a.GroupID, e.opts.TextWeight, e.opts.VectorWeight)
		rb := st.relevance(b.GroupID, e.opts.TextWeight, e.opts.VectorWeight)
		if ra != rb {
			return ra > rb
		}
		return a.GroupID < b.GroupID
	})
	return fused
}

// fuseWeighted is the pure-retrieval mode: no structured candidate set,
// ordering is the weighted sum of normalized text and vector scores,
// descending. Only candidates scored by at least one source participate;
// the rest of the universe carries no signal at all.
func (e *Engine) fuseWeighted(st *queryState) []models.FusedCandidate {
	seen := make(map[string]struct{}, len(st.textNorm)+len(st.vectorNorm))
	for id := range st.textNorm {
		seen[id] = struct{}{}
	}
	for id := range st.vectorNorm {
		seen[id] = struct{}{}
	}

	fused := make([]models.FusedCandidate, 0, len(seen))
	for id := range seen {
		fused = append(fused, models.FusedCandidate{
			GroupID:   id,
			Combined:  st.relevance(id, e.opts.TextWeight, e.opts.VectorWeight),
			Breakdown: st.breakdown(id),
		})
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].Combined != fused[j].Combined {
			return fused[i].Combined > fused[j].Combined
		}
		return fused[i].GroupID < fused[j].GroupID
	})
	return fused
}

// passthroughCandidates wraps an ID list as fused candidates without any
// ranking computation, preserving the store's order.
func passthroughCandidates(ids []string) []models.FusedCandidate {
	fused := make([]models.FusedCandidate, 0, len(ids))
	for _, id := range ids {
		fused = append(fused, models.FusedCandidate{GroupID: id})
	}
	return fused
}
