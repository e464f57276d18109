// internal/ranking/state.go
package ranking

import (
	"github.com/google/uuid"

	"consult-ranking/internal/models"
)

// rankMode names how the final ordering was produced, for logs and metrics.
type rankMode string

const (
	modeRankSum   rankMode = "rank_sum"
	modeWeighted  rankMode = "weighted"
	modePriceOnly rankMode = "price_only"
	modeBrowse    rankMode = "browse"
)

// queryState is the request-scoped accumulator threaded through every
// pipeline stage. One instance per query, never shared across queries:
// concurrent requests must not see each other's candidates.
//
// The text* fields are written only by the text fetch goroutine and the
// vector* fields only by the vector fetch goroutine; both are joined before
// any read.
type queryState struct {
	requestID string
	query     *models.Query
	mode      rankMode

	universe   []string
	candidates []string

	structuredSums map[string]int

	textRaw        map[string]float64
	textNorm       map[string]float64
	textDegraded   bool
	vectorRaw      map[string]float64
	vectorNorm     map[string]float64
	vectorDegraded bool
}

func newQueryState(q *models.Query) *queryState {
	return &queryState{
		requestID: uuid.NewString(),
		query:     q,
	}
}

// relevance returns the fused normalized relevance for one candidate with
// the given weights. Absent candidates contribute zero from each source.
func (st *queryState) relevance(groupID string, wText, wVector float64) float64 {
	return wText*st.textNorm[groupID] + wVector*st.vectorNorm[groupID]
}

func (st *queryState) breakdown(groupID string) models.SignalBreakdown {
	return models.SignalBreakdown{
		StructuredRankSum: st.structuredSums[groupID],
		TextScore:         st.textNorm[groupID],
		VectorScore:       st.vectorNorm[groupID],
	}
}
