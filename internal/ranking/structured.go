// internal/ranking/structured.go
package ranking

import (
	"context"

	apperrors "consult-ranking/internal/common/errors"
	"consult-ranking/internal/models"
)

// structuredRankLists issues one tag lookup per active requirement flag,
// scoped to the candidate universe. Each list keeps the store's own order;
// the 1-based position in it is the candidate's rank for that criterion.
// A relational failure here is fatal: there is no fallback for structured
// filtering.
func (e *Engine) structuredRankLists(ctx context.Context, st *queryState, flags []string) ([][]string, error) {
	lists := make([][]string, 0, len(flags))
	for _, flag := range flags {
		tag, ok := models.TagForFlag(st.query.DeviceType, flag)
		if !ok {
			continue
		}
		ids, err := e.catalog.GroupIDsTagged(ctx, tag, st.universe)
		if err != nil {
			return nil, apperrors.NewStoreUnavailableError(err)
		}
		lists = append(lists, ids)
	}
	return lists, nil
}

// mergeRankLists outer-joins rank lists Borda style: per-criterion ranks
// are summed, and a candidate missing from a list is charged a penalty
// rank of (longest list length + 1). Absence is penalized, not ignored,
// so a candidate satisfying more criteria always sums lower than one
// satisfying fewer at comparable positions. Lower is better.
func mergeRankLists(lists [][]string) map[string]int {
	if len(lists) == 0 {
		return map[string]int{}
	}

	maxLen := 0
	ranks := make([]map[string]int, len(lists))
	for i, list := range lists {
		if len(list) > maxLen {
			maxLen = len(list)
		}
		ranks[i] = make(map[string]int, len(list))
		for pos, id := range list {
			if _, seen := ranks[i][id]; !seen {
				ranks[i][id] = pos + 1
			}
		}
	}
	penalty := maxLen + 1

	sums := make(map[string]int)
	for i := range lists {
		for id := range ranks[i] {
			if _, done := sums[id]; done {
				continue
			}
			total := 0
			for j := range ranks {
				if r, hit := ranks[j][id]; hit {
					total += r
				} else {
					total += penalty
				}
			}
			sums[id] = total
		}
	}
	return sums
}
