// internal/ranking/structured_test.go
package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRankLists(t *testing.T) {
	tests := []struct {
		name     string
		lists    [][]string
		expected map[string]int
	}{
		{
			name:     "no lists",
			lists:    [][]string{},
			expected: map[string]int{},
		},
		{
			name:  "single list uses positional ranks",
			lists: [][]string{{"g1", "g2", "g3"}},
			expected: map[string]int{
				"g1": 1,
				"g2": 2,
				"g3": 3,
			},
		},
		{
			name: "two lists sum per-criterion ranks",
			lists: [][]string{
				{"g1", "g2", "g3"},
				{"g2", "g1", "g3"},
			},
			expected: map[string]int{
				"g1": 3, // 1 + 2
				"g2": 3, // 2 + 1
				"g3": 6, // 3 + 3
			},
		},
		{
			name: "missing candidate charged the penalty rank",
			lists: [][]string{
				{"g1", "g2", "g3"}, // longest list, penalty = 4
				{"g2"},
			},
			expected: map[string]int{
				"g1": 5, // 1 + 4
				"g2": 4, // 2 + 1
				"g3": 7, // 3 + 4
			},
		},
		{
			name: "outer join keeps candidates unique to one list",
			lists: [][]string{
				{"g1"},
				{"g2"},
			},
			expected: map[string]int{
				"g1": 3, // 1 + 2
				"g2": 3, // 2 + 1
			},
		},
		{
			name: "duplicate id keeps its first position",
			lists: [][]string{
				{"g1", "g2", "g1"},
			},
			expected: map[string]int{
				"g1": 1,
				"g2": 2,
			},
		},
		{
			name: "empty list penalizes everyone equally",
			lists: [][]string{
				{"g1", "g2"},
				{},
			},
			expected: map[string]int{
				"g1": 4, // 1 + 3
				"g2": 5, // 2 + 3
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mergeRankLists(tt.lists))
		})
	}
}

// A candidate present in more lists at comparable positions must always sum
// lower (better) than one present in fewer.
func TestMergeRankLists_AbsencePenalized(t *testing.T) {
	lists := [][]string{
		{"both", "onlyFirst", "filler1", "filler2"},
		{"both", "filler3"},
	}

	sums := mergeRankLists(lists)

	assert.Less(t, sums["both"], sums["onlyFirst"])
	assert.Less(t, sums["both"], sums["filler3"])
}
