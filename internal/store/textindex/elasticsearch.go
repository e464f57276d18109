// internal/store/textindex/elasticsearch.go
package textindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"consult-ranking/internal/common/logger"
	"consult-ranking/internal/models"
)

var (
	ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")
	ErrIndexNotFound     = errors.New("INDEX_NOT_FOUND")
)

// Elasticsearch implements store.TextIndex against a product document index
// where each document has a group_id, a name and a document field holding
// the product's description and spec-sheet text.
type Elasticsearch struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewElasticsearch(client *elasticsearch.Client, index string, log logger.Logger) *Elasticsearch {
	return &Elasticsearch{
		client: client,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"store": "textindex"}),
	}
}

// Search runs a weighted multi_match (name boosted over the document body)
// optionally filtered to a group ID set, and returns native BM25 scores.
func (e *Elasticsearch) Search(ctx context.Context, text string, groupIDs []string, size int) ([]models.RelevanceScore, error) {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  text,
					"fields": []string{"name^3", "document"},
					"type":   "best_fields",
				},
			},
		},
	}
	if len(groupIDs) > 0 {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"terms": map[string]interface{}{"group_id": groupIDs},
			},
		}
	}

	body, _ := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	})

	req := esapi.SearchRequest{
		Index: []string{e.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, e.index)
		}
		return nil, fmt.Errorf("%w: %s", ErrSearchQueryFailed, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchQueryFailed, err)
	}

	scores := make([]models.RelevanceScore, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		groupID := hit.Source.GroupID
		if groupID == "" {
			groupID = hit.ID
		}
		scores = append(scores, models.RelevanceScore{
			GroupID: groupID,
			Raw:     hit.Score,
			Source:  models.SourceText,
		})
	}
	return scores, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string  `json:"_id"`
			Score  float64 `json:"_score"`
			Source struct {
				GroupID string `json:"group_id"`
				Name    string `json:"name"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
