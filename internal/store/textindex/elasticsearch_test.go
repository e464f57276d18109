// internal/store/textindex/elasticsearch_test.go
package textindex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"consult-ranking/internal/common/logger"
	"consult-ranking/internal/models"
)

// mockTransport serves a canned response and records the request body so
// tests can assert on the generated query.
type mockTransport struct {
	statusCode  int
	body        string
	requestBody map[string]interface{}
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &m.requestBody)
		}
	}
	return &http.Response{
		StatusCode: m.statusCode,
		Header: http.Header{
			"Content-Type":      []string{"application/json"},
			"X-Elastic-Product": []string{"Elasticsearch"},
		},
		Body: io.NopCloser(strings.NewReader(m.body)),
	}, nil
}

func newTestIndex(t *testing.T, transport *mockTransport) *Elasticsearch {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Transport: transport,
	})
	require.NoError(t, err)
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	return NewElasticsearch(client, "product_groups", log)
}

const searchResponseBody = `{
	"hits": {
		"hits": [
			{"_id": "doc-1", "_score": 7.2, "_source": {"group_id": "p1", "name": "iPhone 15 Pro"}},
			{"_id": "doc-2", "_score": 4.8, "_source": {"group_id": "p2", "name": "Galaxy S24"}},
			{"_id": "p9", "_score": 1.1, "_source": {"name": "legacy doc without group_id"}}
		]
	}
}`

func TestSearch_ParsesHits(t *testing.T) {
	transport := &mockTransport{statusCode: 200, body: searchResponseBody}
	idx := newTestIndex(t, transport)

	scores, err := idx.Search(context.Background(), "điện thoại chụp ảnh đẹp", []string{"p1", "p2", "p9"}, 50)

	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "p1", scores[0].GroupID)
	assert.InDelta(t, 7.2, scores[0].Raw, 1e-9)
	assert.Equal(t, models.SourceText, scores[0].Source)
	// Documents without a group_id field fall back to the document ID.
	assert.Equal(t, "p9", scores[2].GroupID)
}

func TestSearch_QueryShape(t *testing.T) {
	transport := &mockTransport{statusCode: 200, body: `{"hits":{"hits":[]}}`}
	idx := newTestIndex(t, transport)

	_, err := idx.Search(context.Background(), "pin trâu", []string{"p1", "p2"}, 50)
	require.NoError(t, err)

	boolQuery, ok := transport.requestBody["query"].(map[string]interface{})["bool"].(map[string]interface{})
	require.True(t, ok)

	must := boolQuery["must"].([]interface{})
	multiMatch := must[0].(map[string]interface{})["multi_match"].(map[string]interface{})
	assert.Equal(t, "pin trâu", multiMatch["query"])
	// The name field outweighs the document body.
	assert.Contains(t, multiMatch["fields"], "name^3")
	assert.Contains(t, multiMatch["fields"], "document")

	filter := boolQuery["filter"].([]interface{})
	terms := filter[0].(map[string]interface{})["terms"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"p1", "p2"}, terms["group_id"])
}

func TestSearch_NoScopeOmitsFilter(t *testing.T) {
	transport := &mockTransport{statusCode: 200, body: `{"hits":{"hits":[]}}`}
	idx := newTestIndex(t, transport)

	_, err := idx.Search(context.Background(), "laptop văn phòng", nil, 50)
	require.NoError(t, err)

	boolQuery := transport.requestBody["query"].(map[string]interface{})["bool"].(map[string]interface{})
	_, hasFilter := boolQuery["filter"]
	assert.False(t, hasFilter)
}

func TestSearch_IndexNotFound(t *testing.T) {
	transport := &mockTransport{statusCode: 404, body: `{"error":{"type":"index_not_found_exception"}}`}
	idx := newTestIndex(t, transport)

	_, err := idx.Search(context.Background(), "anything", nil, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexNotFound)
}

func TestSearch_ServerError(t *testing.T) {
	transport := &mockTransport{statusCode: 500, body: `{"error":{"type":"search_phase_execution_exception"}}`}
	idx := newTestIndex(t, transport)

	_, err := idx.Search(context.Background(), "anything", nil, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSearchQueryFailed)
}
