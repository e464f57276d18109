// internal/store/vectorindex/pgvector_test.go
package vectorindex

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"consult-ranking/internal/common/logger"
	"consult-ranking/internal/models"
)

func newTestIndex(t *testing.T) (*Pgvector, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	return NewPgvector(db, "multilingual-e5-base", log), mock
}

func TestSearch_ReturnsSimilarityScores(t *testing.T) {
	idx, mock := newTestIndex(t)

	rows := sqlmock.NewRows([]string{"group_id", "score"}).
		AddRow("p5", 0.91).
		AddRow("p2", 0.74)
	mock.ExpectQuery(`SELECT group_id, 1 - \(embedding <=> \$1\) AS score`).
		WithArgs(sqlmock.AnyArg(), "multilingual-e5-base", sqlmock.AnyArg()).
		WillReturnRows(rows)

	scores, err := idx.Search(context.Background(), []float32{0.1, 0.2}, []string{"p2", "p5"}, 10)

	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "p5", scores[0].GroupID)
	assert.InDelta(t, 0.91, scores[0].Raw, 1e-9)
	assert.Equal(t, models.SourceVector, scores[0].Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_NoScopeFilter(t *testing.T) {
	idx, mock := newTestIndex(t)

	rows := sqlmock.NewRows([]string{"group_id", "score"}).AddRow("p1", 0.5)
	mock.ExpectQuery(`WHERE model = \$2 ORDER BY embedding <=> \$1 LIMIT 10`).
		WithArgs(sqlmock.AnyArg(), "multilingual-e5-base").
		WillReturnRows(rows)

	scores, err := idx.Search(context.Background(), []float32{0.3}, nil, 10)

	require.NoError(t, err)
	assert.Len(t, scores, 1)
}

func TestSearch_NonPositiveSizeDefaults(t *testing.T) {
	idx, mock := newTestIndex(t)

	mock.ExpectQuery(`LIMIT 10`).
		WithArgs(sqlmock.AnyArg(), "multilingual-e5-base").
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "score"}))

	_, err := idx.Search(context.Background(), []float32{0.3}, nil, 0)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_QueryError(t *testing.T) {
	idx, mock := newTestIndex(t)

	mock.ExpectQuery(`SELECT group_id`).
		WillReturnError(errors.New("relation does not exist"))

	_, err := idx.Search(context.Background(), []float32{0.1}, nil, 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "vector search")
}
