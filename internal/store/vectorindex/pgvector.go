// internal/store/vectorindex/pgvector.go
package vectorindex

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"consult-ranking/internal/common/logger"
	"consult-ranking/internal/models"
)

// Pgvector implements store.VectorIndex over the product_group_embeddings
// table, one embedding per (group_id, model).
type Pgvector struct {
	db     *sql.DB
	model  string
	logger logger.Logger
}

func NewPgvector(db *sql.DB, model string, log logger.Logger) *Pgvector {
	return &Pgvector{
		db:     db,
		model:  model,
		logger: log.WithFields(map[string]interface{}{"store": "vectorindex"}),
	}
}

// Search performs cosine nearest-neighbor search. The <=> operator computes
// cosine distance, so score = 1 - distance and ordering by distance ASC
// yields most similar first.
func (v *Pgvector) Search(ctx context.Context, vector []float32, groupIDs []string, size int) ([]models.RelevanceScore, error) {
	if size <= 0 {
		size = 10
	}

	vec := pgvector.NewVector(vector)

	query := `SELECT group_id, 1 - (embedding <=> $1) AS score
		FROM product_group_embeddings
		WHERE model = $2`
	args := []interface{}{vec, v.model}

	if len(groupIDs) > 0 {
		query += ` AND group_id = ANY($3)`
		args = append(args, pq.Array(groupIDs))
	}

	query += fmt.Sprintf(` ORDER BY embedding <=> $1 LIMIT %d`, size)

	rows, err := v.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	scores := []models.RelevanceScore{}
	for rows.Next() {
		var s models.RelevanceScore
		if err := rows.Scan(&s.GroupID, &s.Raw); err != nil {
			return nil, fmt.Errorf("scan vector hit: %w", err)
		}
		s.Source = models.SourceVector
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
