// internal/store/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"consult-ranking/internal/common/logger"
	"consult-ranking/internal/models"
)

// Postgres implements store.Catalog on top of the relational catalog
// schema (product_groups, product_group_tags, product_variants).
type Postgres struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgres(db *sql.DB, log logger.Logger) *Postgres {
	return &Postgres{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "catalog"}),
	}
}

// GroupIDs returns group IDs of one device type, optionally restricted to
// brands (case-insensitive exact match).
func (p *Postgres) GroupIDs(ctx context.Context, deviceType string, brands []string) ([]string, error) {
	query := `SELECT group_id FROM product_groups WHERE type = $1`
	args := []interface{}{deviceType}

	if len(brands) > 0 {
		lowered := make([]string, len(brands))
		for i, b := range brands {
			lowered[i] = strings.ToLower(b)
		}
		query += ` AND LOWER(brand) = ANY($2)`
		args = append(args, pq.Array(lowered))
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query group ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// GroupIDsTagged returns group IDs carrying the tag. No ORDER BY: the
// store's natural order is the positional rank the merger consumes.
func (p *Postgres) GroupIDsTagged(ctx context.Context, tag string, universe []string) ([]string, error) {
	query := `SELECT g.group_id
		FROM product_groups g
		JOIN product_group_tags t ON t.group_id = g.group_id
		WHERE t.tag = $1`
	args := []interface{}{tag}

	if len(universe) > 0 {
		query += ` AND g.group_id = ANY($2)`
		args = append(args, pq.Array(universe))
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tagged group ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// MinPrices returns the minimum current variant price per group.
func (p *Postgres) MinPrices(ctx context.Context, groupIDs []string) (map[string]int64, error) {
	if len(groupIDs) == 0 {
		return map[string]int64{}, nil
	}

	query := `SELECT group_id, MIN(current_price)
		FROM product_variants
		WHERE group_id = ANY($1)
		GROUP BY group_id`

	rows, err := p.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("query min prices: %w", err)
	}
	defer rows.Close()

	prices := make(map[string]int64, len(groupIDs))
	for rows.Next() {
		var id string
		var price int64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("scan min price: %w", err)
		}
		prices[id] = price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prices, nil
}

// Groups resolves IDs to product group records.
func (p *Postgres) Groups(ctx context.Context, groupIDs []string) (map[string]models.ProductGroup, error) {
	if len(groupIDs) == 0 {
		return map[string]models.ProductGroup{}, nil
	}

	query := `SELECT group_id, group_name, brand, type
		FROM product_groups
		WHERE group_id = ANY($1)`

	rows, err := p.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	groups := make(map[string]models.ProductGroup, len(groupIDs))
	for rows.Next() {
		var g models.ProductGroup
		if err := rows.Scan(&g.GroupID, &g.Name, &g.Brand, &g.Type); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups[g.GroupID] = g
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groups, nil
}

func scanIDs(rows *sql.Rows) ([]string, error) {
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
