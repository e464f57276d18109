// internal/store/catalog/postgres_test.go
package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"consult-ranking/internal/common/logger"
)

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func newTestCatalog(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgres(db, createTestLogger(t)), mock
}

func TestGroupIDs_TypeOnly(t *testing.T) {
	cat, mock := newTestCatalog(t)

	rows := sqlmock.NewRows([]string{"group_id"}).
		AddRow("p1").
		AddRow("p2")
	mock.ExpectQuery(`SELECT group_id FROM product_groups WHERE type = \$1`).
		WithArgs("phone").
		WillReturnRows(rows)

	ids, err := cat.GroupIDs(context.Background(), "phone", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupIDs_BrandsLowered(t *testing.T) {
	cat, mock := newTestCatalog(t)

	rows := sqlmock.NewRows([]string{"group_id"}).AddRow("p1")
	mock.ExpectQuery(`SELECT group_id FROM product_groups WHERE type = \$1 AND LOWER\(brand\) = ANY\(\$2\)`).
		WithArgs("phone", sqlmock.AnyArg()).
		WillReturnRows(rows)

	ids, err := cat.GroupIDs(context.Background(), "phone", []string{"Apple", "SAMSUNG"})

	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupIDs_EmptyResult(t *testing.T) {
	cat, mock := newTestCatalog(t)

	mock.ExpectQuery(`SELECT group_id FROM product_groups`).
		WithArgs("tablet").
		WillReturnRows(sqlmock.NewRows([]string{"group_id"}))

	ids, err := cat.GroupIDs(context.Background(), "tablet", nil)

	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGroupIDs_QueryError(t *testing.T) {
	cat, mock := newTestCatalog(t)

	mock.ExpectQuery(`SELECT group_id FROM product_groups`).
		WillReturnError(errors.New("connection refused"))

	_, err := cat.GroupIDs(context.Background(), "phone", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query group ids")
}

func TestGroupIDsTagged_PreservesRowOrder(t *testing.T) {
	cat, mock := newTestCatalog(t)

	// The returned order becomes the positional rank downstream, so the
	// adapter must not impose any ordering of its own.
	rows := sqlmock.NewRows([]string{"group_id"}).
		AddRow("p3").
		AddRow("p1").
		AddRow("p2")
	mock.ExpectQuery(`JOIN product_group_tags t ON t\.group_id = g\.group_id`).
		WithArgs("long_battery", sqlmock.AnyArg()).
		WillReturnRows(rows)

	ids, err := cat.GroupIDsTagged(context.Background(), "long_battery", []string{"p1", "p2", "p3"})

	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids)
}

func TestGroupIDsTagged_NoUniverseFilter(t *testing.T) {
	cat, mock := newTestCatalog(t)

	rows := sqlmock.NewRows([]string{"group_id"}).AddRow("p1")
	mock.ExpectQuery(`WHERE t\.tag = \$1`).
		WithArgs("good_camera").
		WillReturnRows(rows)

	ids, err := cat.GroupIDsTagged(context.Background(), "good_camera", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestMinPrices(t *testing.T) {
	cat, mock := newTestCatalog(t)

	rows := sqlmock.NewRows([]string{"group_id", "min"}).
		AddRow("p1", int64(25_000_000)).
		AddRow("p2", int64(6_000_000))
	mock.ExpectQuery(`SELECT group_id, MIN\(current_price\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	prices, err := cat.MinPrices(context.Background(), []string{"p1", "p2", "p3"})

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"p1": 25_000_000,
		"p2": 6_000_000,
	}, prices)
	// p3 has no variant price row and is simply absent.
	_, ok := prices["p3"]
	assert.False(t, ok)
}

func TestMinPrices_EmptyInputSkipsQuery(t *testing.T) {
	cat, mock := newTestCatalog(t)

	prices, err := cat.MinPrices(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, prices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroups(t *testing.T) {
	cat, mock := newTestCatalog(t)

	rows := sqlmock.NewRows([]string{"group_id", "group_name", "brand", "type"}).
		AddRow("p1", "iPhone 15 Pro", "apple", "phone").
		AddRow("p2", "Galaxy S24", "samsung", "phone")
	mock.ExpectQuery(`SELECT group_id, group_name, brand, type`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	groups, err := cat.Groups(context.Background(), []string{"p1", "p2"})

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "iPhone 15 Pro", groups["p1"].Name)
	assert.Equal(t, "samsung", groups["p2"].Brand)
}

func TestGroups_EmptyInputSkipsQuery(t *testing.T) {
	cat, mock := newTestCatalog(t)

	groups, err := cat.Groups(context.Background(), []string{})

	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.NoError(t, mock.ExpectationsWereMet())
}
