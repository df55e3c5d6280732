package product

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/commerce-api/internal/pkg/dbtest"
)

func TestGormSearchProducts_RanksNameThenDescriptionThenTag(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := NewRepository(db)

	expected := `SELECT * FROM products ` +
		`WHERE is_active = TRUE AND (name ILIKE $1 OR description ILIKE $2 OR $3 = ANY(tags)) ` +
		`ORDER BY CASE WHEN name ILIKE $4 THEN 1 WHEN description ILIKE $5 THEN 2 ELSE 3 END, name ` +
		`LIMIT $6`

	mock.ExpectQuery(regexp.QuoteMeta(expected)).
		WithArgs("%bread%", "%bread%", "bread", "%bread%", "%bread%", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(2, "Bread Roll").
			AddRow(5, "Sandwich"))

	products, err := repo.SearchProducts(context.Background(), "bread", 10)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Bread Roll", products[0].Name)
	assert.Equal(t, uint(5), products[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormListActiveCategories_RootsFirst(t *testing.T) {
	db, mock := dbtest.New(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "categories" WHERE is_active = $1 ORDER BY parent_id NULLS FIRST, name`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "parent_id", "is_active"}).
			AddRow(1, "Bakery", nil, true).
			AddRow(4, "Cakes", 1, true))

	categories, err := repo.ListActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Nil(t, categories[0].ParentID)
	require.NotNil(t, categories[1].ParentID)
	assert.Equal(t, uint(1), *categories[1].ParentID)
	require.NoError(t, mock.ExpectationsWereMet())
}
