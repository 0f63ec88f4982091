package store

import (
	"context"
	"regexp"
	"testing"

	"itinfo/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestPostgres_SearchUsesILIKE(t *testing.T) {
	gdb, mock := setupMockDB(t)
	s := New(gdb, DefaultTables()...)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "it_info_products" WHERE (it_info_products.name ILIKE $1 ESCAPE '\' OR it_info_products.brand ILIKE $2 ESCAPE '\')`,
	)).
		WithArgs("%lg%", "%lg%").
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "brand"}).AddRow(1, "Gram", "LG"))

	var got []models.Product
	err := s.Query(context.Background(), Products, Query{
		Filters: []Filter{AnyILike(Contains("lg"), "name", "brand")},
	}, &got)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gram", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateLikes(t *testing.T) {
	gdb, mock := setupMockDB(t)
	s := New(gdb, DefaultTables()...)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "it_info_reviews" SET "likes"=$1 WHERE it_info_reviews.review_id = $2`)).
		WithArgs(8, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := s.Update(context.Background(), Reviews, map[string]any{"likes": 8}, Eq("review_id", 3))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_QueryFailureIsInternal(t *testing.T) {
	gdb, mock := setupMockDB(t)
	s := New(gdb, DefaultTables()...)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "it_info_posts"`)).WillReturnError(assert.AnError)

	var got []models.Post
	err := s.Query(context.Background(), Posts, Query{}, &got)
	require.Error(t, err)
	assert.Equal(t, models.CodeInternal, models.ErrorCode(err))
}
