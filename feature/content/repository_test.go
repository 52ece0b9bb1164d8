package content

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"p13n-sync/feature/content/models"
)

func mockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)

	return &Repository{db: gdb}, mock
}

func TestRepository_ListByType(t *testing.T) {
	repo, mock := mockRepository(t)

	rows := sqlmock.NewRows([]string{"content_id", "content_type", "name_title"}).
		AddRow("vid-1", "video", "One").
		AddRow("vid-2", "video", "Two")
	mock.ExpectQuery("SELECT \\* FROM `content_cache` WHERE content_type = \\?").
		WithArgs("video").
		WillReturnRows(rows)

	records, err := repo.ListByType(context.Background(), models.TypeVideo)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "vid-1", records[0].ContentID)
	assert.Equal(t, "Two", records[1].NameTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpsertBatchEmptyIsNoop(t *testing.T) {
	repo, mock := mockRepository(t)

	require.NoError(t, repo.UpsertBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
