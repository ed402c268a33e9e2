package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postpilot/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestPostCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec("INSERT INTO posts").
		WithArgs(
			sqlmock.AnyArg(), // generated post_id
			"user-1",
			"first post",
			pq.StringArray{"https://cdn.example.com/a.jpg"},
			models.MediaTypeImage,
			models.PostStatusDraft,
			nil,
			sqlmock.AnyArg(), // created_at
			sqlmock.AnyArg(), // updated_at
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	post := &models.Post{
		UserID:    "user-1",
		Caption:   "first post",
		ImageURLs: pq.StringArray{"https://cdn.example.com/a.jpg"},
		MediaType: models.MediaTypeImage,
		Status:    models.PostStatusDraft,
	}

	err := repo.Create(context.Background(), post)

	require.NoError(t, err)
	assert.NotEmpty(t, post.PostID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostGetByIDScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery("SELECT \\* FROM posts").
		WithArgs("post-1", "user-2").
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}))

	_, err := repo.GetByID(context.Background(), "post-1", "user-2")

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostUpdateSchedule(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	scheduledAt := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE posts SET").
		WithArgs(scheduledAt, "post-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSchedule(context.Background(), "post-1", "user-1", scheduledAt)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostUpdateScheduleZeroRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	scheduledAt := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	// zero rows: wrong owner, missing post, or an already published post
	mock.ExpectExec("UPDATE posts SET").
		WithArgs(scheduledAt, "post-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSchedule(context.Background(), "post-1", "intruder", scheduledAt)

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostMarkPublished(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec("UPDATE posts SET").
		WithArgs("post-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkPublished(context.Background(), "post-1", "user-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostDeleteZeroRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec("DELETE FROM posts").
		WithArgs("post-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "post-1", "intruder")

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM posts").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM posts").
		WithArgs("user-1", models.PostStatusScheduled).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.CountByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, total)

	scheduled, err := repo.CountByStatus(context.Background(), "user-1", models.PostStatusScheduled)
	require.NoError(t, err)
	assert.Equal(t, 3, scheduled)

	assert.NoError(t, mock.ExpectationsWereMet())
}
