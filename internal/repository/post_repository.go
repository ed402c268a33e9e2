package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"postpilot/internal/models"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, user_id, caption, image_urls, media_type, status, scheduled_at, created_at, updated_at)
        VALUES
        (:post_id, :user_id, :caption, :image_urls, :media_type, :status, :scheduled_at, :created_at, :updated_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID, userID string) (*models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE post_id = $1 AND user_id = $2
    `

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) ListByUser(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `

	var posts []models.Post
	err := r.DB.SelectContext(ctx, &posts, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListByMediaType(ctx context.Context, userID, mediaType string) ([]models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE user_id = $1 AND media_type = $2
        ORDER BY created_at DESC
    `

	var posts []models.Post
	err := r.DB.SelectContext(ctx, &posts, query, userID, mediaType)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by media type: %w", err)
	}

	return posts, nil
}

// UpdateSchedule moves a post to a new date and forces SCHEDULED status.
// Published posts are excluded by the WHERE clause so a post never moves
// back from PUBLISHED to SCHEDULED.
func (r *PostRepositoryImpl) UpdateSchedule(ctx context.Context, postID, userID string, scheduledAt time.Time) error {
	query := `
		UPDATE posts SET
			scheduled_at = $1,
			status = 'SCHEDULED',
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $2 AND user_id = $3 AND status <> 'PUBLISHED'
	`

	result, err := r.DB.ExecContext(ctx, query, scheduledAt, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to reschedule post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) MarkPublished(ctx context.Context, postID, userID string) error {
	query := `
		UPDATE posts SET
			status = 'PUBLISHED',
			updated_at = CURRENT_TIMESTAMP
		WHERE post_id = $1 AND user_id = $2 AND status <> 'PUBLISHED'
	`

	result, err := r.DB.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark post published: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM posts WHERE post_id = $1 AND user_id = $2`

	result, err := r.DB.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (r *PostRepositoryImpl) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE user_id = $1`

	var count int
	if err := r.DB.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) CountByStatus(ctx context.Context, userID, status string) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE user_id = $1 AND status = $2`

	var count int
	if err := r.DB.GetContext(ctx, &count, query, userID, status); err != nil {
		return 0, fmt.Errorf("failed to count posts by status: %w", err)
	}

	return count, nil
}
