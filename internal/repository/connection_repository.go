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

type ConnectionRepositoryImpl struct {
	DB *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) *ConnectionRepositoryImpl {
	return &ConnectionRepositoryImpl{DB: db}
}

// Upsert inserts the connection or replaces the existing one for the user.
// A user holds at most one Instagram connection; reconnecting overwrites
// the stored token.
func (r *ConnectionRepositoryImpl) Upsert(ctx context.Context, conn *models.InstagramConnection) error {
	if conn.ConnectionID == "" {
		conn.ConnectionID = uuid.New().String()
	}

	now := time.Now()
	conn.CreatedAt = now
	conn.UpdatedAt = now

	query := `
		INSERT INTO instagram_connections
		(connection_id, user_id, instagram_id, page_id, username, profile_picture_url, access_token, token_expires_at, created_at, updated_at)
		VALUES
		(:connection_id, :user_id, :instagram_id, :page_id, :username, :profile_picture_url, :access_token, :token_expires_at, :created_at, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			instagram_id = EXCLUDED.instagram_id,
			page_id = EXCLUDED.page_id,
			username = EXCLUDED.username,
			profile_picture_url = EXCLUDED.profile_picture_url,
			access_token = EXCLUDED.access_token,
			token_expires_at = EXCLUDED.token_expires_at,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.DB.NamedExecContext(ctx, query, conn); err != nil {
		return fmt.Errorf("failed to save instagram connection: %w", err)
	}

	return nil
}

func (r *ConnectionRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*models.InstagramConnection, error) {
	query := `SELECT * FROM instagram_connections WHERE user_id = $1`

	var conn models.InstagramConnection
	err := r.DB.GetContext(ctx, &conn, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("failed to get instagram connection: %w", err)
	}

	return &conn, nil
}

func (r *ConnectionRepositoryImpl) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM instagram_connections WHERE user_id = $1`

	result, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete instagram connection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrConnectionNotFound
	}

	return nil
}
