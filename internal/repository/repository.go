package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"postpilot/internal/models"
)

// Not-found errors are deliberately indistinguishable from forbidden ones:
// a scoped UPDATE or DELETE that matches zero rows never reveals whether
// the row exists under another owner.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrConnectionNotFound = errors.New("instagram connection not found")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

// PostRepository scopes every read and mutation by the owning user. The
// owner ID is a required argument on all methods so no call path can omit
// it.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID, userID string) (*models.Post, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Post, error)
	ListByMediaType(ctx context.Context, userID, mediaType string) ([]models.Post, error)
	UpdateSchedule(ctx context.Context, postID, userID string, scheduledAt time.Time) error
	MarkPublished(ctx context.Context, postID, userID string) error
	Delete(ctx context.Context, postID, userID string) error
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByStatus(ctx context.Context, userID, status string) (int, error)
}

type ConnectionRepository interface {
	Upsert(ctx context.Context, conn *models.InstagramConnection) error
	GetByUserID(ctx context.Context, userID string) (*models.InstagramConnection, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type Repository struct {
	User       UserRepository
	Post       PostRepository
	Connection ConnectionRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Post:       NewPostRepository(db),
		Connection: NewConnectionRepository(db),
	}
}
