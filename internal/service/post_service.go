package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"postpilot/internal/cache"
	"postpilot/internal/models"
	"postpilot/internal/repository"
)

// MaxCaptionLength is Instagram's caption ceiling.
const MaxCaptionLength = 2200

var (
	ErrInvalidDate      = errors.New("Invalid date format")
	ErrInvalidMediaType = errors.New("invalid media type")
	ErrNoMedia          = errors.New("at least one media URL is required")
	ErrCaptionTooLong   = fmt.Errorf("caption exceeds %d characters", MaxCaptionLength)
)

type CreatePostRequest struct {
	UserID      string
	Caption     string
	ImageURLs   []string
	MediaType   string
	ScheduledAt string
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdateSchedule(ctx context.Context, postID, userID, newDate string) error
	ListPosts(ctx context.Context, userID string, limit int) ([]models.Post, error)
	MediaLibrary(ctx context.Context, userID, mediaType string) ([]models.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	cache     *cache.Cache
	sanitizer *bluemonday.Policy
}

func NewPostService(postRepo repository.PostRepository, c *cache.Cache) PostService {
	return &postService{
		postRepo:  postRepo,
		cache:     c,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// CreatePost validates and persists a post. The status is derived from the
// schedule: a future scheduled date makes it SCHEDULED, otherwise DRAFT.
func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	if !models.IsValidMediaType(req.MediaType) {
		return nil, ErrInvalidMediaType
	}
	if len(req.ImageURLs) == 0 {
		return nil, ErrNoMedia
	}

	caption := p.sanitizer.Sanitize(req.Caption)
	if utf8.RuneCountInString(caption) > MaxCaptionLength {
		return nil, ErrCaptionTooLong
	}

	status := models.PostStatusDraft
	var scheduledAt *time.Time
	if req.ScheduledAt != "" {
		parsed, err := parseScheduleDate(req.ScheduledAt)
		if err != nil {
			return nil, err
		}
		scheduledAt = &parsed
		if parsed.After(time.Now()) {
			status = models.PostStatusScheduled
		}
	}

	post := &models.Post{
		UserID:      req.UserID,
		Caption:     caption,
		ImageURLs:   req.ImageURLs,
		MediaType:   req.MediaType,
		Status:      status,
		ScheduledAt: scheduledAt,
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	p.invalidateDashboard(ctx, req.UserID)
	return post, nil
}

// UpdateSchedule reschedules an owned post. The date is validated before
// any query runs, so an unparsable date never touches the store.
func (p *postService) UpdateSchedule(ctx context.Context, postID, userID, newDate string) error {
	scheduledAt, err := parseScheduleDate(newDate)
	if err != nil {
		return err
	}

	if err := p.postRepo.UpdateSchedule(ctx, postID, userID, scheduledAt); err != nil {
		return err
	}

	p.invalidateDashboard(ctx, userID)
	return nil
}

func (p *postService) ListPosts(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return p.postRepo.ListByUser(ctx, userID, limit)
}

func (p *postService) MediaLibrary(ctx context.Context, userID, mediaType string) ([]models.Post, error) {
	if !models.IsValidMediaType(mediaType) {
		return nil, ErrInvalidMediaType
	}
	return p.postRepo.ListByMediaType(ctx, userID, mediaType)
}

func (p *postService) DeletePost(ctx context.Context, postID, userID string) error {
	if err := p.postRepo.Delete(ctx, postID, userID); err != nil {
		return err
	}

	p.invalidateDashboard(ctx, userID)
	return nil
}

func (p *postService) invalidateDashboard(ctx context.Context, userID string) {
	if p.cache != nil {
		p.cache.Delete(ctx, dashboardCacheKey(userID))
	}
}

// parseScheduleDate accepts the ISO-8601 shapes browsers produce.
func parseScheduleDate(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
