package service

import (
	"context"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/repository"
)

const (
	calendarEventsLimit = 500
	eventTitleLimit     = 20

	colorPublished = "#10b981"
	colorScheduled = "#3b82f6"
)

// CalendarEvent is one entry on the scheduling grid. Published posts render
// green, everything else blue.
type CalendarEvent struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Status          string    `json:"status"`
}

type CalendarService interface {
	Events(ctx context.Context, userID string) ([]CalendarEvent, error)
	Reschedule(ctx context.Context, postID, userID, newDate string) error
}

type calendarService struct {
	postRepo    repository.PostRepository
	postService PostService
}

func NewCalendarService(postRepo repository.PostRepository, postService PostService) CalendarService {
	return &calendarService{postRepo: postRepo, postService: postService}
}

func (s *calendarService) Events(ctx context.Context, userID string) ([]CalendarEvent, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID, calendarEventsLimit)
	if err != nil {
		return nil, err
	}
	return BuildEvents(posts), nil
}

// Reschedule backs the drag-and-drop on the calendar. The client moves the
// event optimistically and reverts on an error result.
func (s *calendarService) Reschedule(ctx context.Context, postID, userID, newDate string) error {
	return s.postService.UpdateSchedule(ctx, postID, userID, newDate)
}

// BuildEvents maps posts onto calendar events. Unscheduled posts fall back
// to their creation date so drafts stay visible on the grid.
func BuildEvents(posts []models.Post) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(posts))
	for _, post := range posts {
		date := post.CreatedAt
		if post.ScheduledAt != nil {
			date = *post.ScheduledAt
		}

		color := colorScheduled
		if post.Status == models.PostStatusPublished {
			color = colorPublished
		}

		event := CalendarEvent{
			ID:              post.PostID,
			Title:           truncateTitle(post.Caption),
			Date:            date,
			BackgroundColor: color,
			BorderColor:     color,
			Status:          post.Status,
		}
		if len(post.ImageURLs) > 0 {
			event.ImageURL = post.ImageURLs[0]
		}
		events = append(events, event)
	}
	return events
}

func truncateTitle(caption string) string {
	runes := []rune(caption)
	if len(runes) <= eventTitleLimit {
		return caption
	}
	return string(runes[:eventTitleLimit]) + "…"
}
