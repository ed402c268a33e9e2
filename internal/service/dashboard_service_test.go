package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"postpilot/internal/models"
)

func TestGetDashboardData(t *testing.T) {
	scheduled := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)

	repo := new(MockPostRepository)
	repo.On("CountByUser", mock.Anything, "user-1").Return(12, nil)
	repo.On("CountByStatus", mock.Anything, "user-1", models.PostStatusScheduled).Return(4, nil)
	repo.On("CountByStatus", mock.Anything, "user-1", models.PostStatusPublished).Return(3, nil)
	repo.On("ListByUser", mock.Anything, "user-1", 10).Return([]models.Post{
		{
			PostID:      "post-1",
			Caption:     "on the calendar",
			Status:      models.PostStatusScheduled,
			ScheduledAt: &scheduled,
			ImageURLs:   []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		},
		{
			PostID:  "post-2",
			Caption: "loose draft",
			Status:  models.PostStatusDraft,
		},
	}, nil)

	svc := NewDashboardService(repo, nil)
	data, err := svc.GetDashboardData(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 12, data.Stats.TotalPosts)
	assert.Equal(t, 4, data.Stats.Scheduled)
	assert.Equal(t, 3, data.Stats.Published)
	assert.Equal(t, "0", data.Stats.Engagement)
	assert.Equal(t, "0", data.Stats.Comments)

	require.Len(t, data.Posts, 2)
	assert.Equal(t, "Sep 15, 2026 10:30", data.Posts[0].ScheduledFor)
	assert.Equal(t, "https://cdn.example.com/a.jpg", data.Posts[0].Image)
	assert.Equal(t, "Not scheduled", data.Posts[1].ScheduledFor)
	assert.Empty(t, data.Posts[1].Image)

	repo.AssertExpectations(t)
}

func TestGetDashboardDataPropagatesRepositoryError(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("CountByUser", mock.Anything, "user-1").Return(0, assert.AnError)

	svc := NewDashboardService(repo, nil)
	_, err := svc.GetDashboardData(context.Background(), "user-1")

	assert.ErrorIs(t, err, assert.AnError)
	repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
}
