package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postpilot/internal/models"
)

func TestBuildEventsColors(t *testing.T) {
	scheduled := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{
			PostID:      "post-1",
			Caption:     "coming up",
			Status:      models.PostStatusScheduled,
			ScheduledAt: &scheduled,
			ImageURLs:   []string{"https://cdn.example.com/a.jpg"},
		},
		{
			PostID:      "post-2",
			Caption:     "already out",
			Status:      models.PostStatusPublished,
			ScheduledAt: &scheduled,
		},
		{
			PostID:  "post-3",
			Caption: "still a draft",
			Status:  models.PostStatusDraft,
		},
	}

	events := BuildEvents(posts)
	require.Len(t, events, 3)

	assert.Equal(t, "#3b82f6", events[0].BackgroundColor)
	assert.Equal(t, "#3b82f6", events[0].BorderColor)
	assert.Equal(t, "https://cdn.example.com/a.jpg", events[0].ImageURL)

	assert.Equal(t, "#10b981", events[1].BackgroundColor)
	assert.Equal(t, "#10b981", events[1].BorderColor)

	// drafts share the scheduled color, only published differs
	assert.Equal(t, "#3b82f6", events[2].BackgroundColor)
}

func TestBuildEventsDateFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	scheduled := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	events := BuildEvents([]models.Post{
		{PostID: "post-1", CreatedAt: created},
		{PostID: "post-2", CreatedAt: created, ScheduledAt: &scheduled},
	})

	require.Len(t, events, 2)
	assert.Equal(t, created, events[0].Date)
	assert.Equal(t, scheduled, events[1].Date)
}

func TestBuildEventsTruncatesLongTitles(t *testing.T) {
	long := strings.Repeat("caption ", 10)

	events := BuildEvents([]models.Post{{PostID: "post-1", Caption: long}})

	require.Len(t, events, 1)
	assert.Equal(t, long[:20]+"…", events[0].Title)
}

func TestBuildEventsKeepsShortTitles(t *testing.T) {
	events := BuildEvents([]models.Post{{PostID: "post-1", Caption: "short one"}})

	require.Len(t, events, 1)
	assert.Equal(t, "short one", events[0].Title)
}

func TestBuildEventsTruncatesByRunes(t *testing.T) {
	caption := strings.Repeat("ü", 25)

	events := BuildEvents([]models.Post{{PostID: "post-1", Caption: caption}})

	require.Len(t, events, 1)
	assert.Equal(t, strings.Repeat("ü", 20)+"…", events[0].Title)
}
