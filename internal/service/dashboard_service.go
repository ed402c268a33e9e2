package service

import (
	"context"
	"time"

	"postpilot/internal/cache"
	"postpilot/internal/models"
	"postpilot/internal/repository"
)

const (
	dashboardCacheTTL   = time.Minute
	dashboardPostsLimit = 10
)

type DashboardStats struct {
	TotalPosts int    `json:"totalPosts"`
	Scheduled  int    `json:"scheduled"`
	Published  int    `json:"published"`
	Engagement string `json:"engagement"`
	Comments   string `json:"comments"`
}

type DashboardPost struct {
	models.Post
	ScheduledFor string `json:"scheduledFor"`
	Image        string `json:"image"`
}

type DashboardData struct {
	Stats DashboardStats  `json:"stats"`
	Posts []DashboardPost `json:"posts"`
}

type DashboardService interface {
	GetDashboardData(ctx context.Context, userID string) (*DashboardData, error)
}

type dashboardService struct {
	postRepo repository.PostRepository
	cache    *cache.Cache
}

func NewDashboardService(postRepo repository.PostRepository, c *cache.Cache) DashboardService {
	return &dashboardService{postRepo: postRepo, cache: c}
}

func dashboardCacheKey(userID string) string {
	return "cache:dashboard:" + userID
}

// GetDashboardData aggregates the per-user status breakdown and the latest
// posts. Engagement metrics stay at zero until analytics are wired to the
// Graph API.
func (s *dashboardService) GetDashboardData(ctx context.Context, userID string) (*DashboardData, error) {
	if s.cache != nil {
		var cached DashboardData
		if s.cache.GetJSON(ctx, dashboardCacheKey(userID), &cached) {
			return &cached, nil
		}
	}

	total, err := s.postRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	scheduled, err := s.postRepo.CountByStatus(ctx, userID, models.PostStatusScheduled)
	if err != nil {
		return nil, err
	}

	published, err := s.postRepo.CountByStatus(ctx, userID, models.PostStatusPublished)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListByUser(ctx, userID, dashboardPostsLimit)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		Stats: DashboardStats{
			TotalPosts: total,
			Scheduled:  scheduled,
			Published:  published,
			Engagement: "0",
			Comments:   "0",
		},
		Posts: make([]DashboardPost, 0, len(posts)),
	}

	for _, post := range posts {
		dp := DashboardPost{Post: post, ScheduledFor: "Not scheduled"}
		if post.ScheduledAt != nil {
			dp.ScheduledFor = post.ScheduledAt.Format("Jan 2, 2006 15:04")
		}
		if len(post.ImageURLs) > 0 {
			dp.Image = post.ImageURLs[0]
		}
		data.Posts = append(data.Posts, dp)
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, dashboardCacheKey(userID), data, dashboardCacheTTL)
	}

	return data, nil
}
