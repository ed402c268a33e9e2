package service

import (
	"postpilot/internal/cache"
	"postpilot/internal/config"
	"postpilot/internal/instagram"
	"postpilot/internal/repository"
	"postpilot/internal/storage"
)

type Service struct {
	Auth      AuthService
	Post      PostService
	Media     MediaService
	Instagram InstagramService
	Dashboard DashboardService
	Calendar  CalendarService
	Composer  ComposerService
}

func NewService(repo *repository.Repository, cfg *config.Config, store storage.Storage, ig *instagram.Client, c *cache.Cache) *Service {
	postService := NewPostService(repo.Post, c)

	return &Service{
		Auth:      NewAuthService(repo.User, cfg),
		Post:      postService,
		Media:     NewMediaService(store, cfg),
		Instagram: NewInstagramService(repo.Connection, repo.Post, ig, c),
		Dashboard: NewDashboardService(repo.Post, c),
		Calendar:  NewCalendarService(repo.Post, postService),
		Composer:  NewComposerService(),
	}
}
