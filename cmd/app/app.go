package app

import (
	"log"

	"postpilot/internal/cache"
	"postpilot/internal/config"
	"postpilot/internal/database"
	"postpilot/internal/instagram"
	"postpilot/internal/repository"
	"postpilot/internal/service"
	"postpilot/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, *cache.Cache) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("failed to initialize MinIO: %v", err)
	}

	redisCache := cache.New(cfg.Redis)
	graphClient := instagram.NewClient(cfg.Instagram)

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, minioClient, graphClient, redisCache)

	return db, repo, services, redisCache
}
