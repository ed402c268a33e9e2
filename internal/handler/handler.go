package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"postpilot/internal/config"
	"postpilot/internal/repository"
	"postpilot/internal/service"
)

type Handlers struct {
	AuthService      service.AuthService
	PostService      service.PostService
	MediaService     service.MediaService
	InstagramService service.InstagramService
	DashboardService service.DashboardService
	CalendarService  service.CalendarService
	ComposerService  service.ComposerService
	UserRepo         repository.UserRepository
	Cfg              *config.Config
	Validate         *validator.Validate
}

func NewHandlers(repo *repository.Repository, services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:      services.Auth,
		PostService:      services.Post,
		MediaService:     services.Media,
		InstagramService: services.Instagram,
		DashboardService: services.Dashboard,
		CalendarService:  services.Calendar,
		ComposerService:  services.Composer,
		UserRepo:         repo.User,
		Cfg:              config,
		Validate:         validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, MessageResponse{Message: "postpilot API"}, http.StatusOK)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, MessageResponse{Message: "ok"}, http.StatusOK)
}
