package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"postpilot/cmd/app"
	"postpilot/internal/config"
	handlers "postpilot/internal/handler"
	"postpilot/internal/logger"
	"postpilot/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Logger.Sync()

	db, repo, services, redisCache := app.App(cfg)
	defer db.CloseDB()
	defer redisCache.Close()

	handler := handlers.NewHandlers(repo, services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	router.HandleFunc("/api/me", handler.GetCurrentUser).Methods(http.MethodGet)

	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	router.HandleFunc("/api/posts/{id}/schedule", handler.UpdatePostSchedule).Methods(http.MethodPatch)
	router.HandleFunc("/api/posts/{id}/publish", handler.PublishPost).Methods(http.MethodPost)
	router.HandleFunc("/api/media-library", handler.GetMediaLibrary).Methods(http.MethodGet)

	router.HandleFunc("/api/dashboard", handler.GetDashboardData).Methods(http.MethodGet)
	router.HandleFunc("/api/calendar/events", handler.GetCalendarEvents).Methods(http.MethodGet)

	router.HandleFunc("/api/instagram/connect-url", handler.GetConnectURL).Methods(http.MethodGet)
	router.HandleFunc("/api/instagram/callback", handler.InstagramCallback).Methods(http.MethodPost)
	router.HandleFunc("/api/instagram/connection", handler.GetConnection).Methods(http.MethodGet)
	router.HandleFunc("/api/instagram/connection", handler.DisconnectInstagram).Methods(http.MethodDelete)

	router.HandleFunc("/api/hashtags/suggestions", handler.SuggestHashtags).Methods(http.MethodGet)
	router.HandleFunc("/api/captions/generate", handler.GenerateCaption).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(cfg),
		middleware.RateLimitMiddleware(cfg),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:         addr,
		Handler:      handlerChain,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Sugar.Infow("server started", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Sugar.Info("shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Sugar.Errorw("graceful shutdown failed", "error", err)
	}
}
