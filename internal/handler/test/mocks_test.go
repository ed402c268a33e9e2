package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"postpilot/internal/models"
	"postpilot/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdateSchedule(ctx context.Context, postID, userID, newDate string) error {
	args := m.Called(ctx, postID, userID, newDate)
	return args.Error(0)
}

func (m *MockPostService) ListPosts(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) MediaLibrary(ctx context.Context, userID, mediaType string) ([]models.Post, error) {
	args := m.Called(ctx, userID, mediaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) Events(ctx context.Context, userID string) ([]service.CalendarEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CalendarEvent), args.Error(1)
}

func (m *MockCalendarService) Reschedule(ctx context.Context, postID, userID, newDate string) error {
	args := m.Called(ctx, postID, userID, newDate)
	return args.Error(0)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboardData(ctx context.Context, userID string) (*service.DashboardData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardData), args.Error(1)
}

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadMedia(ctx context.Context, mediaType string, files []service.UploadFile) ([]string, error) {
	args := m.Called(ctx, mediaType, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockInstagramService struct {
	mock.Mock
}

func (m *MockInstagramService) ConnectURL(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockInstagramService) HandleCallback(ctx context.Context, userID, code, state string) (*models.InstagramConnection, error) {
	args := m.Called(ctx, userID, code, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InstagramConnection), args.Error(1)
}

func (m *MockInstagramService) GetConnection(ctx context.Context, userID string) (*models.InstagramConnection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InstagramConnection), args.Error(1)
}

func (m *MockInstagramService) Disconnect(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockInstagramService) PublishPost(ctx context.Context, postID, userID string) (string, error) {
	args := m.Called(ctx, postID, userID)
	return args.String(0), args.Error(1)
}
