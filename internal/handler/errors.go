package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"postpilot/internal/instagram"
	"postpilot/internal/media"
	"postpilot/internal/repository"
	"postpilot/internal/service"
)

// ErrorResponse is the uniform error shape; nothing else ever leaves a
// failed handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps domain errors onto HTTP statuses. Scoped queries
// that matched nothing report not-found; the caller cannot tell whether
// the row exists under another owner.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrConnectionNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidMediaType),
		errors.Is(err, service.ErrNoMedia),
		errors.Is(err, service.ErrCaptionTooLong),
		errors.Is(err, service.ErrSingleMediaOnly),
		errors.Is(err, service.ErrInvalidOAuthState),
		errors.Is(err, service.ErrNotConnected),
		errors.Is(err, service.ErrNoBusinessAccount),
		errors.Is(err, media.ErrCarouselLimit),
		errors.Is(err, media.ErrVideoTooLong):
		WriteError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, instagram.ErrOAuthExchange),
		errors.Is(err, instagram.ErrContainerCreation),
		errors.Is(err, instagram.ErrPublish),
		errors.Is(err, instagram.ErrGraphAPI):
		WriteError(w, err.Error(), http.StatusBadGateway)

	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
