package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"postpilot/internal/middleware"
)

func (h *Handlers) GetCalendarEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	events, err := h.CalendarService.Events(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{"events": events}, http.StatusOK)
}

// UpdatePostSchedule backs the calendar drag-to-reschedule. The client
// applies the move optimistically and reverts the event when this returns
// an error result.
func (h *Handlers) UpdatePostSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "missing post id", http.StatusBadRequest)
		return
	}

	var req struct {
		ScheduledAt string `json:"scheduledAt" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.CalendarService.Reschedule(r.Context(), postID, userID, req.ScheduledAt); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}
