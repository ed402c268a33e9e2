package handlers

import (
	"net/http"

	"postpilot/internal/middleware"
)

func (h *Handlers) GetDashboardData(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data, err := h.DashboardService.GetDashboardData(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, data, http.StatusOK)
}

func (h *Handlers) SuggestHashtags(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]interface{}{"hashtags": h.ComposerService.SuggestHashtags()}, http.StatusOK)
}

func (h *Handlers) GenerateCaption(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"caption": h.ComposerService.GenerateCaption()}, http.StatusOK)
}
