package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"postpilot/internal/middleware"
)

// GetConnectURL hands the client the authorization dialog URL; the state
// token inside it is single-use and expires server-side.
func (h *Handlers) GetConnectURL(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r); !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	WriteSuccess(w, map[string]string{"url": h.InstagramService.ConnectURL(r.Context())}, http.StatusOK)
}

func (h *Handlers) InstagramCallback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Code  string `json:"code" validate:"required"`
		State string `json:"state" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.InstagramService.HandleCallback(r.Context(), userID, req.Code, req.State)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, conn, http.StatusOK)
}

func (h *Handlers) GetConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.InstagramService.GetConnection(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, conn, http.StatusOK)
}

func (h *Handlers) DisconnectInstagram(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.InstagramService.Disconnect(r.Context(), userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}

// PublishPost pushes an owned post through the two-phase container
// protocol and flips its status to PUBLISHED.
func (h *Handlers) PublishPost(w http.ResponseWriter, r *http.Request) {
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

	mediaID, err := h.InstagramService.PublishPost(r.Context(), postID, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]string{"mediaId": mediaID}, http.StatusOK)
}
