package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"postpilot/internal/middleware"
	"postpilot/internal/service"
)

type PostsResponse struct {
	Posts interface{} `json:"posts"`
}

// CreatePost accepts a multipart submission: caption, mediaType, optional
// scheduledAt, plus either uploaded "media" files or pre-uploaded
// "imageUrls" from the media library. Files are processed and pushed to
// object storage before the post row is written.
func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Cap the body while it is being read; without this the size check
	// would only run after the full upload sits in memory.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			WriteError(w, fmt.Sprintf("file is too large (max %s)", humanize.Bytes(uint64(h.Cfg.MaxUploadSize))), http.StatusBadRequest)
		} else {
			WriteError(w, "invalid multipart form", http.StatusBadRequest)
		}
		return
	}

	caption := r.FormValue("caption")
	mediaType := r.FormValue("mediaType")
	scheduledAt := r.FormValue("scheduledAt")

	imageURLs := r.Form["imageUrls"]

	if files := r.MultipartForm.File["media"]; len(files) > 0 {
		uploads := make([]service.UploadFile, 0, len(files))
		for _, fh := range files {
			file, err := fh.Open()
			if err != nil {
				WriteError(w, "failed to read uploaded file", http.StatusBadRequest)
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				WriteError(w, "failed to read uploaded file", http.StatusBadRequest)
				return
			}
			uploads = append(uploads, service.UploadFile{Name: fh.Filename, Data: data})
		}

		urls, err := h.MediaService.UploadMedia(r.Context(), mediaType, uploads)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		imageURLs = append(imageURLs, urls...)
	}

	post, err := h.PostService.CreatePost(r.Context(), service.CreatePostRequest{
		UserID:      userID,
		Caption:     caption,
		ImageURLs:   imageURLs,
		MediaType:   mediaType,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}

	posts, err := h.PostService.ListPosts(r.Context(), userID, limit)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PostsResponse{Posts: posts}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
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

	if err := h.PostService.DeletePost(r.Context(), postID, userID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}

// GetMediaLibrary lists the caller's posts filtered by media type, backing
// the "reuse existing media" picker in the composer.
func (h *Handlers) GetMediaLibrary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	mediaType := r.URL.Query().Get("mediaType")
	posts, err := h.PostService.MediaLibrary(r.Context(), userID, mediaType)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, PostsResponse{Posts: posts}, http.StatusOK)
}
