package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"postpilot/internal/config"
	"postpilot/internal/logger"
	"postpilot/internal/media"
	"postpilot/internal/models"
	"postpilot/internal/storage"
)

var ErrSingleMediaOnly = errors.New("this media type accepts exactly one file")

// UploadFile is an in-memory file taken from a multipart submission.
type UploadFile struct {
	Name string
	Data []byte
}

type MediaService interface {
	UploadMedia(ctx context.Context, mediaType string, files []UploadFile) ([]string, error)
}

type mediaService struct {
	storage storage.Storage
	cfg     *config.Config
}

func NewMediaService(store storage.Storage, cfg *config.Config) MediaService {
	return &mediaService{storage: store, cfg: cfg}
}

// UploadMedia runs the processing pipeline for the media type, then uploads
// every processed file and returns the public URLs in submission order.
// Validation failures happen before any upload call.
func (m *mediaService) UploadMedia(ctx context.Context, mediaType string, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoMedia
	}

	for _, f := range files {
		if int64(len(f.Data)) > m.cfg.MaxUploadSize {
			return nil, fmt.Errorf("file %s is too large (max %s)", f.Name, humanize.Bytes(uint64(m.cfg.MaxUploadSize)))
		}
	}

	results, err := m.process(mediaType, files)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(results))
	for _, result := range results {
		if result.Fallback {
			logger.Sugar.Infow("uploading original file after processing fallback", "file", result.FileName)
		}
		_, publicURL, err := m.storage.UploadMedia(ctx, result.FileName, bytes.NewReader(result.Data), int64(len(result.Data)), result.ContentType)
		if err != nil {
			return nil, err
		}
		urls = append(urls, publicURL)
	}

	return urls, nil
}

func (m *mediaService) process(mediaType string, files []UploadFile) ([]media.Result, error) {
	switch mediaType {
	case models.MediaTypeCarousel:
		names := make([]string, len(files))
		items := make([][]byte, len(files))
		for i, f := range files {
			names[i] = f.Name
			items[i] = f.Data
		}
		return media.ProcessCarousel(names, items)

	case models.MediaTypeReel:
		if len(files) != 1 {
			return nil, ErrSingleMediaOnly
		}
		result, err := media.ProcessVideo(files[0].Name, files[0].Data)
		if err != nil {
			return nil, err
		}
		return []media.Result{result}, nil

	case models.MediaTypeImage, models.MediaTypeStory:
		if len(files) != 1 {
			return nil, ErrSingleMediaOnly
		}
		return []media.Result{media.ProcessImage(files[0].Name, files[0].Data)}, nil

	default:
		return nil, ErrInvalidMediaType
	}
}
