package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	_ "image/png" // register decoder
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"

	"postpilot/internal/logger"
)

const (
	// MaxImageWidth is the downscale target; anything wider gets resized
	// preserving aspect ratio before re-encoding.
	MaxImageWidth = 1920
	// JPEGQuality matches the 0.7 lossy re-encode of the composer.
	JPEGQuality = 70
	// MaxCarouselItems is Instagram's hard cap per carousel post.
	MaxCarouselItems = 20
	// MaxReelDuration is the reel length ceiling enforced before upload.
	MaxReelDuration = 90 * time.Second
)

var (
	ErrCarouselLimit = errors.New("Limit Reached")
	ErrVideoTooLong  = fmt.Errorf("video exceeds the %s reel limit", MaxReelDuration)
)

// Result is a processed file ready for upload. Fallback marks files that
// failed processing and passed through untouched; a failed compression must
// never block submission.
type Result struct {
	FileName    string
	Data        []byte
	ContentType string
	Fallback    bool
}

// ProcessImage decodes, downscales to MaxImageWidth and re-encodes as JPEG.
// Any failure returns the original bytes with Fallback set.
func ProcessImage(fileName string, data []byte) Result {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Sugar.Warnw("image decode failed, keeping original", "file", fileName, "error", err)
		return fallbackResult(fileName, data)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > MaxImageWidth {
		newHeight := height * MaxImageWidth / width
		if newHeight < 1 {
			newHeight = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, MaxImageWidth, newHeight))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		logger.Sugar.Warnw("jpeg encode failed, keeping original", "file", fileName, "error", err)
		return fallbackResult(fileName, data)
	}

	return Result{
		FileName:    replaceExt(fileName, ".jpg"),
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
	}
}

// ProcessCarousel runs the image pipeline over every item. More than
// MaxCarouselItems is rejected up front, before anything is uploaded.
func ProcessCarousel(fileNames []string, items [][]byte) ([]Result, error) {
	if len(items) > MaxCarouselItems {
		return nil, ErrCarouselLimit
	}
	results := make([]Result, 0, len(items))
	for i, item := range items {
		results = append(results, ProcessImage(fileNames[i], item))
	}
	return results, nil
}

// ProcessVideo enforces the reel duration ceiling. There is no in-process
// transcoder, so accepted videos pass through as-is (the fallback path).
func ProcessVideo(fileName string, data []byte) (Result, error) {
	duration, err := ProbeMP4Duration(data)
	if err != nil {
		logger.Sugar.Warnw("could not probe video duration, keeping original", "file", fileName, "error", err)
		return fallbackResult(fileName, data), nil
	}
	if duration > MaxReelDuration {
		return Result{}, ErrVideoTooLong
	}
	return fallbackResult(fileName, data), nil
}

func fallbackResult(fileName string, data []byte) Result {
	return Result{
		FileName:    fileName,
		Data:        data,
		ContentType: mimetype.Detect(data).String(),
		Fallback:    true,
	}
}

func replaceExt(fileName, ext string) string {
	if idx := strings.LastIndex(fileName, "."); idx > 0 {
		return fileName[:idx] + ext
	}
	return fileName + ext
}

// ProbeMP4Duration reads the duration from the mvhd box of an MP4 file.
// Only the box headers are walked; media data is never decoded.
func ProbeMP4Duration(data []byte) (time.Duration, error) {
	mvhd, err := findBox(data, "moov", "mvhd")
	if err != nil {
		return 0, err
	}
	if len(mvhd) < 4 {
		return 0, errors.New("mvhd box truncated")
	}

	version := mvhd[0]
	switch version {
	case 0:
		// 1 version + 3 flags + 4 ctime + 4 mtime, then timescale/duration.
		if len(mvhd) < 20 {
			return 0, errors.New("mvhd v0 box truncated")
		}
		timescale := binary.BigEndian.Uint32(mvhd[12:16])
		duration := binary.BigEndian.Uint32(mvhd[16:20])
		if timescale == 0 {
			return 0, errors.New("mvhd timescale is zero")
		}
		return time.Duration(float64(duration) / float64(timescale) * float64(time.Second)), nil
	case 1:
		// 64-bit creation/modification times push the fields out.
		if len(mvhd) < 32 {
			return 0, errors.New("mvhd v1 box truncated")
		}
		timescale := binary.BigEndian.Uint32(mvhd[20:24])
		duration := binary.BigEndian.Uint64(mvhd[24:32])
		if timescale == 0 {
			return 0, errors.New("mvhd timescale is zero")
		}
		return time.Duration(float64(duration) / float64(timescale) * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("unsupported mvhd version %d", version)
	}
}

// findBox walks the top-level box list looking for path[0], then recurses
// into it for the rest of the path. Returns the payload of the final box.
func findBox(data []byte, path ...string) ([]byte, error) {
	if len(path) == 0 {
		return data, nil
	}
	target := path[0]

	offset := 0
	for offset+8 <= len(data) {
		size := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		boxType := string(data[offset+4 : offset+8])
		headerLen := 8

		if size == 1 {
			if offset+16 > len(data) {
				break
			}
			large := binary.BigEndian.Uint64(data[offset+8 : offset+16])
			size = int(large)
			headerLen = 16
		} else if size == 0 {
			// box extends to end of file
			size = len(data) - offset
		}

		if size < headerLen || offset+size > len(data) {
			return nil, fmt.Errorf("malformed box %q at offset %d", boxType, offset)
		}

		if boxType == target {
			return findBox(data[offset+headerLen:offset+size], path[1:]...)
		}
		offset += size
	}

	return nil, fmt.Errorf("box %q not found", target)
}
