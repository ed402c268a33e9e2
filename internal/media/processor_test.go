package media

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 50 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessImage(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		height        int
		expectedWidth int
	}{
		{name: "wide image is downscaled", width: 3840, height: 2160, expectedWidth: 1920},
		{name: "small image keeps its size", width: 800, height: 600, expectedWidth: 800},
		{name: "exact limit is untouched", width: 1920, height: 1080, expectedWidth: 1920},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ProcessImage("photo.png", encodePNG(t, tt.width, tt.height))

			assert.False(t, result.Fallback)
			assert.Equal(t, "image/jpeg", result.ContentType)
			assert.Equal(t, "photo.jpg", result.FileName)

			decoded, _, err := image.Decode(bytes.NewReader(result.Data))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedWidth, decoded.Bounds().Dx())
		})
	}
}

func TestProcessImageDecodesGIF(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 40, 40), []color.Color{
		color.RGBA{R: 200, G: 30, B: 30, A: 255},
		color.RGBA{A: 255},
	})

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, img, nil))

	result := ProcessImage("anim.gif", buf.Bytes())

	assert.False(t, result.Fallback)
	assert.Equal(t, "image/jpeg", result.ContentType)
	assert.Equal(t, "anim.jpg", result.FileName)
}

func TestProcessImagePreservesAspectRatio(t *testing.T) {
	result := ProcessImage("wide.png", encodePNG(t, 3840, 1920))

	decoded, _, err := image.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, 1920, decoded.Bounds().Dx())
	assert.Equal(t, 960, decoded.Bounds().Dy())
}

func TestProcessImageFallbackOnGarbage(t *testing.T) {
	original := []byte("definitely not an image")

	result := ProcessImage("broken.jpg", original)

	assert.True(t, result.Fallback)
	assert.Equal(t, original, result.Data)
	assert.Equal(t, "broken.jpg", result.FileName)
}

func TestProcessCarouselLimit(t *testing.T) {
	names := make([]string, MaxCarouselItems+1)
	items := make([][]byte, MaxCarouselItems+1)
	for i := range items {
		names[i] = "item.png"
		items[i] = []byte("x")
	}

	results, err := ProcessCarousel(names, items)

	assert.ErrorIs(t, err, ErrCarouselLimit)
	assert.Nil(t, results)
}

func TestProcessCarouselWithinLimit(t *testing.T) {
	img := encodePNG(t, 100, 100)
	names := []string{"a.png", "b.png"}
	items := [][]byte{img, img}

	results, err := ProcessCarousel(names, items)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

// buildMP4 assembles a minimal ftyp+moov(mvhd) file with the given
// timescale and duration.
func buildMP4(timescale uint32, duration uint32) []byte {
	ftyp := make([]byte, 16)
	binary.BigEndian.PutUint32(ftyp[0:4], 16)
	copy(ftyp[4:8], "ftyp")
	copy(ftyp[8:12], "isom")

	mvhd := make([]byte, 28)
	binary.BigEndian.PutUint32(mvhd[0:4], 28)
	copy(mvhd[4:8], "mvhd")
	// version 0, flags 0, ctime 0, mtime 0
	binary.BigEndian.PutUint32(mvhd[20:24], timescale)
	binary.BigEndian.PutUint32(mvhd[24:28], duration)

	moov := make([]byte, 8)
	binary.BigEndian.PutUint32(moov[0:4], uint32(8+len(mvhd)))
	copy(moov[4:8], "moov")

	out := append(ftyp, moov...)
	return append(out, mvhd...)
}

func TestProbeMP4Duration(t *testing.T) {
	data := buildMP4(1000, 42500)

	duration, err := ProbeMP4Duration(data)

	assert.NoError(t, err)
	assert.Equal(t, 42500*time.Millisecond, duration)
}

func TestProbeMP4DurationMalformed(t *testing.T) {
	_, err := ProbeMP4Duration([]byte("not an mp4 at all"))
	assert.Error(t, err)
}

func TestProcessVideoRejectsLongReel(t *testing.T) {
	data := buildMP4(1000, 95000)

	_, err := ProcessVideo("reel.mp4", data)

	assert.ErrorIs(t, err, ErrVideoTooLong)
}

func TestProcessVideoAcceptsShortReel(t *testing.T) {
	data := buildMP4(1000, 60000)

	result, err := ProcessVideo("reel.mp4", data)

	assert.NoError(t, err)
	assert.Equal(t, data, result.Data)
}

func TestProcessVideoPassesThroughUnprobeable(t *testing.T) {
	original := []byte("some exotic container")

	result, err := ProcessVideo("clip.mov", original)

	assert.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, original, result.Data)
}
