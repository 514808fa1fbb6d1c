// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imageproc_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yomira/mediacore/internal/platform/apperr"
	"github.com/yomira/mediacore/internal/platform/imageproc"
)

func encodeSquareJPEG(t *testing.T, side int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buffer bytes.Buffer
	require.NoError(t, jpeg.Encode(&buffer, img, nil))
	return buffer.Bytes()
}

func TestGenerateThumbnail_SquareImage_BoundedByMaxDimension(t *testing.T) {
	processor := imageproc.NewImageProcessor()
	raw := encodeSquareJPEG(t, 720)

	original, thumbnail, err := processor.GenerateThumbnail(bytes.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", original.MimeType)
	assert.Equal(t, 720, original.Width)
	assert.Equal(t, 720, original.Height)
	assert.Equal(t, 240, thumbnail.Width)
	assert.Equal(t, 240, thumbnail.Height)
	assert.NotEmpty(t, thumbnail.Bytes)
}

func TestGenerateThumbnail_SmallerThanMax_KeepsOriginalDimensions(t *testing.T) {
	processor := imageproc.NewImageProcessor()
	raw := encodeSquareJPEG(t, 100)

	_, thumbnail, err := processor.GenerateThumbnail(bytes.NewReader(raw))

	require.NoError(t, err)
	assert.Equal(t, 100, thumbnail.Width)
	assert.Equal(t, 100, thumbnail.Height)
}

func TestGenerateThumbnail_MalformedData_ReturnsDecodeError(t *testing.T) {
	processor := imageproc.NewImageProcessor()

	_, _, err := processor.GenerateThumbnail(bytes.NewReader([]byte("\xff\xd8\xffnot an image")))

	require.Error(t, err)
	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "MEDIUM_REPLICA_DECODE_ERROR", appErr.Code)
}
