// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package imageproc

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/yomira/mediacore/internal/platform/apperr"
)

// maxThumbnailDimension bounds a thumbnail's longest side; the aspect
// ratio of the original is preserved.
const maxThumbnailDimension = 240

// thumbnailQuality is the JPEG encoding quality used for rendered
// thumbnails, regardless of the original container.
const thumbnailQuality = 85

var mimeTypeByFormat = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// ImageProcessor decodes replica bodies with the stdlib's registered
// image codecs and renders thumbnails with x/image/draw's
// high-quality Catmull-Rom scaler.
type ImageProcessor struct{}

// NewImageProcessor constructs a new processor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

func (processor *ImageProcessor) GenerateThumbnail(reader io.Reader) (OriginalImage, ThumbnailImage, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return OriginalImage{}, ThumbnailImage{}, apperr.Internal(err)
	}

	source, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return OriginalImage{}, ThumbnailImage{}, apperr.MediumReplicaUnsupported()
		}
		return OriginalImage{}, ThumbnailImage{}, apperr.MediumReplicaDecodeError(err)
	}

	mimeType, ok := mimeTypeByFormat[format]
	if !ok {
		return OriginalImage{}, ThumbnailImage{}, apperr.MediumReplicaUnsupported()
	}

	bounds := source.Bounds()
	original := OriginalImage{MimeType: mimeType, Width: bounds.Dx(), Height: bounds.Dy()}

	thumbWidth, thumbHeight := scaledDimensions(bounds.Dx(), bounds.Dy(), maxThumbnailDimension)
	destination := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	draw.CatmullRom.Scale(destination, destination.Bounds(), source, bounds, draw.Over, nil)

	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, destination, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return OriginalImage{}, ThumbnailImage{}, apperr.Internal(err)
	}

	thumbnail := ThumbnailImage{Bytes: buffer.Bytes(), Width: thumbWidth, Height: thumbHeight}
	return original, thumbnail, nil
}

// scaledDimensions returns the largest (width, height) no bigger than
// max on either side that preserves the source aspect ratio.
func scaledDimensions(width, height, max int) (int, int) {
	if width <= max && height <= max {
		return width, height
	}
	if width >= height {
		scaled := max * height / width
		return max, maxInt(scaled, 1)
	}
	scaled := max * width / height
	return maxInt(scaled, 1), max
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
