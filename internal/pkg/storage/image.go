package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for uploaded avatars
	"io"

	"github.com/disintegration/imaging"
)

// Bounding boxes for the two image kinds the app serves.
const (
	AvatarMaxSize     = 256
	CourtPhotoMaxSize = 1280
	ThumbnailMaxSize  = 200
)

// ImageProcessor handles resizing of uploaded images.
type ImageProcessor struct{}

// NewImageProcessor creates a new ImageProcessor.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// FitJPEG decodes the source image, scales it down to fit inside the
// maxWidth x maxHeight box (never upscaling) and re-encodes it as JPEG.
func (p *ImageProcessor) FitJPEG(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	fitted := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, fitted, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf, nil
}

// GenerateThumbnail creates a small preview used in list views.
func (p *ImageProcessor) GenerateThumbnail(content io.Reader) (io.Reader, error) {
	return p.FitJPEG(content, ThumbnailMaxSize, ThumbnailMaxSize)
}
