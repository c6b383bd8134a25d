package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

var ErrUnsupportedImage = errors.New("unsupported image")

type ImageProcessor struct {
	MaxSize int64 // bytes
	MaxEdge int   // longest side after resize, px
	Quality int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024, MaxEdge: 1600, Quality: 85}
}

// ValidateImage accepts JPEG and PNG within MaxSize
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: exceeds %dMB", ErrUnsupportedImage, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: not an image", ErrUnsupportedImage)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("%w: format %s not allowed (only jpeg/png)", ErrUnsupportedImage, format)
	}
}

// ProcessCover shrinks the image to fit MaxEdge and re-encodes it as JPEG
func (p *ImageProcessor) ProcessCover(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > p.MaxEdge || b.Dy() > p.MaxEdge {
		img = imaging.Fit(img, p.MaxEdge, p.MaxEdge, imaging.Lanczos)
	}

	out := new(bytes.Buffer)
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("cannot encode cover: %w", err)
	}
	return out.Bytes(), nil
}
