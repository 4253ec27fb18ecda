// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded images before they are sent to a model
// and encodes generated images for display.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder
)

// MIME types produced and accepted.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// DefaultMaxDimension bounds the longer side of a normalized image.
const DefaultMaxDimension = 1024

// Errors returned by Normalize.
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrTooLarge          = errors.New("image exceeds the size limit")
)

// Result is a normalized image.
type Result struct {
	Data     []byte
	MIMEType string
	Width    int
	Height   int
}

// DataURL returns the image as a data: URL.
func (r Result) DataURL() string {
	return DataURL(r.MIMEType, r.Data)
}

// Processor normalizes uploads.
type Processor struct {
	maxBytes     int64
	maxDimension int
	quality      int
}

// NewProcessor creates a processor. maxBytes <= 0 disables the size check.
func NewProcessor(maxBytes int64, maxDimension int) *Processor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Processor{maxBytes: maxBytes, maxDimension: maxDimension, quality: 90}
}

// Normalize decodes an upload, applies its EXIF orientation, shrinks it to
// fit the maximum dimension and re-encodes it. PNG and GIF input become PNG,
// everything else becomes JPEG. Metadata is not carried over.
func (p *Processor) Normalize(r io.Reader) (Result, error) {
	var src io.Reader = r
	if p.maxBytes > 0 {
		src = io.LimitReader(r, p.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read image data: %w", err)
	}
	if p.maxBytes > 0 && int64(len(data)) > p.maxBytes {
		return Result{}, ErrTooLarge
	}

	format := detectFormat(data)
	if format == "" {
		return Result{}, ErrUnsupportedFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode image: %w", err)
	}

	if format == "jpeg" {
		img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))
	}

	b := img.Bounds()
	if b.Dx() > p.maxDimension || b.Dy() > p.maxDimension {
		img = imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
	}

	outFormat := "jpeg"
	if format == "png" || format == "gif" {
		outFormat = "png"
	}
	encoded, err := encodeImage(img, outFormat, p.quality)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode image: %w", err)
	}

	b = img.Bounds()
	return Result{
		Data:     encoded,
		MIMEType: formatToMimeType(outFormat),
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// DetectMimeType detects the MIME type of image data.
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return contentType
}

// DataURL encodes data as a base64 data: URL.
func DataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation applies an EXIF orientation (1-8) to an image.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if format == "png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectFormat detects the image format from raw bytes.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// Explicitly reject TIFF (CVE-2023-36308 in disintegration/imaging)
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func formatToMimeType(format string) string {
	switch format {
	case "jpeg":
		return MimeTypeJPEG
	case "png":
		return MimeTypePNG
	case "gif":
		return MimeTypeGIF
	case "webp":
		return MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}
