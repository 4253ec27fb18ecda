// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

// createTestImage creates a simple test image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestNormalize_ShrinksLargeImage(t *testing.T) {
	p := NewProcessor(0, 100)

	res, err := p.Normalize(bytes.NewReader(encodePNG(t, createTestImage(400, 200))))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Width != 100 || res.Height != 50 {
		t.Errorf("size = %dx%d, want 100x50", res.Width, res.Height)
	}
	if res.MIMEType != MimeTypePNG {
		t.Errorf("MIMEType = %q, want %q", res.MIMEType, MimeTypePNG)
	}
	if _, err := png.Decode(bytes.NewReader(res.Data)); err != nil {
		t.Errorf("output is not PNG: %v", err)
	}
}

func TestNormalize_KeepsSmallImage(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createTestImage(64, 32), nil); err != nil {
		t.Fatal(err)
	}

	res, err := NewProcessor(0, 0).Normalize(&buf)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.Width != 64 || res.Height != 32 {
		t.Errorf("size = %dx%d, want 64x32", res.Width, res.Height)
	}
	if res.MIMEType != MimeTypeJPEG {
		t.Errorf("MIMEType = %q, want %q", res.MIMEType, MimeTypeJPEG)
	}
}

func TestNormalize_GIFBecomesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, createTestImage(10, 10), nil); err != nil {
		t.Fatal(err)
	}
	res, err := NewProcessor(0, 0).Normalize(&buf)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if res.MIMEType != MimeTypePNG {
		t.Errorf("MIMEType = %q, want %q", res.MIMEType, MimeTypePNG)
	}
}

func TestNormalize_Rejects(t *testing.T) {
	data := encodePNG(t, createTestImage(50, 50))

	if _, err := NewProcessor(int64(len(data)-1), 0).Normalize(bytes.NewReader(data)); !errors.Is(err, ErrTooLarge) {
		t.Errorf("oversized: err = %v, want ErrTooLarge", err)
	}
	if _, err := NewProcessor(0, 0).Normalize(strings.NewReader("plain text, not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("text: err = %v, want ErrUnsupportedFormat", err)
	}
	tiff := []byte("II*\x00" + strings.Repeat("\x00", 16))
	if _, err := NewProcessor(0, 0).Normalize(bytes.NewReader(tiff)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("tiff: err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", encodePNG(t, createTestImage(2, 2)), "png"},
		{"gif", []byte("GIF89a......"), "gif"},
		{"jpeg", []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF"), "jpeg"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "webp"},
		{"text", []byte("hello"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.data); got != tt.want {
				t.Errorf("detectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyOrientation(t *testing.T) {
	img := createTestImage(4, 2)
	tests := []struct {
		orientation int
		w, h        int
	}{
		{1, 4, 2}, {2, 4, 2}, {3, 4, 2}, {4, 4, 2},
		{5, 2, 4}, {6, 2, 4}, {7, 2, 4}, {8, 2, 4},
	}
	for _, tt := range tests {
		b := applyOrientation(img, tt.orientation).Bounds()
		if b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("orientation %d: %dx%d, want %dx%d", tt.orientation, b.Dx(), b.Dy(), tt.w, tt.h)
		}
	}
}

func TestDataURL(t *testing.T) {
	got := DataURL("image/png", []byte("abc"))
	if got != "data:image/png;base64,YWJj" {
		t.Errorf("DataURL = %q", got)
	}
	if DetectMimeType(encodePNG(t, createTestImage(1, 1))) != MimeTypePNG {
		t.Error("DetectMimeType did not detect PNG")
	}
}
