// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/olegiv/newsdash/internal/imaging"
	"github.com/olegiv/newsdash/internal/model"
	"github.com/olegiv/newsdash/internal/service"
	"github.com/olegiv/newsdash/internal/shell"
)

// multipartOverhead is added to the upload limit for form fields and boundaries.
const multipartOverhead = 1 << 20

// ImageHandler serves the text-to-image and image-to-image screens.
type ImageHandler struct {
	layout    *Layout
	images    *service.ImageService
	maxUpload int64
}

// NewImageHandler creates an ImageHandler. maxUpload caps source image size.
func NewImageHandler(layout *Layout, images *service.ImageService, maxUpload int64) *ImageHandler {
	return &ImageHandler{layout: layout, images: images, maxUpload: maxUpload}
}

// ImagePage is the data for both image screens.
type ImagePage struct {
	Prompt            string
	AspectRatio       SelectField
	Style             SelectField
	Image             string
	SourceImage       string
	SourceDescription string
	Error             string
}

func (h *ImageHandler) page(r *http.Request, p model.ImageGenParams) ImagePage {
	return ImagePage{
		Prompt:      p.Prompt,
		AspectRatio: h.layout.optionSelect(r, "aspect_ratio", model.AspectRatios, p.AspectRatio, "square"),
		Style:       h.layout.styleSelect(r, p.Style),
	}
}

func imageParams(r *http.Request) model.ImageGenParams {
	return model.ImageGenParams{
		Prompt:      formValue(r, "prompt"),
		AspectRatio: formValue(r, "aspect_ratio"),
		Style:       formValue(r, "style"),
	}
}

// TextToImagePage handles GET /text-to-image.
func (h *ImageHandler) TextToImagePage(w http.ResponseWriter, r *http.Request) {
	h.layout.Page(w, r, shell.ScreenTextToImage, h.page(r, model.ImageGenParams{}))
}

// TextToImage handles POST /text-to-image.
func (h *ImageHandler) TextToImage(w http.ResponseWriter, r *http.Request) {
	params := imageParams(r)
	data := h.page(r, params)

	img, err := h.images.TextToImage(r.Context(), params)
	if err != nil {
		data.Error = h.layout.errorMessage(r, err)
	} else {
		data.Image = imaging.DataURL(img.MIMEType, img.Data)
	}

	h.layout.Page(w, r, shell.ScreenTextToImage, data)
}

// ImageToImagePage handles GET /image-to-image.
func (h *ImageHandler) ImageToImagePage(w http.ResponseWriter, r *http.Request) {
	h.layout.Page(w, r, shell.ScreenImageToImage, h.page(r, model.ImageGenParams{}))
}

// ImageToImage handles POST /image-to-image with a multipart upload.
func (h *ImageHandler) ImageToImage(w http.ResponseWriter, r *http.Request) {
	file, err := h.openUpload(w, r, "image")
	params := imageParams(r)
	data := h.page(r, params)
	if err != nil {
		data.Error = h.layout.errorMessage(r, err)
		h.layout.Page(w, r, shell.ScreenImageToImage, data)
		return
	}
	var src io.Reader
	if file != nil {
		defer func() { _ = file.Close() }()
		src = file
	}

	img, source, err := h.images.ImageToImage(r.Context(), src, params)
	if source.Data != nil {
		data.SourceImage = source.DataURL()
		data.SourceDescription = source.Description
	}
	if err != nil {
		data.Error = h.layout.errorMessage(r, err)
	} else {
		data.Image = imaging.DataURL(img.MIMEType, img.Data)
	}

	h.layout.Page(w, r, shell.ScreenImageToImage, data)
}

// openUpload parses a multipart form and opens field. A missing file
// returns nil, nil.
func (h *ImageHandler) openUpload(w http.ResponseWriter, r *http.Request, field string) (multipart.File, error) {
	return openUpload(w, r, field, h.maxUpload)
}

func openUpload(w http.ResponseWriter, r *http.Request, field string, maxUpload int64) (multipart.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartOverhead)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return file, err
}
