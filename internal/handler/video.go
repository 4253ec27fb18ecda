// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/newsdash/internal/middleware"
	"github.com/olegiv/newsdash/internal/model"
	"github.com/olegiv/newsdash/internal/service"
	"github.com/olegiv/newsdash/internal/shell"
)

// VideoHandler serves the video tools screen.
type VideoHandler struct {
	layout    *Layout
	video     *service.VideoService
	images    *service.ImageService
	maxUpload int64
}

// NewVideoHandler creates a VideoHandler. images describes inspiration uploads.
func NewVideoHandler(layout *Layout, video *service.VideoService, images *service.ImageService, maxUpload int64) *VideoHandler {
	return &VideoHandler{layout: layout, video: video, images: images, maxUpload: maxUpload}
}

// VideoPage is the video tools screen data.
type VideoPage struct {
	ConceptType SelectField
	AspectRatio SelectField
	Style       SelectField
	Prompt      string
	Scenes      int
	StartFrame  string
	EndFrame    string
	Concept     *model.GeneratedTextConcept
	Error       string
}

func (h *VideoHandler) page(r *http.Request, p model.VideoConceptParams) VideoPage {
	conceptType := p.ConceptType
	if !model.IsConceptType(conceptType) {
		conceptType = model.ConceptScript
	}
	types := SelectField{Name: "concept_type", Selected: conceptType}
	for _, t := range model.ConceptTypes {
		types.Options = append(types.Options, Choice{ID: t, Label: h.layout.T(r, "video.type."+t)})
	}

	if p.Scenes == 0 {
		p.Scenes = service.DefaultScenes
	}
	return VideoPage{
		ConceptType: types,
		AspectRatio: h.layout.optionSelect(r, "aspect_ratio", model.AspectRatios, p.AspectRatio, "landscape"),
		Style:       h.layout.optionSelect(r, "style", model.VideoStyles, p.Style, "cinematic"),
		Prompt:      p.Prompt,
		Scenes:      p.Scenes,
		StartFrame:  p.StartFrame,
		EndFrame:    p.EndFrame,
	}
}

// clampScenes parses the scene count, keeping it within 1..MaxScenes.
func clampScenes(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return service.DefaultScenes
	}
	return min(max(n, 1), service.MaxScenes)
}

// Page handles GET /video-tools.
func (h *VideoHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.layout.Page(w, r, shell.ScreenVideo, h.page(r, model.VideoConceptParams{}))
}

// Generate handles POST /video-tools. An optional inspiration image is
// described by the model and folded into the prompt.
func (h *VideoHandler) Generate(w http.ResponseWriter, r *http.Request) {
	file, uploadErr := openUpload(w, r, "inspiration", h.maxUpload)

	params := model.VideoConceptParams{
		ConceptType: formValue(r, "concept_type"),
		Prompt:      formValue(r, "prompt"),
		AspectRatio: formValue(r, "aspect_ratio"),
		Style:       formValue(r, "style"),
		Scenes:      clampScenes(formValue(r, "scenes")),
		StartFrame:  formValue(r, "start_frame"),
		EndFrame:    formValue(r, "end_frame"),
	}
	data := h.page(r, params)
	if uploadErr != nil {
		data.Error = h.layout.errorMessage(r, uploadErr)
		h.layout.Page(w, r, shell.ScreenVideo, data)
		return
	}

	if file != nil {
		source, err := h.images.Describe(r.Context(), file)
		_ = file.Close()
		if err != nil {
			data.Error = h.layout.errorMessage(r, err)
			h.layout.Page(w, r, shell.ScreenVideo, data)
			return
		}
		params.InspirationImage = source.Description
	}

	params.ConceptType = data.ConceptType.Selected
	params.AspectRatio = data.AspectRatio.Selected
	params.Style = data.Style.Selected

	concept, err := h.video.GenerateConcept(r.Context(), middleware.LangFromRequest(r), params)
	if err != nil {
		data.Error = h.layout.errorMessage(r, err)
	} else {
		data.Concept = &concept
	}

	h.layout.Page(w, r, shell.ScreenVideo, data)
}
