// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/olegiv/newsdash/internal/ai"
	"github.com/olegiv/newsdash/internal/model"
)

// Scene count bounds for scripts and storyboards.
const (
	DefaultScenes = 5
	MaxScenes     = 12
)

// VideoService drafts video concepts. No video is rendered.
type VideoService struct {
	ai ai.Provider
}

// NewVideoService creates a VideoService.
func NewVideoService(provider ai.Provider) *VideoService {
	return &VideoService{ai: provider}
}

var conceptInstructions = map[string]string{
	model.ConceptScript: "Write a video script with %d numbered scenes. For each scene give the visuals, " +
		"the narration or dialogue, and the approximate duration.",
	model.ConceptStoryboard: "Write a storyboard with %d numbered shots. For each shot give the framing, " +
		"camera movement, the action and any on-screen text.",
	model.ConceptSceneIdeas: "Suggest %d distinct scene ideas, each with a short title and a two-sentence description.",
	model.ConceptTransitionIdeas: "Suggest %d creative transitions between the start frame and the end frame, " +
		"each with a name and how to shoot or edit it.",
}

// VideoPrompt builds the model prompt for a concept request.
func VideoPrompt(lang string, p model.VideoConceptParams) string {
	scenes := p.Scenes
	if scenes <= 0 {
		scenes = DefaultScenes
	}
	scenes = min(scenes, MaxScenes)

	var b strings.Builder
	fmt.Fprintf(&b, conceptInstructions[p.ConceptType], scenes)
	b.WriteString("\n\nIdea: ")
	b.WriteString(p.Prompt)
	if style := optionValue(model.VideoStyles, p.Style); style != "" {
		b.WriteString("\nStyle: " + style)
	}
	if ratio := optionValue(model.AspectRatios, p.AspectRatio); ratio != "" {
		b.WriteString("\nFrame composition: " + ratio)
	}
	if p.InspirationImage != "" {
		b.WriteString("\nInspiration image: " + p.InspirationImage)
	}
	if p.StartFrame != "" {
		b.WriteString("\nStart frame: " + p.StartFrame)
	}
	if p.EndFrame != "" {
		b.WriteString("\nEnd frame: " + p.EndFrame)
	}
	fmt.Fprintf(&b, "\n\nWrite in %s. Return a JSON object with \"title\" and \"text\" (Markdown).", languageName(lang))
	return b.String()
}

// GenerateConcept drafts a concept of the requested type.
func (s *VideoService) GenerateConcept(ctx context.Context, lang string, p model.VideoConceptParams) (model.GeneratedTextConcept, error) {
	p.Prompt = strings.TrimSpace(p.Prompt)
	p.StartFrame = strings.TrimSpace(p.StartFrame)
	p.EndFrame = strings.TrimSpace(p.EndFrame)
	if !model.IsConceptType(p.ConceptType) {
		p.ConceptType = model.ConceptScript
	}
	// Transitions can be drafted from the two frames alone.
	framesOnly := p.ConceptType == model.ConceptTransitionIdeas && p.StartFrame != "" && p.EndFrame != ""
	if p.Prompt == "" && !framesOnly {
		return model.GeneratedTextConcept{}, ErrPromptRequired
	}

	resp, err := s.ai.GenerateText(ctx, ai.TextRequest{Prompt: VideoPrompt(lang, p), JSON: true})
	if err != nil {
		return model.GeneratedTextConcept{}, err
	}

	concept, err := ai.DecodeJSON[model.GeneratedTextConcept](resp.Text)
	if err != nil {
		// Some models ignore the JSON instruction for long Markdown.
		concept = model.GeneratedTextConcept{Text: resp.Text}
	}
	concept.ConceptType = p.ConceptType
	if strings.TrimSpace(concept.Text) == "" {
		return model.GeneratedTextConcept{}, ai.ErrEmptyResponse
	}
	if concept.Title == "" {
		concept.Title = p.Prompt
	}
	return concept, nil
}
