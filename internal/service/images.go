// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olegiv/newsdash/internal/ai"
	"github.com/olegiv/newsdash/internal/imaging"
	"github.com/olegiv/newsdash/internal/model"
)

const describePrompt = "Describe this image in detail for an image generation model: " +
	"subject, composition, colors, lighting and mood. Answer in English in one paragraph."

// ImageService implements text-to-image and image-to-image.
type ImageService struct {
	ai        ai.Provider
	processor *imaging.Processor
}

// NewImageService creates an ImageService.
func NewImageService(provider ai.Provider, processor *imaging.Processor) *ImageService {
	return &ImageService{ai: provider, processor: processor}
}

// BuildImagePrompt appends the style and aspect ratio fragments of the
// chosen presets to the user's prompt.
func BuildImagePrompt(p model.ImageGenParams) string {
	return joinPrompt(p.Prompt, optionValue(model.ImageStyles, p.Style), optionValue(model.AspectRatios, p.AspectRatio))
}

func imageRequest(p model.ImageGenParams, prompt string) ai.ImageRequest {
	return ai.ImageRequest{
		Prompt:      prompt,
		AspectRatio: ai.Ratio(optionValue(model.AspectRatios, p.AspectRatio)),
	}
}

// TextToImage generates an image from a prompt.
func (s *ImageService) TextToImage(ctx context.Context, p model.ImageGenParams) (model.GeneratedImage, error) {
	p.Prompt = strings.TrimSpace(p.Prompt)
	if p.Prompt == "" {
		return model.GeneratedImage{}, ErrPromptRequired
	}
	return s.ai.GenerateImage(ctx, imageRequest(p, BuildImagePrompt(p)))
}

// SourceImage is a normalized upload together with the model's description.
type SourceImage struct {
	imaging.Result
	Description string
}

// ImageToImage normalizes the upload, has the model describe it, and
// generates a new image from the description combined with the prompt.
func (s *ImageService) ImageToImage(ctx context.Context, src io.Reader, p model.ImageGenParams) (model.GeneratedImage, SourceImage, error) {
	if src == nil {
		return model.GeneratedImage{}, SourceImage{}, ErrImageRequired
	}
	p.Prompt = strings.TrimSpace(p.Prompt)
	if p.Prompt == "" {
		return model.GeneratedImage{}, SourceImage{}, ErrPromptRequired
	}

	source, err := s.Describe(ctx, src)
	if err != nil {
		return model.GeneratedImage{}, SourceImage{}, err
	}

	prompt := joinPrompt(
		fmt.Sprintf("Based on this image: %s. Apply this change: %s", source.Description, p.Prompt),
		optionValue(model.ImageStyles, p.Style),
		optionValue(model.AspectRatios, p.AspectRatio),
	)
	img, err := s.ai.GenerateImage(ctx, imageRequest(p, prompt))
	if err != nil {
		return model.GeneratedImage{}, source, err
	}
	img.Prompt = p.Prompt
	return img, source, nil
}

// Describe normalizes an upload and returns it with a text description.
func (s *ImageService) Describe(ctx context.Context, src io.Reader) (SourceImage, error) {
	normalized, err := s.processor.Normalize(src)
	if err != nil {
		if errors.Is(err, imaging.ErrTooLarge) || errors.Is(err, imaging.ErrUnsupportedFormat) {
			return SourceImage{}, err
		}
		return SourceImage{}, fmt.Errorf("normalizing image: %w", err)
	}

	desc, err := s.ai.DescribeImage(ctx, describePrompt, normalized.Data, normalized.MIMEType)
	if err != nil {
		return SourceImage{}, err
	}
	return SourceImage{Result: normalized, Description: desc}, nil
}
