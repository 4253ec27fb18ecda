// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/olegiv/newsdash/internal/model"
)

// imagenRatios are the aspect ratios Imagen accepts.
var imagenRatios = map[string]bool{"1:1": true, "3:4": true, "4:3": true, "9:16": true, "16:9": true}

// GeminiProvider implements Provider with the Gemini API.
type GeminiProvider struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

// NewGeminiProvider creates a Gemini API client for apiKey.
func NewGeminiProvider(ctx context.Context, apiKey string, models Models) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if models.Text == "" {
		models.Text = model.DefaultGeminiTextModel
	}
	if models.Image == "" {
		models.Image = model.DefaultGeminiImageModel
	}
	return &GeminiProvider{client: client, textModel: models.Text, imageModel: models.Image}, nil
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

// GenerateText implements Provider.
func (p *GeminiProvider) GenerateText(ctx context.Context, req TextRequest) (TextResponse, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	// Search grounding cannot be combined with a JSON response type.
	if req.Search {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	} else if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.textModel, genai.Text(req.Prompt), cfg)
	if err != nil {
		return TextResponse{}, fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return TextResponse{}, ErrEmptyResponse
	}
	return TextResponse{Text: text, Sources: groundingSources(resp)}, nil
}

// groundingSources collects the web citations of the first candidate,
// skipping duplicate URIs.
func groundingSources(resp *genai.GenerateContentResponse) []model.GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	seen := make(map[string]bool)
	var sources []model.GroundingSource
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		title := chunk.Web.Title
		if title == "" {
			title = chunk.Web.URI
		}
		sources = append(sources, model.GroundingSource{URI: chunk.Web.URI, Title: title})
	}
	return sources
}

// GenerateImage implements Provider.
func (p *GeminiProvider) GenerateImage(ctx context.Context, req ImageRequest) (model.GeneratedImage, error) {
	prompt := req.Prompt
	ratio := req.AspectRatio
	if ratio != "" && !imagenRatios[ratio] {
		prompt = fmt.Sprintf("%s, %s aspect ratio", prompt, ratio)
		ratio = "16:9"
	}

	resp, err := p.client.Models.GenerateImages(ctx, p.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    ratio,
		OutputMIMEType: "image/jpeg",
	})
	if err != nil {
		return model.GeneratedImage{}, fmt.Errorf("imagen generate: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return model.GeneratedImage{}, ErrEmptyResponse
	}

	img := resp.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return model.GeneratedImage{MIMEType: mimeType, Data: img.ImageBytes, Prompt: req.Prompt}, nil
}

// DescribeImage implements Provider.
func (p *GeminiProvider) DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := p.client.Models.GenerateContent(ctx, p.textModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini describe: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
