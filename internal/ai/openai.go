// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/olegiv/newsdash/internal/model"
)

// httpTimeout bounds a single OpenAI request.
const httpTimeout = 120 * time.Second

// OpenAIProvider implements Provider with the OpenAI API.
type OpenAIProvider struct {
	client     openai.Client
	textModel  string
	imageModel string
}

// NewOpenAIProvider creates an OpenAI client for apiKey. baseURL overrides
// the API endpoint when non-empty.
func NewOpenAIProvider(apiKey, baseURL string, models Models) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(httpTimeout),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if models.Text == "" {
		models.Text = model.DefaultOpenAITextModel
	}
	if models.Image == "" {
		models.Image = model.DefaultOpenAIImageModel
	}
	return &OpenAIProvider{
		client:     openai.NewClient(opts...),
		textModel:  models.Text,
		imageModel: models.Image,
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// GenerateText implements Provider. Search grounding is not available, so
// Sources is always empty.
func (p *OpenAIProvider) GenerateText(ctx context.Context, req TextRequest) (TextResponse, error) {
	system := req.System
	if req.JSON {
		system = strings.TrimSpace(system + "\nRespond with a single JSON document and nothing else.")
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.textModel),
		Messages: messages,
	})
	if err != nil {
		return TextResponse{}, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return TextResponse{}, ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return TextResponse{}, ErrEmptyResponse
	}
	return TextResponse{Text: text}, nil
}

// dalleSize maps an aspect ratio onto the nearest DALL-E 3 size.
func dalleSize(ratio string) openai.ImageGenerateParamsSize {
	switch ratio {
	case "16:9", "21:9", "4:3":
		return openai.ImageGenerateParamsSize1792x1024
	case "9:16", "3:4":
		return openai.ImageGenerateParamsSize1024x1792
	default:
		return openai.ImageGenerateParamsSize1024x1024
	}
}

// GenerateImage implements Provider.
func (p *OpenAIProvider) GenerateImage(ctx context.Context, req ImageRequest) (model.GeneratedImage, error) {
	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openai.ImageModel(p.imageModel),
		N:              openai.Int(1),
		Size:           dalleSize(req.AspectRatio),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return model.GeneratedImage{}, fmt.Errorf("openai image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return model.GeneratedImage{}, ErrEmptyResponse
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return model.GeneratedImage{}, fmt.Errorf("decoding image: %w", err)
	}
	return model.GeneratedImage{MIMEType: "image/png", Data: data, Prompt: req.Prompt}, nil
}

// DescribeImage implements Provider.
func (p *OpenAIProvider) DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.textModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai describe: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
