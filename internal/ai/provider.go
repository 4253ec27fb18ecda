// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ai wraps the generative model APIs (Gemini and OpenAI) behind one
// Provider interface. The API key is read from the credential store on every
// call, so a key saved in settings takes effect immediately.
package ai

import (
	"context"
	"errors"

	"github.com/olegiv/newsdash/internal/model"
)

// Sentinel errors.
var (
	ErrNoCredential  = errors.New("no API key configured")
	ErrEmptyResponse = errors.New("model returned an empty response")
	ErrUnsupported   = errors.New("operation not supported by provider")
)

// TextRequest is a text generation call.
type TextRequest struct {
	System string
	Prompt string
	// JSON asks the model for a JSON document.
	JSON bool
	// Search enables web search grounding where the provider supports it.
	Search bool
}

// TextResponse is the generated text plus any grounding citations.
type TextResponse struct {
	Text    string
	Sources []model.GroundingSource
}

// ImageRequest is an image generation call. AspectRatio is "W:H".
type ImageRequest struct {
	Prompt      string
	AspectRatio string
}

// Provider is a generative model backend.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, req TextRequest) (TextResponse, error)
	GenerateImage(ctx context.Context, req ImageRequest) (model.GeneratedImage, error)
	DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

// Factory builds a Provider for an API key.
type Factory func(ctx context.Context, apiKey string) (Provider, error)

// Models selects the model names a factory uses. Empty fields get the
// provider defaults.
type Models struct {
	Text  string
	Image string
}
