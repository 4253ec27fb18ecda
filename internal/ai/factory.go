// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by NewFactory.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewFactory returns a Factory for the named provider.
func NewFactory(provider string, models Models) (Factory, error) {
	switch provider {
	case ProviderGemini:
		return func(ctx context.Context, apiKey string) (Provider, error) {
			return NewGeminiProvider(ctx, apiKey, models)
		}, nil
	case ProviderOpenAI:
		return func(_ context.Context, apiKey string) (Provider, error) {
			return NewOpenAIProvider(apiKey, "", models), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", provider)
	}
}

// Ratio extracts the "W:H" prefix from an aspect ratio preset value such as
// "16:9 aspect ratio".
func Ratio(value string) string {
	head, _, _ := strings.Cut(strings.TrimSpace(value), " ")
	if !strings.Contains(head, ":") {
		return ""
	}
	return head
}
