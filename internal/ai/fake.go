// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"sync"

	"github.com/olegiv/newsdash/internal/model"
)

// FakeProvider returns canned results. It records every request and is
// safe for concurrent use.
type FakeProvider struct {
	Text        TextResponse
	Image       model.GeneratedImage
	Description string
	Err         error

	// TextFunc, when set, overrides Text.
	TextFunc func(req TextRequest) (TextResponse, error)

	mu            sync.Mutex
	TextRequests  []TextRequest
	ImageRequests []ImageRequest
	Describes     int
}

// Name implements Provider.
func (f *FakeProvider) Name() string { return "fake" }

// GenerateText implements Provider.
func (f *FakeProvider) GenerateText(_ context.Context, req TextRequest) (TextResponse, error) {
	f.mu.Lock()
	f.TextRequests = append(f.TextRequests, req)
	f.mu.Unlock()
	if f.TextFunc != nil {
		return f.TextFunc(req)
	}
	if f.Err != nil {
		return TextResponse{}, f.Err
	}
	return f.Text, nil
}

// GenerateImage implements Provider.
func (f *FakeProvider) GenerateImage(_ context.Context, req ImageRequest) (model.GeneratedImage, error) {
	f.mu.Lock()
	f.ImageRequests = append(f.ImageRequests, req)
	f.mu.Unlock()
	if f.Err != nil {
		return model.GeneratedImage{}, f.Err
	}
	img := f.Image
	img.Prompt = req.Prompt
	return img, nil
}

// DescribeImage implements Provider.
func (f *FakeProvider) DescribeImage(context.Context, string, []byte, string) (string, error) {
	f.mu.Lock()
	f.Describes++
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.Description, nil
}

// TextCalls returns the number of text requests seen.
func (f *FakeProvider) TextCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.TextRequests)
}
