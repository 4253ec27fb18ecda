// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/olegiv/newsdash/internal/model"
)

// KeySource returns the current API key, "" when none is stored.
type KeySource interface {
	Key(ctx context.Context) (string, error)
}

// Client resolves the API key per call and reuses the underlying provider
// while the key is unchanged.
type Client struct {
	keys    KeySource
	factory Factory
	logger  *slog.Logger

	mu        sync.Mutex
	cachedKey string
	cached    Provider
}

// NewClient creates a Client.
func NewClient(keys KeySource, factory Factory, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{keys: keys, factory: factory, logger: logger}
}

// Invalidate drops the cached provider. It is subscribed to credential changes.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cachedKey = ""
	c.cached = nil
	c.mu.Unlock()
}

func (c *Client) provider(ctx context.Context) (Provider, error) {
	key, err := c.keys.Key(ctx)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, ErrNoCredential
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil && c.cachedKey == key {
		return c.cached, nil
	}

	p, err := c.factory(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	c.cachedKey, c.cached = key, p
	return p, nil
}

// Name returns the provider name, or "" without a key.
func (c *Client) Name() string {
	p, err := c.provider(context.Background())
	if err != nil {
		return ""
	}
	return p.Name()
}

// GenerateText implements Provider.
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (TextResponse, error) {
	p, err := c.provider(ctx)
	if err != nil {
		return TextResponse{}, err
	}
	resp, err := p.GenerateText(ctx, req)
	if err != nil {
		c.logger.Warn("text generation failed", "category", "ai", "provider", p.Name(), "error", err)
		return TextResponse{}, err
	}
	return resp, nil
}

// GenerateImage implements Provider.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (model.GeneratedImage, error) {
	p, err := c.provider(ctx)
	if err != nil {
		return model.GeneratedImage{}, err
	}
	img, err := p.GenerateImage(ctx, req)
	if err != nil {
		c.logger.Warn("image generation failed", "category", "ai", "provider", p.Name(), "error", err)
		return model.GeneratedImage{}, err
	}
	return img, nil
}

// DescribeImage implements Provider.
func (c *Client) DescribeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	p, err := c.provider(ctx)
	if err != nil {
		return "", err
	}
	text, err := p.DescribeImage(ctx, prompt, data, mimeType)
	if err != nil {
		c.logger.Warn("image description failed", "category", "ai", "provider", p.Name(), "error", err)
		return "", err
	}
	return text, nil
}

var _ Provider = (*Client)(nil)
