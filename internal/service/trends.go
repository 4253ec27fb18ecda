// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/newsdash/internal/ai"
	"github.com/olegiv/newsdash/internal/cache"
	"github.com/olegiv/newsdash/internal/model"
)

// TrendService analyzes topic popularity.
type TrendService struct {
	ai     ai.Provider
	cache  *cache.TypedCache[model.Trend]
	logger *slog.Logger
}

// NewTrendService creates a TrendService. Results are cached for ttl.
func NewTrendService(provider ai.Provider, c cache.Cache, ttl time.Duration, logger *slog.Logger) *TrendService {
	return &TrendService{
		ai:     provider,
		cache:  cache.NewTypedCache[model.Trend](c, "trend:", ttl),
		logger: logger,
	}
}

// Analyze returns the observed and predicted popularity of topic.
func (s *TrendService) Analyze(ctx context.Context, lang, topic string) (model.Trend, bool, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return model.Trend{}, false, ErrTopicRequired
	}
	return s.cache.GetOrSet(ctx, cacheKey(lang, topic), func(ctx context.Context) (model.Trend, error) {
		return s.analyze(ctx, lang, topic)
	})
}

func (s *TrendService) analyze(ctx context.Context, lang, topic string) (model.Trend, error) {
	prompt := fmt.Sprintf(`Estimate the public interest in %q over the last 7 days on a 0-100 scale, and predict the next 3 days.
Return a JSON object with:
"data": an array of 7 objects {"name": short day label, "value": number},
"predictedData": an array of 3 objects {"name": short day label, "value": number},
"predictionText": two or three sentences in %s explaining the outlook.
Return only the JSON object.`, topic, languageName(lang))

	resp, err := s.ai.GenerateText(ctx, ai.TextRequest{Prompt: prompt, JSON: true})
	if err != nil {
		return model.Trend{}, err
	}

	trend, err := ai.DecodeJSON[model.Trend](resp.Text)
	if err != nil {
		return model.Trend{}, err
	}
	if len(trend.Data) == 0 {
		return model.Trend{}, ai.ErrEmptyResponse
	}
	trend.Topic = topic
	return trend, nil
}
