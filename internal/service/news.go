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

// MaxNewsArticles caps the number of items kept from one response.
const MaxNewsArticles = 10

// NewsService fetches hot news through a search-grounded model.
type NewsService struct {
	ai     ai.Provider
	cache  *cache.TypedCache[model.NewsResult]
	logger *slog.Logger
	now    func() time.Time
}

// NewNewsService creates a NewsService. Results are cached for ttl.
func NewNewsService(provider ai.Provider, c cache.Cache, ttl time.Duration, logger *slog.Logger) *NewsService {
	return &NewsService{
		ai:     provider,
		cache:  cache.NewTypedCache[model.NewsResult](c, "news:", ttl),
		logger: logger,
		now:    time.Now,
	}
}

// HotNews returns the news for topic in lang, from cache when possible. An
// empty topic means general headlines. cached reports a cache hit.
func (s *NewsService) HotNews(ctx context.Context, lang, topic string) (result model.NewsResult, cached bool, err error) {
	topic = strings.TrimSpace(topic)
	return s.cache.GetOrSet(ctx, cacheKey(lang, topic), func(ctx context.Context) (model.NewsResult, error) {
		return s.fetch(ctx, lang, topic)
	})
}

// Refresh fetches fresh news and replaces the cached entry.
func (s *NewsService) Refresh(ctx context.Context, lang, topic string) (model.NewsResult, error) {
	topic = strings.TrimSpace(topic)
	result, err := s.fetch(ctx, lang, topic)
	if err != nil {
		return model.NewsResult{}, err
	}
	if err := s.cache.Set(ctx, cacheKey(lang, topic), result); err != nil {
		s.logger.Warn("failed to cache news", "category", "cache", "error", err)
	}
	return result, nil
}

func (s *NewsService) fetch(ctx context.Context, lang, topic string) (model.NewsResult, error) {
	subject := "the most important news of the day worldwide"
	if topic != "" {
		subject = fmt.Sprintf("the latest news about %q", topic)
	}

	prompt := fmt.Sprintf(`Search the web for %s.
Return a JSON array of up to %d objects with the fields "title", "summary", "url", "sourceName" and "publicationDate" (ISO 8601 date).
Write "title" and "summary" in %s. Keep each summary under 80 words. Return only the JSON array.`,
		subject, MaxNewsArticles, languageName(lang))

	resp, err := s.ai.GenerateText(ctx, ai.TextRequest{Prompt: prompt, Search: true})
	if err != nil {
		return model.NewsResult{}, err
	}

	articles, err := ai.DecodeJSON[[]model.NewsArticle](resp.Text)
	if err != nil {
		return model.NewsResult{}, err
	}

	kept := articles[:0]
	for _, a := range articles {
		a.Title = strings.TrimSpace(a.Title)
		if a.Title == "" {
			continue
		}
		kept = append(kept, a)
		if len(kept) == MaxNewsArticles {
			break
		}
	}
	if len(kept) == 0 {
		return model.NewsResult{}, ai.ErrEmptyResponse
	}

	return model.NewsResult{
		Articles:  kept,
		Sources:   resp.Sources,
		FetchedAt: s.now().UTC().Truncate(time.Second),
	}, nil
}
