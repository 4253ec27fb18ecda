// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsdash/internal/ai"
	"github.com/olegiv/newsdash/internal/model"
	"github.com/olegiv/newsdash/internal/store"
)

// MaxHashtags caps the hashtags kept per article.
const MaxHashtags = 8

// ArticleService writes, stores and exports platform articles.
type ArticleService struct {
	ai      ai.Provider
	queries *store.Queries
	logger  *slog.Logger
	now     func() time.Time
}

// NewArticleService creates an ArticleService.
func NewArticleService(provider ai.Provider, db *sql.DB, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		ai:      provider,
		queries: store.New(db),
		logger:  logger,
		now:     time.Now,
	}
}

// GenerateInput is an article generation request.
type GenerateInput struct {
	UserID        string
	Topic         string
	PlatformStyle string
	Language      string
}

type articleDraft struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// Generate writes an article about the topic in the platform's style and
// stores it.
func (s *ArticleService) Generate(ctx context.Context, in GenerateInput) (model.GeneratedArticle, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		return model.GeneratedArticle{}, ErrTopicRequired
	}
	style, ok := model.FindOption(model.PlatformStyles, in.PlatformStyle)
	if !ok {
		style = model.PlatformStyles[0]
	}

	prompt := fmt.Sprintf(`Write %s about %q.
Write in %s and use Markdown for structure.
Return a JSON object with "title", "content" (Markdown body without the title) and "hashtags" (an array of up to %d tags without '#').
Return only the JSON object.`, style.Value, in.Topic, languageName(in.Language), MaxHashtags)

	resp, err := s.ai.GenerateText(ctx, ai.TextRequest{Prompt: prompt, JSON: true})
	if err != nil {
		return model.GeneratedArticle{}, err
	}
	draft, err := ai.DecodeJSON[articleDraft](resp.Text)
	if err != nil {
		return model.GeneratedArticle{}, err
	}
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Content = strings.TrimSpace(draft.Content)
	if draft.Content == "" {
		return model.GeneratedArticle{}, ai.ErrEmptyResponse
	}
	if draft.Title == "" {
		draft.Title = in.Topic
	}

	tags, _ := json.Marshal(cleanHashtags(draft.Hashtags))
	row, err := s.queries.CreateArticle(ctx, store.CreateArticleParams{
		ID:            uuid.NewString(),
		UserID:        in.UserID,
		Topic:         in.Topic,
		Title:         draft.Title,
		Content:       draft.Content,
		Hashtags:      string(tags),
		PlatformStyle: style.ID,
		Language:      in.Language,
		CreatedAt:     s.now().UTC().Truncate(time.Second),
	})
	if err != nil {
		return model.GeneratedArticle{}, fmt.Errorf("saving article: %w", err)
	}

	s.logger.Info("article generated", "id", row.ID, "style", style.ID)
	return articleFromStore(row), nil
}

// cleanHashtags trims '#' and whitespace, drops blanks and duplicates, and caps the count.
func cleanHashtags(tags []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(t), "#"))
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
		if len(out) == MaxHashtags {
			break
		}
	}
	return out
}

func articleFromStore(a store.Article) model.GeneratedArticle {
	var tags []string
	_ = json.Unmarshal([]byte(a.Hashtags), &tags)
	return model.GeneratedArticle{
		ID:            a.ID,
		Topic:         a.Topic,
		Title:         a.Title,
		Content:       a.Content,
		Hashtags:      tags,
		PlatformStyle: a.PlatformStyle,
		Language:      a.Language,
		Timestamp:     a.CreatedAt,
	}
}

// List returns the newest articles first.
func (s *ArticleService) List(ctx context.Context, limit int) ([]model.GeneratedArticle, error) {
	rows, err := s.queries.ListArticles(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]model.GeneratedArticle, 0, len(rows))
	for _, r := range rows {
		out = append(out, articleFromStore(r))
	}
	return out, nil
}

// Get returns one article or ErrNotFound.
func (s *ArticleService) Get(ctx context.Context, id string) (model.GeneratedArticle, error) {
	row, err := s.queries.GetArticle(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.GeneratedArticle{}, ErrNotFound
	}
	if err != nil {
		return model.GeneratedArticle{}, err
	}
	return articleFromStore(row), nil
}

// Delete removes an article and its publish jobs.
func (s *ArticleService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.queries.DeleteArticle(ctx, id)
}

// Markdown renders an article as a standalone Markdown document.
func Markdown(a model.GeneratedArticle) string {
	var b strings.Builder
	b.WriteString("# " + a.Title + "\n\n")
	b.WriteString(a.Content)
	b.WriteString("\n")
	if len(a.Hashtags) > 0 {
		b.WriteString("\n")
		tags := make([]string, len(a.Hashtags))
		for i, t := range a.Hashtags {
			tags[i] = "#" + t
		}
		b.WriteString(strings.Join(tags, " "))
		b.WriteString("\n")
	}
	return b.String()
}
