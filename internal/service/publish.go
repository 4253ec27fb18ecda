// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/olegiv/newsdash/internal/model"
	"github.com/olegiv/newsdash/internal/store"
)

// Failure messages stored on jobs. They are translation keys.
const (
	PublishMsgEmpty    = "publish.error.empty"
	PublishMsgTooLong  = "publish.error.tooLong"
	PublishMsgNotFound = "publish.error.articleMissing"
)

// PublishService simulates publishing articles to social platforms. Nothing
// leaves the server; a job succeeds unless the article is empty or longer
// than the platform allows.
type PublishService struct {
	queries *store.Queries
	logger  *slog.Logger
	now     func() time.Time
}

// NewPublishService creates a PublishService.
func NewPublishService(db *sql.DB, logger *slog.Logger) *PublishService {
	return &PublishService{
		queries: store.New(db),
		logger:  logger,
		now:     time.Now,
	}
}

// PublishInput selects an article, its target platforms and an optional
// time. A zero ScheduledAt publishes immediately.
type PublishInput struct {
	ArticleID   string
	Platforms   []string
	ScheduledAt time.Time
}

// Submit creates one pending job per platform. Immediate jobs are processed
// before Submit returns.
func (s *PublishService) Submit(ctx context.Context, in PublishInput) ([]model.PublishStatus, error) {
	if len(in.Platforms) == 0 {
		return nil, ErrNoPlatforms
	}
	for _, id := range in.Platforms {
		if _, ok := model.FindPublishPlatform(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, id)
		}
	}

	article, err := s.queries.GetArticle(ctx, in.ArticleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Second)
	immediate := in.ScheduledAt.IsZero()
	at := in.ScheduledAt.UTC().Truncate(time.Second)
	if immediate {
		at = now
	} else if at.Before(now.Add(-time.Minute)) {
		return nil, ErrInvalidSchedule
	}

	seen := make(map[string]bool)
	for _, platform := range in.Platforms {
		if seen[platform] {
			continue
		}
		seen[platform] = true
		if _, err := s.queries.CreatePublishJob(ctx, store.CreatePublishJobParams{
			ID:          uuid.NewString(),
			ArticleID:   article.ID,
			Platform:    platform,
			ScheduledAt: at,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return nil, fmt.Errorf("creating publish job: %w", err)
		}
	}
	s.logger.Info("publish jobs queued", "article", article.ID, "platforms", len(seen), "immediate", immediate)

	if immediate {
		if _, err := s.ProcessDue(ctx); err != nil {
			return nil, err
		}
	}
	return s.jobsFor(ctx, article)
}

// ProcessDue runs every pending job whose time has come and returns how
// many it finished.
func (s *PublishService) ProcessDue(ctx context.Context) (int, error) {
	now := s.now().UTC().Truncate(time.Second)
	due, err := s.queries.ListDuePublishJobs(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("listing due jobs: %w", err)
	}

	done := 0
	for _, job := range due {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		claimed, err := s.queries.ClaimPublishJob(ctx, job.ID, now)
		if err != nil {
			return done, fmt.Errorf("claiming job %s: %w", job.ID, err)
		}
		if !claimed {
			continue
		}

		status, msg := s.simulate(ctx, job)
		if err := s.queries.FinishPublishJob(ctx, store.FinishPublishJobParams{
			ID:        job.ID,
			Status:    status,
			Message:   msg,
			UpdatedAt: s.now().UTC().Truncate(time.Second),
		}); err != nil {
			return done, fmt.Errorf("finishing job %s: %w", job.ID, err)
		}
		if status == model.PublishFailed {
			s.logger.Warn("publish job failed", "category", "publish", "job", job.ID, "platform", job.Platform, "reason", msg)
		}
		done++
	}
	return done, nil
}

func (s *PublishService) simulate(ctx context.Context, job store.PublishJob) (status, message string) {
	article, err := s.queries.GetArticle(ctx, job.ArticleID)
	if err != nil {
		return model.PublishFailed, PublishMsgNotFound
	}
	return publishOutcome(articleFromStore(article), job.Platform)
}

// publishOutcome decides a simulated publish result.
func publishOutcome(a model.GeneratedArticle, platformID string) (status, message string) {
	if a.Content == "" {
		return model.PublishFailed, PublishMsgEmpty
	}
	platform, ok := model.FindPublishPlatform(platformID)
	if !ok {
		return model.PublishFailed, ErrUnknownPlatform.Error()
	}
	if utf8.RuneCountInString(Markdown(a)) > platform.MaxChars {
		return model.PublishFailed, PublishMsgTooLong
	}
	return model.PublishSuccess, ""
}

// Jobs returns the newest jobs first with their article titles.
func (s *PublishService) Jobs(ctx context.Context, limit int) ([]model.PublishStatus, error) {
	rows, err := s.queries.ListPublishJobs(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string)
	out := make([]model.PublishStatus, 0, len(rows))
	for _, j := range rows {
		title, ok := titles[j.ArticleID]
		if !ok {
			if a, err := s.queries.GetArticle(ctx, j.ArticleID); err == nil {
				title = a.Title
			}
			titles[j.ArticleID] = title
		}
		out = append(out, statusFromStore(j, title))
	}
	return out, nil
}

func (s *PublishService) jobsFor(ctx context.Context, article store.Article) ([]model.PublishStatus, error) {
	jobs, err := s.Jobs(ctx, 100)
	if err != nil {
		return nil, err
	}
	out := jobs[:0]
	for _, j := range jobs {
		if j.ArticleID == article.ID {
			out = append(out, j)
		}
	}
	return out, nil
}

func statusFromStore(j store.PublishJob, title string) model.PublishStatus {
	return model.PublishStatus{
		JobID:       j.ID,
		ArticleID:   j.ArticleID,
		Title:       title,
		PlatformID:  j.Platform,
		Status:      j.Status,
		Message:     j.Message,
		ScheduledAt: j.ScheduledAt,
		UpdatedAt:   j.UpdatedAt,
	}
}
