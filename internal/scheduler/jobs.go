// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/olegiv/newsdash/internal/model"
)

// Job names.
const (
	JobPublish     = "publish"
	JobNewsRefresh = "news-refresh"
	JobPruneEvents = "prune-events"
	JobGeoIPReload = "geoip-reload"
)

// DuePublisher processes due publish jobs.
type DuePublisher interface {
	ProcessDue(ctx context.Context) (int, error)
}

// NewsRefresher refreshes a cached news result.
type NewsRefresher interface {
	Refresh(ctx context.Context, lang, topic string) (model.NewsResult, error)
}

// EventPruner deletes old events.
type EventPruner interface {
	PruneEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Reloader reopens a file-backed resource when it changes on disk.
type Reloader interface {
	Reload() error
}

// PublishJob processes due publish jobs every minute.
func PublishJob(p DuePublisher) Job {
	return Job{
		Name:        JobPublish,
		Description: "Process scheduled auto-publish jobs",
		Schedule:    "* * * * *",
		Run: func(ctx context.Context) error {
			_, err := p.ProcessDue(ctx)
			return err
		},
	}
}

// NewsRefreshJob refreshes the general headlines for each language. It does
// nothing until an API key is configured.
func NewsRefreshJob(n NewsRefresher, schedule string, languages []string, hasKey func(context.Context) bool) Job {
	return Job{
		Name:        JobNewsRefresh,
		Description: "Refresh cached hot news headlines",
		Schedule:    schedule,
		Run: func(ctx context.Context) error {
			if hasKey != nil && !hasKey(ctx) {
				return nil
			}
			var errs []error
			for _, lang := range languages {
				if _, err := n.Refresh(ctx, lang, ""); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}
}

// PruneEventsJob removes old events daily.
func PruneEventsJob(p EventPruner, retention time.Duration) Job {
	return Job{
		Name:        JobPruneEvents,
		Description: "Delete old event log entries",
		Schedule:    "0 3 * * *",
		Run: func(ctx context.Context) error {
			_, err := p.PruneEvents(ctx, retention)
			return err
		},
	}
}

// GeoIPReloadJob picks up a replaced GeoIP database once a day.
func GeoIPReloadJob(r Reloader) Job {
	return Job{
		Name:        JobGeoIPReload,
		Description: "Reload the GeoIP country database",
		Schedule:    "30 4 * * *",
		Run: func(context.Context) error {
			return r.Reload()
		},
	}
}
