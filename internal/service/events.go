// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the dashboard's feature screens on top of the
// AI provider, the result cache and the store.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/olegiv/newsdash/internal/store"
)

// DefaultEventRetention is how long events are kept by PruneEvents.
const DefaultEventRetention = 30 * 24 * time.Hour

// Event is a stored warning or error with decoded metadata.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  map[string]any
	CreatedAt time.Time
}

// EventService reads and prunes the events recorded by the logging handler.
type EventService struct {
	queries *store.Queries
	now     func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
		now:     time.Now,
	}
}

// Recent returns the newest events first.
func (s *EventService) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.queries.ListRecentEvents(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(rows))
	for _, r := range rows {
		e := Event{
			ID:        r.ID,
			Level:     r.Level,
			Category:  r.Category,
			Message:   r.Message,
			CreatedAt: r.CreatedAt,
		}
		if r.Metadata != "" && r.Metadata != "{}" {
			_ = json.Unmarshal([]byte(r.Metadata), &e.Metadata)
		}
		events = append(events, e)
	}
	return events, nil
}

// PruneEvents removes events older than olderThan.
func (s *EventService) PruneEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan).UTC()
	return s.queries.DeleteEventsBefore(ctx, cutoff)
}
