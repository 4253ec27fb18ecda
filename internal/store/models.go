// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "time"

type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	MembershipTier string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

type Article struct {
	ID            string
	UserID        string
	Topic         string
	Title         string
	Content       string
	Hashtags      string
	PlatformStyle string
	Language      string
	CreatedAt     time.Time
}

type PublishJob struct {
	ID          string
	ArticleID   string
	Platform    string
	Status      string
	Message     string
	ScheduledAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
