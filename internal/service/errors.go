// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "errors"

// Input errors. Handlers map them to localized messages.
var (
	ErrTopicRequired   = errors.New("topic is required")
	ErrPromptRequired  = errors.New("prompt is required")
	ErrImageRequired   = errors.New("image is required")
	ErrNotFound        = errors.New("not found")
	ErrNoPlatforms     = errors.New("no platforms selected")
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrInvalidSchedule = errors.New("invalid schedule time")
)
