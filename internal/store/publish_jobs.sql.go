// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const publishJobColumns = `id, article_id, platform, status, message, scheduled_at, created_at, updated_at`

func scanPublishJob(row interface{ Scan(...any) error }) (PublishJob, error) {
	var j PublishJob
	err := row.Scan(&j.ID, &j.ArticleID, &j.Platform, &j.Status, &j.Message, &j.ScheduledAt, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func collectPublishJobs(ctx context.Context, db DBTX, query string, args ...any) ([]PublishJob, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []PublishJob
	for rows.Next() {
		j, err := scanPublishJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

const createPublishJob = `
INSERT INTO publish_jobs (` + publishJobColumns + `) VALUES (?, ?, ?, 'pending', '', ?, ?, ?)
RETURNING ` + publishJobColumns

type CreatePublishJobParams struct {
	ID          string
	ArticleID   string
	Platform    string
	ScheduledAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreatePublishJob(ctx context.Context, arg CreatePublishJobParams) (PublishJob, error) {
	row := q.db.QueryRowContext(ctx, createPublishJob,
		arg.ID, arg.ArticleID, arg.Platform, arg.ScheduledAt, arg.CreatedAt, arg.UpdatedAt)
	return scanPublishJob(row)
}

const listDuePublishJobs = `
SELECT ` + publishJobColumns + ` FROM publish_jobs
WHERE status = 'pending' AND scheduled_at <= ?
ORDER BY scheduled_at, id`

func (q *Queries) ListDuePublishJobs(ctx context.Context, now time.Time) ([]PublishJob, error) {
	return collectPublishJobs(ctx, q.db, listDuePublishJobs, now)
}

const listPublishJobs = `
SELECT ` + publishJobColumns + ` FROM publish_jobs
ORDER BY created_at DESC, platform LIMIT ?`

func (q *Queries) ListPublishJobs(ctx context.Context, limit int64) ([]PublishJob, error) {
	return collectPublishJobs(ctx, q.db, listPublishJobs, limit)
}

const claimPublishJob = `
UPDATE publish_jobs SET status = 'publishing', updated_at = ?
WHERE id = ? AND status = 'pending'`

// ClaimPublishJob moves a pending job to publishing. It reports false when
// another worker claimed the job first.
func (q *Queries) ClaimPublishJob(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := q.db.ExecContext(ctx, claimPublishJob, now, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

const finishPublishJob = `
UPDATE publish_jobs SET status = ?, message = ?, updated_at = ?
WHERE id = ? AND status = 'publishing'`

type FinishPublishJobParams struct {
	ID        string
	Status    string
	Message   string
	UpdatedAt time.Time
}

func (q *Queries) FinishPublishJob(ctx context.Context, arg FinishPublishJobParams) error {
	_, err := q.db.ExecContext(ctx, finishPublishJob, arg.Status, arg.Message, arg.UpdatedAt, arg.ID)
	return err
}
