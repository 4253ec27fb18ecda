// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const articleColumns = `id, user_id, topic, title, content, hashtags, platform_style, language, created_at`

func scanArticle(row interface{ Scan(...any) error }) (Article, error) {
	var a Article
	err := row.Scan(&a.ID, &a.UserID, &a.Topic, &a.Title, &a.Content, &a.Hashtags, &a.PlatformStyle, &a.Language, &a.CreatedAt)
	return a, err
}

const createArticle = `
INSERT INTO articles (` + articleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + articleColumns

type CreateArticleParams struct {
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

func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (Article, error) {
	row := q.db.QueryRowContext(ctx, createArticle,
		arg.ID, arg.UserID, arg.Topic, arg.Title, arg.Content, arg.Hashtags, arg.PlatformStyle, arg.Language, arg.CreatedAt)
	return scanArticle(row)
}

const getArticle = `SELECT ` + articleColumns + ` FROM articles WHERE id = ?`

func (q *Queries) GetArticle(ctx context.Context, id string) (Article, error) {
	return scanArticle(q.db.QueryRowContext(ctx, getArticle, id))
}

const listArticles = `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at DESC LIMIT ?`

func (q *Queries) ListArticles(ctx context.Context, limit int64) ([]Article, error) {
	rows, err := q.db.QueryContext(ctx, listArticles, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const deleteArticle = `DELETE FROM articles WHERE id = ?`

func (q *Queries) DeleteArticle(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteArticle, id)
	return err
}
