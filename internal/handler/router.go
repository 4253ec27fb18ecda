// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsdash/internal/shell"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Layout     *Layout
	News       *NewsHandler
	Images     *ImageHandler
	Articles   *ArticleHandler
	Video      *VideoHandler
	Publish    *PublishHandler
	Settings   *SettingsHandler
	Auth       *AuthHandler
	Membership *MembershipHandler
	Health     *HealthHandler

	// LoginLimit wraps the login and register endpoints. Optional.
	LoginLimit func(http.Handler) http.Handler
	// GenerateLimit wraps the generation endpoints. Optional.
	GenerateLimit func(http.Handler) http.Handler
}

func passthrough(next http.Handler) http.Handler { return next }

// Routes mounts the dashboard on r. Screens sit behind the loading gate;
// the session actions stay reachable while it is closed.
func (h *Handlers) Routes(r chi.Router) {
	loginLimit := h.LoginLimit
	if loginLimit == nil {
		loginLimit = passthrough
	}
	generateLimit := h.GenerateLimit
	if generateLimit == nil {
		generateLimit = passthrough
	}

	if h.Health != nil {
		r.Get("/healthz", h.Health.Health)
	}

	r.Group(func(r chi.Router) {
		r.Use(h.Layout.Gate)

		r.Get(shell.PathHome, h.News.News)
		r.Get(shell.PathHotNews, h.News.News)
		r.With(generateLimit).Post(shell.PathHotNews+"/refresh", h.News.RefreshNews)
		r.Get(shell.PathTrends, h.News.Trends)

		r.Get(shell.PathTextToImage, h.Images.TextToImagePage)
		r.With(generateLimit).Post(shell.PathTextToImage, h.Images.TextToImage)
		r.Get(shell.PathImageToImage, h.Images.ImageToImagePage)
		r.With(generateLimit).Post(shell.PathImageToImage, h.Images.ImageToImage)

		r.Route(shell.PathArticleGenerator, func(r chi.Router) {
			r.Get("/", h.Articles.Page)
			r.With(generateLimit).Post("/", h.Articles.Generate)
			r.Get("/{id}/download", h.Articles.Download)
			r.Post("/{id}/delete", h.Articles.Delete)
		})

		r.Get(shell.PathVideoTools, h.Video.Page)
		r.With(generateLimit).Post(shell.PathVideoTools, h.Video.Generate)

		r.Get(shell.PathAutoPublish, h.Publish.Page)
		r.Post(shell.PathAutoPublish, h.Publish.Submit)

		r.Route(shell.PathSettings, func(r chi.Router) {
			r.Get("/", h.Settings.Page)
			r.Post("/api-key", h.Settings.SaveKey)
			r.Post("/api-key/clear", h.Settings.ClearKey)
			r.Post("/jobs/{name}/run", h.Settings.RunJob)
			r.Post("/cache/clear", h.Settings.ClearCache)
		})

		r.Get(shell.PathPricing, h.Membership.Page)
		r.Post(shell.PathPricing+"/upgrade", h.Membership.Upgrade)

		// Unknown GET paths render the news screen in place.
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				http.NotFound(w, r)
				return
			}
			h.News.News(w, r)
		})
	})

	r.With(loginLimit).Post("/auth/login", h.Auth.Login)
	r.With(loginLimit).Post("/auth/register", h.Auth.Register)
	r.Post("/auth/logout", h.Auth.Logout)
	r.Post("/modal/open", h.Auth.OpenModal)
	r.Post("/modal/close", h.Auth.CloseModal)
	r.Post("/language", h.Auth.SetLanguage)
}
