// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded HTML templates and executes them with
// the shell view and a per-request translator.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/newsdash/internal/i18n"
	"github.com/olegiv/newsdash/internal/session"
	"github.com/olegiv/newsdash/internal/shell"
	"github.com/olegiv/newsdash/internal/util"
)

// Translator looks up localized strings. *i18n.Catalog implements it.
type Translator interface {
	T(lang, key string, params ...string) string
}

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	translator     Translator
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	Translator     Translator
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		translator:     cfg.Translator,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses all templates from the filesystem. Pages render
// inside the app layout; standalone templates only get the base layout.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := getTemplateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	baseLayout := "layouts/base.html"
	appLayout := "layouts/app.html"

	pages, err := getTemplateFiles(templatesFS, "pages")
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	for _, tmplPath := range pages {
		files := append([]string{baseLayout, appLayout}, partials...)
		if err := r.parse(templatesFS, tmplPath, append(files, tmplPath)); err != nil {
			return err
		}
	}

	standalone, err := getTemplateFiles(templatesFS, "standalone")
	if err != nil {
		return fmt.Errorf("getting standalone templates: %w", err)
	}
	for _, tmplPath := range standalone {
		if err := r.parse(templatesFS, tmplPath, []string{baseLayout, tmplPath}); err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) parse(templatesFS fs.FS, tmplPath string, files []string) error {
	name := strings.TrimSuffix(path.Base(tmplPath), ".html")

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}

	r.templates[name] = tmpl
	return nil
}

// getTemplateFiles returns all .html files in a directory.
func getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Directory might not exist, that's ok
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a template with name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDateTime": formatDateTime,
		"truncate":       util.Truncate,
		"markdown":       Markdown,
		"imageURL":       imageURL,
		"add": func(a, b int) int {
			return a + b
		},
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
		"has": func(list []string, s string) bool {
			for _, v := range list {
				if v == s {
					return true
				}
			}
			return false
		},
	}
}

// formatDateTime formats t in the local style of lang.
func formatDateTime(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	if lang == i18n.LangZH {
		return t.Local().Format("2006年1月2日 15:04")
	}
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

// imageURL lets generated data: image URLs through html/template's URL
// filter. Anything else is returned as an inert fragment.
func imageURL(s string) template.URL {
	if strings.HasPrefix(s, "data:image/") {
		return template.URL(s) //nolint:gosec // produced by imaging.DataURL
	}
	return template.URL("#")
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	View        shell.View
	Title       string
	Data        any
	Flash       string
	FlashType   string
	CurrentYear int

	translator Translator
}

// T translates key into the view's language.
func (d TemplateData) T(key string, params ...string) string {
	if d.translator == nil {
		return key
	}
	return d.translator.T(d.View.Lang, key, params...)
}

// Lang returns the view's language code.
func (d TemplateData) Lang() string {
	return d.View.Lang
}

// Render renders a page with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.translator = r.translator

	if r.sessionManager != nil && data.Flash == "" {
		data.Flash, data.FlashType = session.PopFlash(req.Context(), r.sessionManager)
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing response", "template", name, "error", err)
	}
	return nil
}
