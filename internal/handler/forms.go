// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/newsdash/internal/ai"
	"github.com/olegiv/newsdash/internal/auth"
	"github.com/olegiv/newsdash/internal/imaging"
	"github.com/olegiv/newsdash/internal/model"
	"github.com/olegiv/newsdash/internal/service"
)

// Choice is one select option or checkbox.
type Choice struct {
	ID      string
	Label   string
	Checked bool
}

// SelectField feeds the option-select template.
type SelectField struct {
	Name      string
	Options   []Choice
	Selected  string
	AllowNone bool
	NoneLabel string
}

// optionSelect builds a localized select from a preset table. Unknown
// selections fall back to def.
func (l *Layout) optionSelect(r *http.Request, name string, options []model.Option, selected, def string) SelectField {
	if _, ok := model.FindOption(options, selected); !ok {
		selected = def
	}
	f := SelectField{Name: name, Selected: selected}
	for _, o := range options {
		f.Options = append(f.Options, Choice{ID: o.ID, Label: l.T(r, o.LabelKey)})
	}
	return f
}

// styleSelect is an image style select with a "none" entry.
func (l *Layout) styleSelect(r *http.Request, selected string) SelectField {
	f := l.optionSelect(r, "style", model.ImageStyles, selected, "")
	f.AllowNone = true
	f.NoneLabel = l.T(r, "style.none")
	return f
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// errorKeys maps known errors to translation keys.
var errorKeys = []struct {
	err error
	key string
}{
	{ai.ErrNoCredential, "errors.apiKeyMissing"},
	{ai.ErrEmptyResponse, "errors.emptyResponse"},
	{service.ErrTopicRequired, "errors.promptRequired"},
	{service.ErrPromptRequired, "errors.promptRequired"},
	{service.ErrImageRequired, "errors.imageRequired"},
	{imaging.ErrUnsupportedFormat, "errors.imageInvalid"},
	{imaging.ErrTooLarge, "errors.imageTooLarge"},
	{service.ErrNotFound, "article.notFound"},
	{service.ErrNoPlatforms, "publish.noPlatforms"},
	{service.ErrUnknownPlatform, "publish.noPlatforms"},
	{service.ErrInvalidSchedule, "publish.invalidTime"},
	{auth.ErrInvalidCredentials, "auth.error.invalidCredentials"},
	{auth.ErrUsernameTaken, "auth.error.usernameTaken"},
	{auth.ErrUsernameLength, "auth.error.usernameLength"},
	{auth.ErrPasswordTooShort, "auth.error.passwordLength"},
	{auth.ErrInvalidEmail, "auth.error.invalidEmail"},
	{auth.ErrNotAuthenticated, "membership.loginRequired"},
}

// errorMessage turns err into a localized message for the screen. Anything
// unrecognized is shown as a generation failure with the error text.
func (l *Layout) errorMessage(r *http.Request, err error) string {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return l.T(r, "errors.imageTooLarge")
	}
	for _, e := range errorKeys {
		if errors.Is(err, e.err) {
			return l.T(r, e.key)
		}
	}
	slog.Debug("unmapped screen error", "path", r.URL.Path, "error", err)
	return l.T(r, "errors.generation", "error", err.Error())
}
