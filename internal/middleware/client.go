// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/mileusna/useragent"
)

// CountryLookup resolves an IP to a country code.
type CountryLookup interface {
	Country(ip string) string
}

// ClientInfo describes the browser behind a request for audit logging.
type ClientInfo struct {
	IP      string
	Country string
	Browser string
	OS      string
	Device  string
}

// DescribeClient extracts the client IP, country and user agent details.
// geo may be nil.
func DescribeClient(r *http.Request, geo CountryLookup) ClientInfo {
	ua := useragent.Parse(r.UserAgent())

	info := ClientInfo{
		IP:      getClientIP(r),
		Browser: ua.Name,
		OS:      ua.OS,
	}
	if info.Browser == "" {
		info.Browser = "Unknown"
	}
	if info.OS == "" {
		info.OS = "Unknown"
	}

	switch {
	case ua.Mobile:
		info.Device = "mobile"
	case ua.Tablet:
		info.Device = "tablet"
	case ua.Bot:
		info.Device = "bot"
	default:
		info.Device = "desktop"
	}

	if geo != nil {
		info.Country = geo.Country(info.IP)
	}
	return info
}

// Attrs returns the info as slog key/value pairs.
func (c ClientInfo) Attrs() []any {
	attrs := []any{"ip", c.IP, "browser", c.Browser, "os", c.OS, "device", c.Device}
	if c.Country != "" {
		attrs = append(attrs, "country", c.Country)
	}
	return attrs
}
