// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/olegiv/newsdash/internal/model"
)

// Chart geometry.
const (
	chartWidth   = 640
	chartHeight  = 240
	chartPadding = 32
)

// TrendChartSVG renders the observed series and the predicted series as an
// inline SVG line chart. The predicted line starts at the last observed
// point. Labels are HTML-escaped.
func TrendChartSVG(t model.Trend, actualLabel, predictedLabel string) string {
	points := len(t.Data) + len(t.PredictedData)
	if len(t.Data) == 0 {
		return ""
	}

	maxValue := 0.0
	for _, p := range append(append([]model.TrendDataPoint{}, t.Data...), t.PredictedData...) {
		maxValue = math.Max(maxValue, p.Value)
	}
	if maxValue <= 0 {
		maxValue = 1
	}

	step := 0.0
	if points > 1 {
		step = float64(chartWidth-2*chartPadding) / float64(points-1)
	}
	x := func(i int) float64 { return chartPadding + float64(i)*step }
	y := func(v float64) float64 {
		return chartHeight - chartPadding - (v/maxValue)*float64(chartHeight-2*chartPadding)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="trend-chart" viewBox="0 0 %d %d" role="img" aria-label="%s">`,
		chartWidth, chartHeight, html.EscapeString(t.Topic))
	fmt.Fprintf(&b, `<line class="axis" x1="%d" y1="%d" x2="%d" y2="%d"/>`,
		chartPadding, chartHeight-chartPadding, chartWidth-chartPadding, chartHeight-chartPadding)

	actual := make([]string, 0, len(t.Data))
	for i, p := range t.Data {
		actual = append(actual, fmt.Sprintf("%.1f,%.1f", x(i), y(p.Value)))
	}
	fmt.Fprintf(&b, `<polyline class="series-actual" fill="none" points="%s"/>`, strings.Join(actual, " "))

	if len(t.PredictedData) > 0 {
		last := len(t.Data) - 1
		predicted := []string{fmt.Sprintf("%.1f,%.1f", x(last), y(t.Data[last].Value))}
		for i, p := range t.PredictedData {
			predicted = append(predicted, fmt.Sprintf("%.1f,%.1f", x(len(t.Data)+i), y(p.Value)))
		}
		fmt.Fprintf(&b, `<polyline class="series-predicted" fill="none" stroke-dasharray="6 4" points="%s"/>`,
			strings.Join(predicted, " "))
	}

	labels := append(append([]model.TrendDataPoint{}, t.Data...), t.PredictedData...)
	for i, p := range labels {
		fmt.Fprintf(&b, `<text class="label" x="%.1f" y="%d" text-anchor="middle">%s</text>`,
			x(i), chartHeight-chartPadding/3, html.EscapeString(p.Name))
	}

	fmt.Fprintf(&b, `<text class="legend-actual" x="%d" y="16">%s</text>`, chartPadding, html.EscapeString(actualLabel))
	if len(t.PredictedData) > 0 {
		fmt.Fprintf(&b, `<text class="legend-predicted" x="%d" y="16">%s</text>`,
			chartWidth/2, html.EscapeString(predictedLabel))
	}
	b.WriteString(`</svg>`)
	return b.String()
}
