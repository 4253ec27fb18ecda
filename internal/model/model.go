// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model holds the dashboard's content types and the fixed preset
// tables (aspect ratios, styles, platforms) offered by the feature screens.
package model

import "time"

// NewsArticle is one hot news item.
type NewsArticle struct {
	Title           string `json:"title"`
	Summary         string `json:"summary"`
	URL             string `json:"url"`
	SourceName      string `json:"sourceName,omitempty"`
	PublicationDate string `json:"publicationDate,omitempty"`
}

// GroundingSource is a web page the model cited.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// NewsResult is a hot news response with its citations.
type NewsResult struct {
	Articles  []NewsArticle     `json:"articles"`
	Sources   []GroundingSource `json:"sources,omitempty"`
	FetchedAt time.Time         `json:"fetchedAt"`
}

// TrendDataPoint is one point on a trend chart.
type TrendDataPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Trend is a topic's observed and predicted popularity.
type Trend struct {
	Topic          string           `json:"topic"`
	Data           []TrendDataPoint `json:"data"`
	PredictionText string           `json:"predictionText,omitempty"`
	PredictedData  []TrendDataPoint `json:"predictedData,omitempty"`
}

// GeneratedArticle is an article written for a platform.
type GeneratedArticle struct {
	ID            string    `json:"id"`
	Topic         string    `json:"topic"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Hashtags      []string  `json:"hashtags,omitempty"`
	PlatformStyle string    `json:"platformStyle,omitempty"`
	Language      string    `json:"language,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// ImageGenParams are the text-to-image and image-to-image inputs.
type ImageGenParams struct {
	Prompt      string
	AspectRatio string // preset ID
	Style       string // preset ID
}

// GeneratedImage is an encoded image returned by the provider.
type GeneratedImage struct {
	MIMEType string
	Data     []byte
	Prompt   string
}

// Video concept types.
const (
	ConceptScript          = "script"
	ConceptStoryboard      = "storyboard"
	ConceptSceneIdeas      = "sceneIdeas"
	ConceptTransitionIdeas = "transitionIdeas"
)

// ConceptTypes lists the video concept types in display order.
var ConceptTypes = []string{ConceptScript, ConceptStoryboard, ConceptSceneIdeas, ConceptTransitionIdeas}

// VideoConceptParams are the video tool inputs.
type VideoConceptParams struct {
	ConceptType      string
	Prompt           string
	AspectRatio      string
	Style            string
	Scenes           int
	InspirationImage string // description of the inspiration image
	StartFrame       string
	EndFrame         string
}

// GeneratedTextConcept is a drafted video concept.
type GeneratedTextConcept struct {
	Title       string `json:"title"`
	ConceptType string `json:"conceptType"`
	Text        string `json:"text"`
}

// Publish job statuses.
const (
	PublishPending    = "pending"
	PublishPublishing = "publishing"
	PublishSuccess    = "success"
	PublishFailed     = "failed"
)

// PublishStatus is a job's state on one platform.
type PublishStatus struct {
	JobID       string
	ArticleID   string
	Title       string
	PlatformID  string
	Status      string
	Message     string
	ScheduledAt time.Time
	UpdatedAt   time.Time
}
