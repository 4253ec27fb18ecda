// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Option is a preset choice. Value is the prompt fragment it contributes.
type Option struct {
	ID       string
	LabelKey string
	Value    string
}

// AspectRatios are shared by the image and video tools.
var AspectRatios = []Option{
	{"square", "aspectRatio.square", "1:1 aspect ratio"},
	{"landscape", "aspectRatio.landscape", "16:9 aspect ratio"},
	{"portrait", "aspectRatio.portrait", "9:16 aspect ratio"},
	{"wide", "aspectRatio.wide", "21:9 aspect ratio"},
	{"tall", "aspectRatio.tall", "3:4 aspect ratio"},
}

// ImageStyles are the image generation styles.
var ImageStyles = []Option{
	{"photorealistic", "style.photorealistic", "photorealistic, hyperrealistic, 8k"},
	{"anime", "style.anime", "anime style, vibrant colors, detailed characters"},
	{"impressionist", "style.impressionist", "impressionistic painting, visible brush strokes"},
	{"cyberpunk", "style.cyberpunk", "cyberpunk city, neon lights, futuristic"},
	{"watercolor", "style.watercolor", "watercolor painting, soft edges, flowing colors"},
	{"lineart", "style.lineart", "line art, monochrome, minimalist"},
	{"fantasy", "style.fantasy", "epic fantasy art, detailed, magical"},
	{"vintage", "style.vintage", "vintage photo, retro style, desaturated colors"},
}

// VideoStyles shape the tone of video concepts.
var VideoStyles = []Option{
	{"cinematic", "videoStyle.cinematic", "cinematic, dramatic lighting, wide shots"},
	{"documentary", "videoStyle.documentary", "documentary style, interviews, realistic"},
	{"vlog", "videoStyle.vlog", "vlog style, personal, direct to camera"},
	{"animatedExplainer", "videoStyle.animatedExplainer", "animated explainer video, clear visuals, voiceover friendly"},
	{"shortFilm", "videoStyle.shortFilm", "short film, narrative structure, character development"},
}

// PlatformStyles are the article writing styles.
var PlatformStyles = []Option{
	{"general", "platform.general", "a general audience blog post"},
	{"wechat", "platform.wechat", "a WeChat official account article with a strong headline and clear sections"},
	{"weibo", "platform.weibo", "a short, punchy Weibo post"},
	{"xiaohongshu", "platform.xiaohongshu", "a Xiaohongshu note with a personal tone and emoji"},
	{"douyin", "platform.douyin", "a Douyin short video caption and talking points"},
}

// PublishPlatform is an auto-publish target. MaxChars is the content limit
// the simulation enforces.
type PublishPlatform struct {
	ID       string
	NameKey  string
	MaxChars int
}

// PublishPlatforms are the auto-publish targets.
var PublishPlatforms = []PublishPlatform{
	{"wechat", "publishPlatform.wechat", 20000},
	{"weibo", "publishPlatform.weibo", 2000},
	{"xiaohongshu", "publishPlatform.xiaohongshu", 1000},
	{"douyin", "publishPlatform.douyin", 1000},
	{"toutiao", "publishPlatform.toutiao", 10000},
}

// Default model names per provider.
const (
	DefaultGeminiTextModel  = "gemini-2.5-flash"
	DefaultGeminiImageModel = "imagen-3.0-generate-002"
	DefaultOpenAITextModel  = "gpt-4o-mini"
	DefaultOpenAIImageModel = "dall-e-3"
)

// FindOption returns the option with id. ok is false for unknown IDs.
func FindOption(options []Option, id string) (Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// FindPublishPlatform returns the platform with id.
func FindPublishPlatform(id string) (PublishPlatform, bool) {
	for _, p := range PublishPlatforms {
		if p.ID == id {
			return p, true
		}
	}
	return PublishPlatform{}, false
}

// IsConceptType reports whether t is a known video concept type.
func IsConceptType(t string) bool {
	for _, c := range ConceptTypes {
		if c == t {
			return true
		}
	}
	return false
}
