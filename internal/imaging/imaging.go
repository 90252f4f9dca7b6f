// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalizes uploaded images using libvips. Article
// cover images and user avatars are converted to WebP at a bounded
// width, so object storage only ever holds one predictable rendition
// of each upload. Images narrower than the bound are never upscaled.
package imaging

import (
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

const (
	// CoverWidth bounds article cover images.
	CoverWidth = 1920

	// AvatarWidth bounds user avatars.
	AvatarWidth = 256

	webpQuality = 80
)

// ProcessedImage is a normalized upload ready for object storage.
type ProcessedImage struct {
	Width       int    // Actual output width
	Height      int    // Actual output height
	Data        []byte // WebP-encoded image bytes
	ContentType string // Always "image/webp"
}

// Startup initialises the libvips library. Call once at application start.
// concurrency controls the number of libvips worker threads (0 = auto).
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50 MB
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources. Call at application shutdown.
func Shutdown() {
	vips.Shutdown()
}

// ProcessCover normalizes an article cover image.
func ProcessCover(original []byte) (*ProcessedImage, error) {
	return process(original, CoverWidth)
}

// ProcessAvatar normalizes a user avatar.
func ProcessAvatar(original []byte) (*ProcessedImage, error) {
	return process(original, AvatarWidth)
}

// process re-encodes the source as WebP at most maxWidth wide,
// auto-rotated per EXIF and with metadata stripped.
func process(original []byte, maxWidth int) (*ProcessedImage, error) {
	probe, err := vips.NewImageFromBuffer(original)
	if err != nil {
		return nil, fmt.Errorf("imaging: probe failed: %w", err)
	}
	origWidth := probe.Width()
	probe.Close()

	// Cap at original width to avoid upscaling.
	if origWidth < maxWidth {
		maxWidth = origWidth
	}

	img, err := vips.NewThumbnailFromBuffer(original, maxWidth, 0, vips.InterestingNone)
	if err != nil {
		return nil, fmt.Errorf("imaging: thumbnail %dpx: %w", maxWidth, err)
	}
	defer img.Close()

	if err := img.AutoRotate(); err != nil {
		return nil, fmt.Errorf("imaging: autorotate: %w", err)
	}

	params := vips.NewWebpExportParams()
	params.Quality = webpQuality
	params.Lossless = false
	params.StripMetadata = true

	buf, meta, err := img.ExportWebp(params)
	if err != nil {
		return nil, fmt.Errorf("imaging: export webp: %w", err)
	}

	return &ProcessedImage{
		Width:       meta.Width,
		Height:      meta.Height,
		Data:        buf,
		ContentType: "image/webp",
	}, nil
}
