// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/fault"
	"inkwell/internal/imaging"
	"inkwell/internal/storage"
)

// maxUploadSize is the maximum allowed image upload size (20 MB).
const maxUploadSize = 20 << 20

// allowedImageTypes defines MIME types accepted for image upload.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// readImageUpload extracts the named multipart file field and validates
// its size and sniffed content type. Returns (nil, nil) when the field
// is absent, so image uploads stay optional.
func readImageUpload(r *http.Request, field string) ([]byte, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Invalid("invalid image upload")
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		return nil, fault.Invalid("image too large (max 20 MB)")
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	contentType := http.DetectContentType(data[:min(len(data), 512)])
	if !allowedImageTypes[contentType] {
		return nil, fault.Invalid(fmt.Sprintf("file type %q is not allowed", contentType))
	}
	return data, nil
}

// storeProcessed uploads a normalized image under a dated unique key
// and returns the key.
func storeProcessed(ctx context.Context, sc *storage.Client, prefix string, img *imaging.ProcessedImage) (string, error) {
	now := time.Now()
	key := fmt.Sprintf("%s/%d/%02d/%s.webp", prefix, now.Year(), now.Month(), uuid.New())
	if err := sc.Store(ctx, key, img.ContentType, bytes.NewReader(img.Data), int64(len(img.Data))); err != nil {
		return "", err
	}
	return key, nil
}

// storeCover normalizes and stores an article cover image. Returns ""
// when no data was uploaded or storage is not configured.
func storeCover(ctx context.Context, sc *storage.Client, data []byte) (string, error) {
	if len(data) == 0 || sc == nil {
		return "", nil
	}
	img, err := imaging.ProcessCover(data)
	if err != nil {
		return "", fault.Invalid("could not process image")
	}
	return storeProcessed(ctx, sc, "covers", img)
}

// storeAvatar normalizes and stores a user avatar.
func storeAvatar(ctx context.Context, sc *storage.Client, data []byte) (string, error) {
	if len(data) == 0 || sc == nil {
		return "", nil
	}
	img, err := imaging.ProcessAvatar(data)
	if err != nil {
		return "", fault.Invalid("could not process image")
	}
	return storeProcessed(ctx, sc, "avatars", img)
}
