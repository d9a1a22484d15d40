package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

type PutInput struct {
	// Scope namespaces the key, e.g. the product id the image belongs to.
	Scope       string
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage holds product images; keys are opaque, URLs are public.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

var imageContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// objectKey validates the upload as a product image and builds the storage
// key: <scope>/<uuid><ext>. Drivers prepend their own root or prefix.
func objectKey(in PutInput) (string, error) {
	ext := safeExt(in.Filename)
	if ext == "" {
		return "", ErrUnsupportedImage
	}
	if in.ContentType != "" && !imageContentTypes[in.ContentType] {
		return "", ErrUnsupportedImage
	}

	key := uuid.NewString() + ext
	if scope := sanitizeScope(in.Scope); scope != "" {
		key = scope + "/" + key
	}
	return key, nil
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return ext
	default:
		return ""
	}
}

// sanitizeScope keeps only characters safe in a path segment.
func sanitizeScope(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
