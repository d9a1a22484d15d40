package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestObjectKeyScopesAndValidates(t *testing.T) {
	key, err := objectKey(PutInput{Scope: "prod-42", Filename: "photo.JPG", ContentType: "image/jpeg"})
	if err != nil {
		t.Fatalf("objectKey: %v", err)
	}
	if !strings.HasPrefix(key, "prod-42/") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("key = %q, want prod-42/<uuid>.jpg", key)
	}

	if _, err := objectKey(PutInput{Scope: "p1", Filename: "report.pdf", ContentType: "application/pdf"}); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("pdf upload: err = %v, want ErrUnsupportedImage", err)
	}
	if _, err := objectKey(PutInput{Scope: "p1", Filename: "photo.png", ContentType: "text/html"}); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("mismatched content type: err = %v, want ErrUnsupportedImage", err)
	}

	key, err = objectKey(PutInput{Scope: "../p1", Filename: "a.png", ContentType: "image/png"})
	if err != nil {
		t.Fatalf("objectKey: %v", err)
	}
	if strings.Contains(key, "..") {
		t.Fatalf("key %q kept traversal characters from scope", key)
	}
}

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/products")

	res, err := l.Put(context.Background(), strings.NewReader("png-bytes"), PutInput{
		Scope:       "prod-1",
		Filename:    "box.png",
		ContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(res.URL, "/uploads/products/prod-1/") {
		t.Fatalf("URL = %q, want /uploads/products/prod-1/...", res.URL)
	}

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Key)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(b) != "png-bytes" {
		t.Fatalf("stored content = %q", b)
	}

	if err := l.Delete(context.Background(), res.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key))); !os.IsNotExist(err) {
		t.Fatalf("file survived delete: %v", err)
	}
}

func TestLocalDeleteRefusesTraversal(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads/products")
	for _, key := range []string{"../outside.png", "/etc/passwd", "."} {
		if err := l.Delete(context.Background(), key); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Delete(%q): err = %v, want os.ErrNotExist", key, err)
		}
	}
}
