// Package media implements the upload-and-get-URL collaborator backing
// media-typed fields: files go to an S3-compatible object store (or a
// local directory during development) and are referenced by URL from then
// on. The service never deletes or retries a completed upload.
package media

import (
	"context"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
)

type Storage interface {
	Save(ctx context.Context, data []byte, name string, contentType string) error
	URL(name string) string
}

// ObjectName produces a unique storage name that keeps the original
// file extension, so URLs stay type-recognizable.
func ObjectName(filename string) string {
	return uuid.Must(uuid.NewV4()).String() + strings.ToLower(filepath.Ext(filename))
}

// ContentType resolves a MIME type from the file extension, falling back
// to an opaque binary type for anything unrecognized.
func ContentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// LocalStorage keeps uploads in a directory served by the HTTP layer.
type LocalStorage struct {
	rootDir string
	baseUrl string
}

func NewLocalStorage(rootDir, baseUrl string) (*LocalStorage, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, err
	}
	return &LocalStorage{rootDir, strings.TrimRight(baseUrl, "/")}, nil
}

func (s *LocalStorage) Save(ctx context.Context, data []byte, name string, contentType string) error {
	return os.WriteFile(filepath.Join(s.rootDir, name), data, 0644)
}

func (s *LocalStorage) URL(name string) string {
	return s.baseUrl + "/" + url.PathEscape(name)
}
