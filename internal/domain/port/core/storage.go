package core

import (
	"context"
	"io"
)

// FileStorage stores user uploads and returns a public location for them
type FileStorage interface {
	// Upload writes content under the category and returns its URL
	Upload(ctx context.Context, category, filename, contentType string, content io.Reader) (string, error)
	// Delete removes a previously uploaded object by URL
	Delete(ctx context.Context, url string) error
}
