package domain

import "context"

// ExportStore keeps exported training logs in object storage
type ExportStore interface {
	// Upload stores body under key and returns the URL it is served from.
	// Uploading to an existing key replaces the object.
	Upload(ctx context.Context, body []byte, key string, contentType string) (string, error)
}
