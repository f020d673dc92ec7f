// Package storage holds the asset store client used for brand logos and
// product images. Uploaded objects live in an S3-compatible bucket; the
// returned key doubles as the deletion handle persisted next to the URL.
package storage

import "context"

// Asset is the result of a successful upload.
type Asset struct {
	URL string
	ID  string
}

// Store is the asset store seen by the handlers. The minio client implements
// it in production; tests substitute an in-memory fake.
type Store interface {
	Upload(ctx context.Context, data []byte, contentType string) (Asset, error)
	Delete(ctx context.Context, assetID string) error
}
