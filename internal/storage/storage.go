// internal/storage/storage.go
package storage

import (
	"context"
	"io"
)

// Driver abstracts where uploaded files live.
type Driver interface {
	// Upload stores the file under path and returns the storage path
	// and public URL.
	Upload(ctx context.Context, file io.Reader, path string) (storagePath string, publicURL string, err error)

	// Delete removes a file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	// GetPublicURL returns the URL clients use to fetch the file.
	GetPublicURL(path string) string

	// Exists checks whether a file is present.
	Exists(ctx context.Context, path string) (bool, error)

	// GetReader streams the file back.
	GetReader(ctx context.Context, path string) (io.ReadCloser, error)
}

// Config selects and parameterizes a driver.
type Config struct {
	Driver string // local, s3

	// Local
	UploadsPath string

	// AWS S3
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	AWSBucket          string
}
