package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
	// FileName is the original client file name, served back on download.
	FileName string
	Metadata map[string]string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts cloud object storage operations.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Delete(ctx context.Context, bucket, key string) error
	// GetPresignedURL returns a time-limited download URL that saves the
	// object as fileName.
	GetPresignedURL(ctx context.Context, bucket, key, fileName string, expirySeconds int64) (string, error)
	// Ping checks that bucket is reachable.
	Ping(ctx context.Context, bucket string) error
}
