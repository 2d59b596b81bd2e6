package storage

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService abstracts remote file storage for uploaded documents and
// assembled drafts.
type StorageService interface {
	// UploadFile uploads a local file into destFolder and returns its
	// permanent identifier.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile deletes a file given its identifier.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL constructs a public URL for a stored file.
	GetDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error)
	// FetchTemplate downloads a form template from its link into a local file
	// and returns the local path.
	FetchTemplate(ctx context.Context, templateURL string) (string, error)
}

// StorageServiceImpl is the Cloudinary-backed implementation.
type StorageServiceImpl struct {
	cld     *cloudinary.Cloudinary
	tempDir string
}
