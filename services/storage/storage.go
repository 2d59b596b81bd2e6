package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// templateHTTPClient fetches form templates; the timeout caps how long a
// wizard request can hang on a slow template host.
var templateHTTPClient = &http.Client{Timeout: 15 * time.Second}

// NewStorageService creates a Cloudinary-backed StorageService.
func NewStorageService(cloudinaryURL string) (StorageService, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &StorageServiceImpl{cld: cld, tempDir: os.TempDir()}, nil
}

// UploadFile uploads a file to Cloudinary into the specified folder and returns the permanent identifier.
func (s *StorageServiceImpl) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	uploadParams := uploader.UploadParams{
		Folder: destFolder,
	}
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploadParams)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("StorageServiceImpl: no public ID returned")
	}
	return result.PublicID, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	return nil
}

// GetDownloadURL constructs a public URL for a stored file.
func (s *StorageServiceImpl) GetDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error) {
	a, err := s.cld.Media(publicID)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to get asset: %w", err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to get URL string: %w", err)
	}
	return url, nil
}

// FetchTemplate downloads a DOCX template into a temp file and returns the
// local path. Callers own the file and should remove it when done.
func (s *StorageServiceImpl) FetchTemplate(ctx context.Context, templateURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, templateURL, nil)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: bad template URL: %w", err)
	}
	resp, err := templateHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to download template: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("StorageServiceImpl: template host returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(s.tempDir, "template-*.docx")
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to create temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("StorageServiceImpl: failed to save template: %w", err)
	}
	return tmp.Name(), nil
}
