// Package storage uploads media (logos, branch photos) to Cloudinary.
package storage

import (
	"context"
	"fmt"

	"glowdesk/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService uploads and deletes media files.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (publicID, url string, err error)
	DeleteFile(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService against Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds the storage service from configuration.
func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// UploadFile uploads a file into the given folder and returns its public ID
// and delivery URL.
func (s *CloudinaryStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: destFolder})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		return "", "", fmt.Errorf("no public ID returned for upload")
	}
	return result.PublicID, result.SecureURL, nil
}

// DeleteFile removes an uploaded file by its public ID.
func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", publicID, err)
	}
	return nil
}
