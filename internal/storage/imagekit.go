// Package storage wraps the CDN-backed object store that hosts post images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"

	"github.com/shivraj-io/Caption-io-Backend/internal/config"
)

// ErrNotConfigured is returned when the provider credentials are unset.
var ErrNotConfigured = errors.New("imagekit credentials are not configured")

// UploadResult is the public URL of the hosted asset plus the deletion handle.
type UploadResult struct {
	URL    string
	FileID string
}

// Storage uploads image buffers and deletes them by handle. No retry, no
// local caching.
type Storage interface {
	Upload(ctx context.Context, data []byte, fileName string) (UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}

// ImageKit implements Storage against the ImageKit media API.
type ImageKit struct {
	ik     *imagekit.ImageKit
	folder string
}

// NewImageKit returns an ImageKit store. With incomplete credentials the
// adapter is still constructed; both operations then fail with
// ErrNotConfigured.
func NewImageKit(cfg config.ImageKitConfig) *ImageKit {
	s := &ImageKit{folder: cfg.Folder}
	if cfg.PublicKey == "" || cfg.PrivateKey == "" || cfg.URLEndpoint == "" {
		return s
	}
	s.ik = imagekit.NewFromParams(imagekit.NewParams{
		PublicKey:   cfg.PublicKey,
		PrivateKey:  cfg.PrivateKey,
		UrlEndpoint: cfg.URLEndpoint,
	})
	return s
}

// Upload stores the buffer under fileName inside the configured folder.
// Uniqueness of the final name is enforced by the provider.
func (s *ImageKit) Upload(ctx context.Context, data []byte, fileName string) (UploadResult, error) {
	if s.ik == nil {
		return UploadResult{}, ErrNotConfigured
	}
	useUnique := true
	resp, err := s.ik.Uploader.Upload(ctx, bytes.NewReader(data), uploader.UploadParam{
		FileName:          fileName,
		Folder:            s.folder,
		UseUniqueFileName: &useUnique,
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("upload image: %w", err)
	}
	return UploadResult{URL: resp.Data.Url, FileID: resp.Data.FileId}, nil
}

// Delete removes the hosted asset by its deletion handle.
func (s *ImageKit) Delete(ctx context.Context, fileID string) error {
	if s.ik == nil {
		return ErrNotConfigured
	}
	if _, err := s.ik.Media.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("delete image %s: %w", fileID, err)
	}
	return nil
}
