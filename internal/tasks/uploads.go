package tasks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/services"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/charmbracelet/log"
)

// PreviewStore abstracts platform-specific preview storage: create a
// displayable handle for image bytes, release it when its owner goes away.
//
// The filesystem implementation lives in the previews package; tests use
// in-memory fakes.
type PreviewStore interface {
	// Create stores a displayable copy of data and returns its handle.
	Create(filename string, data []byte) (models.PreviewHandle, error)

	// Release frees the resources behind a handle. Releasing the zero
	// handle is a no-op.
	Release(handle models.PreviewHandle) error
}

// Uploader turns a local file into a server-known [models.ImageRef] with a
// fresh local preview. Each call is independent; slot replacement and
// preview release are the owning workflow's responsibility.
type Uploader struct {
	gateway  services.Gateway
	previews PreviewStore
	logger   *log.Logger
}

// NewUploader creates an Uploader backed by the given gateway and preview store.
func NewUploader(gateway services.Gateway, previews PreviewStore, logger *log.Logger) *Uploader {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Uploader{gateway: gateway, previews: previews, logger: logger}
}

// Upload sends the file at path to the backend and builds an ImageRef from
// the server-assigned name and path plus a freshly created preview handle.
//
// An empty or unreadable file fails with a validation error before any
// network call. A failed preview write is logged and tolerated; the ref is
// still usable without one.
func (u *Uploader) Upload(ctx context.Context, path string, role models.Role) (*models.ImageRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", shared.ErrValidation, path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", shared.ErrValidation, path)
	}

	result, err := u.gateway.UploadImage(ctx, filepath.Base(path), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("upload of %s image failed: %w", role, err)
	}

	ref := &models.ImageRef{
		Filename:   result.Filename,
		ServerPath: result.Path,
	}

	if u.previews != nil {
		handle, err := u.previews.Create(result.Filename, data)
		if err != nil {
			u.logger.Warn("preview creation failed", "filename", result.Filename, "err", err)
		} else {
			ref.Preview = handle
		}
	}

	u.logger.Info("image uploaded", "role", role, "filename", result.Filename)
	return ref, nil
}

// release frees a ref's preview handle, logging failures instead of
// propagating them.
func (u *Uploader) release(ref *models.ImageRef) {
	if ref == nil || ref.Preview.IsZero() || u.previews == nil {
		return
	}
	if err := u.previews.Release(ref.Preview); err != nil {
		u.logger.Warn("failed to release preview", "filename", ref.Filename, "err", err)
	}
}
