// package services defines interface Gateway for the style transfer backend
package services

import (
	"context"
	"io"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
)

// Gateway defines the typed operations the style transfer backend exposes.
//
// Implementations normalize every failure into one of the shared error
// kinds (network, timeout, HTTP status, API failure) and never panic.
// One method exists per backend capability; [Gateway.ImageURL] is a pure
// derivation with no network side effects.
type Gateway interface {
	// Health probes backend liveness.
	Health(ctx context.Context) (*models.HealthStatus, error)

	// UploadImage sends a local file as a multipart form and returns the
	// backend's record of the stored upload.
	UploadImage(ctx context.Context, filename string, data io.Reader) (*models.UploadResult, error)

	// ListStyles retrieves the read-only style preset catalog.
	ListStyles(ctx context.Context) ([]models.StylePreset, error)

	// Transfer performs a full style transfer. The call blocks until the
	// backend finishes or the extended transfer timeout elapses.
	Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error)

	// QuickTransfer performs a reduced-iteration transfer. Quality is
	// ignored and the default request timeout applies.
	QuickTransfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error)

	// GenerateVariations asks the backend for n variations of an image and
	// returns the generated filenames.
	GenerateVariations(ctx context.Context, imagePath string, n int) ([]string, error)

	// ListGallery retrieves all persisted results.
	ListGallery(ctx context.Context) ([]models.GalleryEntry, error)

	// DeleteImage removes a persisted result from the gallery.
	DeleteImage(ctx context.Context, filename string) error

	// CleanupGallery bulk-deletes results older than maxAgeHours and
	// returns the number of deleted files.
	CleanupGallery(ctx context.Context, maxAgeHours int) (int, error)

	// GalleryInfo retrieves gallery statistics.
	GalleryInfo(ctx context.Context) (*models.GalleryInfo, error)

	// FetchImage retrieves the raw bytes of an image, used for previews
	// and downloads.
	FetchImage(ctx context.Context, filename string) ([]byte, error)

	// ImageURL derives the display/download URL for a filename. Pure.
	ImageURL(filename string) string
}
