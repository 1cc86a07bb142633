// package models defines the data model for the design studio client
package models

import (
	"time"
)

// Intensity bounds accepted by the style transfer backend.
const (
	MinIntensity = 0.1
	MaxIntensity = 2.0
)

// Quality selects the backend's iteration budget for a standard transfer.
type Quality string

const (
	QualityFast     Quality = "fast"
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
)

// Valid reports whether q is one of the qualities the backend accepts.
func (q Quality) Valid() bool {
	switch q {
	case QualityFast, QualityStandard, QualityHigh:
		return true
	default:
		return false
	}
}

// Mode selects between the full transfer endpoint and the reduced-iteration
// quick transfer endpoint. Quick mode omits the quality parameter and runs
// against a shorter timeout.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeQuick    Mode = "quick"
)

// PreviewHandle is an ownership-bound reference to a locally displayable
// copy of an uploaded image. Handles are created when an upload completes
// and must be released when the owning [ImageRef] is replaced or the
// workflow resets.
//
// The zero value means "no preview".
type PreviewHandle struct {
	Token string // Unique handle identifier
	Path  string // Local filesystem location of the preview copy
}

// IsZero reports whether the handle refers to nothing.
func (h PreviewHandle) IsZero() bool {
	return h.Token == "" && h.Path == ""
}

// Role identifies which workflow slot an upload targets.
type Role string

const (
	RoleContent Role = "content"
	RoleStyle   Role = "style"
)

// ImageRef pairs a server-known image with its local preview.
//
// Two independent ImageRef slots exist in a workflow: content and style.
type ImageRef struct {
	Filename   string        // Server-assigned filename
	ServerPath string        // Path on the backend, used in transfer requests
	Preview    PreviewHandle // Local preview copy, released on replacement
}

// TransferRequest carries the parameters for a transfer submission.
// Immutable once handed to the gateway.
type TransferRequest struct {
	ContentPath string
	StylePath   string
	Intensity   float64
	Quality     Quality // Ignored in quick mode
	Mode        Mode
}

// TransferResult describes a completed transfer. Results are never mutated,
// only replaced by a newer result or cleared on workflow reset.
type TransferResult struct {
	OutputFilename string // Filename of the generated image on the backend
	OutputPath     string // Backend path, usable as a follow-up content image
	DownloadURL    string // Derived URL for fetching the result
	ProcessingTime string // Human-readable duration label from the backend
}

// StylePreset is a read-only style offered by the backend.
type StylePreset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// MixerEntry is one weighted style in a blend. Raw weights live in [0, 1]
// and are only normalized when the mix is computed, never in place.
type MixerEntry struct {
	ID        string  // Unique entry identifier
	Label     string  // Display label
	StylePath string  // Server path of the style image for this entry
	Weight    float64 // Raw weight in [0, 1]
}

// GalleryEntry is a backend-owned gallery listing. The client keeps a
// session-scoped read-through cache of these, invalidated on delete or
// explicit refresh.
type GalleryEntry struct {
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"` // Zero when the backend omits size information
}

// GalleryInfo holds backend gallery statistics.
type GalleryInfo struct {
	TotalFiles  int     `json:"total_files"`
	StyledFiles int     `json:"styled_files"`
	TotalSizeMB float64 `json:"total_size_mb"`
	Folder      string  `json:"upload_folder"`
}

// HealthStatus is the backend liveness probe response.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Device  string `json:"device"`
}

// Healthy reports whether the backend considers itself operational.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// UploadResult is the backend's record of a stored upload.
type UploadResult struct {
	Filename string
	Path     string
	Info     map[string]any // Optional image metadata (dimensions, format, size)
}
