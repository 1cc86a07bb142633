package tasks

import (
	"fmt"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	UploadImage Phase = iota
	SubmitTransfer
	TransferDone
	BlendPass
	FetchGallery
	DownloadImage
	CleanupGallery
)

func (p Phase) String() string {
	switch p {
	case UploadImage:
		return "upload_image"
	case SubmitTransfer:
		return "submit_transfer"
	case TransferDone:
		return "transfer_done"
	case BlendPass:
		return "blend_pass"
	case FetchGallery:
		return "fetch_gallery"
	case DownloadImage:
		return "download_image"
	case CleanupGallery:
		return "cleanup_gallery"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func uploadUpdate(role models.Role, filename string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadImage,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Uploading %s image: %s", role, filename),
	}
}

func uploadedUpdate(ref *models.ImageRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UploadImage,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Uploaded: %s", ref.Filename),
		Data:    ref,
	}
}

func submitUpdate(mode models.Mode) ProgressUpdate {
	msg := "Submitting style transfer..."
	if mode == models.ModeQuick {
		msg = "Submitting quick style transfer..."
	}
	return ProgressUpdate{Phase: SubmitTransfer, Step: 1, Total: 1, Message: msg}
}

func transferDoneUpdate(result *models.TransferResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TransferDone,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Transfer complete: %s (%s)", result.OutputFilename, result.ProcessingTime),
		Data:    result,
	}
}

func blendPassUpdate(step, total int, entry models.MixerEntry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BlendPass,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Blending style: %s", step, total, entry.Label),
	}
}

func fetchGalleryUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchGallery,
		Step:    step,
		Total:   total,
		Message: "Fetching gallery...",
	}
}

func downloadUpdate(step, total int, filename string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadImage,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Downloading %s", step, total, filename),
	}
}

func downloadFailedUpdate(step, total int, filename string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadImage,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, filename, err),
	}
}

func cleanupUpdate(deleted int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CleanupGallery,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Cleanup complete, %d files deleted", deleted),
	}
}
