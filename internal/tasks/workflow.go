package tasks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/services"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/charmbracelet/log"
)

// Status is the workflow's derived lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusUploading
	StatusReady
	StatusProcessing
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusUploading:
		return "uploading"
	case StatusReady:
		return "ready"
	case StatusProcessing:
		return "processing"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return ""
	}
}

// outcome marks how the last submission ended.
type outcome int

const (
	outcomeNone outcome = iota
	outcomeSucceeded
	outcomeFailed
)

// Workflow is the transfer state machine. It owns the content and style
// upload slots, the latest result, and the single-submission-in-flight rule.
//
// Status is derived from slot and request state at the transition boundary
// rather than stored redundantly: Processing implies an in-flight request
// with both slots populated, Succeeded implies a result exists. All state
// mutations happen under one mutex; blocking gateway calls happen outside
// it so the rest of the application stays responsive.
type Workflow struct {
	mu       sync.Mutex
	gateway  services.Gateway
	uploader *Uploader
	logger   *log.Logger

	content   *models.ImageRef
	style     *models.ImageRef
	result    *models.TransferResult
	failure   string
	last      outcome
	uploading int
	inFlight  bool
}

// NewWorkflow creates a workflow bound to the given gateway and preview store.
func NewWorkflow(gateway services.Gateway, previews PreviewStore, logger *log.Logger) *Workflow {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Workflow{
		gateway:  gateway,
		uploader: NewUploader(gateway, previews, logger),
		logger:   logger,
	}
}

// Status derives the current lifecycle state.
func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.statusLocked()
}

func (w *Workflow) statusLocked() Status {
	switch {
	case w.inFlight:
		return StatusProcessing
	case w.uploading > 0:
		return StatusUploading
	case w.last == outcomeSucceeded:
		return StatusSucceeded
	case w.last == outcomeFailed:
		return StatusFailed
	case w.content != nil && w.style != nil:
		return StatusReady
	default:
		return StatusIdle
	}
}

// ContentRef returns a copy of the content slot, or nil when unset.
func (w *Workflow) ContentRef() *models.ImageRef {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyRef(w.content)
}

// StyleRef returns a copy of the style slot, or nil when unset.
func (w *Workflow) StyleRef() *models.ImageRef {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyRef(w.style)
}

// Result returns the latest transfer result, or nil. The result stays
// visible across re-uploads until a newer submission succeeds or the
// workflow resets.
func (w *Workflow) Result() *models.TransferResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return nil
	}
	res := *w.result
	return &res
}

// FailureReason returns the human-readable message of the last failed
// submission, or "".
func (w *Workflow) FailureReason() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

func copyRef(ref *models.ImageRef) *models.ImageRef {
	if ref == nil {
		return nil
	}
	c := *ref
	return &c
}

// Upload sends a local file to the backend and installs it in the slot for
// role. Replacing a populated slot releases the previous preview handle.
// A failed upload leaves the previous ref for that role untouched, and
// uploading one role never affects the other.
//
// From a terminal state, a successful upload returns the machine to
// ReadyToProcess without an explicit reset.
func (w *Workflow) Upload(ctx context.Context, path string, role models.Role, progress chan<- ProgressUpdate) (*models.ImageRef, error) {
	if role != models.RoleContent && role != models.RoleStyle {
		return nil, fmt.Errorf("%w: unknown role %q", shared.ErrValidation, role)
	}

	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot replace images mid-transfer", shared.ErrConcurrentSubmission)
	}
	w.uploading++
	w.mu.Unlock()

	sendProgress(progress, uploadUpdate(role, path))
	ref, err := w.uploader.Upload(ctx, path, role)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.uploading--

	if err != nil {
		return nil, err
	}

	if role == models.RoleContent {
		w.uploader.release(w.content)
		w.content = ref
	} else {
		w.uploader.release(w.style)
		w.style = ref
	}

	// A fresh upload leaves any terminal state; the old result stays
	// visible until a new submission supersedes it.
	w.last = outcomeNone
	w.failure = ""

	sendProgress(progress, uploadedUpdate(ref))
	return copyRef(ref), nil
}

// SubmitOpts carries submission parameters.
type SubmitOpts struct {
	Mode      models.Mode
	Intensity float64
	Quality   models.Quality // Ignored in quick mode
}

func validateIntensity(intensity float64) error {
	if math.IsNaN(intensity) || intensity < models.MinIntensity || intensity > models.MaxIntensity {
		return fmt.Errorf("%w: intensity %.2f outside [%.1f, %.1f]",
			shared.ErrValidation, intensity, models.MinIntensity, models.MaxIntensity)
	}
	return nil
}

// beginSubmission validates preconditions and flips the in-flight flag.
// Returns the request paths captured under the lock.
func (w *Workflow) beginSubmission() (contentPath, stylePath string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		return "", "", shared.ErrConcurrentSubmission
	}
	if w.uploading > 0 {
		return "", "", fmt.Errorf("%w: an upload is still in progress", shared.ErrPrecondition)
	}
	if w.content == nil || w.style == nil {
		return "", "", fmt.Errorf("%w: both images required", shared.ErrPrecondition)
	}

	w.inFlight = true
	return w.content.ServerPath, w.style.ServerPath, nil
}

// beginBlend is beginSubmission for the blend path, which carries its style
// images in the mixer entries and only needs the content slot populated.
func (w *Workflow) beginBlend() (contentPath string, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.inFlight {
		return "", shared.ErrConcurrentSubmission
	}
	if w.uploading > 0 {
		return "", fmt.Errorf("%w: an upload is still in progress", shared.ErrPrecondition)
	}
	if w.content == nil {
		return "", fmt.Errorf("%w: content image required", shared.ErrPrecondition)
	}

	w.inFlight = true
	return w.content.ServerPath, nil
}

// finishSubmission records the outcome of a submission under the lock.
func (w *Workflow) finishSubmission(result *models.TransferResult, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.inFlight = false
	if err != nil {
		w.last = outcomeFailed
		w.failure = failureMessage(err)
		return
	}

	w.last = outcomeSucceeded
	w.failure = ""
	w.result = result
}

// Submit drives one transfer: validates parameters, transitions
// ReadyToProcess → Processing, dispatches the mode-appropriate gateway call
// and reconciles the outcome. Only one submission may be in flight; a
// concurrent call fails without issuing a request. On failure both image
// slots stay populated so the user can retry without re-uploading.
func (w *Workflow) Submit(ctx context.Context, opts SubmitOpts, progress chan<- ProgressUpdate) (*models.TransferResult, error) {
	if err := validateIntensity(opts.Intensity); err != nil {
		return nil, err
	}
	if opts.Mode == "" {
		opts.Mode = models.ModeStandard
	}
	if opts.Mode == models.ModeStandard {
		if opts.Quality == "" {
			opts.Quality = models.QualityStandard
		}
		if !opts.Quality.Valid() {
			return nil, fmt.Errorf("%w: unknown quality %q", shared.ErrValidation, opts.Quality)
		}
	}

	contentPath, stylePath, err := w.beginSubmission()
	if err != nil {
		return nil, err
	}

	req := models.TransferRequest{
		ContentPath: contentPath,
		StylePath:   stylePath,
		Intensity:   opts.Intensity,
		Quality:     opts.Quality,
		Mode:        opts.Mode,
	}

	w.logger.Info("submitting transfer", "mode", req.Mode, "intensity", req.Intensity, "quality", req.Quality)
	sendProgress(progress, submitUpdate(req.Mode))

	var result *models.TransferResult
	if req.Mode == models.ModeQuick {
		result, err = w.gateway.QuickTransfer(ctx, req)
	} else {
		result, err = w.gateway.Transfer(ctx, req)
	}

	w.finishSubmission(result, err)

	if err != nil {
		w.logger.Warn("transfer failed", "reason", failureMessage(err))
		return nil, err
	}

	w.logger.Info("transfer succeeded", "output", result.OutputFilename, "took", result.ProcessingTime)
	sendProgress(progress, transferDoneUpdate(result))
	return result, nil
}

// SubmitBlend runs a blended transfer from normalized mixer output: a chain
// of quick transfers where each pass styles the previous pass's output and
// the entry's normalized weight scales the base intensity. Entries must come
// from [Mixer.Mix] so their weights sum to 1.
func (w *Workflow) SubmitBlend(ctx context.Context, entries []models.MixerEntry, baseIntensity float64, progress chan<- ProgressUpdate) (*models.TransferResult, error) {
	if err := validateIntensity(baseIntensity); err != nil {
		return nil, err
	}
	if len(entries) < MinMixerEntries || len(entries) > MaxMixerEntries {
		return nil, fmt.Errorf("%w: blend requires %d-%d styles, got %d",
			shared.ErrValidation, MinMixerEntries, MaxMixerEntries, len(entries))
	}
	for _, entry := range entries {
		if entry.StylePath == "" {
			return nil, fmt.Errorf("%w: mixer entry %q has no style image", shared.ErrPrecondition, entry.Label)
		}
	}

	contentPath, err := w.beginBlend()
	if err != nil {
		return nil, err
	}

	var result *models.TransferResult
	total := len(entries)

	for i, entry := range entries {
		sendProgress(progress, blendPassUpdate(i+1, total, entry))

		// Scale so an equal split reproduces the base intensity per pass.
		intensity := clampIntensity(baseIntensity * entry.Weight * float64(total))

		req := models.TransferRequest{
			ContentPath: contentPath,
			StylePath:   entry.StylePath,
			Intensity:   intensity,
			Mode:        models.ModeQuick,
		}

		result, err = w.gateway.QuickTransfer(ctx, req)
		if err != nil {
			w.finishSubmission(nil, err)
			return nil, fmt.Errorf("blend pass %d/%d failed: %w", i+1, total, err)
		}

		if result.OutputPath != "" {
			contentPath = result.OutputPath
		} else {
			contentPath = result.OutputFilename
		}
	}

	w.finishSubmission(result, nil)
	sendProgress(progress, transferDoneUpdate(result))
	return result, nil
}

func clampIntensity(v float64) float64 {
	if v < models.MinIntensity {
		return models.MinIntensity
	}
	if v > models.MaxIntensity {
		return models.MaxIntensity
	}
	return v
}

// Reset returns the machine to Idle, releasing both preview handles and
// clearing any result.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.uploader.release(w.content)
	w.uploader.release(w.style)
	w.content = nil
	w.style = nil
	w.result = nil
	w.failure = ""
	w.last = outcomeNone
}

// failureMessage converts a gateway error into a user-readable reason.
func failureMessage(err error) string {
	var httpErr *shared.HTTPError
	switch {
	case errors.Is(err, shared.ErrTimeout):
		return "the transfer timed out; try quick mode or a lower quality"
	case errors.Is(err, shared.ErrNetwork):
		return "could not reach the backend; is it running?"
	case errors.As(err, &httpErr):
		if httpErr.Message != "" {
			return fmt.Sprintf("backend error (status %d): %s", httpErr.Status, httpErr.Message)
		}
		return fmt.Sprintf("backend error (status %d)", httpErr.Status)
	case errors.Is(err, shared.ErrAPIRequest):
		return err.Error()
	default:
		return err.Error()
	}
}
