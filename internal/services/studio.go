// Style transfer backend implementation of [Gateway]
//
// Endpoint shapes follow the backend's REST surface: every /api response is
// wrapped in a {success, message, data, error} envelope, /health and
// /api/image/{filename} are bare.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/charmbracelet/log"
)

const (
	DefaultBaseURL = "http://localhost:5000"

	// DefaultRequestTimeout bounds most API calls.
	DefaultRequestTimeout = 5 * time.Minute

	// DefaultTransferTimeout bounds full-quality transfers, which the
	// backend holds open until inference completes.
	DefaultTransferTimeout = 10 * time.Minute
)

// StudioService implements [Gateway] against the style transfer backend.
type StudioService struct {
	baseURL         string
	httpClient      *http.Client
	logger          *log.Logger
	requestTimeout  time.Duration
	transferTimeout time.Duration
}

// StudioOpts contains configuration options for creating a StudioService.
type StudioOpts struct {
	BaseURL         string
	Client          *http.Client
	Logger          *log.Logger
	RequestTimeout  time.Duration
	TransferTimeout time.Duration
}

// NewStudioService creates a new backend gateway instance.
func NewStudioService(opts StudioOpts) *StudioService {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.TransferTimeout <= 0 {
		opts.TransferTimeout = DefaultTransferTimeout
	}

	return &StudioService{
		baseURL:         opts.BaseURL,
		httpClient:      opts.Client,
		logger:          opts.Logger,
		requestTimeout:  opts.RequestTimeout,
		transferTimeout: opts.TransferTimeout,
	}
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// do issues a request with the given timeout and returns the raw body and
// status code. All transport failures are normalized into shared error kinds.
func (s *StudioService) do(ctx context.Context, method, path string, body io.Reader, contentType string, timeout time.Duration) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqLogger := s.logger.With("method", method, "path", path)
	reqLogger.Debug("sending request")

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		kind := classifyTransportError(ctx, err)
		reqLogger.Warn("request failed", "kind", kind)
		return nil, 0, fmt.Errorf("%w: %v", kind, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	reqLogger.Debug("received response", "status", resp.StatusCode, "bytes", len(data))
	return data, resp.StatusCode, nil
}

// doEnvelope issues a request against an /api endpoint and unwraps the
// backend's response envelope, returning its data payload.
//
// Non-2xx statuses become [*shared.HTTPError]; a 2xx carrying success=false
// becomes an [shared.ErrAPIRequest] with the backend's message.
func (s *StudioService) doEnvelope(ctx context.Context, method, path string, body io.Reader, contentType string, timeout time.Duration) (json.RawMessage, error) {
	data, status, err := s.do(ctx, method, path, body, contentType, timeout)
	if err != nil {
		return nil, err
	}

	var env envelope
	decodeErr := json.Unmarshal(data, &env)

	if status < 200 || status >= 300 {
		httpErr := &shared.HTTPError{Status: status, Method: method, Path: path}
		if decodeErr == nil {
			if env.Message != "" {
				httpErr.Message = env.Message
			} else {
				httpErr.Message = env.Error
			}
		}
		return nil, httpErr
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", shared.ErrAPIRequest, decodeErr)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, msg)
	}

	return env.Data, nil
}

// classifyTransportError maps a client.Do failure to a shared error kind.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return shared.ErrTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return shared.ErrTimeout
	}
	return shared.ErrNetwork
}

// Health probes backend liveness. The /health endpoint responds outside the
// standard envelope.
func (s *StudioService) Health(ctx context.Context) (*models.HealthStatus, error) {
	data, status, err := s.do(ctx, http.MethodGet, "/health", nil, "", s.requestTimeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &shared.HTTPError{Status: status, Method: http.MethodGet, Path: "/health"}
	}

	var health models.HealthStatus
	if err := json.Unmarshal(data, &health); err != nil {
		return nil, fmt.Errorf("%w: malformed health response: %v", shared.ErrAPIRequest, err)
	}

	return &health, nil
}

// UploadImage sends a file as multipart form data under the "file" field.
func (s *StudioService) UploadImage(ctx context.Context, filename string, data io.Reader) (*models.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	payload, err := s.doEnvelope(ctx, http.MethodPost, "/api/upload", &buf, writer.FormDataContentType(), s.requestTimeout)
	if err != nil {
		return nil, err
	}

	var uploaded struct {
		Filename string         `json:"filename"`
		Path     string         `json:"path"`
		Info     map[string]any `json:"info"`
	}
	if err := json.Unmarshal(payload, &uploaded); err != nil {
		return nil, fmt.Errorf("%w: malformed upload response: %v", shared.ErrAPIRequest, err)
	}

	return &models.UploadResult{
		Filename: uploaded.Filename,
		Path:     uploaded.Path,
		Info:     uploaded.Info,
	}, nil
}

// ListStyles retrieves the style preset catalog.
func (s *StudioService) ListStyles(ctx context.Context) ([]models.StylePreset, error) {
	payload, err := s.doEnvelope(ctx, http.MethodGet, "/api/styles", nil, "", s.requestTimeout)
	if err != nil {
		return nil, err
	}

	var data struct {
		Styles []models.StylePreset `json:"styles"`
	}
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed styles response: %v", shared.ErrAPIRequest, err)
	}

	return data.Styles, nil
}

// transferResponse is the shared payload shape of both transfer endpoints.
type transferResponse struct {
	OutputImage    string `json:"output_image"`
	OutputPath     string `json:"output_path"`
	ProcessingTime string `json:"processing_time"`
}

func (s *StudioService) toTransferResult(resp transferResponse) *models.TransferResult {
	return &models.TransferResult{
		OutputFilename: resp.OutputImage,
		OutputPath:     resp.OutputPath,
		DownloadURL:    s.ImageURL(resp.OutputImage),
		ProcessingTime: resp.ProcessingTime,
	}
}

// Transfer performs a full style transfer using the extended timeout.
func (s *StudioService) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	body, err := json.Marshal(map[string]any{
		"content_image": req.ContentPath,
		"style_image":   req.StylePath,
		"intensity":     req.Intensity,
		"quality":       string(req.Quality),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	payload, err := s.doEnvelope(ctx, http.MethodPost, "/api/transfer", bytes.NewReader(body), "application/json", s.transferTimeout)
	if err != nil {
		return nil, err
	}

	var resp transferResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed transfer response: %v", shared.ErrAPIRequest, err)
	}

	return s.toTransferResult(resp), nil
}

// QuickTransfer performs a reduced-iteration transfer. The quality field is
// omitted from the request; the backend picks its own step budget.
func (s *StudioService) QuickTransfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	body, err := json.Marshal(map[string]any{
		"content_image": req.ContentPath,
		"style_image":   req.StylePath,
		"intensity":     req.Intensity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	payload, err := s.doEnvelope(ctx, http.MethodPost, "/api/quick-transfer", bytes.NewReader(body), "application/json", s.requestTimeout)
	if err != nil {
		return nil, err
	}

	var resp transferResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed transfer response: %v", shared.ErrAPIRequest, err)
	}

	return s.toTransferResult(resp), nil
}

// GenerateVariations asks the backend for n variations of an image.
func (s *StudioService) GenerateVariations(ctx context.Context, imagePath string, n int) ([]string, error) {
	body, err := json.Marshal(map[string]any{
		"image":          imagePath,
		"num_variations": n,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	payload, err := s.doEnvelope(ctx, http.MethodPost, "/api/variations", bytes.NewReader(body), "application/json", s.transferTimeout)
	if err != nil {
		return nil, err
	}

	var data struct {
		Variations []string `json:"variations"`
	}
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed variations response: %v", shared.ErrAPIRequest, err)
	}

	return data.Variations, nil
}

// galleryTimeLayouts covers the backend's ISO timestamps, with and without
// fractional seconds.
var galleryTimeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseGalleryTime(value string) time.Time {
	for _, layout := range galleryTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ListGallery retrieves all persisted results, newest first.
func (s *StudioService) ListGallery(ctx context.Context) ([]models.GalleryEntry, error) {
	payload, err := s.doEnvelope(ctx, http.MethodGet, "/api/gallery", nil, "", s.requestTimeout)
	if err != nil {
		return nil, err
	}

	var data struct {
		Images []struct {
			Filename  string `json:"filename"`
			CreatedAt string `json:"created_at"`
			Info      struct {
				SizeBytes int64 `json:"size_bytes"`
			} `json:"info"`
		} `json:"images"`
	}
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed gallery response: %v", shared.ErrAPIRequest, err)
	}

	entries := make([]models.GalleryEntry, 0, len(data.Images))
	for _, img := range data.Images {
		entries = append(entries, models.GalleryEntry{
			Filename:  img.Filename,
			CreatedAt: parseGalleryTime(img.CreatedAt),
			SizeBytes: img.Info.SizeBytes,
		})
	}

	return entries, nil
}

// DeleteImage removes a persisted result from the gallery.
func (s *StudioService) DeleteImage(ctx context.Context, filename string) error {
	_, err := s.doEnvelope(ctx, http.MethodDelete, "/api/gallery/"+url.PathEscape(filename), nil, "", s.requestTimeout)
	if err != nil {
		var httpErr *shared.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return fmt.Errorf("%w: %s", shared.ErrImageNotFound, filename)
		}
		return err
	}
	return nil
}

// CleanupGallery bulk-deletes results older than maxAgeHours.
func (s *StudioService) CleanupGallery(ctx context.Context, maxAgeHours int) (int, error) {
	body, err := json.Marshal(map[string]any{"max_age_hours": maxAgeHours})
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	payload, err := s.doEnvelope(ctx, http.MethodPost, "/api/gallery/cleanup", bytes.NewReader(body), "application/json", s.requestTimeout)
	if err != nil {
		return 0, err
	}

	var data struct {
		DeletedCount int `json:"deleted_count"`
	}
	if err := json.Unmarshal(payload, &data); err != nil {
		return 0, fmt.Errorf("%w: malformed cleanup response: %v", shared.ErrAPIRequest, err)
	}

	return data.DeletedCount, nil
}

// GalleryInfo retrieves gallery statistics.
func (s *StudioService) GalleryInfo(ctx context.Context) (*models.GalleryInfo, error) {
	payload, err := s.doEnvelope(ctx, http.MethodGet, "/api/gallery/info", nil, "", s.requestTimeout)
	if err != nil {
		return nil, err
	}

	var info models.GalleryInfo
	if err := json.Unmarshal(payload, &info); err != nil {
		return nil, fmt.Errorf("%w: malformed gallery info response: %v", shared.ErrAPIRequest, err)
	}

	return &info, nil
}

// FetchImage retrieves the raw bytes of an image.
func (s *StudioService) FetchImage(ctx context.Context, filename string) ([]byte, error) {
	data, status, err := s.do(ctx, http.MethodGet, "/api/image/"+url.PathEscape(filename), nil, "", s.requestTimeout)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", shared.ErrImageNotFound, filename)
	}
	if status != http.StatusOK {
		return nil, &shared.HTTPError{Status: status, Method: http.MethodGet, Path: "/api/image/" + filename}
	}

	return data, nil
}

// ImageURL derives the display/download URL for a filename. No network call.
func (s *StudioService) ImageURL(filename string) string {
	return s.baseURL + "/api/image/" + url.PathEscape(filename)
}

var _ Gateway = (*StudioService)(nil)
