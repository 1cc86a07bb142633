// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
)

// MockGateway is a configurable test double for services.Gateway.
//
// Each operation returns the corresponding field; zero-valued fields yield
// empty results. Call counts let tests assert that preconditions short
// circuit before any network operation.
type MockGateway struct {
	HealthResult    *models.HealthStatus
	HealthErr       error
	UploadResult    *models.UploadResult
	UploadErr       error
	Styles          []models.StylePreset
	StylesErr       error
	TransferResult  *models.TransferResult
	TransferErr     error
	QuickResult     *models.TransferResult
	QuickErr        error
	Variations      []string
	VariationsErr   error
	GalleryEntries  []models.GalleryEntry
	GalleryErr      error
	DeleteErr       error
	CleanupDeleted  int
	CleanupErr      error
	InfoResult      *models.GalleryInfo
	InfoErr         error
	ImageData       []byte
	FetchErr        error
	BaseURL         string
	UploadCalls     int
	TransferCalls   int
	QuickCalls      int
	DeleteCalls     int
	FetchCalls      int
	UploadedNames   []string
	TransferReqs    []models.TransferRequest
	QuickReqs       []models.TransferRequest
	DeletedNames    []string
}

func (m *MockGateway) Health(ctx context.Context) (*models.HealthStatus, error) {
	return m.HealthResult, m.HealthErr
}

func (m *MockGateway) UploadImage(ctx context.Context, filename string, data io.Reader) (*models.UploadResult, error) {
	m.UploadCalls++
	m.UploadedNames = append(m.UploadedNames, filename)
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	if m.UploadResult != nil {
		return m.UploadResult, nil
	}
	return &models.UploadResult{Filename: filename, Path: "/uploads/" + filename}, nil
}

func (m *MockGateway) ListStyles(ctx context.Context) ([]models.StylePreset, error) {
	return m.Styles, m.StylesErr
}

func (m *MockGateway) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	m.TransferCalls++
	m.TransferReqs = append(m.TransferReqs, req)
	return m.TransferResult, m.TransferErr
}

func (m *MockGateway) QuickTransfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	m.QuickCalls++
	m.QuickReqs = append(m.QuickReqs, req)
	return m.QuickResult, m.QuickErr
}

func (m *MockGateway) GenerateVariations(ctx context.Context, imagePath string, n int) ([]string, error) {
	return m.Variations, m.VariationsErr
}

func (m *MockGateway) ListGallery(ctx context.Context) ([]models.GalleryEntry, error) {
	return m.GalleryEntries, m.GalleryErr
}

func (m *MockGateway) DeleteImage(ctx context.Context, filename string) error {
	m.DeleteCalls++
	m.DeletedNames = append(m.DeletedNames, filename)
	return m.DeleteErr
}

func (m *MockGateway) CleanupGallery(ctx context.Context, maxAgeHours int) (int, error) {
	return m.CleanupDeleted, m.CleanupErr
}

func (m *MockGateway) GalleryInfo(ctx context.Context) (*models.GalleryInfo, error) {
	return m.InfoResult, m.InfoErr
}

func (m *MockGateway) FetchImage(ctx context.Context, filename string) ([]byte, error) {
	m.FetchCalls++
	return m.ImageData, m.FetchErr
}

func (m *MockGateway) ImageURL(filename string) string {
	base := m.BaseURL
	if base == "" {
		base = "http://localhost:5000"
	}
	return base + "/api/image/" + filename
}

// MemoryPreviews is an in-memory tasks.PreviewStore counting creates and
// releases for leak assertions.
type MemoryPreviews struct {
	Created  int
	Released int
	Live     map[string][]byte
	CreateErr  error
	ReleaseErr error
}

func NewMemoryPreviews() *MemoryPreviews {
	return &MemoryPreviews{Live: make(map[string][]byte)}
}

func (p *MemoryPreviews) Create(filename string, data []byte) (models.PreviewHandle, error) {
	if p.CreateErr != nil {
		return models.PreviewHandle{}, p.CreateErr
	}
	p.Created++
	token := filename + "#" + string(rune('a'+p.Created))
	p.Live[token] = data
	return models.PreviewHandle{Token: token, Path: "/previews/" + token}, nil
}

func (p *MemoryPreviews) Release(handle models.PreviewHandle) error {
	if p.ReleaseErr != nil {
		return p.ReleaseErr
	}
	if handle.IsZero() {
		return nil
	}
	p.Released++
	delete(p.Live, handle.Token)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter succeeds for a fixed number of writes and then fails,
// letting tests target a specific write in a sequence.
type LimitedWriter struct {
	remaining int
	calls     int
	inner     io.Writer
}

func NewLimitedWriter(allowed, calls int, inner io.Writer) LimitedWriter {
	return LimitedWriter{remaining: allowed, calls: calls, inner: inner}
}

func (w *LimitedWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls > w.remaining {
		return 0, errors.New("write limit exceeded")
	}
	return w.inner.Write(p)
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
