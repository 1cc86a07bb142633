package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"golang.org/x/time/rate"
)

// BulkDownloadOpts contains configuration for bulk gallery downloads.
type BulkDownloadOpts struct {
	OutputDir  string  // Base output directory (default: gallery_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Requests per second (default: 5)
}

// ImageDownloadResult records the outcome of one download.
type ImageDownloadResult struct {
	Filename string
	Path     string // Local path on success
	Success  bool
	Error    error
}

// BulkDownloadResult summarizes a bulk download run.
type BulkDownloadResult struct {
	TotalImages         int
	SuccessfulDownloads int
	FailedDownloads     int
	OutputDirectory     string
	Results             []ImageDownloadResult
}

// BulkDownload fetches multiple gallery images concurrently with rate
// limiting and progress tracking.
//
// A worker pool pulls filenames off a jobs channel while a shared limiter
// keeps the request rate within bounds, so a large gallery export doesn't
// hammer the backend. Partial failures are collected per image rather than
// aborting the run.
func (g *GalleryManager) BulkDownload(ctx context.Context, progress chan<- ProgressUpdate, filenames []string, opts BulkDownloadOpts) (*BulkDownloadResult, error) {
	if g.gateway == nil {
		return nil, fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}
	if len(filenames) == 0 {
		return nil, fmt.Errorf("%w: no images to download", shared.ErrInvalidInput)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("gallery_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &BulkDownloadResult{
		TotalImages:     len(filenames),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ImageDownloadResult, 0, len(filenames)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan string, len(filenames))
	results := make(chan ImageDownloadResult, len(filenames))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go g.downloadWorker(ctx, &wg, limiter, jobs, results, opts.OutputDir)
	}

	go func() {
		for _, filename := range filenames {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			case jobs <- filename:
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulDownloads++
			sendProgress(progress, downloadUpdate(completed, len(filenames), res.Filename))
		} else {
			result.FailedDownloads++
			sendProgress(progress, downloadFailedUpdate(completed, len(filenames), res.Filename, res.Error))
		}
	}

	return result, nil
}

// downloadWorker is a worker goroutine that downloads images from the jobs channel.
func (g *GalleryManager) downloadWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan string,
	results chan<- ImageDownloadResult,
	outputDir string,
) {
	defer wg.Done()

	for filename := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			results <- ImageDownloadResult{Filename: filename, Error: err}
			continue
		}

		path, err := g.Download(ctx, filename, outputDir)
		if err != nil {
			results <- ImageDownloadResult{Filename: filename, Error: err}
			continue
		}

		results <- ImageDownloadResult{Filename: filename, Path: path, Success: true}
	}
}
