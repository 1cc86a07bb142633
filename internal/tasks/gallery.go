package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/services"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/charmbracelet/log"
)

// GalleryCache persists the session's read-through copy of the backend
// gallery. The sqlite implementation lives in the repositories package.
type GalleryCache interface {
	// Replace swaps the cached listing wholesale.
	Replace(entries []models.GalleryEntry) error

	// List returns the cached listing, newest first.
	List() ([]models.GalleryEntry, error)

	// Evict removes a single entry from the cache.
	Evict(filename string) error
}

// GalleryManager lists, deletes and downloads persisted results.
//
// It holds a session-scoped cache refreshed on open and on mutation, plus a
// selection that is independent of the listing and cleared whenever the
// selected entry disappears. Deletion confirmation belongs to the
// interaction layer; Remove assumes the caller already confirmed.
type GalleryManager struct {
	gateway services.Gateway
	cache   GalleryCache
	logger  *log.Logger

	entries  []models.GalleryEntry
	selected string
}

// NewGalleryManager creates a manager over the given gateway. The cache may
// be nil, in which case listings live only in memory.
func NewGalleryManager(gateway services.Gateway, cache GalleryCache, logger *log.Logger) *GalleryManager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &GalleryManager{gateway: gateway, cache: cache, logger: logger}
}

// Refresh fetches the gallery from the backend and replaces the cache.
func (g *GalleryManager) Refresh(ctx context.Context, progress chan<- ProgressUpdate) ([]models.GalleryEntry, error) {
	sendProgress(progress, fetchGalleryUpdate(1, 1))

	entries, err := g.gateway.ListGallery(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gallery: %w", err)
	}

	g.entries = entries
	if g.cache != nil {
		if err := g.cache.Replace(entries); err != nil {
			g.logger.Warn("failed to persist gallery cache", "err", err)
		}
	}

	// Drop a selection that no longer exists remotely.
	if g.selected != "" && g.find(g.selected) == nil {
		g.selected = ""
	}

	g.logger.Info("gallery refreshed", "count", len(entries))
	return g.listCopy(), nil
}

// Entries returns the cached listing, reading through to the persistent
// cache and finally the backend when nothing is held in memory yet.
func (g *GalleryManager) Entries(ctx context.Context) ([]models.GalleryEntry, error) {
	if len(g.entries) > 0 {
		return g.listCopy(), nil
	}

	if g.cache != nil {
		cached, err := g.cache.List()
		if err == nil && len(cached) > 0 {
			g.entries = cached
			return g.listCopy(), nil
		}
	}

	return g.Refresh(ctx, nil)
}

func (g *GalleryManager) listCopy() []models.GalleryEntry {
	out := make([]models.GalleryEntry, len(g.entries))
	copy(out, g.entries)
	return out
}

func (g *GalleryManager) find(filename string) *models.GalleryEntry {
	for i := range g.entries {
		if g.entries[i].Filename == filename {
			return &g.entries[i]
		}
	}
	return nil
}

// Select marks an entry as the active preview selection.
func (g *GalleryManager) Select(filename string) error {
	if g.find(filename) == nil {
		return fmt.Errorf("%w: %s", shared.ErrImageNotFound, filename)
	}
	g.selected = filename
	return nil
}

// Selected returns the active selection, or "".
func (g *GalleryManager) Selected() string {
	return g.selected
}

// ClearSelection drops the active selection, e.g. when the gallery closes.
func (g *GalleryManager) ClearSelection() {
	g.selected = ""
}

// Remove deletes an entry remotely and evicts it from the cache. If the
// deleted entry was the active selection, the selection is cleared;
// deleting any other entry leaves the selection alone.
func (g *GalleryManager) Remove(ctx context.Context, filename string) error {
	if err := g.gateway.DeleteImage(ctx, filename); err != nil {
		return err
	}

	for i := range g.entries {
		if g.entries[i].Filename == filename {
			g.entries = append(g.entries[:i], g.entries[i+1:]...)
			break
		}
	}
	if g.cache != nil {
		if err := g.cache.Evict(filename); err != nil {
			g.logger.Warn("failed to evict from cache", "filename", filename, "err", err)
		}
	}

	if g.selected == filename {
		g.selected = ""
	}

	g.logger.Info("gallery image deleted", "filename", filename)
	return nil
}

// Download fetches an image's bytes from its derived URL and saves them
// under dir, returning the written path.
func (g *GalleryManager) Download(ctx context.Context, filename, dir string) (string, error) {
	data, err := g.gateway.FetchImage(ctx, filename)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", filename, err)
	}

	g.logger.Info("image downloaded", "filename", filename, "path", path)
	return path, nil
}

// Cleanup bulk-deletes results older than maxAgeHours server-side, then
// refreshes the cache.
func (g *GalleryManager) Cleanup(ctx context.Context, maxAgeHours int, progress chan<- ProgressUpdate) (int, error) {
	if maxAgeHours <= 0 {
		return 0, fmt.Errorf("%w: max age must be positive, got %d", shared.ErrValidation, maxAgeHours)
	}

	deleted, err := g.gateway.CleanupGallery(ctx, maxAgeHours)
	if err != nil {
		return 0, err
	}

	sendProgress(progress, cleanupUpdate(deleted))

	if _, err := g.Refresh(ctx, progress); err != nil {
		g.logger.Warn("post-cleanup refresh failed", "err", err)
	}

	return deleted, nil
}

// Info retrieves gallery statistics from the backend.
func (g *GalleryManager) Info(ctx context.Context) (*models.GalleryInfo, error) {
	return g.gateway.GalleryInfo(ctx)
}
