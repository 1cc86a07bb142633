package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
)

// GalleryRepository implements tasks.GalleryCache on sqlite.
//
// Rows mirror the backend's gallery listing for the current session; the
// whole table is swapped on refresh.
type GalleryRepository struct {
	db *sql.DB
}

// NewGalleryRepository creates a new GalleryRepository with the given database connection
func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// Replace swaps the cached listing wholesale.
func (r *GalleryRepository) Replace(entries []models.GalleryEntry) error {
	return replaceAll(r.db, "gallery_cache", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("INSERT INTO gallery_cache (filename, created_at, size_bytes, cached_at) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		now := time.Now()
		for _, entry := range entries {
			if _, err := stmt.Exec(entry.Filename, entry.CreatedAt, entry.SizeBytes, now); err != nil {
				return fmt.Errorf("failed to insert %s: %w", entry.Filename, err)
			}
		}
		return nil
	})
}

// List returns the cached listing, newest first.
func (r *GalleryRepository) List() ([]models.GalleryEntry, error) {
	rows, err := r.db.Query("SELECT filename, created_at, size_bytes FROM gallery_cache ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query gallery cache: %w", err)
	}
	defer rows.Close()

	var entries []models.GalleryEntry
	for rows.Next() {
		var entry models.GalleryEntry
		if err := rows.Scan(&entry.Filename, &entry.CreatedAt, &entry.SizeBytes); err != nil {
			return nil, fmt.Errorf("failed to scan gallery row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gallery rows: %w", err)
	}

	return entries, nil
}

// Evict removes a single entry from the cache.
func (r *GalleryRepository) Evict(filename string) error {
	if _, err := r.db.Exec("DELETE FROM gallery_cache WHERE filename = ?", filename); err != nil {
		return fmt.Errorf("failed to evict %s: %w", filename, err)
	}
	return nil
}
