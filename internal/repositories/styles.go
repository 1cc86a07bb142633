package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
)

// StyleRepository caches the backend's read-only style preset catalog so
// the styles list renders offline after a first fetch.
type StyleRepository struct {
	db *sql.DB
}

// NewStyleRepository creates a new StyleRepository with the given database connection
func NewStyleRepository(db *sql.DB) *StyleRepository {
	return &StyleRepository{db: db}
}

// Replace swaps the cached catalog wholesale.
func (r *StyleRepository) Replace(styles []models.StylePreset) error {
	return replaceAll(r.db, "style_presets", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare("INSERT INTO style_presets (id, name, description, thumbnail, cached_at) VALUES (?, ?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		now := time.Now()
		for _, style := range styles {
			if _, err := stmt.Exec(style.ID, style.Name, style.Description, style.Thumbnail, now); err != nil {
				return fmt.Errorf("failed to insert %s: %w", style.ID, err)
			}
		}
		return nil
	})
}

// List returns the cached catalog in name order.
func (r *StyleRepository) List() ([]models.StylePreset, error) {
	rows, err := r.db.Query("SELECT id, name, description, thumbnail FROM style_presets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query style cache: %w", err)
	}
	defer rows.Close()

	var styles []models.StylePreset
	for rows.Next() {
		var style models.StylePreset
		if err := rows.Scan(&style.ID, &style.Name, &style.Description, &style.Thumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan style row: %w", err)
		}
		styles = append(styles, style)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate style rows: %w", err)
	}

	return styles, nil
}
