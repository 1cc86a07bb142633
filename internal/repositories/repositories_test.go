package repositories

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
)

// newTestDB opens a migrated sqlite database in a temp directory. A file is
// used instead of :memory: so every pooled connection sees the same schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestGalleryRepository(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	fixture := []models.GalleryEntry{
		{Filename: "styled_001.png", CreatedAt: now, SizeBytes: 2048},
		{Filename: "styled_002.png", CreatedAt: now.Add(-time.Hour), SizeBytes: 4096},
	}

	t.Run("replace and list round-trip newest first", func(t *testing.T) {
		repo := NewGalleryRepository(newTestDB(t))

		if err := repo.Replace(fixture); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		entries, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Filename != "styled_001.png" {
			t.Errorf("expected newest first, got %q", entries[0].Filename)
		}
		if entries[0].SizeBytes != 2048 {
			t.Errorf("unexpected size %d", entries[0].SizeBytes)
		}
		if !entries[0].CreatedAt.Equal(now) {
			t.Errorf("expected created_at %v, got %v", now, entries[0].CreatedAt)
		}
	})

	t.Run("replace swaps the listing wholesale", func(t *testing.T) {
		repo := NewGalleryRepository(newTestDB(t))
		if err := repo.Replace(fixture); err != nil {
			t.Fatal(err)
		}

		if err := repo.Replace(fixture[:1]); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		entries, err := repo.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry after replace, got %d", len(entries))
		}
	})

	t.Run("replace with nil clears the cache", func(t *testing.T) {
		repo := NewGalleryRepository(newTestDB(t))
		if err := repo.Replace(fixture); err != nil {
			t.Fatal(err)
		}

		if err := repo.Replace(nil); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		entries, err := repo.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty cache, got %d entries", len(entries))
		}
	})

	t.Run("evict removes a single entry", func(t *testing.T) {
		repo := NewGalleryRepository(newTestDB(t))
		if err := repo.Replace(fixture); err != nil {
			t.Fatal(err)
		}

		if err := repo.Evict("styled_001.png"); err != nil {
			t.Fatalf("evict failed: %v", err)
		}

		entries, err := repo.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Filename != "styled_002.png" {
			t.Errorf("unexpected entries after evict: %+v", entries)
		}
	})

	t.Run("evicting an unknown entry is a no-op", func(t *testing.T) {
		repo := NewGalleryRepository(newTestDB(t))

		if err := repo.Evict("ghost.png"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})
}

func TestStyleRepository(t *testing.T) {
	fixture := []models.StylePreset{
		{ID: "vangogh", Name: "Van Gogh", Description: "Starry swirls", Thumbnail: "/thumbs/vangogh.png"},
		{ID: "ukiyoe", Name: "Ukiyo-e", Description: "Woodblock prints", Thumbnail: "/thumbs/ukiyoe.png"},
	}

	t.Run("replace and list round-trip in name order", func(t *testing.T) {
		repo := NewStyleRepository(newTestDB(t))

		if err := repo.Replace(fixture); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		styles, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(styles) != 2 {
			t.Fatalf("expected 2 styles, got %d", len(styles))
		}
		if styles[0].Name != "Ukiyo-e" || styles[1].Name != "Van Gogh" {
			t.Errorf("expected name order, got %q then %q", styles[0].Name, styles[1].Name)
		}
		if styles[1].Description != "Starry swirls" || styles[1].Thumbnail != "/thumbs/vangogh.png" {
			t.Errorf("unexpected style %+v", styles[1])
		}
	})

	t.Run("replace swaps the catalog wholesale", func(t *testing.T) {
		repo := NewStyleRepository(newTestDB(t))
		if err := repo.Replace(fixture); err != nil {
			t.Fatal(err)
		}

		if err := repo.Replace(fixture[:1]); err != nil {
			t.Fatalf("replace failed: %v", err)
		}

		styles, err := repo.List()
		if err != nil {
			t.Fatal(err)
		}
		if len(styles) != 1 || styles[0].ID != "vangogh" {
			t.Errorf("unexpected catalog %+v", styles)
		}
	})
}
