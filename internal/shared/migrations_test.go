package shared

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func newMigrationTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var found string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&found)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("failed to check table %s: %v", name, err)
	}
	return true
}

func TestMigrations(t *testing.T) {
	t.Run("run creates the cache tables", func(t *testing.T) {
		db := newMigrationTestDB(t)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("migrations failed: %v", err)
		}

		for _, table := range []string{"schema_migrations", "gallery_cache", "style_presets"} {
			if !tableExists(t, db, table) {
				t.Errorf("expected table %s", table)
			}
		}
	})

	t.Run("run is idempotent", func(t *testing.T) {
		db := newMigrationTestDB(t)
		if err := RunMigrations(db); err != nil {
			t.Fatal(err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
			t.Fatal(err)
		}
		if applied == 0 {
			t.Error("expected applied migrations recorded")
		}
	})

	t.Run("rollback reverts the latest migration", func(t *testing.T) {
		db := newMigrationTestDB(t)
		if err := RunMigrations(db); err != nil {
			t.Fatal(err)
		}

		var before int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&before); err != nil {
			t.Fatal(err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("rollback failed: %v", err)
		}

		var after int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&after); err != nil {
			t.Fatal(err)
		}
		if after != before-1 {
			t.Errorf("expected %d applied migrations, got %d", before-1, after)
		}
	})

	t.Run("rollback with nothing applied fails", func(t *testing.T) {
		db := newMigrationTestDB(t)
		if err := createMigrationsTable(db); err != nil {
			t.Fatal(err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected an error")
		}
	})
}
