package previews

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
)

func TestFileStore(t *testing.T) {
	t.Run("create writes a uniquely named file", func(t *testing.T) {
		store, err := NewFileStore(t.TempDir())
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		first, err := store.Create("cat.png", []byte("one"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		second, err := store.Create("cat.png", []byte("two"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		if first.Path == second.Path {
			t.Errorf("expected unique paths, both %s", first.Path)
		}
		if !strings.HasSuffix(first.Path, "cat.png") {
			t.Errorf("expected original filename preserved, got %s", first.Path)
		}

		data, err := os.ReadFile(first.Path)
		if err != nil {
			t.Fatalf("failed to read preview: %v", err)
		}
		if string(data) != "one" {
			t.Errorf("unexpected contents %q", data)
		}
	})

	t.Run("create sanitizes path traversal in filenames", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir)
		if err != nil {
			t.Fatal(err)
		}

		handle, err := store.Create("../../escape.png", []byte("x"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		if filepath.Dir(handle.Path) != dir {
			t.Errorf("expected preview inside %s, got %s", dir, handle.Path)
		}
	})

	t.Run("release", func(t *testing.T) {
		t.Run("deletes the file", func(t *testing.T) {
			store, err := NewFileStore(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			handle, err := store.Create("cat.png", []byte("bytes"))
			if err != nil {
				t.Fatal(err)
			}

			if err := store.Release(handle); err != nil {
				t.Fatalf("release failed: %v", err)
			}

			if _, err := os.Stat(handle.Path); !os.IsNotExist(err) {
				t.Errorf("expected file removed, stat err %v", err)
			}
		})

		t.Run("zero handle is a no-op", func(t *testing.T) {
			store, err := NewFileStore(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}

			if err := store.Release(models.PreviewHandle{}); err != nil {
				t.Errorf("expected nil, got %v", err)
			}
		})

		t.Run("already-removed file is a no-op", func(t *testing.T) {
			store, err := NewFileStore(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			handle, err := store.Create("cat.png", []byte("bytes"))
			if err != nil {
				t.Fatal(err)
			}
			os.Remove(handle.Path)

			if err := store.Release(handle); err != nil {
				t.Errorf("expected nil, got %v", err)
			}
		})
	})

	t.Run("clear removes every preview", func(t *testing.T) {
		dir := t.TempDir()
		store, err := NewFileStore(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{"a.png", "b.png", "c.png"} {
			if _, err := store.Create(name, []byte("bytes")); err != nil {
				t.Fatal(err)
			}
		}

		if err := store.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty directory, found %d entries", len(entries))
		}
	})

	t.Run("empty dir defaults under the system temp directory", func(t *testing.T) {
		store, err := NewFileStore("")
		if err != nil {
			t.Fatalf("failed to create store: %v", err)
		}

		if !strings.HasPrefix(store.Dir(), os.TempDir()) {
			t.Errorf("expected dir under %s, got %s", os.TempDir(), store.Dir())
		}
	})
}
