// Package previews stores transient local preview copies of uploaded images.
//
// It is the filesystem implementation of the tasks package's PreviewStore
// collaborator: a handle is created when an upload completes and released
// when the owning image slot is replaced or the workflow resets, so repeated
// upload cycles never accumulate files.
package previews

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
)

// FileStore writes preview copies into a directory and deletes them on
// release. The zero directory means a per-process folder under the system
// temp directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it as needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "design-studio-previews")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preview directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Create writes data to a uniquely named file and returns its handle.
func (s *FileStore) Create(filename string, data []byte) (models.PreviewHandle, error) {
	token := shared.GenerateID()
	path := filepath.Join(s.dir, token+"_"+filepath.Base(filename))

	if err := os.WriteFile(path, data, 0644); err != nil {
		return models.PreviewHandle{}, fmt.Errorf("failed to write preview: %w", err)
	}

	return models.PreviewHandle{Token: token, Path: path}, nil
}

// Release deletes the file behind a handle. Releasing the zero handle or an
// already-removed file is a no-op.
func (s *FileStore) Release(handle models.PreviewHandle) error {
	if handle.IsZero() {
		return nil
	}

	if err := os.Remove(handle.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release preview %s: %w", handle.Token, err)
	}
	return nil
}

// Clear removes every preview in the store. Used on workflow shutdown.
func (s *FileStore) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read preview directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove preview %s: %w", entry.Name(), err)
		}
	}
	return nil
}
