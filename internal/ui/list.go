package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
)

var _ list.Item = galleryItem{}

// galleryItem wraps [models.GalleryEntry] to implement [list.Item].
type galleryItem struct {
	entry models.GalleryEntry
}

func (i galleryItem) FilterValue() string { return i.entry.Filename }
func (i galleryItem) Title() string       { return i.entry.Filename }
func (i galleryItem) Description() string {
	desc := shared.FormatSize(i.entry.SizeBytes)
	if !i.entry.CreatedAt.IsZero() {
		desc = fmt.Sprintf("%s • %s", desc, i.entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return desc
}
