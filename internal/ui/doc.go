// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing styled results:
//  1. [GalleryListView] : Browse gallery images, newest first
//  2. [DetailView] : Inspect a single image's metadata
//  3. [ConfirmDeleteView] : Confirm deletion of the selected image
//  4. [BusyView] : Monitor an in-flight download or delete
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Gallery data comes from the GalleryManager, so the list reflects the same
// selection state the CLI commands operate on.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
