package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/KaparthyReddy/ai-design-studio/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GalleryListView ViewState = iota
	DetailView
	ConfirmDeleteView
	BusyView
)

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	view        ViewState
	gallery     *tasks.GalleryManager
	downloadDir string
	width       int
	height      int
	galleryList list.Model
	entries     []models.GalleryEntry
	selected    *models.GalleryEntry
	busy        string
	notice      string
	err         error
	help        help.Model
	keys        keyMap
}

type galleryFetchedMsg struct {
	entries []models.GalleryEntry
	err     error
}

type deletedMsg struct {
	filename string
	err      error
}

type downloadedMsg struct {
	path string
	err  error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, gallery *tasks.GalleryManager, downloadDir string) *Model {
	return &Model{
		ctx:         ctx,
		view:        GalleryListView,
		gallery:     gallery,
		downloadDir: downloadDir,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init initializes the TUI by fetching the gallery listing.
func (m *Model) Init() tea.Cmd {
	return m.fetchGallery(false)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.galleryList.Width() == 0 {
			m.galleryList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GalleryListView:
			return m.handleGalleryListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		case BusyView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

	case galleryFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.err = nil
		m.entries = msg.entries
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = galleryItem{entry: entry}
		}
		m.galleryList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.galleryList.Title = "Gallery"
		m.galleryList.SetSize(m.width-4, m.height-8)
		m.view = GalleryListView
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = GalleryListView
			return m, nil
		}
		m.selected = nil
		m.notice = fmt.Sprintf("Deleted %s", msg.filename)
		return m, m.fetchGallery(true)

	case downloadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = GalleryListView
			return m, nil
		}
		m.notice = fmt.Sprintf("Saved to %s", msg.path)
		m.view = GalleryListView
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view == GalleryListView && len(m.entries) == 0 {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case GalleryListView:
		return m.renderGalleryList()
	case DetailView:
		return m.renderDetail()
	case ConfirmDeleteView:
		return m.renderConfirm()
	case BusyView:
		return fmt.Sprintf("%s\n\n%s", styles.title.Render("Working"), m.busy)
	default:
		return ""
	}
}

func (m *Model) handleGalleryListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.notice = ""
		return m, m.fetchGallery(true)
	case "enter":
		if entry, ok := m.selectedEntry(); ok {
			m.selected = &entry
			if err := m.gallery.Select(entry.Filename); err != nil {
				m.err = err
				return m, nil
			}
			m.view = DetailView
		}
		return m, nil
	case "d":
		if entry, ok := m.selectedEntry(); ok {
			m.selected = &entry
			return m, m.download(entry.Filename)
		}
		return m, nil
	case "x":
		if entry, ok := m.selectedEntry(); ok {
			m.selected = &entry
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.galleryList, cmd = m.galleryList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = GalleryListView
	case "d":
		if m.selected != nil {
			return m, m.download(m.selected.Filename)
		}
	case "x":
		if m.selected != nil {
			m.view = ConfirmDeleteView
		}
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = GalleryListView
		return m, nil
	case "y":
		if m.selected != nil {
			return m, m.remove(m.selected.Filename)
		}
		m.view = GalleryListView
		return m, nil
	}
	return m, nil
}

func (m *Model) selectedEntry() (models.GalleryEntry, bool) {
	item := m.galleryList.SelectedItem()
	if item == nil {
		return models.GalleryEntry{}, false
	}
	gi, ok := item.(galleryItem)
	return gi.entry, ok
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == GalleryListView {
		m.galleryList, cmd = m.galleryList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchGallery(force bool) tea.Cmd {
	return func() tea.Msg {
		if force {
			entries, err := m.gallery.Refresh(m.ctx, nil)
			return galleryFetchedMsg{entries: entries, err: err}
		}
		entries, err := m.gallery.Entries(m.ctx)
		return galleryFetchedMsg{entries: entries, err: err}
	}
}

func (m *Model) download(filename string) tea.Cmd {
	m.busy = fmt.Sprintf("Downloading %s...", filename)
	m.view = BusyView
	return func() tea.Msg {
		path, err := m.gallery.Download(m.ctx, filename, m.downloadDir)
		return downloadedMsg{path: path, err: err}
	}
}

func (m *Model) remove(filename string) tea.Cmd {
	m.busy = fmt.Sprintf("Deleting %s...", filename)
	m.view = BusyView
	return func() tea.Msg {
		err := m.gallery.Remove(m.ctx, filename)
		return deletedMsg{filename: filename, err: err}
	}
}

func (m *Model) renderGalleryList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.download, m.keys.remove, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var extra string
	if m.notice != "" {
		extra = styles.ok.Render(m.notice) + "\n"
	}
	if m.err != nil {
		extra += styles.warn.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	return fmt.Sprintf("%s\n%s\n%s", m.galleryList.View(), extra, helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No image selected\n\nPress esc to go back")
	}

	title := styles.title.Render(m.selected.Filename)
	info := fmt.Sprintf("\nCreated: %s\nSize: %s\n",
		m.selected.CreatedAt.Format("2006-01-02 15:04:05"),
		shared.FormatSize(m.selected.SizeBytes))

	helpKeys := []key.Binding{m.keys.download, m.keys.remove, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderConfirm() string {
	name := ""
	if m.selected != nil {
		name = m.selected.Filename
	}
	title := styles.title.Render(fmt.Sprintf("Delete '%s'?", name))
	warning := styles.warn.Render("This removes the image from the backend permanently.")

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, warning, helpView)
}
