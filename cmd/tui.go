package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/KaparthyReddy/ai-design-studio/internal/ui"
)

// TUI launches the interactive terminal UI for gallery management.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.gallery == nil {
		return fmt.Errorf("%w: gallery manager not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/studio-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.gallery, r.config.Downloads.Dir)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
