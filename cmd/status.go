package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
)

// Status checks backend health and reports the inference device.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	r.logger.Info("checking backend health", "base_url", r.config.API.BaseURL)

	status, err := r.gateway.Health(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if useJSON {
		return r.writeJSON(status, true)
	}

	if status.Healthy() {
		r.writePlain("✓ Backend healthy\n")
	} else {
		r.writePlain("✗ Backend unhealthy: %s\n", status.Message)
	}
	if status.Device != "" {
		r.writePlain("Device: %s\n", status.Device)
	}

	return nil
}

// Styles lists the backend's style presets, refreshing the local cache on
// success and falling back to it when the backend is unreachable.
func (r *Runner) Styles(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	cachedOnly := cmd.Bool("cached")

	var styles []models.StylePreset
	var err error

	if cachedOnly {
		if r.styleCache == nil {
			return fmt.Errorf("%w: style cache not initialized, run setup first", shared.ErrServiceUnavailable)
		}
		if styles, err = r.styleCache.List(); err != nil {
			return fmt.Errorf("failed to read style cache: %w", err)
		}
	} else {
		styles, err = r.gateway.ListStyles(ctx)
		if err == nil && r.styleCache != nil {
			if cacheErr := r.styleCache.Replace(styles); cacheErr != nil {
				r.logger.Warn("failed to refresh style cache", "error", cacheErr)
			}
		}
		if err != nil && r.styleCache != nil {
			r.logger.Warn("backend unreachable, falling back to cached styles", "error", err)
			styles, err = r.styleCache.List()
		}
		if err != nil {
			return fmt.Errorf("failed to list styles: %w", err)
		}
	}

	if useJSON {
		return r.writeJSON(styles, true)
	}

	r.writePlainHeader(fmt.Sprintf("Style Presets (%d)", len(styles)))
	for _, style := range styles {
		r.writePlain("%s: %s\n", style.ID, style.Name)
		if style.Description != "" {
			r.writePlain("  %s\n", style.Description)
		}
	}

	return nil
}

// Variations asks the backend for variations of a gallery image.
func (r *Runner) Variations(ctx context.Context, cmd *cli.Command) error {
	image := cmd.StringArg("image")
	count := cmd.Int("count")

	if image == "" {
		return fmt.Errorf("%w: image argument is required", shared.ErrMissingArgument)
	}
	if count < 1 {
		return fmt.Errorf("%w: count must be at least 1", shared.ErrInvalidFlag)
	}

	r.logger.Info("generating variations", "image", image, "count", count)
	r.writePlain("Generating %d variations of %s...\n", count, image)

	variations, err := r.gateway.GenerateVariations(ctx, image, int(count))
	if err != nil {
		return err
	}

	r.writePlainln("Generated %d variations:", len(variations))
	for i, filename := range variations {
		r.writePlain("  %d. %s\n", i+1, filename)
	}

	return nil
}
