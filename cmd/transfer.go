package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/KaparthyReddy/ai-design-studio/internal/tasks"
)

// TransferRun uploads a content and style image and runs one transfer.
func (r *Runner) TransferRun(ctx context.Context, cmd *cli.Command) error {
	contentPath := cmd.String("content")
	stylePath := cmd.String("style")
	intensity := cmd.Float("intensity")
	quality := cmd.String("quality")
	quick := cmd.Bool("quick")

	r.logger.Info("starting transfer", "content", contentPath, "style", stylePath, "quick", quick)
	r.writePlain("Starting style transfer...\n")
	r.writePlain("Content: %s\n", contentPath)
	r.writePlain("Style: %s\n\n", stylePath)

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.UploadImage:
				r.writePlain("📤 %s\n", update.Message)
			case tasks.SubmitTransfer:
				r.writePlain("\n🎨 %s\n", update.Message)
			case tasks.TransferDone:
				r.writePlain("\n✓ %s\n", update.Message)
			}
		}
	}()

	result, err := r.runTransfer(ctx, contentPath, stylePath, tasks.SubmitOpts{
		Mode:      transferMode(quick),
		Intensity: intensity,
		Quality:   models.Quality(quality),
	}, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		if reason := r.workflow.FailureReason(); reason != "" {
			r.writePlain("\n✗ %s\n", reason)
		}
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Transfer Complete!")
	r.writePlain("Output: %s\n", result.OutputFilename)
	r.writePlain("Download: %s\n", result.DownloadURL)
	if result.ProcessingTime != "" {
		r.writePlain("Processing time: %s\n", result.ProcessingTime)
	}

	return nil
}

func (r *Runner) runTransfer(ctx context.Context, contentPath, stylePath string, opts tasks.SubmitOpts, progress chan<- tasks.ProgressUpdate) (*models.TransferResult, error) {
	if contentPath == "" || stylePath == "" {
		return nil, fmt.Errorf("%w: both --content and --style are required", shared.ErrMissingArgument)
	}

	if _, err := r.workflow.Upload(ctx, contentPath, models.RoleContent, progress); err != nil {
		return nil, err
	}
	if _, err := r.workflow.Upload(ctx, stylePath, models.RoleStyle, progress); err != nil {
		return nil, err
	}

	return r.workflow.Submit(ctx, opts, progress)
}

func transferMode(quick bool) models.Mode {
	if quick {
		return models.ModeQuick
	}
	return models.ModeStandard
}

// TransferBlend runs a multi-style blend from weighted mixer entries.
func (r *Runner) TransferBlend(ctx context.Context, cmd *cli.Command) error {
	contentPath := cmd.String("content")
	stylePaths := cmd.StringSlice("style")
	weights := cmd.FloatSlice("weight")
	intensity := cmd.Float("intensity")

	if contentPath == "" {
		return fmt.Errorf("%w: --content is required", shared.ErrMissingArgument)
	}
	if len(stylePaths) < tasks.MinMixerEntries || len(stylePaths) > tasks.MaxMixerEntries {
		return fmt.Errorf("%w: blend takes %d-%d --style flags, got %d",
			shared.ErrInvalidFlag, tasks.MinMixerEntries, tasks.MaxMixerEntries, len(stylePaths))
	}
	if len(weights) > 0 && len(weights) != len(stylePaths) {
		return fmt.Errorf("%w: got %d weights for %d styles", shared.ErrInvalidFlag, len(weights), len(stylePaths))
	}

	r.logger.Info("starting blend", "content", contentPath, "styles", len(stylePaths))
	r.writePlain("Starting blended transfer with %d styles...\n\n", len(stylePaths))

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.UploadImage:
				r.writePlain("📤 %s\n", update.Message)
			case tasks.BlendPass:
				r.writePlain("🎨 %s\n", update.Message)
			case tasks.TransferDone:
				r.writePlain("\n✓ %s\n", update.Message)
			}
		}
	}()

	result, err := r.runBlend(ctx, contentPath, stylePaths, weights, intensity, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		if reason := r.workflow.FailureReason(); reason != "" {
			r.writePlain("\n✗ %s\n", reason)
		}
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Blend Complete!")
	r.writePlain("Output: %s\n", result.OutputFilename)
	r.writePlain("Download: %s\n", result.DownloadURL)

	return nil
}

// runBlend uploads the content image and every style image, then chains the
// weighted passes. Style uploads reuse the workflow's style slot so previews
// are released along the way; the mixer entry keeps the server path.
func (r *Runner) runBlend(ctx context.Context, contentPath string, stylePaths []string, weights []float64, intensity float64, progress chan<- tasks.ProgressUpdate) (*models.TransferResult, error) {
	if _, err := r.workflow.Upload(ctx, contentPath, models.RoleContent, progress); err != nil {
		return nil, err
	}

	for i, stylePath := range stylePaths {
		ref, err := r.workflow.Upload(ctx, stylePath, models.RoleStyle, progress)
		if err != nil {
			return nil, err
		}

		var entry *models.MixerEntry
		if i == 0 {
			entries := r.mixer.Entries()
			entry = &entries[0]
			r.mixer.SetStyle(entry.ID, ref.ServerPath)
		} else {
			entry = r.mixer.AddEntry("", ref.ServerPath)
			if entry == nil {
				return nil, fmt.Errorf("%w: mixer is full", shared.ErrValidation)
			}
		}
		if len(weights) > 0 {
			r.mixer.SetWeight(entry.ID, weights[i])
		}
	}

	return r.workflow.SubmitBlend(ctx, r.mixer.Mix(), intensity, progress)
}

// transferCommand handles style transfer operations
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Run style transfers",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Upload a content and style image and run one transfer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "content",
						Usage:    "Path to the content image",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "style",
						Usage:    "Path to the style image",
						Required: true,
					},
					&cli.FloatFlag{
						Name:  "intensity",
						Usage: "Style intensity (0.1-2.0)",
						Value: 1.0,
					},
					&cli.StringFlag{
						Name:  "quality",
						Usage: "Quality preset (fast, standard, high)",
						Value: "standard",
					},
					&cli.BoolFlag{
						Name:  "quick",
						Usage: "Use the reduced-iteration quick endpoint",
					},
				},
				Action: r.TransferRun,
			},
			{
				Name:  "blend",
				Usage: "Blend up to four weighted styles onto one content image",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "content",
						Usage:    "Path to the content image",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "style",
						Usage:    "Path to a style image (repeatable, max 4)",
						Required: true,
					},
					&cli.FloatSliceFlag{
						Name:  "weight",
						Usage: "Raw weight for the matching --style (repeatable)",
					},
					&cli.FloatFlag{
						Name:  "intensity",
						Usage: "Base style intensity (0.1-2.0)",
						Value: 1.0,
					},
				},
				Action: r.TransferBlend,
			},
		},
	}
}
