package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/KaparthyReddy/ai-design-studio/internal/formatter"
	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
	"github.com/KaparthyReddy/ai-design-studio/internal/tasks"
)

// GalleryList refreshes and prints the gallery listing.
func (r *Runner) GalleryList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	cachedOnly := cmd.Bool("cached")

	list, err := r.galleryEntries(ctx, cachedOnly)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(list, true)
	}

	r.writePlainHeader(fmt.Sprintf("Gallery (%d images)", len(list)))
	for i, entry := range list {
		r.writePlain("%d. %s  %s  %s\n", i+1, entry.Filename,
			entry.CreatedAt.Format("2006-01-02 15:04"), shared.FormatSize(entry.SizeBytes))
	}

	return nil
}

func (r *Runner) galleryEntries(ctx context.Context, cachedOnly bool) ([]models.GalleryEntry, error) {
	if !cachedOnly {
		if _, err := r.gallery.Refresh(ctx, nil); err != nil {
			r.logger.Warn("refresh failed, trying cached listing", "error", err)
		}
	}

	entries, err := r.gallery.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	return entries, nil
}

// GalleryInfo prints backend gallery statistics.
func (r *Runner) GalleryInfo(ctx context.Context, cmd *cli.Command) error {
	info, err := r.gallery.Info(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(info, true)
	}

	r.writePlainHeader("Gallery Info")
	r.writePlain("Total files: %d\n", info.TotalFiles)
	r.writePlain("Styled files: %d\n", info.StyledFiles)
	r.writePlain("Total size: %.1f MB\n", info.TotalSizeMB)
	r.writePlain("Folder: %s\n", info.Folder)

	return nil
}

// GalleryDelete removes one image after confirmation.
func (r *Runner) GalleryDelete(ctx context.Context, cmd *cli.Command) error {
	filename := cmd.StringArg("filename")
	if filename == "" {
		return fmt.Errorf("%w: filename argument is required", shared.ErrMissingArgument)
	}

	if !cmd.Bool("yes") && !r.confirm(fmt.Sprintf("Delete %s permanently?", filename)) {
		r.writePlain("Aborted.\n")
		return nil
	}

	if err := r.gallery.Remove(ctx, filename); err != nil {
		return err
	}

	r.writePlain("✓ Deleted %s\n", filename)
	return nil
}

// GalleryCleanup bulk-deletes images older than the given age.
func (r *Runner) GalleryCleanup(ctx context.Context, cmd *cli.Command) error {
	maxAge := cmd.Int("max-age-hours")

	deleted, err := r.gallery.Cleanup(ctx, maxAge, nil)
	if err != nil {
		return err
	}

	r.writePlain("✓ Cleanup complete, %d files deleted\n", deleted)
	return nil
}

// GalleryDownload saves one image to the downloads directory.
func (r *Runner) GalleryDownload(ctx context.Context, cmd *cli.Command) error {
	filename := cmd.StringArg("filename")
	if filename == "" {
		return fmt.Errorf("%w: filename argument is required", shared.ErrMissingArgument)
	}

	dir := cmd.String("output")
	if dir == "" {
		dir = r.config.Downloads.Dir
	}

	path, err := r.gallery.Download(ctx, filename, dir)
	if err != nil {
		return err
	}

	r.writePlain("✓ Saved to %s\n", path)
	return nil
}

// GalleryExport writes the gallery listing to a file in the chosen format.
func (r *Runner) GalleryExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")

	entries, err := r.gallery.Entries(ctx)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "csv":
		data, err = formatter.ExportGalleryToCSV(entries)
	case "markdown", "md":
		data, err = formatter.ExportGalleryToMarkdown(entries, "Gallery")
	case "text", "txt":
		data, err = formatter.ExportGalleryToText(entries)
	default:
		return fmt.Errorf("%w: unknown format %q (csv, markdown, text)", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return fmt.Errorf("failed to export gallery: %w", err)
	}

	if output == "" {
		_, err = r.output.Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	r.writePlain("✓ Exported %d entries to %s\n", len(entries), output)
	return nil
}

// GalleryBulk downloads every gallery image concurrently.
func (r *Runner) GalleryBulk(ctx context.Context, cmd *cli.Command) error {
	entries, err := r.gallery.Refresh(ctx, nil)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		r.writePlain("Gallery is empty, nothing to download.\n")
		return nil
	}

	filenames := make([]string, len(entries))
	for i, entry := range entries {
		filenames[i] = entry.Filename
	}

	r.writePlain("Downloading %d images...\n\n", len(filenames))

	progressCh := make(chan tasks.ProgressUpdate, len(filenames))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.gallery.BulkDownload(ctx, progressCh, filenames, tasks.BulkDownloadOpts{
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate-limit"),
	})
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Bulk Download Complete")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Downloaded: %d/%d\n", result.SuccessfulDownloads, result.TotalImages)
	if result.FailedDownloads > 0 {
		r.writePlain("Failed: %d\n", result.FailedDownloads)
	}

	return nil
}

// confirm prompts on stdin for a y/N answer.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s [y/N]: ", prompt)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// galleryCommand handles gallery operations
func galleryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "gallery",
		Aliases: []string{"g"},
		Usage:   "Browse and manage styled results",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List gallery images, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Use the local cache without refreshing",
					},
				},
				Action: r.GalleryList,
			},
			{
				Name:  "info",
				Usage: "Show gallery statistics",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.GalleryInfo,
			},
			{
				Name:  "delete",
				Usage: "Delete an image from the gallery",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "filename"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.GalleryDelete,
			},
			{
				Name:  "cleanup",
				Usage: "Delete images older than a maximum age",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max-age-hours",
						Usage: "Delete images older than this many hours",
						Value: 24,
					},
				},
				Action: r.GalleryCleanup,
			},
			{
				Name:  "download",
				Usage: "Download one image",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "filename"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (defaults to the configured downloads dir)",
					},
				},
				Action: r.GalleryDownload,
			},
			{
				Name:  "export",
				Usage: "Export the gallery listing to CSV, Markdown or text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (defaults to stdout)",
					},
				},
				Action: r.GalleryExport,
			},
			{
				Name:  "bulk",
				Usage: "Download every gallery image concurrently",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: gallery_export_{timestamp})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent download workers (max 10)",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate-limit",
						Usage: "Requests per second",
						Value: 5.0,
					},
				},
				Action: r.GalleryBulk,
			},
		},
	}
}
