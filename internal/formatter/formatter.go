// package formatter provides functions to export gallery listings and
// transfer results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/KaparthyReddy/ai-design-studio/internal/models"
	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
)

const timeLayout = "2006-01-02 15:04:05"

// ExportGalleryToCSV converts gallery entries to CSV with columns: Filename, Created, Size
func ExportGalleryToCSV(entries []models.GalleryEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Filename", "Created", "SizeBytes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			entry.Filename,
			formatTime(entry.CreatedAt),
			strconv.FormatInt(entry.SizeBytes, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportGalleryToMarkdown converts gallery entries to a Markdown table with an optional title
func ExportGalleryToMarkdown(entries []models.GalleryEntry, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Gallery"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Images**: %d\n\n", len(entries)))

	buf.WriteString("| # | Filename | Created | Size |\n")
	buf.WriteString("|---|----------|---------|------|\n")
	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n",
			i+1, entry.Filename, formatTime(entry.CreatedAt), formatSize(entry.SizeBytes)))
	}

	return buf.Bytes(), nil
}

// ExportGalleryToText converts gallery entries to plain text format
func ExportGalleryToText(entries []models.GalleryEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Gallery (%d images)\n\n", len(entries)))
	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("%d. %s  %s  %s\n",
			i+1, entry.Filename, formatTime(entry.CreatedAt), formatSize(entry.SizeBytes)))
	}

	return buf.Bytes(), nil
}

// FormatTransferSummary renders a completed transfer for plain CLI output.
func FormatTransferSummary(result *models.TransferResult) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Output: %s\n", result.OutputFilename))
	buf.WriteString(fmt.Sprintf("Download: %s\n", result.DownloadURL))
	if result.ProcessingTime != "" {
		buf.WriteString(fmt.Sprintf("Processing time: %s\n", result.ProcessingTime))
	}

	return buf.String()
}

// FormatMixerEntries renders mixer entries with raw and normalized weights side by side.
func FormatMixerEntries(raw, normalized []models.MixerEntry) string {
	var buf bytes.Buffer

	for i, entry := range raw {
		norm := 0.0
		if i < len(normalized) {
			norm = normalized[i].Weight
		}
		buf.WriteString(fmt.Sprintf("%d. %s  weight=%.2f  normalized=%.3f\n",
			i+1, entry.Label, entry.Weight, norm))
	}

	return buf.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(timeLayout)
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "-"
	}
	return shared.FormatSize(bytes)
}
