package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/KaparthyReddy/ai-design-studio/internal/shared"
)

// applyCurlHeaders attaches headers parsed from a saved curl command to the
// raw API client, when the flag is set.
func (r *Runner) applyCurlHeaders(cmd *cli.Command) error {
	curlFile := cmd.String("curl-file")
	if curlFile == "" {
		return nil
	}

	curlHeaders, err := shared.ParseCurlFile(curlFile)
	if err != nil {
		return fmt.Errorf("failed to parse cURL file: %w", err)
	}

	r.api.SetHeaders(curlHeaders.Merged())
	r.logger.Info("applied headers from cURL file", "file", curlFile, "count", len(curlHeaders.Headers))
	return nil
}

// APIGet makes a direct GET request to the backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	useJSON := cmd.Bool("json")

	if err := r.applyCurlHeaders(cmd); err != nil {
		return err
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if useJSON {
		if resp.IsJSON {
			return r.writeJSON(resp.JSONData, false)
		}
		r.output.Write(resp.Body)
		r.output.Write([]byte("\n"))
		return nil
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// APIPost makes a direct POST request to the backend
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	if err := r.applyCurlHeaders(cmd); err != nil {
		return err
	}

	r.logger.Info("POST request", "path", path)

	var jsonTest any
	if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}

	r.output.Write(resp.Body)
	r.output.Write([]byte("\n"))
	return nil
}

// APIDump fetches and displays the full backend state.
func (r *Runner) APIDump(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	if err := r.applyCurlHeaders(cmd); err != nil {
		return err
	}

	r.logger.Info("dumping backend state")
	r.writePlain("Fetching backend state...\n\n")

	type DumpData struct {
		Health      any   `json:"health"`
		Styles      any   `json:"styles,omitempty"`
		Gallery     any   `json:"gallery,omitempty"`
		GalleryInfo any   `json:"gallery_info,omitempty"`
		Errors      []any `json:"errors,omitempty"`
	}

	dump := DumpData{
		Errors: []any{},
	}

	fetch := func(label, endpoint string, into *any) {
		r.writePlain("📊 Fetching %s...\n", label)
		resp, err := r.api.Get(ctx, endpoint)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			*into = resp.JSONData
			return
		}
		detail := "unexpected status"
		if err != nil {
			detail = err.Error()
		}
		dump.Errors = append(dump.Errors, map[string]string{"endpoint": endpoint, "error": detail})
		r.logger.Warn("failed to fetch "+label, "error", detail)
	}

	fetch("health status", "/health", &dump.Health)
	fetch("styles", "/api/styles", &dump.Styles)
	fetch("gallery", "/api/gallery", &dump.Gallery)
	fetch("gallery info", "/api/gallery/info", &dump.GalleryInfo)

	r.writePlain("\n✓ Dump complete\n\n")

	if save {
		saveFile := "api_dump.json"
		data, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal dump: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save dump", "error", err)
		} else {
			r.logger.Info("dump saved", "file", saveFile)
			r.writePlain("✓ Dump saved to %s\n\n", saveFile)
		}
	}

	return r.writeJSON(dump, pretty)
}

// apiCommand handles direct backend API calls for debugging
func apiCommand(r *Runner) *cli.Command {
	curlFileFlag := &cli.StringFlag{
		Name:  "curl-file",
		Usage: "Path to a file containing a cURL command whose headers to replay",
	}

	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the style transfer backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
					curlFileFlag,
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
					curlFileFlag,
				},
				Action: r.APIPost,
			},
			{
				Name:  "dump",
				Usage: "Full backend state dump (health, styles, gallery)",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save dump to api_dump.json",
						Value: false,
					},
					curlFileFlag,
				},
				Action: r.APIDump,
			},
		},
	}
}
