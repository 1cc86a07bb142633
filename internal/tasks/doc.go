// Package tasks implements the client-side orchestration for the design studio.
//
// The core abstraction is [Workflow], the state machine that owns the two
// upload slots, drives transfer submissions against the backend gateway, and
// reconciles results. [Mixer] collects weighted styles for blended transfers
// and [GalleryManager] maintains the session-scoped gallery cache and
// selection. Long-running operations emit [ProgressUpdate] values via
// channels for non-blocking status reporting to the CLI/TUI layers.
package tasks
