// Package models defines domain entities for the design studio client.
//
// The package contains two categories of types:
//
// 1. Workflow entities, owned by the transfer workflow and destroyed together on reset:
//   - [ImageRef] : A server-known image paired with a local preview handle
//   - [TransferRequest] : Parameters of a single transfer submission
//   - [TransferResult] : A completed transfer, replaced rather than mutated
//   - [MixerEntry] : A weighted style in a multi-style blend
//
// 2. Backend-owned read models, cached session-scoped on the client:
//   - [StylePreset] : Style catalog entries, never mutated locally
//   - [GalleryEntry] : Persisted results listed by the gallery
//   - [GalleryInfo] : Gallery statistics
//   - [HealthStatus] : Liveness probe response
//
// Validation of workflow parameters happens at the transition boundary in
// the tasks package, not here; models stays free of behavior beyond small
// derivations.
package models
