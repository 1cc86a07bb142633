// Package services contains HTTP clients for the style transfer backend.
//
// [Gateway] is the typed contract consumed by the tasks package: one
// operation per backend capability, failures normalized into the shared
// error taxonomy, and structured request/response logging on every call.
// [StudioService] is its production implementation.
//
// [APIService] is a thin raw client kept for the `api get|post|dump` debug
// commands; it performs no envelope unwrapping or error normalization.
//
// The gateway is always constructed explicitly and injected into its
// consumers, never reached for as ambient state, so the orchestration layer
// tests against a mock without touching a global client.
package services
