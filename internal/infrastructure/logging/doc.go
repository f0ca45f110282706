// Package logging provides structured logging for Stockhold.
//
// It wraps Go's standard log/slog package to give consistent, structured
// output across the application: JSON for production, text for
// development, with service and version fields attached to every line.
//
// Use Default() before configuration is loaded, then replace it with
// New(cfg, version) once the config is available.
package logging
