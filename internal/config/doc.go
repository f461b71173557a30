// Package config loads, normalizes, and validates tvlog configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TVLOG_SPREADSHEET_ID and GOOGLE_APPLICATION_CREDENTIALS. The Config type
// centralizes every knob the CLI needs so the workbook backend, cache lifetimes
// and logging are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
