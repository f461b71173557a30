// Package api composes the loader, aggregates, filter and writer into the
// workflows the CLI runs.
//
// # Key Types
//
// Service: owns one workbook handle, a load cache and the single-writer
// lock. Read workflows (Shows, Show, Episodes, Stats) go through the cache;
// Mark writes through the tracker and invalidates it.
//
// View types (ShowsView, ShowView, EpisodesView, StatsView) are plain data
// with JSON tags so the CLI can render them as tables or encode them as-is.
//
// # Design Notes
//
// Show names are matched exactly, then case-insensitively. A miss returns a
// *NotFoundError carrying "did you mean" suggestions from textutil.
//
// The lock only serializes tvlog processes on this machine. Edits made to the
// workbook by other tools are not detected; positions may shift under them.
package api
