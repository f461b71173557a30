// Package main hosts the tvlog CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, opens the configured
// workbook and hands the work to internal/api. Commands render the plain
// views api returns either as terminal tables or, with --json, as indented
// JSON on stdout. Logs always go to stderr so output stays pipeable.
//
// Keep this package lean: add new functionality in the internal packages
// first, then surface it through a command or flag here.
package main
