// Package stats computes progress, rating and calendar aggregates over loaded
// shows.
//
// Every function is pure and tolerant: cells that do not coerce are skipped,
// never counted as zero, and an empty input produces zero values without
// dividing by zero.
package stats
