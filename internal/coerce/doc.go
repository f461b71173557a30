// Package coerce turns loosely typed spreadsheet cells into booleans, numbers,
// minute counts and dates.
//
// Cells arrive as whatever the backing store hands back: strings typed by a
// person, numbers scraped from an API, native booleans, or nothing at all. Every
// helper here is total. A value that cannot be parsed comes back as "absent"
// (a false second return or Unknown) instead of an error, so callers can treat a
// malformed cell exactly like an empty one.
package coerce
