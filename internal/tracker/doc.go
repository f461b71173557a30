// Package tracker turns an edit to one episode's tracking fields into cell
// writes against the backing workbook.
//
// Records are addressed by position: the episode at zero-based position p
// lives on store row p+2, below the header. Columns are resolved from the
// sheet's current header row on every Apply, so reordered columns are
// handled, but rows inserted or deleted outside tvlog since the last load
// shift positions. Callers should reload after out-of-band edits.
//
// The writer does not touch in-memory tables. After a successful Apply the
// caller drops any cached library so the next read sees the new values.
package tracker
