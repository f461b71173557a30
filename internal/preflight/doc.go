// Package preflight provides readiness checks for the workbook backend and
// the filesystem paths tvlog depends on.
//
// "tvlog doctor" runs RunAll and prints one line per Result. Checks never
// return errors; a failing check carries its reason in Detail. Backend
// specific checks only run for the configured backend.
package preflight
