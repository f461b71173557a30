// Package catalog loads shows from a workbook into the normalized episode
// model.
//
// Each worksheet is one show. Its header row names the columns, every later
// row is an episode, and the loader guarantees that the four tracking columns
// (Watched, Personal Rating, Favorite, Watch Date) exist on every record after
// load. Raw cell values are kept as the store returned them; coercion happens
// later, in stats, filter and the CLI renderers.
//
// A failure on one sheet never aborts the load. It is reported as a Warning
// and the sheet is left out of the Library.
package catalog
