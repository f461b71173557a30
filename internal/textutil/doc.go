// Package textutil provides text helpers for matching names typed by people
// against names stored in the workbook.
//
// Headers are compared after FoldHeader, which applies Unicode NFC
// normalization, collapses whitespace and case-folds. Show names are
// suggested with character trigram fingerprints compared by cosine
// similarity, so small typos still find the intended show.
package textutil
