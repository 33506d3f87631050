// Package extension defines the extension array contract: the operations a
// custom-typed column backing store implements so that a tabular-data host
// can index, reorder, reindex, factorize and concatenate it.
//
// This package holds the interface, the indexer shapes, the dtype registry
// and the error kinds, plus algorithms written purely against the interface
// (Factorize, Reindex, Argsort). It has no storage of its own.
//
// Key rules every implementation follows:
//   - Take treats -1 as "fill with the missing sentinel" when allowFill is set
//   - A non-empty take from a zero-length array is an EmptyTake error, not a bounds error
//   - Every mutating entry point validates each value; the first failure aborts
//     with TypeMismatch and earlier writes stay (no rollback)
//   - Arrays are not safe for concurrent mutation; callers serialize writes
package extension
