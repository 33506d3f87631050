// Package value provides the sealed JSON value types stored in extension
// array columns.
//
// This package contains value definitions and their canonical encoding
// only. Every other internal package imports value; value imports nothing
// internal.
//
// Key design constraints:
//   - Value is sealed: only Null, String, Int, Float, Bool, Array and Object implement it
//   - A nil Value is never valid, nested or top-level
//   - Floats must be finite (NaN and Inf have no canonical JSON form)
//   - Canonical JSON (RFC 8785) is the only encoding used for element identity
package value
