// Package jsonarray implements the extension array contract over a column
// of JSON objects.
//
// Every element is a value.Object. The missing sentinel is the empty object;
// a nil Object is treated the same way. Elements are validated at
// construction and at every assignment, against the value rules and, when
// the dtype carries one, a CUE schema.
package jsonarray
