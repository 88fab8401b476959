// Package collection wraps a query result (typically element.Query.All)
// with further filter/sort/aggregate operations that don't need to
// re-walk the tree. Every comparison is by element id, never by pointer,
// since replay and restore mint fresh Go values for the same logical
// entity (spec.md §4.6).
package collection
