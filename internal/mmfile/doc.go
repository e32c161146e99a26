// Package mmfile maps datafiles into memory where the platform allows it and
// falls back to reading the whole file elsewhere.
package mmfile
