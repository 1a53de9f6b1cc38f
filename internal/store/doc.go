// Package store provides durable compile-history records for riftc.
//
// Every compile run (source, target, consensus outcome) can be recorded
// in a SQLite database and listed later. The store is provenance only:
// nothing in the link/emit pipeline reads it, and the pipeline works
// fully without it.
package store
