// Package dataset holds the in-memory representation of a loaded measurement
// file: a Record owning an ordered collection of labeled tables plus the
// metadata mapping read alongside the data.
//
// # Architecture
//
// Two types carry the whole model:
//
// 1. Frame: a 2-D labeled table of named columns (numeric or text) with an
// optional index column naming the sweep/time axis
//
// 2. Record: the ordered table collection, metadata map, and source file
// references produced by the loader
//
// A Record is created once by the loader and mutated in place by the signal
// processors, which only ever add new derived columns. Existing columns are
// never removed or renamed, and metadata is never written after load.
//
// # Usage
//
//	frame, err := rec.Table("results-3-1")
//	if err != nil {
//	    return err
//	}
//	v, err := frame.Column("lockin_X")
//
// Column and table lookups return typed errors from the internal errors
// package (MISSING_COLUMN, MISSING_EXPERIMENT) so callers can distinguish
// precondition violations from I/O failures.
package dataset
