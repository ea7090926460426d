// Package loader reads laboratory measurement files into dataset.Record
// values. It is the only component in the toolkit that touches the
// filesystem for ingestion.
//
// # Supported formats
//
// Data files are dispatched strictly on filename extension:
//
// 1. .db — a sqlite snapshot with fixed experiments/runs bookkeeping tables
// and one result table per run; each result table is collapsed by grouping
// on its first sweep parameter and averaging repeated rows
//
// 2. .csv — a flat table loaded as-is into a single frame
//
// Any other extension fails with UNSUPPORTED_FORMAT. Metadata comes from a
// .json file: an explicit path wins, else a same-stem sibling is probed, else
// the record carries an empty map and a warning is logged.
//
// # Usage
//
//	rec, err := loader.Load("rt_sweep.db")
//	rec, err := loader.Load("spectrum.csv", loader.WithMetadataPath("meta.json"))
//
// All failures are synchronous and final; these are batch-analysis inputs,
// not a service, so there is no retry layer.
package loader
