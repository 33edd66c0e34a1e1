// Package dataset loads flow records from CSV and JSON sources.
//
// CSV files are read header-first: the caller names the left, right and
// optional weight columns, or the first two (and an optional "weight")
// columns are used. JSON files carry an explicit records array.
//
// Both loaders return [flow.Records] validated against the same rules
// the layout engine enforces, so a successful load is ready to build.
package dataset
