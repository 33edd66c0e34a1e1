// Package flow defines the record model for two-column flow diagrams.
//
// A flow dataset is a sequence of paired observations: a left category,
// a right category, and a non-negative weight. The package provides
// validation, per-category and per-pair weight aggregation, and the
// cumulative-weight ordering used to derive stack order when the caller
// does not supply one.
//
// Geometry lives in the layout subpackage; this package is purely about
// the data.
package flow
