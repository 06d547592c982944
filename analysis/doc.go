// Package analysis drives a run end to end:
//
//	Load → Validate → Evaluate(Plaquette | WilsonLoop) → Aggregate → Report
//
// Only loading can fail on data; everything after it works on a validated
// configuration. Batch repeats the pipeline over a directory of
// configurations and records the outcome of each in a manifest.
package analysis
