// Package pipeline runs a scan over one source as a sequence of steps.
//
// A scan reads the source, cracks every line, and ranks the line results.
// Each stage is a Step that receives the shared ScanReport and fills in
// its part. Pipelines respect context cancellation between steps.
//
// BatchProcessor runs one pipeline per source concurrently, bounded with
// errgroup.SetLimit.
package pipeline
