// Package model defines the data structures for coverage aggregation.
package model

// Report represents one parsed coverage report.
type Report struct {
	Path    Path
	Classes []ClassCoverage // document order, duplicates included
}

// CoverageRecord holds the line counters of one source file.
type CoverageRecord struct {
	File         Path
	LineRate     float64
	LinesValid   int
	LinesCovered int
}

// Finding is a source file reported below the coverage threshold.
type Finding struct {
	File         Path
	Coverage     float64 // percent, LineRate * 100
	LinesCovered int
	LinesValid   int
}
