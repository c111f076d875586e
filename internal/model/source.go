package model

// Path represents a file system path or a repository-relative source path.
type Path string

// ClassCoverage holds the raw counters of a single Cobertura class element.
type ClassCoverage struct {
	Filename     string
	LineRate     float64
	LinesValid   int
	LinesCovered int
}
