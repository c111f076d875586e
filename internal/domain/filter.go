package domain

import (
	"sort"
	"strings"

	m "covreport.dev/pkg/covreport/internal/model"
)

const (
	// DefaultThreshold is the line rate below which a file is reported.
	DefaultThreshold = 0.80
	// DefaultExtension selects the source files that are listed.
	DefaultExtension = ".cs"
)

// AllowList is the set of files of interest.
type AllowList map[m.Path]struct{}

// NewAllowList builds an AllowList; backslashes are turned into slashes so
// entries compare equal to normalized report paths.
func NewAllowList(paths []string) AllowList {
	allow := make(AllowList, len(paths))
	for _, p := range paths {
		allow[m.Path(strings.ReplaceAll(p, `\`, "/"))] = struct{}{}
	}

	return allow
}

// Contains reports whether file is on the list.
func (a AllowList) Contains(file m.Path) bool {
	_, ok := a[file]
	return ok
}

// Criteria selects the files reported below the threshold.
type Criteria struct {
	Extension string
	Threshold float64
	Allow     AllowList
}

// SourceFiles returns the records whose path ends in extension, in table order.
func SourceFiles(table *CoverageTable, extension string) []m.CoverageRecord {
	var files []m.CoverageRecord

	for _, record := range table.Records() {
		if strings.HasSuffix(string(record.File), extension) {
			files = append(files, record)
		}
	}

	return files
}

// BelowThreshold returns the allow-listed source files whose line rate is
// strictly under the threshold, sorted by ascending coverage. Ties keep table
// order.
func BelowThreshold(table *CoverageTable, criteria Criteria) []m.Finding {
	findings := []m.Finding{}

	for _, record := range SourceFiles(table, criteria.Extension) {
		if !criteria.Allow.Contains(record.File) {
			continue
		}

		// NaN rates never qualify.
		if !(record.LineRate < criteria.Threshold) {
			continue
		}

		findings = append(findings, m.Finding{
			File:         record.File,
			Coverage:     record.LineRate * 100,
			LinesCovered: record.LinesCovered,
			LinesValid:   record.LinesValid,
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Coverage < findings[j].Coverage
	})

	return findings
}
