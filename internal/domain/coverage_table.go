package domain

import (
	m "covreport.dev/pkg/covreport/internal/model"
	pkg "covreport.dev/pkg/covreport/pkg"
)

// CoverageTable accumulates line counters per source file, keeping the order
// in which files were first seen.
type CoverageTable struct {
	entries pkg.OrderedMap[m.Path, m.CoverageRecord]
}

// NewCoverageTable creates an empty CoverageTable.
func NewCoverageTable() *CoverageTable {
	return &CoverageTable{entries: pkg.NewOrderedMap[m.Path, m.CoverageRecord]()}
}

// Add inserts a record for a new file, or sums its counters into the existing
// entry. The rate is recomputed only while the accumulated valid count is
// positive; otherwise the previous rate is kept.
func (t *CoverageTable) Add(record m.CoverageRecord) {
	existing, ok := t.lookup(record.File)
	if !ok {
		t.entries.Set(record.File, record)
		return
	}

	existing.LinesValid += record.LinesValid
	existing.LinesCovered += record.LinesCovered

	if existing.LinesValid > 0 {
		existing.LineRate = float64(existing.LinesCovered) / float64(existing.LinesValid)
	}

	t.entries.Set(record.File, existing)
}

// Merge adds every record in order.
func (t *CoverageTable) Merge(records []m.CoverageRecord) {
	for _, record := range records {
		t.Add(record)
	}
}

func (t *CoverageTable) lookup(file m.Path) (m.CoverageRecord, bool) {
	return t.entries.Get(file)
}

// Len returns the number of distinct files.
func (t *CoverageTable) Len() int {
	return t.entries.Len()
}

// Records returns all records in first-seen order.
func (t *CoverageTable) Records() []m.CoverageRecord {
	records := make([]m.CoverageRecord, 0, t.entries.Len())

	_ = t.entries.Range(func(_ m.Path, record m.CoverageRecord) error {
		records = append(records, record)
		return nil
	})

	return records
}

// CollapseReport normalizes the filenames of one report and keeps the first
// class entry per normalized file. Later duplicates in the same report are
// dropped, not merged.
func CollapseReport(report m.Report, normalizer PathNormalizer) []m.CoverageRecord {
	seen := make(map[m.Path]struct{}, len(report.Classes))
	records := make([]m.CoverageRecord, 0, len(report.Classes))

	for _, class := range report.Classes {
		if class.Filename == "" {
			continue
		}

		file := normalizer.Normalize(class.Filename)
		if _, dup := seen[file]; dup {
			continue
		}

		seen[file] = struct{}{}
		records = append(records, m.CoverageRecord{
			File:         file,
			LineRate:     class.LineRate,
			LinesValid:   class.LinesValid,
			LinesCovered: class.LinesCovered,
		})
	}

	return records
}
