package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "covreport.dev/pkg/covreport/internal/model"
)

func TestCoverageTable_Add(t *testing.T) {
	t.Run("first observation is inserted as is", func(t *testing.T) {
		table := NewCoverageTable()
		table.Add(m.CoverageRecord{File: "Foo/Bar.cs", LineRate: 0.42, LinesValid: 10, LinesCovered: 5})

		got, ok := table.lookup("Foo/Bar.cs")
		require.True(t, ok)
		assert.Equal(t, 0.42, got.LineRate)
		assert.Equal(t, 10, got.LinesValid)
		assert.Equal(t, 5, got.LinesCovered)
	})

	t.Run("split counters are summed", func(t *testing.T) {
		table := NewCoverageTable()
		table.Add(m.CoverageRecord{File: "Foo/Bar.cs", LineRate: 0.5, LinesValid: 100, LinesCovered: 50})
		table.Add(m.CoverageRecord{File: "Foo/Bar.cs", LineRate: 1, LinesValid: 50, LinesCovered: 50})

		got, ok := table.lookup("Foo/Bar.cs")
		require.True(t, ok)
		assert.Equal(t, 150, got.LinesValid)
		assert.Equal(t, 100, got.LinesCovered)
		assert.InDelta(t, 0.6667, got.LineRate, 0.0001)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("zero valid lines keep the previous rate", func(t *testing.T) {
		table := NewCoverageTable()
		table.Add(m.CoverageRecord{File: "Empty.cs", LineRate: 0.3})
		table.Add(m.CoverageRecord{File: "Empty.cs", LineRate: 0.9})

		got, _ := table.lookup("Empty.cs")
		assert.Equal(t, 0.3, got.LineRate)
		assert.Equal(t, 0, got.LinesValid)
	})

	t.Run("zero valid lines default to zero rate", func(t *testing.T) {
		table := NewCoverageTable()
		table.Add(m.CoverageRecord{File: "Empty.cs"})
		table.Add(m.CoverageRecord{File: "Empty.cs"})

		got, _ := table.lookup("Empty.cs")
		assert.Equal(t, 0.0, got.LineRate)
	})

	t.Run("sums do not depend on order", func(t *testing.T) {
		a := m.CoverageRecord{File: "X.cs", LinesValid: 30, LinesCovered: 3}
		b := m.CoverageRecord{File: "X.cs", LinesValid: 10, LinesCovered: 9}
		c := m.CoverageRecord{File: "X.cs", LinesValid: 60, LinesCovered: 18}

		forward := NewCoverageTable()
		forward.Merge([]m.CoverageRecord{a, b, c})

		backward := NewCoverageTable()
		backward.Merge([]m.CoverageRecord{c, b, a})

		f, _ := forward.lookup("X.cs")
		r, _ := backward.lookup("X.cs")
		assert.Equal(t, f.LinesValid, r.LinesValid)
		assert.Equal(t, f.LinesCovered, r.LinesCovered)
		assert.InDelta(t, f.LineRate, r.LineRate, 1e-12)
		assert.InDelta(t, 0.3, f.LineRate, 1e-12)
	})
}

func TestCoverageTable_RecordsKeepFirstSeenOrder(t *testing.T) {
	table := NewCoverageTable()
	table.Merge([]m.CoverageRecord{
		{File: "Zeta.cs", LinesValid: 1},
		{File: "Alpha.cs", LinesValid: 1},
	})
	table.Merge([]m.CoverageRecord{
		{File: "Mid.cs", LinesValid: 1},
		{File: "Zeta.cs", LinesValid: 1},
	})

	var files []m.Path
	for _, record := range table.Records() {
		files = append(files, record.File)
	}

	assert.Equal(t, []m.Path{"Zeta.cs", "Alpha.cs", "Mid.cs"}, files)
}

func TestCollapseReport(t *testing.T) {
	report := m.Report{
		Path: "run1/coverage.cobertura.xml",
		Classes: []m.ClassCoverage{
			{Filename: `G:\code\Sailfish\source\Foo\Bar.cs`, LineRate: 0.5, LinesValid: 100, LinesCovered: 50},
			{Filename: "Foo/Bar.cs", LineRate: 1, LinesValid: 10, LinesCovered: 10},
			{Filename: "", LineRate: 1, LinesValid: 5, LinesCovered: 5},
			{Filename: `Foo\Baz.cs`, LineRate: 0.25, LinesValid: 4, LinesCovered: 1},
		},
	}

	records := CollapseReport(report, NewPathNormalizer(DefaultStripPrefix))

	assert.Equal(t, []m.CoverageRecord{
		{File: "Foo/Bar.cs", LineRate: 0.5, LinesValid: 100, LinesCovered: 50},
		{File: "Foo/Baz.cs", LineRate: 0.25, LinesValid: 4, LinesCovered: 1},
	}, records)
}

func TestCollapseReport_Empty(t *testing.T) {
	assert.Empty(t, CollapseReport(m.Report{}, NewPathNormalizer(DefaultStripPrefix)))
}
