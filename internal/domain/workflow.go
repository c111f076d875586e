package domain

import (
	"context"
	"fmt"
	"log/slog"

	"covreport.dev/pkg/covreport/internal/adapter"
	"covreport.dev/pkg/covreport/internal/controller"
	m "covreport.dev/pkg/covreport/internal/model"
)

// AnalyzeArgs contains the arguments for a coverage report run.
type AnalyzeArgs struct {
	Reports     m.Path // root directory searched for reports
	Pattern     string // doublestar pattern relative to Reports
	StripPrefix string
	Criteria    Criteria
	SampleLimit int // source files listed before the omission note; negative lists all
	DetailLimit int // findings listed before the omission note; negative lists all
}

// Workflow defines the coverage report pipeline.
type Workflow interface {
	Analyze(ctx context.Context, args AnalyzeArgs) error
}

type workflow struct {
	adapter.ReportFSAdapter
	adapter.ReportParser
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.ReportFSAdapter,
	parser adapter.ReportParser,
	ui controller.UI,
) Workflow {
	return &workflow{
		ReportFSAdapter: fsAdapter,
		ReportParser:    parser,
		UI:              ui,
	}
}

// Analyze discovers reports, merges their counters and prints the listings.
// Reports that fail to parse are reported and skipped; only discovery errors
// and cancellation abort the run.
func (w *workflow) Analyze(ctx context.Context, args AnalyzeArgs) error {
	reports, err := w.FindReports(args.Reports, args.Pattern)
	if err != nil {
		return fmt.Errorf("find reports: %w", err)
	}

	slog.Info("discovered coverage reports", "root", args.Reports, "pattern", args.Pattern, "count", len(reports))
	w.DisplayDiscovery(ctx, len(reports))

	table, err := w.aggregate(ctx, reports, NewPathNormalizer(args.StripPrefix))
	if err != nil {
		return err
	}

	w.DisplaySourceFiles(ctx, SourceFiles(table, args.Criteria.Extension), args.SampleLimit)

	findings := BelowThreshold(table, args.Criteria)
	slog.Info("filtered coverage", "files", table.Len(), "below_threshold", len(findings), "threshold", args.Criteria.Threshold)

	w.DisplayBelowThreshold(ctx, findings, args.DetailLimit, args.Criteria.Threshold)
	w.DisplaySummary(ctx, len(findings), args.Criteria.Threshold)

	return nil
}

func (w *workflow) aggregate(ctx context.Context, reports []m.Path, normalizer PathNormalizer) (*CoverageTable, error) {
	table := NewCoverageTable()

	for _, path := range reports {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report, err := w.ParseReport(path)
		if err != nil {
			slog.Error("failed to parse coverage report", "path", path, "error", err)
			w.DisplayParseError(ctx, path, err)

			continue
		}

		records := CollapseReport(report, normalizer)
		slog.Debug("merged coverage report", "path", path, "classes", len(report.Classes), "files", len(records))
		table.Merge(records)
	}

	return table, nil
}
