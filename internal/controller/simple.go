package controller

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "covreport.dev/pkg/covreport/internal/model"
)

const ruleWidth = 80

var rule = strings.Repeat("=", ruleWidth)

// SimpleUI implements UI by printing plain text through the cobra command.
type SimpleUI struct {
	cmd     *cobra.Command
	palette palette
}

// NewSimpleUI creates a new SimpleUI. When opts.Color is set, percentages are
// highlighted according to how far they fall below opts.Threshold.
func NewSimpleUI(cmd *cobra.Command, opts Options) *SimpleUI {
	return &SimpleUI{cmd: cmd, palette: newPalette(opts.Color, opts.Threshold)}
}

// DisplayDiscovery prints the number of discovered reports.
func (s *SimpleUI) DisplayDiscovery(ctx context.Context, count int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Found %d coverage files\n", count)
}

// DisplayParseError reports a report that could not be parsed.
func (s *SimpleUI) DisplayParseError(ctx context.Context, path m.Path, err error) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Error parsing %s: %v\n", path, err)
}

// DisplaySourceFiles prints the first limit source files in table order.
func (s *SimpleUI) DisplaySourceFiles(ctx context.Context, files []m.CoverageRecord, limit int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.heading("ALL SOURCE FILES IN COVERAGE REPORT")

	for _, file := range capped(files, limit) {
		s.printf("%s: %s\n", file.File, s.palette.rate(file.LineRate*100, file.LineRate))
	}

	if rest := len(files) - limit; limit >= 0 && rest > 0 {
		s.printf("... and %d more files\n", rest)
	}
}

// DisplayBelowThreshold prints the first limit findings as detail blocks.
func (s *SimpleUI) DisplayBelowThreshold(ctx context.Context, findings []m.Finding, limit int, threshold float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	label := thresholdLabel(threshold)

	s.heading(fmt.Sprintf("ALL SOURCE FILES BELOW %s COVERAGE", label))

	if len(findings) == 0 {
		s.printf("\nNo source files below %s coverage found!\n", label)
		return
	}

	for _, finding := range capped(findings, limit) {
		s.printf("\n%s\n", finding.File)
		s.printf("  Coverage: %s\n", s.palette.rate(finding.Coverage, finding.Coverage/100))
		s.printf("  Lines: %d/%d\n", finding.LinesCovered, finding.LinesValid)
	}

	s.displayOmitted(len(findings), limit, label)
}

// DisplaySummary prints the total number of findings.
func (s *SimpleUI) DisplaySummary(ctx context.Context, count int, threshold float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s\n", rule)
	s.printf("SUMMARY: %d source files below %s coverage\n", count, thresholdLabel(threshold))
	s.printf("%s\n", rule)
}

func (s *SimpleUI) displayOmitted(total, limit int, label string) {
	if rest := total - limit; limit >= 0 && rest > 0 {
		s.printf("\n... and %d more files below %s\n", rest, label)
	}
}

func (s *SimpleUI) heading(title string) {
	s.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// capped returns at most limit items. A negative limit means no cap.
func capped[T any](items []T, limit int) []T {
	if limit < 0 || len(items) <= limit {
		return items
	}

	return items[:limit]
}

// thresholdLabel renders a ratio as a percent without trailing zeros (0.8 -> "80%").
func thresholdLabel(threshold float64) string {
	percent := math.Round(threshold*10000) / 100
	return strconv.FormatFloat(percent, 'f', -1, 64) + "%"
}

type palette struct {
	enabled   bool
	threshold float64
	low       lipgloss.Style
	mid       lipgloss.Style
	high      lipgloss.Style
}

func newPalette(enabled bool, threshold float64) palette {
	return palette{
		enabled:   enabled,
		threshold: threshold,
		low:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		mid:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		high:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// rate formats a percentage with two decimals, coloured by its ratio.
func (p palette) rate(percent, ratio float64) string {
	text := fmt.Sprintf("%.2f%%", percent)
	if !p.enabled {
		return text
	}

	switch {
	case ratio < p.threshold/2:
		return p.low.Render(text)
	case ratio < p.threshold:
		return p.mid.Render(text)
	default:
		return p.high.Render(text)
	}
}
