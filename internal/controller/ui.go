// Package controller provides output adapters for displaying coverage reports.
package controller

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "covreport.dev/pkg/covreport/internal/model"
)

// Format selects how the below-threshold section is rendered.
type Format string

// Available Format values.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
)

// UI defines the interface for displaying coverage report sections.
// Implementations can use different output layouts (plain text, tables).
type UI interface {
	DisplayDiscovery(ctx context.Context, count int)
	DisplayParseError(ctx context.Context, path m.Path, err error)
	DisplaySourceFiles(ctx context.Context, files []m.CoverageRecord, limit int)
	DisplayBelowThreshold(ctx context.Context, findings []m.Finding, limit int, threshold float64)
	DisplaySummary(ctx context.Context, count int, threshold float64)
}

// Options holds configuration for building a UI.
type Options struct {
	Format    Format
	Color     bool
	Threshold float64
}

// ParseFormat validates a format name.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatText, FormatTable:
		return Format(value), nil
	case "":
		return FormatText, nil
	}

	return "", fmt.Errorf("unknown output format %q (want %q or %q)", value, FormatText, FormatTable)
}

// NewUI returns the UI implementation matching opts.
func NewUI(cmd *cobra.Command, opts Options) UI {
	simple := NewSimpleUI(cmd, opts)

	if opts.Format == FormatTable {
		return NewTableUI(simple)
	}

	return simple
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
