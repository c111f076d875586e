// Package adapter contains infrastructure adapters for the covreport CLI.
package adapter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	m "covreport.dev/pkg/covreport/internal/model"
	"github.com/bmatcuk/doublestar/v4"
)

// ReportFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when locating coverage reports. It hides direct `os` access so the
// workflow logic can be tested without touching the disk.
type ReportFSAdapter interface {
	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// FindReports returns every file under root whose slash-separated path,
	// relative to root, matches the doublestar pattern. Hidden directories
	// below root are not searched. A missing root yields no reports.
	FindReports(root m.Path, pattern string) ([]m.Path, error)

	// OpenReport opens a report for reading. The caller closes it.
	OpenReport(path m.Path) (io.ReadCloser, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalReportFSAdapter is the concrete implementation backed by the local disk.
type LocalReportFSAdapter struct{}

// NewLocalReportFSAdapter constructs a LocalReportFSAdapter instance ready to
// be wired into the workflow.
func NewLocalReportFSAdapter() *LocalReportFSAdapter {
	return &LocalReportFSAdapter{}
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalReportFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// FindReports walks root recursively and collects files matching pattern.
func (a *LocalReportFSAdapter) FindReports(root m.Path, pattern string) ([]m.Path, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid report pattern %q", pattern)
	}

	rootStr := string(root)
	if _, err := os.Stat(rootStr); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	reports := []m.Path{}

	err := a.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			// ** does not descend into hidden directories.
			if path != rootStr && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		rel, err := filepath.Rel(rootStr, path)
		if err != nil {
			return err
		}

		matched, err := doublestar.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		if matched {
			reports = append(reports, m.Path(path))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// OpenReport opens the report file at path.
func (a *LocalReportFSAdapter) OpenReport(path m.Path) (io.ReadCloser, error) {
	// #nosec G304 - report paths come from discovery under the configured root
	return os.Open(string(path))
}
