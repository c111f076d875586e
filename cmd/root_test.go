package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"covreport.dev/pkg/covreport/internal/controller"
	"covreport.dev/pkg/covreport/internal/domain"
	domainmocks "covreport.dev/pkg/covreport/internal/domain/mocks"
	m "covreport.dev/pkg/covreport/internal/model"
)

func useWorkflow(t *testing.T, wf domain.Workflow) {
	t.Helper()

	originalNewWorkflow := newWorkflow
	newWorkflow = func(controller.UI) domain.Workflow { return wf }

	t.Cleanup(func() { newWorkflow = originalNewWorkflow })
}

func newTestRootCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-file", filepath.Join(t.TempDir(), "covreport.log")}, args...))

	return cmd, out
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "covreport", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{dirFlagName, patternFlagName, stripPrefixFlagName, extensionFlagName, thresholdFlagName, allowFileFlagName, formatFlagName, colorFlagName} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	assert.NotNil(t, cmd.PersistentFlags().Lookup(logFileFlagName))
	assert.NotNil(t, cmd.PersistentFlags().Lookup(verboseFlagName))
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd, out := newTestRootCmd(t, "--help")

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "coverage.cobertura.xml")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	useWorkflow(t, domainmocks.NewMockWorkflow(t))

	cmd, _ := newTestRootCmd(t, "./...")

	require.Error(t, cmd.Execute())
}

func TestRootCmd_UsesDefaults(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.On("Analyze", mock.Anything, mock.MatchedBy(func(args domain.AnalyzeArgs) bool {
		return args.Reports == m.Path(defaultReportsDir) &&
			args.Pattern == defaultReportsPattern &&
			args.StripPrefix == domain.DefaultStripPrefix &&
			args.Criteria.Extension == ".cs" &&
			args.Criteria.Threshold == 0.80 &&
			len(args.Criteria.Allow) == len(defaultAllowList) &&
			args.Criteria.Allow.Contains("site/src/components/Layout.jsx") &&
			args.SampleLimit == 20 &&
			args.DetailLimit == 30
	})).Return(nil)

	cmd, _ := newTestRootCmd(t)
	require.NoError(t, cmd.Execute())
}

func TestRootCmd_FlagsArePassedThrough(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	mockWorkflow.On("Analyze", mock.Anything, mock.MatchedBy(func(args domain.AnalyzeArgs) bool {
		return args.Reports == m.Path("./reports-dir") &&
			args.Pattern == "*/report.xml" &&
			args.StripPrefix == "/build/" &&
			args.Criteria.Extension == ".go" &&
			args.Criteria.Threshold == 0.5
	})).Return(nil)

	cmd, _ := newTestRootCmd(t,
		"--dir", "./reports-dir",
		"--pattern", "*/report.xml",
		"--strip-prefix", "/build/",
		"--ext", ".go",
		"-t", "0.5",
	)
	require.NoError(t, cmd.Execute())
}

func TestRootCmd_WorkflowErrorIsReturned(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)
	useWorkflow(t, mockWorkflow)

	walkErr := errors.New("find reports: permission denied")
	mockWorkflow.On("Analyze", mock.Anything, mock.Anything).Return(walkErr)

	cmd, _ := newTestRootCmd(t)
	require.ErrorIs(t, cmd.Execute(), walkErr)
}

func TestRootCmd_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown format", []string{"--format", "json"}, "unknown output format"},
		{"threshold above one", []string{"--threshold", "80"}, "out of range"},
		{"negative threshold", []string{"--threshold", "-0.1"}, "out of range"},
		{"missing allow-list file", []string{"--allow-file", "does-not-exist.yaml"}, "load allow-list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useWorkflow(t, domainmocks.NewMockWorkflow(t))

			cmd, _ := newTestRootCmd(t, tt.args...)
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCmd_EndToEnd(t *testing.T) {
	root := t.TempDir()

	writeReport(t, filepath.Join(root, "run1"), `G:\code\Sailfish\source\Foo\Bar.cs`, 100, 50)
	writeReport(t, filepath.Join(root, "run2"), "Foo/Bar.cs", 50, 50)

	allowFile := filepath.Join(t.TempDir(), "allow.yaml")
	require.NoError(t, os.WriteFile(allowFile, []byte("files:\n  - Foo/Bar.cs\n"), 0o600))

	cmd, out := newTestRootCmd(t, "--dir", root, "--allow-file", allowFile)
	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Found 2 coverage files\n")
	assert.Contains(t, output, "\nFoo/Bar.cs\n  Coverage: 66.67%\n  Lines: 100/150\n")
	assert.Contains(t, output, "SUMMARY: 1 source files below 80% coverage\n")
}

func TestRootCmd_EndToEnd_NoReports(t *testing.T) {
	cmd, out := newTestRootCmd(t, "--dir", filepath.Join(t.TempDir(), "TestResults"))
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Found 0 coverage files\n")
	assert.Contains(t, out.String(), "No source files below 80% coverage found!")
	assert.Contains(t, out.String(), "SUMMARY: 0 source files below 80% coverage\n")
}

func TestInit(t *testing.T) {
	// Test that init() created all the necessary instances
	assert.NotNil(t, fsAdapter)
	assert.NotNil(t, reportParser)
	assert.NotNil(t, newWorkflow)
	assert.NotNil(t, rootCmd)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})
	mockCmd.SetArgs([]string{})

	rootCmd = mockCmd

	Execute()

	rootCmd = originalRootCmd
}

func TestExecute_ProcessLevel_Success(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Println("success")
				return nil
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Success")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS=1")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "success")
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		mockCmd.SetArgs([]string{})
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute() // This should call os.Exit(1)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "error occurred")
}

func writeReport(t *testing.T, dir, filename string, valid, covered int) {
	t.Helper()

	rate := 0.0
	if valid > 0 {
		rate = float64(covered) / float64(valid)
	}

	doc := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<coverage>
  <packages>
    <package name="Sailfish">
      <classes>
        <class name="C" filename="%s" line-rate="%g" lines-valid="%d" lines-covered="%d" />
      </classes>
    </package>
  </packages>
</coverage>`, filename, rate, valid, covered)

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coverage.cobertura.xml"), []byte(doc), 0o600))
}
