// Package cmd provides the root command and CLI setup for covreport.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"covreport.dev/pkg/covreport/internal/adapter"
	"covreport.dev/pkg/covreport/internal/controller"
	"covreport.dev/pkg/covreport/internal/domain"
	m "covreport.dev/pkg/covreport/internal/model"
)

var fsAdapter adapter.ReportFSAdapter
var reportParser adapter.ReportParser

// newWorkflow builds the pipeline once the UI options are known.
var newWorkflow func(ui controller.UI) domain.Workflow

var (
	reportsDirFlag  string
	patternFlag     string
	stripPrefixFlag string
	extensionFlag   string
	thresholdFlag   float64
	allowFileFlag   string
	formatFlag      string
	colorFlag       bool
	logFileFlag     string
	verboseFlag     bool
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalReportFSAdapter()
	reportParser = adapter.NewCoberturaParser(fsAdapter)
	newWorkflow = func(ui controller.UI) domain.Workflow {
		return domain.NewWorkflow(fsAdapter, reportParser, ui)
	}
}

const rootLongDescription = `covreport aggregates Cobertura coverage reports produced by test runs and
lists the files of interest whose merged line coverage is below a threshold.

Reports named coverage.cobertura.xml are searched recursively under the
reports directory. Counters for the same source file are summed across
reports before the line rate is recomputed.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "covreport",
		Short: "Report source files below a coverage threshold",
		Long:  rootLongDescription,
		Args:  cobra.NoArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			logConfigReadErr()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, opts, err := analyzeArgsFromConfig()
			if err != nil {
				return err
			}

			opts.Color = opts.Color && controller.IsTTY(os.Stdout)

			return newWorkflow(controller.NewUI(cmd, opts)).Analyze(context.Background(), args)
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reportsDirFlag, dirFlagName, "d", viper.GetString(reportsDirKey), "directory searched recursively for coverage reports")
	bindFlagToConfig(cmd.Flags().Lookup(dirFlagName), reportsDirKey)

	cmd.Flags().StringVar(&patternFlag, patternFlagName, viper.GetString(reportsPatternKey), "report path pattern relative to --dir (supports **)")
	bindFlagToConfig(cmd.Flags().Lookup(patternFlagName), reportsPatternKey)

	cmd.Flags().StringVar(&stripPrefixFlag, stripPrefixFlagName, viper.GetString(stripPrefixKey), "prefix removed from report filenames")
	bindFlagToConfig(cmd.Flags().Lookup(stripPrefixFlagName), stripPrefixKey)

	cmd.Flags().StringVar(&extensionFlag, extensionFlagName, viper.GetString(filterExtensionKey), "source file extension to report on")
	bindFlagToConfig(cmd.Flags().Lookup(extensionFlagName), filterExtensionKey)

	cmd.Flags().Float64VarP(&thresholdFlag, thresholdFlagName, "t", viper.GetFloat64(filterThresholdKey), "line rate (0-1) below which a file is reported")
	bindFlagToConfig(cmd.Flags().Lookup(thresholdFlagName), filterThresholdKey)

	cmd.Flags().StringVarP(&allowFileFlag, allowFileFlagName, "a", viper.GetString(filterAllowFileKey), "YAML file listing the files of interest (replaces filter.allow)")
	bindFlagToConfig(cmd.Flags().Lookup(allowFileFlagName), filterAllowFileKey)

	cmd.Flags().StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(outputFormatKey), "output format: text or table")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), outputFormatKey)

	cmd.Flags().BoolVar(&colorFlag, colorFlagName, viper.GetBool(outputColorKey), "colour percentages when writing to a terminal")
	bindFlagToConfig(cmd.Flags().Lookup(colorFlagName), outputColorKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// analyzeArgsFromConfig resolves the run configuration from flags, env and config file.
func analyzeArgsFromConfig() (domain.AnalyzeArgs, controller.Options, error) {
	format, err := controller.ParseFormat(viper.GetString(outputFormatKey))
	if err != nil {
		return domain.AnalyzeArgs{}, controller.Options{}, err
	}

	threshold := viper.GetFloat64(filterThresholdKey)
	if threshold < 0 || threshold > 1 {
		return domain.AnalyzeArgs{}, controller.Options{}, fmt.Errorf("threshold %v out of range [0, 1]", threshold)
	}

	allow := viper.GetStringSlice(filterAllowKey)

	if allowFile := strings.TrimSpace(viper.GetString(filterAllowFileKey)); allowFile != "" {
		allow, err = adapter.LoadAllowList(m.Path(allowFile))
		if err != nil {
			return domain.AnalyzeArgs{}, controller.Options{}, fmt.Errorf("load allow-list: %w", err)
		}
	}

	args := domain.AnalyzeArgs{
		Reports:     m.Path(viper.GetString(reportsDirKey)),
		Pattern:     viper.GetString(reportsPatternKey),
		StripPrefix: viper.GetString(stripPrefixKey),
		Criteria: domain.Criteria{
			Extension: viper.GetString(filterExtensionKey),
			Threshold: threshold,
			Allow:     domain.NewAllowList(allow),
		},
		SampleLimit: viper.GetInt(sampleLimitKey),
		DetailLimit: viper.GetInt(detailLimitKey),
	}

	opts := controller.Options{
		Format:    format,
		Color:     viper.GetBool(outputColorKey),
		Threshold: threshold,
	}

	return args, opts, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
