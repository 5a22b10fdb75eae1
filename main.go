package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-jest-html-reporter/config"
	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
	"github.com/bitrise-steplib/steps-jest-html-reporter/output"
	"github.com/bitrise-steplib/steps-jest-html-reporter/step"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Options ...
type Options struct {
	ResultsPath     string
	ConsoleLogsPath string
	RootDir         string
	WorkDir         string
	Options         map[string]string
	Verbose         bool
}

func main() {
	logger := log.NewLogger()
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "jest-html-reporter",
		Short:         "Generates an HTML report from Jest test results",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, arguments []string) error {
			logger.EnableDebugLog(opts.Verbose)
			return opts.Run(logger, cmd.InOrStdin())
		},
	}

	opts.BindFlags(cmd.Flags())

	if err := cmd.Execute(); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}

// BindFlags ...
func (o *Options) BindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.ResultsPath, "results", "-", "Aggregated test results JSON (jest --json output or reporter results), - for stdin")
	flags.StringVar(&o.ConsoleLogsPath, "console-logs", "", "Optional JSON list of {filePath, logs} console captures")
	flags.StringVar(&o.RootDir, "root-dir", "", "Directory that replaces the <rootDir> prefix of configured paths")
	flags.StringVar(&o.WorkDir, "work-dir", "", "Directory holding jesthtmlreporter.config.json or package.json (default: current directory)")
	flags.StringToStringVar(&o.Options, "option", nil, "Call-time option as key=value, repeatable")
	flags.BoolVar(&o.Verbose, "verbose", false, "Enable debug logs")
}

// Run ...
func (o *Options) Run(logger log.Logger, stdin io.Reader) error {
	workDir := o.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}
	rootDir := o.RootDir
	if rootDir == "" {
		rootDir = workDir
	}

	results, err := readResults(o.ResultsPath, stdin)
	if err != nil {
		return err
	}

	envRepository := env.NewRepository()
	pathChecker := pathutil.NewPathChecker()
	outputEnvExporter := export.NewExporter(command.NewFactory(envRepository), export.NewFileManager())

	reportStep := step.NewReportStep(
		config.NewParser(envRepository, pathChecker, workDir, logger),
		logger,
		output.NewReportWriter(fileutil.NewFileManager(), pathChecker),
		output.NewExporter(envRepository, logger, &outputEnvExporter),
		pathutil.NewPathModifier(),
	)

	if o.ConsoleLogsPath == "" {
		reportStep.ProcessResults(results, o.Options, rootDir)
		return nil
	}

	consoleLogs, err := readConsoleLogs(o.ConsoleLogsPath)
	if err != nil {
		return err
	}

	reporter := step.NewReporter(reportStep, o.Options, rootDir)
	for _, list := range consoleLogs {
		reporter.OnTestResult(models.SuiteResult{TestFilePath: list.FilePath, Console: list.Logs})
	}
	reporter.OnRunComplete(results)

	return nil
}

func readResults(pth string, stdin io.Reader) (*models.AggregatedResult, error) {
	var reader io.Reader = stdin
	if pth != "-" {
		f, err := os.Open(pth)
		if err != nil {
			return nil, fmt.Errorf("failed to open results: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		reader = f
	}

	var results models.AggregatedResult
	if err := json.NewDecoder(reader).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return &results, nil
}

func readConsoleLogs(pth string) ([]models.ConsoleLogList, error) {
	content, err := os.ReadFile(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read console logs: %w", err)
	}

	var lists []models.ConsoleLogList
	if err := json.Unmarshal(content, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode console logs: %w", err)
	}
	return lists, nil
}
