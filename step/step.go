package step

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-jest-html-reporter/config"
	"github.com/bitrise-steplib/steps-jest-html-reporter/document"
	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
	"github.com/bitrise-steplib/steps-jest-html-reporter/output"
	"github.com/bitrise-steplib/steps-jest-html-reporter/report"
)

// RunOpts ...
type RunOpts struct {
	Results     *models.AggregatedResult
	ConsoleLogs []models.ConsoleLogList
	// RootDir replaces the <rootDir> prefix of configured paths.
	RootDir string
}

// Result ...
type Result struct {
	ReportPath string
	Generated  bool
	TestFailed bool
}

// ReportStep ...
type ReportStep struct {
	configParser   config.Parser
	logger         log.Logger
	reportWriter   output.ReportWriter
	outputExporter output.Exporter
	pathModifier   pathutil.PathModifier
}

// NewReportStep ...
func NewReportStep(configParser config.Parser, logger log.Logger, reportWriter output.ReportWriter, outputExporter output.Exporter, pathModifier pathutil.PathModifier) ReportStep {
	return ReportStep{
		configParser:   configParser,
		logger:         logger,
		reportWriter:   reportWriter,
		outputExporter: outputExporter,
		pathModifier:   pathModifier,
	}
}

// ProcessConfig ...
func (s ReportStep) ProcessConfig(options map[string]string) (config.Config, error) {
	s.logger.Println()
	s.logger.Infof("Resolving configuration:")

	cfg, err := s.configParser.ProcessConfig(options)
	if err != nil {
		return config.Config{}, err
	}
	s.logger.Println()

	return cfg, nil
}

// Run generates the report. Generation failures are logged and reported through Result.Generated.
func (s ReportStep) Run(cfg config.Config, opts RunOpts) Result {
	s.logger.Infof("Generating report:")

	builder := document.NewBuilder(cfg, s.logger)
	assembler := report.NewAssembler(cfg, opts.RootDir, builder, s.reportWriter, s.pathModifier, s.logger)
	generated, ok := assembler.Generate(document.Data{Results: opts.Results, ConsoleLogs: opts.ConsoleLogs})

	result := Result{
		ReportPath: generated.Path,
		Generated:  ok,
	}
	if opts.Results != nil {
		result.TestFailed = opts.Results.Failed()
		printRunSummary(s.logger, *opts.Results, result)
	}

	return result
}

// Export ...
func (s ReportStep) Export(cfg config.Config, result Result) error {
	s.outputExporter.ExportTestRunResult(result.TestFailed)

	if !result.Generated {
		return nil
	}

	return s.outputExporter.ExportReport(cfg.DeployDir, result.ReportPath)
}

// ProcessResults generates a report from a finished run and hands the results back unchanged,
// the way a results processor is expected to.
func (s ReportStep) ProcessResults(results *models.AggregatedResult, options map[string]string, rootDir string) *models.AggregatedResult {
	var consoleLogs []models.ConsoleLogList
	if results != nil {
		consoleLogs = results.ConsoleLogs()
	}

	s.runAndExport(options, RunOpts{Results: results, ConsoleLogs: consoleLogs, RootDir: rootDir})
	return results
}

// runAndExport chains the phases and absorbs every error into a log line.
func (s ReportStep) runAndExport(options map[string]string, opts RunOpts) Result {
	cfg, err := s.ProcessConfig(options)
	if err != nil {
		s.logger.Errorf("%s", fmt.Errorf("failed to process configuration: %w", err))
		return Result{}
	}

	result := s.Run(cfg, opts)

	if err := s.Export(cfg, result); err != nil {
		s.logger.Warnf("Failed to export outputs: %s", err)
	}

	return result
}
