package output

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

// Output keys
const (
	TestResultKey       = "JEST_HTML_REPORTER_TEST_RESULT"
	ReportPathKey       = "JEST_HTML_REPORTER_REPORT_PATH"
	DeployedReportKey   = "BITRISE_HTML_TEST_REPORT_PATH"
	testResultSucceeded = "succeeded"
	testResultFailed    = "failed"
)

// OutputExporter is implemented by *export.Exporter.
type OutputExporter interface {
	ExportOutputFile(key, sourcePath, destinationPath string) error
}

// Exporter ...
type Exporter interface {
	ExportTestRunResult(failed bool)
	ExportReport(deployDir, reportPath string) error
}

type exporter struct {
	envRepository  env.Repository
	logger         log.Logger
	outputExporter OutputExporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, outputExporter OutputExporter) Exporter {
	return &exporter{
		envRepository:  envRepository,
		logger:         logger,
		outputExporter: outputExporter,
	}
}

func (e exporter) ExportTestRunResult(failed bool) {
	status := testResultSucceeded
	if failed {
		status = testResultFailed
	}
	if err := e.envRepository.Set(TestResultKey, status); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", TestResultKey, err)
	}
}

// ExportReport exposes the report path and, when a deploy dir is given, copies the report there.
func (e exporter) ExportReport(deployDir, reportPath string) error {
	if err := e.envRepository.Set(ReportPathKey, reportPath); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", ReportPathKey, err)
	}

	if deployDir == "" {
		return nil
	}

	deployPth := filepath.Join(deployDir, filepath.Base(reportPath))
	if err := e.outputExporter.ExportOutputFile(DeployedReportKey, reportPath, deployPth); err != nil {
		return fmt.Errorf("failed to export report from (%s) to (%s): %w", reportPath, deployPth, err)
	}

	e.logger.Donef("The report is available in the deploy dir: %s", deployPth)
	return nil
}
