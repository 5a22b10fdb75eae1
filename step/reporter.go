package step

import (
	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
)

// Reporter receives the results of a run incrementally: one callback per finished test file
// and a final one with the aggregated results.
type Reporter struct {
	step        ReportStep
	options     map[string]string
	rootDir     string
	consoleLogs []models.ConsoleLogList
}

// NewReporter ...
func NewReporter(step ReportStep, options map[string]string, rootDir string) *Reporter {
	return &Reporter{
		step:    step,
		options: options,
		rootDir: rootDir,
	}
}

// OnTestResult collects the console output captured for a test file.
func (r *Reporter) OnTestResult(suite models.SuiteResult) {
	if suite.Console == nil {
		return
	}
	r.consoleLogs = append(r.consoleLogs, models.ConsoleLogList{FilePath: suite.TestFilePath, Logs: suite.Console})
}

// OnRunComplete generates the report. It never fails: errors are logged.
func (r *Reporter) OnRunComplete(results *models.AggregatedResult) Result {
	return r.step.runAndExport(r.options, RunOpts{Results: results, ConsoleLogs: r.consoleLogs, RootDir: r.rootDir})
}
