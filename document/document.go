// Package document builds the node tree of a test report from a finished test run.
package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-jest-html-reporter/config"
	"github.com/bitrise-steplib/steps-jest-html-reporter/dateformat"
	"github.com/bitrise-steplib/steps-jest-html-reporter/filter"
	"github.com/bitrise-steplib/steps-jest-html-reporter/markup"
	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
	"github.com/bitrise-steplib/steps-jest-html-reporter/sorter"
	"golang.org/x/net/html"
)

// ErrNoTestData is returned when there is no test run to report on.
var ErrNoTestData = errors.New("no test data provided")

var (
	stackFramePattern       = regexp.MustCompile(`\n\s+at`)
	trailingNewlinesPattern = regexp.MustCompile(`\n+$`)
)

// Data is the input of a build.
type Data struct {
	Results     *models.AggregatedResult
	ConsoleLogs []models.ConsoleLogList
}

// Builder ...
type Builder interface {
	// Build returns the report content: a div.jesthtml-content element.
	Build(data Data) (*html.Node, error)
}

type builder struct {
	config config.Config
	logger log.Logger
}

// NewBuilder ...
func NewBuilder(cfg config.Config, logger log.Logger) Builder {
	return builder{
		config: cfg,
		logger: logger,
	}
}

func (b builder) Build(data Data) (*html.Node, error) {
	if data.Results.IsEmpty() {
		return nil, ErrNoTestData
	}
	results := data.Results

	content := markup.Element("div", markup.Attr("class", "jesthtml-content"))
	b.renderHeader(content)
	b.renderMetadata(content, results)

	suites := sorter.Sort(results.TestResults, b.config.Sort)
	suites = filter.ApplySuites(suites, b.config.StatusIgnoreFilter)
	b.logger.Debugf("Rendering %d suite(s) sorted by %q", len(suites), b.config.Sort.String())

	for i, suite := range suites {
		if b.isSuppressed(suite) {
			continue
		}
		b.renderSuite(content, suite, i, data.ConsoleLogs)
	}

	return content, nil
}

func (b builder) renderHeader(parent *html.Node) {
	header := markup.Append(parent, "header")
	markup.AppendText(header, "h1", b.config.PageTitle, markup.Attr("id", "title"))
	if b.config.Logo != "" {
		markup.Append(header, "img", markup.Attr("id", "logo"), markup.Attr("src", b.config.Logo))
	}
}

func (b builder) renderMetadata(parent *html.Node, results *models.AggregatedResult) {
	metadata := markup.Append(parent, "div", markup.Attr("id", "metadata-container"))

	if results.StartTime > 0 && b.config.DateFormat != "" {
		timestamp := dateformat.Format(dateformat.FromEpochMillis(results.StartTime), b.config.DateFormat)
		markup.AppendText(metadata, "div", "Started: "+timestamp, markup.Attr("id", "timestamp"))
	}

	summary := markup.Append(metadata, "div", markup.Attr("id", "summary"))

	suiteSummary := markup.Append(summary, "div", markup.Attr("id", "suite-summary"))
	renderCounters(suiteSummary, "Suites", results.NumTotalTestSuites, results.NumPassedTestSuites, results.NumFailedTestSuites, results.NumPendingTestSuites)
	if results.Snapshot != nil && results.Snapshot.Unchecked > 0 && b.config.IncludeObsoleteSnapshots {
		markup.AppendText(suiteSummary, "div", fmt.Sprintf("%d obsolete snapshots", results.Snapshot.Unchecked), markup.Attr("class", "summary-obsolete-snapshots"))
	}

	testSummary := markup.Append(summary, "div", markup.Attr("id", "test-summary"))
	renderCounters(testSummary, "Tests", results.NumTotalTests, results.NumPassedTests, results.NumFailedTests, results.NumPendingTests)

	if len(b.config.AdditionalInformation) > 0 {
		information := markup.Append(metadata, "div", markup.Attr("id", "additional-information"))
		for _, entry := range b.config.AdditionalInformation {
			item := markup.Append(information, "div", markup.Attr("class", "additional-information-item"))
			markup.AppendText(item, "span", entry.Label, markup.Attr("class", "additional-information-label"))
			markup.AppendText(item, "span", entry.Value, markup.Attr("class", "additional-information-value"))
		}
	}
}

func renderCounters(parent *html.Node, label string, total, passed, failed, pending int) {
	markup.AppendText(parent, "div", fmt.Sprintf("%s (%d)", label, total), markup.Attr("class", "summary-total"))
	markup.AppendText(parent, "div", fmt.Sprintf("%d passed", passed), markup.Attr("class", summaryClass("passed", passed)))
	markup.AppendText(parent, "div", fmt.Sprintf("%d failed", failed), markup.Attr("class", summaryClass("failed", failed)))
	markup.AppendText(parent, "div", fmt.Sprintf("%d pending", pending), markup.Attr("class", summaryClass("pending", pending)))
}

// summaryClass keeps the class strings stylesheets were written against:
// "summary-passed " for non-zero counters and "summary-passed  summary-empty" otherwise.
func summaryClass(status string, count int) string {
	empty := " summary-empty"
	if count > 0 {
		empty = ""
	}
	return "summary-" + status + " " + empty
}

func (b builder) isSuppressed(suite models.SuiteResult) bool {
	if len(suite.TestResults) > 0 {
		return false
	}
	return suite.FailureMessage == "" || !b.config.IncludeSuiteFailure
}

func (b builder) renderSuite(parent *html.Node, suite models.SuiteResult, index int, consoleLogs []models.ConsoleLogList) {
	container := markup.Append(parent, "div", markup.Attr("id", fmt.Sprintf("suite-%d", index+1)), markup.Attr("class", "suite-container"))
	b.renderSuiteHeader(container, suite, index)

	tests := markup.Append(container, "div", markup.Attr("class", "suite-tests"))

	if len(suite.TestResults) == 0 {
		result := markup.Append(tests, "div", markup.Attr("class", "test-result failed"))
		messages := markup.AppendText(result, "div", " ", markup.Attr("class", "failureMessages suiteFailure"))
		markup.AppendText(messages, "pre", markup.Sanitize(b.failureMessage(suite.FailureMessage)), markup.Attr("class", "failureMsg"))
		return
	}

	for _, test := range suite.TestResults {
		b.renderTest(tests, test)
	}

	if b.config.IncludeConsoleLog {
		renderConsoleLogs(container, suite, consoleLogs)
	}

	if suite.Snapshot != nil && suite.Snapshot.Unchecked > 0 && b.config.IncludeObsoleteSnapshots {
		renderObsoleteSnapshots(container, suite.Snapshot)
	}
}

func (b builder) renderSuiteHeader(parent *html.Node, suite models.SuiteResult, index int) {
	toggleID := fmt.Sprintf("collapsible-%d", index)
	checked := "checked"
	if b.config.CollapseSuitesByDefault {
		checked = ""
	}
	markup.Append(parent, "input", markup.Attr("id", toggleID), markup.Attr("type", "checkbox"), markup.Attr("class", "toggle"), markup.Attr("checked", checked))

	label := markup.Append(parent, "label", markup.Attr("for", toggleID))
	info := markup.Append(label, "div", markup.Attr("class", "suite-info"))
	markup.AppendText(info, "div", suite.TestFilePath, markup.Attr("class", "suite-path"))

	seconds := suite.ExecutionTime() / 1000
	timeClass := "suite-time"
	if seconds > b.config.ExecutionTimeWarningThreshold {
		timeClass += " warn"
	}
	markup.AppendText(info, "div", formatSeconds(seconds), markup.Attr("class", timeClass))
}

func (b builder) renderTest(parent *html.Node, test models.TestCase) {
	result := markup.Append(parent, "div", markup.Attr("class", "test-result "+string(test.Status)))

	info := markup.Append(result, "div", markup.Attr("class", "test-info"))
	suiteName := " "
	if len(test.AncestorTitles) > 0 {
		suiteName = strings.Join(test.AncestorTitles, " > ")
	}
	markup.AppendText(info, "div", suiteName, markup.Attr("class", "test-suitename"))
	markup.AppendText(info, "div", test.Title, markup.Attr("class", "test-title"))
	markup.AppendText(info, "div", string(test.Status), markup.Attr("class", "test-status"))
	duration := " "
	if test.Duration != nil {
		duration = formatSeconds(*test.Duration / 1000)
	}
	markup.AppendText(info, "div", duration, markup.Attr("class", "test-duration"))

	if len(test.FailureMessages) == 0 || !b.config.IncludeFailureMsg {
		return
	}

	messages := markup.AppendText(result, "div", " ", markup.Attr("class", "failureMessages"))
	for _, message := range test.FailureMessages {
		markup.AppendText(messages, "pre", markup.Sanitize(b.failureMessage(message)), markup.Attr("class", "failureMsg"))
	}
}

// failureMessage cuts the message at its first stack frame unless stack traces are included.
func (b builder) failureMessage(message string) string {
	if b.config.IncludeStackTrace {
		return message
	}
	message = stackFramePattern.Split(message, 2)[0]
	return trailingNewlinesPattern.ReplaceAllString(strings.TrimSpace(message), "")
}

func renderConsoleLogs(parent *html.Node, suite models.SuiteResult, consoleLogs []models.ConsoleLogList) {
	var logs []models.ConsoleEntry
	for _, list := range consoleLogs {
		if list.FilePath == suite.TestFilePath {
			logs = list.Logs
			break
		}
	}
	if len(logs) == 0 {
		return
	}

	container := markup.Append(parent, "div", markup.Attr("class", "suite-consolelog"))
	markup.AppendText(container, "div", "Console Log", markup.Attr("class", "suite-consolelog-header"))
	for _, entry := range logs {
		item := markup.Append(container, "div", markup.Attr("class", "suite-consolelog-item"))
		markup.AppendText(item, "pre", markup.Sanitize(entry.Origin), markup.Attr("class", "suite-consolelog-item-origin"))
		markup.AppendText(item, "pre", markup.Sanitize(entry.Message), markup.Attr("class", "suite-consolelog-item-message"))
	}
}

func renderObsoleteSnapshots(parent *html.Node, snapshot *models.SnapshotSummary) {
	container := markup.Append(parent, "div", markup.Attr("class", "suite-obsolete-snapshots"))
	markup.AppendText(container, "div", "Obsolete snapshots", markup.Attr("class", "suite-obsolete-snapshots-header"))
	item := markup.Append(container, "div", markup.Attr("class", "suite-obsolete-snapshots-item"))
	markup.AppendText(item, "pre", strings.Join(snapshot.UncheckedKeys, "\n"), markup.Attr("class", "suite-obsolete-snapshots-item-message"))
}

// formatSeconds prints the shortest decimal form of the value, without rounding.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
}
