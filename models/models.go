package models

import (
	"encoding/json"
)

//=======================================
// Test run results
//=======================================

// Status ...
type Status string

// Statuses reported by the test runner. Anything else is kept verbatim.
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
	StatusTodo    Status = "todo"
)

// TestCase is a single test (an assertion result in runner terms).
type TestCase struct {
	Title           string   `json:"title"`
	AncestorTitles  []string `json:"ancestorTitles"`
	FullName        string   `json:"fullName,omitempty"`
	Status          Status   `json:"status"`
	Duration        *float64 `json:"duration,omitempty"`
	FailureMessages []string `json:"failureMessages"`
}

// PerfStats holds the start and end of a suite run in epoch milliseconds.
type PerfStats struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// ConsoleEntry is one captured console call.
type ConsoleEntry struct {
	Message string `json:"message"`
	Origin  string `json:"origin"`
	Type    string `json:"type,omitempty"`
}

// ConsoleLogList groups the console entries captured for one test file.
type ConsoleLogList struct {
	FilePath string         `json:"filePath"`
	Logs     []ConsoleEntry `json:"logs"`
}

// SnapshotSummary ...
type SnapshotSummary struct {
	Unchecked     int      `json:"unchecked"`
	UncheckedKeys []string `json:"uncheckedKeys,omitempty"`
}

// SuiteResult is the result of one test file.
type SuiteResult struct {
	TestFilePath    string           `json:"testFilePath"`
	PerfStats       PerfStats        `json:"perfStats"`
	TestResults     []TestCase       `json:"testResults"`
	FailureMessage  string           `json:"failureMessage,omitempty"`
	Console         []ConsoleEntry   `json:"console,omitempty"`
	NumPassingTests int              `json:"numPassingTests"`
	NumFailingTests int              `json:"numFailingTests"`
	NumPendingTests int              `json:"numPendingTests"`
	NumTodoTests    int              `json:"numTodoTests"`
	Snapshot        *SnapshotSummary `json:"snapshot,omitempty"`
}

// ExecutionTime returns the suite run time in milliseconds.
func (s SuiteResult) ExecutionTime() float64 {
	return s.PerfStats.End - s.PerfStats.Start
}

// WithTestResults returns a copy of the suite carrying only the given tests, with the
// per-status counters recomputed from them.
func (s SuiteResult) WithTestResults(tests []TestCase) SuiteResult {
	s.TestResults = tests
	s.NumPassingTests, s.NumFailingTests, s.NumPendingTests, s.NumTodoTests = 0, 0, 0, 0
	for _, test := range tests {
		switch test.Status {
		case StatusPassed:
			s.NumPassingTests++
		case StatusFailed:
			s.NumFailingTests++
		case StatusPending:
			s.NumPendingTests++
		case StatusTodo:
			s.NumTodoTests++
		}
	}
	return s
}

// UnmarshalJSON accepts both the reporter callback shape and the `jest --json` output shape.
func (s *SuiteResult) UnmarshalJSON(data []byte) error {
	type suiteAlias SuiteResult
	var raw struct {
		suiteAlias
		Name             string     `json:"name"`
		StartTime        float64    `json:"startTime"`
		EndTime          float64    `json:"endTime"`
		AssertionResults []TestCase `json:"assertionResults"`
		Message          string     `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	suite := SuiteResult(raw.suiteAlias)
	if suite.TestFilePath == "" {
		suite.TestFilePath = raw.Name
	}
	if suite.PerfStats == (PerfStats{}) {
		suite.PerfStats = PerfStats{Start: raw.StartTime, End: raw.EndTime}
	}
	if suite.TestResults == nil && raw.AssertionResults != nil {
		suite = suite.WithTestResults(raw.AssertionResults)
	}
	if suite.FailureMessage == "" {
		suite.FailureMessage = raw.Message
	}

	*s = suite
	return nil
}

// AggregatedResult is the whole test run.
type AggregatedResult struct {
	NumTotalTestSuites   int              `json:"numTotalTestSuites"`
	NumPassedTestSuites  int              `json:"numPassedTestSuites"`
	NumFailedTestSuites  int              `json:"numFailedTestSuites"`
	NumPendingTestSuites int              `json:"numPendingTestSuites"`
	NumTotalTests        int              `json:"numTotalTests"`
	NumPassedTests       int              `json:"numPassedTests"`
	NumFailedTests       int              `json:"numFailedTests"`
	NumPendingTests      int              `json:"numPendingTests"`
	NumTodoTests         int              `json:"numTodoTests"`
	StartTime            float64          `json:"startTime"`
	Success              bool             `json:"success"`
	Snapshot             *SnapshotSummary `json:"snapshot,omitempty"`
	TestResults          []SuiteResult    `json:"testResults"`

	// number of properties present in the decoded document
	decodedProperties int
}

// UnmarshalJSON ...
func (r *AggregatedResult) UnmarshalJSON(data []byte) error {
	type resultAlias AggregatedResult
	var result resultAlias
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}

	var properties map[string]json.RawMessage
	if err := json.Unmarshal(data, &properties); err != nil {
		return err
	}

	*r = AggregatedResult(result)
	r.decodedProperties = len(properties)
	return nil
}

// IsEmpty reports whether the result carries no data at all. A decoded result is empty only
// when the document had no properties, even if every property held its zero value.
func (r *AggregatedResult) IsEmpty() bool {
	if r == nil {
		return true
	}
	if r.decodedProperties > 0 {
		return false
	}
	return r.NumTotalTestSuites == 0 && r.NumPassedTestSuites == 0 && r.NumFailedTestSuites == 0 &&
		r.NumPendingTestSuites == 0 && r.NumTotalTests == 0 && r.NumPassedTests == 0 &&
		r.NumFailedTests == 0 && r.NumPendingTests == 0 && r.NumTodoTests == 0 &&
		r.StartTime == 0 && !r.Success && r.Snapshot == nil && r.TestResults == nil
}

// Failed reports whether any test or suite failed.
func (r AggregatedResult) Failed() bool {
	return r.NumFailedTests > 0 || r.NumFailedTestSuites > 0
}

// ConsoleLogs collects the console entries embedded in the suites.
func (r AggregatedResult) ConsoleLogs() []ConsoleLogList {
	var lists []ConsoleLogList
	for _, suite := range r.TestResults {
		if len(suite.Console) == 0 {
			continue
		}
		lists = append(lists, ConsoleLogList{FilePath: suite.TestFilePath, Logs: suite.Console})
	}
	return lists
}
