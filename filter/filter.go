package filter

import (
	"strings"

	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
)

// Statuses is a set of test statuses to leave out of the report.
type Statuses map[models.Status]bool

// ParseStatuses parses a comma separated, case insensitive list like "passed, Pending".
func ParseStatuses(s string) Statuses {
	statuses := Statuses{}
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		statuses[models.Status(name)] = true
	}
	return statuses
}

// Apply returns the tests whose status is not in the set. The input slice is left untouched.
func Apply(tests []models.TestCase, ignored Statuses) []models.TestCase {
	if len(ignored) == 0 {
		return tests
	}

	kept := make([]models.TestCase, 0, len(tests))
	for _, test := range tests {
		if ignored[models.Status(strings.ToLower(string(test.Status)))] {
			continue
		}
		kept = append(kept, test)
	}
	return kept
}

// ApplySuites filters the tests of every suite and recomputes the per-status counters.
// Suites left without tests are kept.
func ApplySuites(suites []models.SuiteResult, ignored Statuses) []models.SuiteResult {
	if len(ignored) == 0 {
		return suites
	}

	filtered := make([]models.SuiteResult, len(suites))
	for i, suite := range suites {
		filtered[i] = suite.WithTestResults(Apply(suite.TestResults, ignored))
	}
	return filtered
}
