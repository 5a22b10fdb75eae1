package sorter

import (
	"sort"
	"strings"

	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
)

// Method ...
type Method string

// Sort methods
const (
	None          Method = ""
	ByStatus      Method = "status"
	ExecutionDesc Method = "executiondesc"
	ExecutionAsc  Method = "executionasc"
	TitleDesc     Method = "titledesc"
	TitleAsc      Method = "titleasc"
)

// Status buckets, in their default order.
const (
	BucketPending = "pending"
	BucketFailed  = "failed"
	BucketPassed  = "passed"
	BucketRest    = "rest"
)

var defaultBucketOrder = []string{BucketPending, BucketFailed, BucketPassed, BucketRest}

// Policy is a parsed sort setting.
type Policy struct {
	Method      Method
	BucketOrder []string
}

// ParsePolicy parses settings like "titleasc" or "status:failed,passed,pending".
// Unknown methods yield the identity policy.
func ParsePolicy(s string) Policy {
	s = strings.ToLower(strings.TrimSpace(s))
	name, order, _ := strings.Cut(s, ":")

	method := Method(strings.TrimSpace(name))
	switch method {
	case ByStatus:
		return Policy{Method: method, BucketOrder: bucketOrder(order)}
	case ExecutionDesc, ExecutionAsc, TitleDesc, TitleAsc:
		return Policy{Method: method}
	default:
		return Policy{Method: None}
	}
}

// String ...
func (p Policy) String() string {
	if p.Method != ByStatus {
		return string(p.Method)
	}
	return string(p.Method) + ":" + strings.Join(p.BucketOrder, ",")
}

func bucketOrder(explicit string) []string {
	var order []string
	seen := map[string]bool{}
	for _, name := range strings.Split(explicit, ",") {
		name = strings.TrimSpace(name)
		if !isBucket(name) || seen[name] {
			continue
		}
		seen[name] = true
		order = append(order, name)
	}
	for _, name := range defaultBucketOrder {
		if !seen[name] {
			order = append(order, name)
		}
	}
	return order
}

func isBucket(name string) bool {
	for _, bucket := range defaultBucketOrder {
		if bucket == name {
			return true
		}
	}
	return false
}

// Sort orders the suites by the policy. The input is never modified: the identity policy
// returns it as is, every other policy returns a new slice.
func Sort(suites []models.SuiteResult, policy Policy) []models.SuiteResult {
	switch policy.Method {
	case ByStatus:
		order := policy.BucketOrder
		if len(order) == 0 {
			order = defaultBucketOrder
		}
		return sortByStatus(suites, order)
	case ExecutionDesc:
		return sortByExecution(suites, true)
	case ExecutionAsc:
		return sortByExecution(suites, false)
	case TitleDesc:
		return sortByTitle(suites, true)
	case TitleAsc:
		return sortByTitle(suites, false)
	default:
		return suites
	}
}

func bucketOf(status models.Status) string {
	switch status {
	case models.StatusPending:
		return BucketPending
	case models.StatusFailed:
		return BucketFailed
	case models.StatusPassed:
		return BucketPassed
	default:
		return BucketRest
	}
}

// sortByStatus splits every suite into one fragment per non-empty status bucket.
func sortByStatus(suites []models.SuiteResult, order []string) []models.SuiteResult {
	fragments := map[string][]models.SuiteResult{}

	for _, suite := range suites {
		if len(suite.TestResults) == 0 {
			fragments[BucketRest] = append(fragments[BucketRest], suite)
			continue
		}

		tests := map[string][]models.TestCase{}
		for _, test := range suite.TestResults {
			bucket := bucketOf(test.Status)
			tests[bucket] = append(tests[bucket], test)
		}

		for _, bucket := range defaultBucketOrder {
			if len(tests[bucket]) > 0 {
				fragments[bucket] = append(fragments[bucket], suite.WithTestResults(tests[bucket]))
			}
		}
	}

	sorted := make([]models.SuiteResult, 0, len(suites))
	for _, bucket := range order {
		sorted = append(sorted, fragments[bucket]...)
	}
	return sorted
}

func sortByExecution(suites []models.SuiteResult, descending bool) []models.SuiteResult {
	sorted := copySuites(suites)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].ExecutionTime() > sorted[j].ExecutionTime()
		}
		return sorted[i].ExecutionTime() < sorted[j].ExecutionTime()
	})
	return sorted
}

func sortByTitle(suites []models.SuiteResult, descending bool) []models.SuiteResult {
	less := func(a, b string) bool {
		if descending {
			return a > b
		}
		return a < b
	}

	sorted := copySuites(suites)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i].TestFilePath, sorted[j].TestFilePath)
	})

	for i := range sorted {
		tests := append([]models.TestCase(nil), sorted[i].TestResults...)
		sort.SliceStable(tests, func(a, b int) bool {
			ancestorsA := strings.Join(tests[a].AncestorTitles, " ")
			ancestorsB := strings.Join(tests[b].AncestorTitles, " ")
			if ancestorsA != ancestorsB {
				return less(ancestorsA, ancestorsB)
			}
			return less(tests[a].Title, tests[b].Title)
		})
		if sorted[i].TestResults != nil {
			sorted[i].TestResults = tests
		}
	}

	return sorted
}

func copySuites(suites []models.SuiteResult) []models.SuiteResult {
	if suites == nil {
		return nil
	}
	return append([]models.SuiteResult(nil), suites...)
}
