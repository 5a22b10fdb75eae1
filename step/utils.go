package step

import (
	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
	"github.com/bitrise-steplib/steps-jest-html-reporter/output"
)

func printRunSummary(logger log.Logger, results models.AggregatedResult, result Result) {
	logger.Println()
	if result.TestFailed {
		logger.Errorf("Test run failed: %d of %d test(s) and %d of %d suite(s) failed",
			results.NumFailedTests, results.NumTotalTests, results.NumFailedTestSuites, results.NumTotalTestSuites)
	} else {
		logger.Infof("Test run succeeded: %d test(s) in %d suite(s)", results.NumTotalTests, results.NumTotalTestSuites)
	}

	if !result.Generated {
		return
	}

	logger.Printf("%s", colorstring.Magenta(`
The report path is available in the $` + output.ReportPathKey + ` environment variable.

If $BITRISE_DEPLOY_DIR is set, the report is copied there and its path is exported
as $` + output.DeployedReportKey + `, so the Deploy to Bitrise.io step can attach it to your build.`))
}
