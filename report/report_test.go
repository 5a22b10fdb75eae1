package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-jest-html-reporter/config"
	"github.com/bitrise-steplib/steps-jest-html-reporter/document"
	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
	"github.com/bitrise-steplib/steps-jest-html-reporter/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceRootDir(t *testing.T) {
	rootDir := "/my/project/root"

	tests := []struct {
		name string
		pth  string
		want string
	}{
		{name: "replaces the token", pth: "<rootDir>/src/index.ts", want: "/my/project/root/src/index.ts"},
		{name: "keeps other paths", pth: "/src/index.ts", want: "/src/index.ts"},
		{name: "keeps relative paths", pth: "reports/index.html", want: "reports/index.html"},
		{name: "token only", pth: "<rootDir>", want: "/my/project/root"},
		{name: "empty path", pth: "", want: ""},
		{name: "normalizes the rest", pth: "<rootDir>/src/../src/index.ts", want: "/my/project/root/src/index.ts"},
		{name: "token without separator", pth: "<rootDir>reports/index.html", want: "/my/project/root/reports/index.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReplaceRootDir(rootDir, tt.pth))
		})
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		content  string
		want     string
	}{
		{
			name:     "inserts before the closing body tag",
			existing: "<html><body><p>previous</p></body></html>\n",
			content:  "<div>new</div>",
			want:     "<html><body><p>previous</p><div>new</div></body></html>\n",
		},
		{
			name:     "uses the first closing body tag",
			existing: "<body>a</body><body>b</body>",
			content:  "<i>c</i>",
			want:     "<body>a<i>c</i></body><body>b</body>",
		},
		{
			name:     "unwraps body content",
			existing: "<html><body></body></html>",
			content:  "<html><body><div>new</div></body></html>",
			want:     "<html><body><div>new</div></body></html>",
		},
		{
			name:     "appends without a closing body tag",
			existing: "plain text",
			content:  "<div>new</div>",
			want:     "plain text<div>new</div>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Splice(tt.existing, tt.content))
		})
	}
}

func TestTheme(t *testing.T) {
	for _, name := range []string{"defaultTheme", "darkTheme", "lightTheme"} {
		css, err := Theme(name)
		require.NoError(t, err, name)
		assert.Contains(t, css, ".jesthtml-content", name)
	}

	_, err := Theme("neonTheme")
	assert.Error(t, err)
}

func Test_GivenDefaultConfig_WhenRendering_ThenInlinesTheTheme(t *testing.T) {
	// Given
	cfg := testConfig(t.TempDir())
	css, err := Theme("defaultTheme")
	require.NoError(t, err)

	// When
	report, err := createAssembler(cfg, "").Render(sampleData())

	// Then
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(report.Full, `<!DOCTYPE html><html><head><meta charset="utf-8"/><title>Test Report</title><style type="text/css">`+css+`</style></head><body><div class="jesthtml-content">`))
	assert.True(t, strings.HasSuffix(report.Full, `</div></body></html>`))
	assert.True(t, strings.HasPrefix(report.Content, `<div class="jesthtml-content"><header>`))
	assert.Contains(t, report.Full, report.Content)
	assert.Empty(t, report.Assets)
}

func Test_GivenCustomScript_WhenRendering_ThenAddsTrailingScriptTag(t *testing.T) {
	// Given
	cfg := testConfig(t.TempDir())
	cfg.CustomScriptPath = "custom.js"

	// When
	report, err := createAssembler(cfg, "").Render(sampleData())

	// Then
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(report.Full, `</div><script src="custom.js"></script></body></html>`))
	assert.NotContains(t, report.Content, "custom.js")
}

func Test_GivenStyleOverride_WhenRendering_ThenLinksItInsteadOfInlining(t *testing.T) {
	// Given
	cfg := testConfig(t.TempDir())
	cfg.StyleOverridePath = "styles/override.css"

	// When
	report, err := createAssembler(cfg, "").Render(sampleData())

	// Then
	require.NoError(t, err)
	assert.Contains(t, report.Full, `<title>Test Report</title><link rel="stylesheet" type="text/css" href="styles/override.css"/></head>`)
	assert.NotContains(t, report.Full, "<style")
	assert.Empty(t, report.Assets)
}

func Test_GivenUseCSSFile_WhenGenerating_ThenWritesThemeNextToReport(t *testing.T) {
	// Given
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.UseCSSFile = true
	cfg.Theme = "darkTheme"
	css, err := Theme("darkTheme")
	require.NoError(t, err)

	// When
	report, ok := createAssembler(cfg, "").Generate(sampleData())

	// Then
	require.True(t, ok)
	assert.Contains(t, report.Full, `<link rel="stylesheet" type="text/css" href="darkTheme.css"/>`)
	assert.NotContains(t, report.Full, "<style")
	assert.Equal(t, css, readFile(t, filepath.Join(dir, "darkTheme.css")))
}

func Test_GivenUnknownTheme_WhenRendering_ThenFallsBackToEmptyStylesheet(t *testing.T) {
	// Given
	cfg := testConfig(t.TempDir())
	cfg.Theme = "neonTheme"

	// When
	report, err := createAssembler(cfg, "").Render(sampleData())

	// Then
	require.NoError(t, err)
	assert.Contains(t, report.Full, `<style type="text/css"></style>`)
}

func Test_GivenBoilerplate_WhenRendering_ThenReplacesFirstPlaceholderOnly(t *testing.T) {
	// Given
	rootDir := t.TempDir()
	writeFile(t, filepath.Join(rootDir, "boilerplate.html"), "<html><body>{jesthtmlreporter-content}|{jesthtmlreporter-content}</body></html>")
	cfg := testConfig(rootDir)
	cfg.Boilerplate = "<rootDir>/boilerplate.html"

	// When
	report, err := createAssembler(cfg, rootDir).Render(sampleData())

	// Then
	require.NoError(t, err)
	assert.Equal(t, "<html><body>"+report.Content+"|{jesthtmlreporter-content}</body></html>", report.Full)
	assert.NotContains(t, report.Full, "<style")
}

func Test_GivenMissingBoilerplate_WhenGenerating_ThenWritesNothing(t *testing.T) {
	// Given
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Boilerplate = filepath.Join(dir, "missing.html")

	// When
	_, ok := createAssembler(cfg, "").Generate(sampleData())

	// Then
	assert.False(t, ok)
	assert.NoFileExists(t, cfg.OutputPath)
}

func Test_GivenRootDirOutputPath_WhenGenerating_ThenCreatesDirectoriesAndWritesReport(t *testing.T) {
	// Given
	rootDir := t.TempDir()
	cfg := testConfig(rootDir)
	cfg.OutputPath = "<rootDir>/reports/nested/index.html"

	// When
	report, ok := createAssembler(cfg, rootDir).Generate(sampleData())

	// Then
	require.True(t, ok)
	pth := filepath.Join(rootDir, "reports", "nested", "index.html")
	assert.Equal(t, pth, report.Path)
	assert.Equal(t, report.Full, readFile(t, pth))
}

func Test_GivenAppendModeAndExistingReport_WhenGenerating_ThenSplicesContentIntoBody(t *testing.T) {
	// Given
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Append = true
	existing := "<html><head><title>Old</title></head><body><p>previous</p></body></html>\n"
	writeFile(t, cfg.OutputPath, existing)

	// When
	report, ok := createAssembler(cfg, "").Generate(sampleData())

	// Then
	require.True(t, ok)
	assert.Equal(t, "<html><head><title>Old</title></head><body><p>previous</p>"+report.Content+"</body></html>\n", readFile(t, cfg.OutputPath))
}

func Test_GivenAppendModeWithoutExistingReport_WhenGenerating_ThenWritesFullReport(t *testing.T) {
	// Given
	cfg := testConfig(t.TempDir())
	cfg.Append = true

	// When
	report, ok := createAssembler(cfg, "").Generate(sampleData())

	// Then
	require.True(t, ok)
	assert.Equal(t, report.Full, readFile(t, cfg.OutputPath))
}

func Test_GivenNoTestData_WhenGenerating_ThenLogsAndWritesNothing(t *testing.T) {
	// Given
	cfg := testConfig(t.TempDir())

	// When
	_, ok := createAssembler(cfg, "").Generate(document.Data{})

	// Then
	assert.False(t, ok)
	assert.NoFileExists(t, cfg.OutputPath)
}

func Test_GivenUnwritableOutputPath_WhenGenerating_ThenReportsFailure(t *testing.T) {
	// Given
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, "file")
	cfg := testConfig(dir)
	cfg.OutputPath = filepath.Join(blocker, "test-report.html")

	// When
	_, ok := createAssembler(cfg, "").Generate(sampleData())

	// Then
	assert.False(t, ok)
}

// Helpers

func createAssembler(cfg config.Config, rootDir string) Assembler {
	logger := log.NewLogger()
	writer := output.NewReportWriter(fileutil.NewFileManager(), pathutil.NewPathChecker())
	return NewAssembler(cfg, rootDir, document.NewBuilder(cfg, logger), writer, pathutil.NewPathModifier(), logger)
}

func testConfig(dir string) config.Config {
	cfg := config.Default()
	cfg.DateFormat = ""
	cfg.OutputPath = filepath.Join(dir, "test-report.html")
	return cfg
}

func sampleData() document.Data {
	duration := 12.0
	return document.Data{
		Results: &models.AggregatedResult{
			NumTotalTestSuites:  1,
			NumPassedTestSuites: 1,
			NumTotalTests:       1,
			NumPassedTests:      1,
			Success:             true,
			TestResults: []models.SuiteResult{
				{
					TestFilePath:    "/app/sum.test.js",
					PerfStats:       models.PerfStats{Start: 1000, End: 1012},
					TestResults:     []models.TestCase{{Title: "adds", Status: models.StatusPassed, Duration: &duration}},
					NumPassingTests: 1,
				},
			},
		},
	}
}

func writeFile(t *testing.T, pth, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(pth), 0755))
	require.NoError(t, os.WriteFile(pth, []byte(content), 0644))
}

func readFile(t *testing.T, pth string) string {
	content, err := os.ReadFile(pth)
	require.NoError(t, err)
	return string(content)
}
