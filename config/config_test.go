package config

import (
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-jest-html-reporter/config/mocks"
	"github.com/bitrise-steplib/steps-jest-html-reporter/filter"
	"github.com/bitrise-steplib/steps-jest-html-reporter/models"
	"github.com/bitrise-steplib/steps-jest-html-reporter/sorter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_GivenNoSources_WhenProcessingConfig_ThenUsesDefaults(t *testing.T) {
	// Given
	workDir := t.TempDir()
	parser := createParser(t, nil, workDir)

	// When
	cfg, err := parser.ProcessConfig(nil)

	// Then
	require.NoError(t, err)
	want := Default()
	want.OutputPath = filepath.Join(workDir, "test-report.html")
	assert.Equal(t, want, cfg)
}

func Test_GivenConfigFileAndEnv_WhenProcessingConfig_ThenEnvWins(t *testing.T) {
	// Given
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, configFileName), `{"pageTitle": "From file", "logo": "logo.png"}`)
	parser := createParser(t, map[string]string{"JEST_HTML_REPORTER_PAGE_TITLE": "From env"}, workDir)

	// When
	cfg, err := parser.ProcessConfig(map[string]string{"pageTitle": "From option"})

	// Then
	require.NoError(t, err)
	assert.Equal(t, "From env", cfg.PageTitle)
	assert.Equal(t, "logo.png", cfg.Logo)
}

func Test_GivenConfigFileAndOption_WhenProcessingConfig_ThenOptionWins(t *testing.T) {
	// Given
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, configFileName), `{"sort": "titleasc", "includeFailureMsg": true}`)
	parser := createParser(t, nil, workDir)

	// When
	cfg, err := parser.ProcessConfig(map[string]string{"sort": "status:failed,passed"})

	// Then
	require.NoError(t, err)
	assert.Equal(t, sorter.Policy{Method: sorter.ByStatus, BucketOrder: []string{"failed", "passed", "pending", "rest"}}, cfg.Sort)
	assert.True(t, cfg.IncludeFailureMsg)
}

func Test_GivenInvalidEnvValue_WhenProcessingConfig_ThenFallsBackToNextLayer(t *testing.T) {
	// Given
	workDir := t.TempDir()
	env := map[string]string{
		"JEST_HTML_REPORTER_INCLUDE_FAILURE_MSG":               "maybe",
		"JEST_HTML_REPORTER_EXECUTION_TIME_WARNING_THRESHOLD": "soon",
		"JEST_HTML_REPORTER_THEME":                            "neonTheme",
	}
	parser := createParser(t, env, workDir)

	// When
	cfg, err := parser.ProcessConfig(map[string]string{"includeFailureMsg": "yes", "executionTimeWarningThreshold": "0.5"})

	// Then
	require.NoError(t, err)
	assert.True(t, cfg.IncludeFailureMsg)
	assert.Equal(t, 0.5, cfg.ExecutionTimeWarningThreshold)
	assert.Equal(t, "defaultTheme", cfg.Theme)
}

func Test_GivenPackageManifest_WhenNoConfigFile_ThenUsesReporterSection(t *testing.T) {
	// Given
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, manifestFileName), `{
  "name": "app",
  "jest-html-reporter": {
    "pageTitle": "Manifest title",
    "statusIgnoreFilter": "pending, todo",
    "includeStackTrace": false
  }
}`)
	parser := createParser(t, nil, workDir)

	// When
	cfg, err := parser.ProcessConfig(nil)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Manifest title", cfg.PageTitle)
	assert.Equal(t, filter.Statuses{models.StatusPending: true, models.StatusTodo: true}, cfg.StatusIgnoreFilter)
	assert.False(t, cfg.IncludeStackTrace)
}

func Test_GivenConfigFileAndManifest_WhenProcessingConfig_ThenOnlyConfigFileIsUsed(t *testing.T) {
	// Given
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, configFileName), `{"pageTitle": "Config file title"}`)
	writeFile(t, filepath.Join(workDir, manifestFileName), `{"jest-html-reporter": {"pageTitle": "Manifest title", "logo": "logo.png"}}`)
	parser := createParser(t, nil, workDir)

	// When
	cfg, err := parser.ProcessConfig(nil)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Config file title", cfg.PageTitle)
	assert.Empty(t, cfg.Logo)
}

func Test_GivenInvalidConfigFile_WhenProcessingConfig_ThenFallsBackToManifest(t *testing.T) {
	// Given
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, configFileName), `{"pageTitle": `)
	writeFile(t, filepath.Join(workDir, manifestFileName), `{"jest-html-reporter": {"pageTitle": "Manifest title"}}`)
	parser := createParser(t, nil, workDir)

	// When
	cfg, err := parser.ProcessConfig(nil)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Manifest title", cfg.PageTitle)
}

func Test_GivenAdditionalInformation_WhenProcessingConfig_ThenDecodesEntries(t *testing.T) {
	// Given
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, configFileName), `{"additionalInformation": [{"label": "Branch", "value": "main"}, {"label": "Build", "value": 42}]}`)
	parser := createParser(t, nil, workDir)

	// When
	cfg, err := parser.ProcessConfig(nil)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []AdditionalInformation{{Label: "Branch", Value: "main"}, {Label: "Build", Value: "42"}}, cfg.AdditionalInformation)
}

func Test_GivenMalformedAdditionalInformation_WhenProcessingConfig_ThenFails(t *testing.T) {
	// Given
	parser := createParser(t, map[string]string{"JEST_HTML_REPORTER_ADDITIONAL_INFORMATION": `[{"value": "main"}]`}, t.TempDir())

	// When
	_, err := parser.ProcessConfig(nil)

	// Then
	require.Error(t, err)
}

func Test_GivenPaths_WhenProcessingConfig_ThenAnchorsRelativeOnesToWorkDir(t *testing.T) {
	// Given
	workDir := t.TempDir()
	parser := createParser(t, map[string]string{"JEST_HTML_REPORTER_BOILERPLATE": "<rootDir>/boilerplate.html"}, workDir)

	// When
	cfg, err := parser.ProcessConfig(map[string]string{"outputPath": "reports/index.html", "styleOverridePath": "style.css"})

	// Then
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "reports", "index.html"), cfg.OutputPath)
	assert.Equal(t, "<rootDir>/boilerplate.html", cfg.Boilerplate)
	assert.Equal(t, "style.css", cfg.StyleOverridePath)
}

func TestKey_EnvVar(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "append", want: "JEST_HTML_REPORTER_APPEND"},
		{name: "pageTitle", want: "JEST_HTML_REPORTER_PAGE_TITLE"},
		{name: "executionTimeWarningThreshold", want: "JEST_HTML_REPORTER_EXECUTION_TIME_WARNING_THRESHOLD"},
		{name: "useCssFile", want: "JEST_HTML_REPORTER_USE_CSS_FILE"},
		{name: "statusIgnoreFilter", want: "JEST_HTML_REPORTER_STATUS_IGNORE_FILTER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key{Name: tt.name}.EnvVar())
		})
	}
}

func TestKeys_MatchInputTags(t *testing.T) {
	for _, key := range Keys {
		_, ok := keyByEnvVar(key.EnvVar())
		assert.True(t, ok, key.Name)
	}
	assert.Len(t, Keys, 20)
}

func TestKey_Normalize(t *testing.T) {
	theme, ok := keyByName("theme")
	require.True(t, ok)

	tests := []struct {
		name    string
		key     Key
		value   string
		want    string
		wantErr bool
	}{
		{name: "bool true", key: Key{Kind: KindBool}, value: "TRUE", want: "true"},
		{name: "bool yes", key: Key{Kind: KindBool}, value: "yes", want: "true"},
		{name: "bool no", key: Key{Kind: KindBool}, value: "no", want: "false"},
		{name: "bool invalid", key: Key{Kind: KindBool}, value: "1", wantErr: true},
		{name: "number", key: Key{Kind: KindNumber}, value: " 2.50 ", want: "2.5"},
		{name: "number invalid", key: Key{Kind: KindNumber}, value: "five", wantErr: true},
		{name: "array", key: Key{Kind: KindJSONArray}, value: `[{"label":"a","value":"b"}]`, want: `[{"label":"a","value":"b"}]`},
		{name: "array invalid", key: Key{Kind: KindJSONArray}, value: `{"label":"a"}`, wantErr: true},
		{name: "choice", key: theme, value: "darkTheme", want: "darkTheme"},
		{name: "choice invalid", key: theme, value: "DarkTheme", wantErr: true},
		{name: "string kept verbatim", key: Key{Kind: KindString}, value: " a b ", want: " a b "},
		{name: "empty string", key: Key{Kind: KindString}, value: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.key.Normalize(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Helpers

func createParser(t *testing.T, envValues map[string]string, workDir string) Parser {
	envRepository := mocks.NewRepository(t)
	envRepository.On("Get", mock.Anything).Return(func(key string) string {
		return envValues[key]
	})

	return NewParser(envRepository, pathutil.NewPathChecker(), workDir, log.NewLogger())
}

func writeFile(t *testing.T, pth, content string) {
	require.NoError(t, fileutil.NewFileManager().Write(pth, content, 0644))
}
