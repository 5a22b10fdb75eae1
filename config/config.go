package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-jest-html-reporter/filter"
	"github.com/bitrise-steplib/steps-jest-html-reporter/sorter"
	"github.com/tidwall/gjson"
)

// RootDirToken is the path prefix replaced by the project root directory.
const RootDirToken = "<rootDir>"

// Input ...
type Input struct {
	// Document
	PageTitle                string `env:"JEST_HTML_REPORTER_PAGE_TITLE"`
	Logo                     string `env:"JEST_HTML_REPORTER_LOGO"`
	DateFormat               string `env:"JEST_HTML_REPORTER_DATE_FORMAT"`
	AdditionalInformation    string `env:"JEST_HTML_REPORTER_ADDITIONAL_INFORMATION"`
	CollapseSuitesByDefault  bool   `env:"JEST_HTML_REPORTER_COLLAPSE_SUITES_BY_DEFAULT"`
	IncludeConsoleLog        bool   `env:"JEST_HTML_REPORTER_INCLUDE_CONSOLE_LOG"`
	IncludeFailureMsg        bool   `env:"JEST_HTML_REPORTER_INCLUDE_FAILURE_MSG"`
	IncludeStackTrace        bool   `env:"JEST_HTML_REPORTER_INCLUDE_STACK_TRACE"`
	IncludeSuiteFailure      bool   `env:"JEST_HTML_REPORTER_INCLUDE_SUITE_FAILURE"`
	IncludeObsoleteSnapshots bool   `env:"JEST_HTML_REPORTER_INCLUDE_OBSOLETE_SNAPSHOTS"`

	ExecutionTimeWarningThreshold float64 `env:"JEST_HTML_REPORTER_EXECUTION_TIME_WARNING_THRESHOLD"`
	Sort                          string  `env:"JEST_HTML_REPORTER_SORT"`
	StatusIgnoreFilter            string  `env:"JEST_HTML_REPORTER_STATUS_IGNORE_FILTER"`

	// Assembly
	OutputPath        string `env:"JEST_HTML_REPORTER_OUTPUT_PATH,required"`
	Append            bool   `env:"JEST_HTML_REPORTER_APPEND"`
	Boilerplate       string `env:"JEST_HTML_REPORTER_BOILERPLATE"`
	CustomScriptPath  string `env:"JEST_HTML_REPORTER_CUSTOM_SCRIPT_PATH"`
	StyleOverridePath string `env:"JEST_HTML_REPORTER_STYLE_OVERRIDE_PATH"`
	Theme             string `env:"JEST_HTML_REPORTER_THEME,opt[defaultTheme,darkTheme,lightTheme]"`
	UseCSSFile        bool   `env:"JEST_HTML_REPORTER_USE_CSS_FILE"`

	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// AdditionalInformation is a labelled value shown next to the summary.
type AdditionalInformation struct {
	Label string
	Value string
}

// Config ...
type Config struct {
	PageTitle                     string
	Logo                          string
	DateFormat                    string
	AdditionalInformation         []AdditionalInformation
	CollapseSuitesByDefault       bool
	IncludeConsoleLog             bool
	IncludeFailureMsg             bool
	IncludeStackTrace             bool
	IncludeSuiteFailure           bool
	IncludeObsoleteSnapshots      bool
	ExecutionTimeWarningThreshold float64
	Sort                          sorter.Policy
	StatusIgnoreFilter            filter.Statuses

	OutputPath        string
	Append            bool
	Boilerplate       string
	CustomScriptPath  string
	StyleOverridePath string
	Theme             string
	UseCSSFile        bool

	DeployDir string
}

// Default returns the configuration used when no source sets any key.
func Default() Config {
	return Config{
		PageTitle:                     "Test Report",
		DateFormat:                    "yyyy-mm-dd HH:MM:ss",
		IncludeStackTrace:             true,
		ExecutionTimeWarningThreshold: 5,
		StatusIgnoreFilter:            filter.Statuses{},
		OutputPath:                    "test-report.html",
		Theme:                         "defaultTheme",
	}
}

// Parser ...
type Parser interface {
	// ProcessConfig resolves every key from the environment, the given call-time options,
	// the config file and the defaults, in this order of precedence.
	ProcessConfig(options map[string]string) (Config, error)
}

type parser struct {
	envRepository env.Repository
	pathChecker   pathutil.PathChecker
	workDir       string
	logger        log.Logger
}

// NewParser ...
func NewParser(envRepository env.Repository, pathChecker pathutil.PathChecker, workDir string, logger log.Logger) Parser {
	return parser{
		envRepository: envRepository,
		pathChecker:   pathChecker,
		workDir:       workDir,
		logger:        logger,
	}
}

func (p parser) ProcessConfig(options map[string]string) (Config, error) {
	for name := range options {
		if _, ok := keyByName(name); !ok {
			p.logger.Warnf("Unknown option: %s", name)
		}
	}

	repository := newLayeredRepository(p.envRepository, options, p.loadFileValues(), p.logger)

	var input Input
	if err := stepconf.NewInputParser(repository).Parse(&input); err != nil {
		return Config{}, fmt.Errorf("issue with input: %w", err)
	}
	stepconf.Print(input)

	additionalInformation, err := parseAdditionalInformation(input.AdditionalInformation)
	if err != nil {
		return Config{}, fmt.Errorf("invalid additionalInformation: %w", err)
	}

	return Config{
		PageTitle:                     input.PageTitle,
		Logo:                          input.Logo,
		DateFormat:                    input.DateFormat,
		AdditionalInformation:         additionalInformation,
		CollapseSuitesByDefault:       input.CollapseSuitesByDefault,
		IncludeConsoleLog:             input.IncludeConsoleLog,
		IncludeFailureMsg:             input.IncludeFailureMsg,
		IncludeStackTrace:             input.IncludeStackTrace,
		IncludeSuiteFailure:           input.IncludeSuiteFailure,
		IncludeObsoleteSnapshots:      input.IncludeObsoleteSnapshots,
		ExecutionTimeWarningThreshold: input.ExecutionTimeWarningThreshold,
		Sort:                          sorter.ParsePolicy(input.Sort),
		StatusIgnoreFilter:            filter.ParseStatuses(input.StatusIgnoreFilter),
		OutputPath:                    p.relativeToWorkDir(input.OutputPath),
		Append:                        input.Append,
		Boilerplate:                   p.relativeToWorkDir(input.Boilerplate),
		CustomScriptPath:              input.CustomScriptPath,
		StyleOverridePath:             input.StyleOverridePath,
		Theme:                         input.Theme,
		UseCSSFile:                    input.UseCSSFile,
		DeployDir:                     input.DeployDir,
	}, nil
}

// relativeToWorkDir anchors relative file paths to the working directory. Paths starting with
// the root dir token are resolved later, against the project root.
func (p parser) relativeToWorkDir(pth string) string {
	if pth == "" || filepath.IsAbs(pth) || strings.HasPrefix(pth, RootDirToken) || p.workDir == "" {
		return pth
	}
	return filepath.Join(p.workDir, pth)
}

func parseAdditionalInformation(raw string) ([]AdditionalInformation, error) {
	if raw == "" {
		return nil, nil
	}

	var entries []AdditionalInformation
	for i, entry := range gjson.Parse(raw).Array() {
		label, value := entry.Get("label"), entry.Get("value")
		if !entry.IsObject() || label.Type != gjson.String || !value.Exists() {
			return nil, fmt.Errorf("entry %d: expected {\"label\": string, \"value\": string}", i)
		}
		entries = append(entries, AdditionalInformation{Label: label.String(), Value: value.String()})
	}
	return entries, nil
}
