package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const envVarPrefix = "JEST_HTML_REPORTER_"

// Kind determines which values a key accepts.
type Kind int

// Key kinds
const (
	KindString Kind = iota
	KindBool
	KindNumber
	KindJSONArray
	KindChoice
)

// Key is one row of the configuration table.
type Key struct {
	Name    string
	Kind    Kind
	Default string
	Choices []string
}

// Keys lists every configuration key with its default value.
var Keys = []Key{
	{Name: "additionalInformation", Kind: KindJSONArray, Default: "[]"},
	{Name: "append", Kind: KindBool, Default: "false"},
	{Name: "boilerplate", Kind: KindString},
	{Name: "collapseSuitesByDefault", Kind: KindBool, Default: "false"},
	{Name: "customScriptPath", Kind: KindString},
	{Name: "dateFormat", Kind: KindString, Default: "yyyy-mm-dd HH:MM:ss"},
	{Name: "executionTimeWarningThreshold", Kind: KindNumber, Default: "5"},
	{Name: "includeConsoleLog", Kind: KindBool, Default: "false"},
	{Name: "includeFailureMsg", Kind: KindBool, Default: "false"},
	{Name: "includeStackTrace", Kind: KindBool, Default: "true"},
	{Name: "includeSuiteFailure", Kind: KindBool, Default: "false"},
	{Name: "includeObsoleteSnapshots", Kind: KindBool, Default: "false"},
	{Name: "logo", Kind: KindString},
	{Name: "outputPath", Kind: KindString, Default: "test-report.html"},
	{Name: "pageTitle", Kind: KindString, Default: "Test Report"},
	{Name: "sort", Kind: KindString},
	{Name: "statusIgnoreFilter", Kind: KindString},
	{Name: "styleOverridePath", Kind: KindString},
	{Name: "theme", Kind: KindChoice, Default: "defaultTheme", Choices: []string{"defaultTheme", "darkTheme", "lightTheme"}},
	{Name: "useCssFile", Kind: KindBool, Default: "false"},
}

var wordBoundaryPattern = regexp.MustCompile(`([a-z])([A-Z])`)

// EnvVar returns the environment variable overriding the key, e.g. JEST_HTML_REPORTER_PAGE_TITLE.
func (k Key) EnvVar() string {
	return envVarPrefix + strings.ToUpper(wordBoundaryPattern.ReplaceAllString(k.Name, "${1}_${2}"))
}

// Normalize validates a raw value for the key and returns it in the form the input parser expects.
func (k Key) Normalize(value string) (string, error) {
	switch k.Kind {
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes":
			return "true", nil
		case "false", "no":
			return "false", nil
		}
		return "", fmt.Errorf("%q is not a boolean", value)
	case KindNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return "", fmt.Errorf("%q is not a number", value)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case KindJSONArray:
		if !gjson.Valid(value) || !gjson.Parse(value).IsArray() {
			return "", fmt.Errorf("%q is not a JSON array", value)
		}
		return value, nil
	case KindChoice:
		for _, choice := range k.Choices {
			if value == choice {
				return value, nil
			}
		}
		return "", fmt.Errorf("%q is not one of: %s", value, strings.Join(k.Choices, ", "))
	default:
		return value, nil
	}
}

func keyByEnvVar(envVar string) (Key, bool) {
	for _, key := range Keys {
		if key.EnvVar() == envVar {
			return key, true
		}
	}
	return Key{}, false
}

func keyByName(name string) (Key, bool) {
	for _, key := range Keys {
		if key.Name == name {
			return key, true
		}
	}
	return Key{}, false
}
