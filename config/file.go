package config

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/fileutil"
	"github.com/tidwall/gjson"
)

const (
	configFileName   = "jesthtmlreporter.config.json"
	manifestFileName = "package.json"
	manifestSection  = "jest-html-reporter"
)

// loadFileValues returns the key values of the first config source found in the working directory:
// the dedicated config file, else the reporter section of the project manifest.
func (p parser) loadFileValues() map[string]string {
	sources := []struct {
		name string
		path string
	}{
		{name: configFileName, path: ""},
		{name: manifestFileName, path: manifestSection},
	}

	for _, source := range sources {
		pth := filepath.Join(p.workDir, source.name)
		if exist, err := p.pathChecker.IsPathExists(pth); err != nil || !exist {
			continue
		}

		values, err := readFileValues(pth, source.path)
		if err != nil {
			p.logger.Warnf("Failed to read %s: %s", pth, err)
			continue
		}
		if values == nil {
			continue
		}

		p.logger.Printf("Using configuration from %s", pth)
		return values
	}

	return nil
}

func readFileValues(pth, section string) (map[string]string, error) {
	content, err := fileutil.ReadStringFromFile(pth)
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(content) {
		return nil, fmt.Errorf("invalid JSON")
	}

	root := gjson.Parse(content)
	if section != "" {
		root = root.Get(section)
	}
	if !root.IsObject() {
		return nil, nil
	}

	values := map[string]string{}
	for _, key := range Keys {
		result := root.Get(key.Name)
		if !result.Exists() || result.Type == gjson.Null {
			continue
		}
		if result.IsArray() || result.IsObject() {
			values[key.Name] = result.Raw
		} else {
			values[key.Name] = result.String()
		}
	}
	return values, nil
}
