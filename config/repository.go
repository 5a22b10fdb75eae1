package config

import (
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

// Source names the layer a value was resolved from.
type Source string

// Layers, highest precedence first.
const (
	SourceEnvironment Source = "environment"
	SourceOption      Source = "option"
	SourceFile        Source = "config file"
	SourceDefault     Source = "default"
)

// layeredRepository resolves configuration keys across the environment, the call-time options,
// the config file and the defaults. Any other variable is read from the environment as is.
type layeredRepository struct {
	env     env.Repository
	options map[string]string
	file    map[string]string
	logger  log.Logger
}

func newLayeredRepository(envRepository env.Repository, options, file map[string]string, logger log.Logger) env.Repository {
	return layeredRepository{
		env:     envRepository,
		options: options,
		file:    file,
		logger:  logger,
	}
}

func (r layeredRepository) Get(envVar string) string {
	key, ok := keyByEnvVar(envVar)
	if !ok {
		return r.env.Get(envVar)
	}

	value, source := r.resolve(key)
	r.logger.Debugf("%s resolved from %s", key.Name, source)
	return value
}

func (r layeredRepository) Set(key, value string) error {
	return r.env.Set(key, value)
}

func (r layeredRepository) Unset(key string) error {
	return r.env.Unset(key)
}

func (r layeredRepository) List() []string {
	return r.env.List()
}

func (r layeredRepository) resolve(key Key) (string, Source) {
	if value := r.env.Get(key.EnvVar()); value != "" {
		if normalized, ok := r.normalize(key, value, SourceEnvironment); ok {
			return normalized, SourceEnvironment
		}
	}

	if value, ok := r.options[key.Name]; ok {
		if normalized, ok := r.normalize(key, value, SourceOption); ok {
			return normalized, SourceOption
		}
	}

	if value, ok := r.file[key.Name]; ok {
		if normalized, ok := r.normalize(key, value, SourceFile); ok {
			return normalized, SourceFile
		}
	}

	return key.Default, SourceDefault
}

func (r layeredRepository) normalize(key Key, value string, source Source) (string, bool) {
	normalized, err := key.Normalize(value)
	if err != nil {
		r.logger.Warnf("Ignoring %s from the %s: %s", key.Name, source, err)
		return "", false
	}
	return normalized, true
}
