// Package config loads the optional engine settings file. Every setting has
// a default, so a missing file configures a working engine.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the settings filename looked up when none is given.
const DefaultFile = "simmeta.yaml"

// Config carries the engine's tunable settings.
type Config struct {
	// CorpusDir is the directory persisted records live in.
	CorpusDir string `yaml:"corpus_dir"`
	// WorkflowIDPattern overrides the accepted model_workflow_id regexp.
	WorkflowIDPattern string `yaml:"workflow_id_pattern"`
	// Placeholder overrides the blank-field placeholder string.
	Placeholder string `yaml:"placeholder"`
}

// Default returns the settings used in absence of a file.
func Default() Config {
	return Config{CorpusDir: "workflow_metadata"}
}

// Load reads a settings file, filling unset values with defaults. A missing
// file is not an error; a file that fails to parse or carries an invalid
// pattern is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.CorpusDir == "" {
		cfg.CorpusDir = Default().CorpusDir
	}
	if cfg.WorkflowIDPattern != "" {
		if _, err := regexp.Compile(cfg.WorkflowIDPattern); err != nil {
			return Config{}, fmt.Errorf("config: workflow_id_pattern: %w", err)
		}
	}
	return cfg, nil
}
