package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	WorkspacePath string // workspace.hcl manifest, or a directory containing one

	Cell       string   // resolve one cell; empty means every cell
	Keys       []string // section.field keys; empty means every visible key
	ExplainKey string   // print a provenance trace for this key instead of resolving
	Strict     bool     // abort on the first malformed source file

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkspacePath == "" {
		return nil, errors.New("WorkspacePath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, errors.New("WorkerCount must be at least 1")
	}

	return &cfg, nil
}
