package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// WorkspacePath is the directory containing workspace.hcl and the
	// BUILD.hcl files to evaluate.
	WorkspacePath string

	LogFormat string
	LogLevel  string

	// WatchEndpoint is the websocket endpoint of the file-watching
	// service. Empty disables the watch subscription.
	WatchEndpoint string

	// SkipSourceCheck disables the filesystem validation of literal
	// source paths.
	SkipSourceCheck bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkspacePath == "" {
		return nil, errors.New("WorkspacePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
