// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AIConfig holds settings for calls to the generative-text service.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Endpoint overrides the Messages API URL (proxies, tests).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// MaxTokens caps the length of a generated document (default 8192).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout bounds one generation or edit call (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// EditingConfig holds settings for interactive editing sessions.
type EditingConfig struct {
	// CommitThreshold is the size change, in runes, a direct edit must
	// exceed before it becomes an undo step (default 40).
	CommitThreshold int `json:"commit_threshold" yaml:"commit_threshold" mapstructure:"commit_threshold"`
}

// ExportFormat selects the encoding of an exported document description.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

// ExportConfig holds settings for the assembly/export stage.
type ExportConfig struct {
	// OutputDir is the directory the PDF renderer picks descriptions up from.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Format selects json or yaml.
	Format ExportFormat `json:"format" yaml:"format" mapstructure:"format"`

	// LinesPerPage and CharsPerLine drive the page-break estimate.
	LinesPerPage int `json:"lines_per_page" yaml:"lines_per_page" mapstructure:"lines_per_page"`
	CharsPerLine int `json:"chars_per_line" yaml:"chars_per_line" mapstructure:"chars_per_line"`
}

// ArchiveConfig holds settings for the local document archive.
type ArchiveConfig struct {
	// Path is the SQLite database file (default "drafts/lexdraft.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// TemplatesConfig holds settings for the template store.
type TemplatesConfig struct {
	// Dir is an optional directory of YAML templates that extends or
	// overrides the embedded set.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`
}

// LogConfig holds settings for structured logging.
type LogConfig struct {
	// Level is debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from lexdraft.yaml and the environment.
type Config struct {
	AI        AIConfig        `json:"ai" yaml:"ai" mapstructure:"ai"`
	Editing   EditingConfig   `json:"editing" yaml:"editing" mapstructure:"editing"`
	Export    ExportConfig    `json:"export" yaml:"export" mapstructure:"export"`
	Archive   ArchiveConfig   `json:"archive" yaml:"archive" mapstructure:"archive"`
	Templates TemplatesConfig `json:"templates" yaml:"templates" mapstructure:"templates"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
