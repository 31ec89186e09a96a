package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to E-utilities.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "get-papers-list/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for the search-and-fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the E-utilities root; esearch.fcgi and esummary.fcgi are
	// resolved against it.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Database is the Entrez database to query (default "pubmed").
	Database string `json:"database" yaml:"database" mapstructure:"database"`

	// Tool and Email identify the caller to NCBI. Both are optional.
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty" mapstructure:"tool"`
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
}

// OutputConfig selects where records go after classification.
type OutputConfig struct {
	// File is the CSV destination. Empty means print to the console.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// JSON prints console output as indented JSON instead of text lines.
	JSON bool `json:"json" yaml:"json"`

	// RunFile is an optional YAML run record destination.
	RunFile string `json:"run_file,omitempty" yaml:"run_file,omitempty"`

	// ArchiveDB is an optional SQLite database the records are appended to.
	ArchiveDB string `json:"archive_db,omitempty" yaml:"archive_db,omitempty"`
}
