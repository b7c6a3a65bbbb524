package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citegraph/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// RequestsPerSecond caps the client-side request rate against one API.
	// Zero disables rate limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// CollectConfig holds settings for the OpenAlex collection stage.
type CollectConfig struct {
	HTTPConfig `yaml:",inline"`

	// Filter is the OpenAlex filter expression: field-equality predicates
	// joined by commas (e.g. "publication_year:2024,primary_topic.field.id:fields/17").
	Filter string `json:"filter" yaml:"filter"`

	// Select lists the work fields requested from the API.
	Select []string `json:"select" yaml:"select"`

	// Sort is the result ordering (e.g. "publication_year:desc").
	Sort string `json:"sort" yaml:"sort"`

	// PerPage is the page size for paginated queries (default 25).
	PerPage int `json:"per_page" yaml:"per_page"`

	// Email is sent as the mailto parameter for polite pool access.
	Email string `json:"email" yaml:"email"`

	// UseBrowser selects the headless-browser page fetcher instead of the
	// plain HTTP client.
	UseBrowser bool `json:"use_browser" yaml:"use_browser"`

	// CitedBy enables per-work cited-by enrichment after collection.
	CitedBy bool `json:"cited_by" yaml:"cited_by"`

	// CitedByDelay is the pause between consecutive cited-by queries (default 1s).
	CitedByDelay time.Duration `json:"cited_by_delay" yaml:"cited_by_delay"`

	// OutputFile is the publications CSV path (default "openalex_works.csv").
	OutputFile string `json:"output_file" yaml:"output_file"`
}

// EdgesConfig holds settings for the OpenCitations edge-extraction stage.
type EdgesConfig struct {
	HTTPConfig `yaml:",inline"`

	// SeedBaseURL is the base URL or directory holding per-area seed CSVs
	// (<base>/<area>-out-papers.csv).
	SeedBaseURL string `json:"seed_base_url" yaml:"seed_base_url"`

	// SeedColumn is the zero-based column index of the DOI in seed CSVs (default 5).
	SeedColumn int `json:"seed_column" yaml:"seed_column"`

	// Workers is the fixed size of the edge-collection worker pool (default 10).
	// It is a tunable ceiling, never derived from the input size.
	Workers int `json:"workers" yaml:"workers"`

	// Token is the optional OpenCitations access token. Blank means
	// unauthenticated requests.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// OutputFile is the edge-list CSV path (default "citations_edgelist.csv").
	OutputFile string `json:"output_file" yaml:"output_file"`

	// ReportFile is the YAML run-report path. Blank disables the report.
	ReportFile string `json:"report_file,omitempty" yaml:"report_file,omitempty"`
}

// GraphConfig holds settings for the graph-partitioning stage.
type GraphConfig struct {
	// InputFile is the edge-list CSV to partition.
	InputFile string `json:"input_file" yaml:"input_file"`

	// OutputDir is the directory receiving per-area GEXF files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Suffix is appended to the area key in graph file names:
	// <area>_<suffix>.gexf (default "citations").
	Suffix string `json:"suffix" yaml:"suffix"`
}

// StoreConfig holds settings for the SQLite run store.
type StoreConfig struct {
	// DataDir is the base directory for pipeline data (contains index/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// LoggingConfig holds settings for the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// Format is the output format: json or console.
	Format string `json:"format" yaml:"format"`

	// File is an optional log file path; blank logs to stderr.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Collect CollectConfig `json:"collect" yaml:"collect"`
	Edges   EdgesConfig   `json:"edges" yaml:"edges"`
	Graph   GraphConfig   `json:"graph" yaml:"graph"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}
