package types

import "time"

// BrowserConfig holds settings for launching the automated browser session.
type BrowserConfig struct {
	// ExecPath is the Chrome or Chromium executable to launch. Empty means
	// resolve via the CHROME_PATH environment variable or a probe of
	// well-known binary names.
	ExecPath string `json:"exec_path,omitempty" yaml:"exec_path,omitempty"`

	// Headless controls whether the browser runs without a visible window.
	// Citation runs default to headful so a human can pass verification
	// challenges.
	Headless bool `json:"headless" yaml:"headless"`

	// UserAgent is the User-Agent string the browser reports. A desktop
	// Chrome string by default; automation-flagged agents attract
	// verification challenges.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// WindowWidth and WindowHeight set the browser window size (default 1280x900).
	WindowWidth  int `json:"window_width" yaml:"window_width"`
	WindowHeight int `json:"window_height" yaml:"window_height"`
}

// BrowseConfig holds shared pacing and wait settings used by both extractors.
type BrowseConfig struct {
	// NavigationTimeout bounds a single page navigation (default 30s).
	NavigationTimeout time.Duration `json:"navigation_timeout" yaml:"navigation_timeout"`

	// RenderTimeout bounds the wait for expected content to appear after a
	// navigation or click (default 5s). Expiry without content is the
	// signal that a listing is exhausted or that intervention is needed.
	RenderTimeout time.Duration `json:"render_timeout" yaml:"render_timeout"`

	// MinDelay and MaxDelay bound the randomized pause between consecutive
	// page actions. Equal values give a fixed pause.
	MinDelay time.Duration `json:"min_delay" yaml:"min_delay"`
	MaxDelay time.Duration `json:"max_delay" yaml:"max_delay"`
}

// ProfileConfig holds settings for profile listing extraction.
type ProfileConfig struct {
	BrowseConfig `yaml:",inline"`

	// MaxExpansions caps the number of show-more clicks (0 = uncapped).
	MaxExpansions int `json:"max_expansions" yaml:"max_expansions"`
}

// CitationConfig holds settings for cited-by listing extraction.
type CitationConfig struct {
	BrowseConfig `yaml:",inline"`

	// MaxPages caps the number of result pages visited (0 = uncapped).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// Dedupe removes records whose normalized title was already seen,
	// preserving first-seen order. Applied after extraction; the raw
	// record sequence is always the page-order concatenation.
	Dedupe bool `json:"dedupe" yaml:"dedupe"`
}

// ExportFormat selects the export file format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ExportConfig holds settings for result export.
type ExportConfig struct {
	// OutDir is the directory exports are written into (default "exports").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Format selects the export file format: csv, xlsx, json, or yaml.
	Format ExportFormat `json:"format" yaml:"format"`
}

// ScraperConfig groups all stage configurations, mirroring the layout of the
// scholar-scraper.yaml config file.
type ScraperConfig struct {
	Browser   BrowserConfig  `json:"browser" yaml:"browser"`
	Profile   ProfileConfig  `json:"profile" yaml:"profile"`
	Citations CitationConfig `json:"citations" yaml:"citations"`
	Export    ExportConfig   `json:"export" yaml:"export"`
}
