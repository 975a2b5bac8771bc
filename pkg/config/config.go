// Package config defines gowiki's configuration types. They are plain data
// structures; discovery, merging and validation live in internal/configloader.
package config

// MailConfig controls the e-mail styled markup output.
type MailConfig struct {
	// DataDir is the root that image paths are resolved against.
	DataDir string `yaml:"data_dir,omitempty"`

	// Logo is the header image, relative to DataDir.
	Logo string `yaml:"logo,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Format is the default output format.
	Format Format `yaml:"format,omitempty"`

	// CacheDir holds compiled documents. Empty keeps each cache file
	// beside its source.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// NoCache disables both reading and writing the compile cache.
	NoCache bool `yaml:"no_cache,omitempty"`

	// Wrap is the column plain-text output is wrapped at; 0 disables wrapping.
	Wrap int `yaml:"wrap,omitempty"`

	// Variables are substituted for {{{name}}} references when rendering.
	Variables map[string]string `yaml:"variables,omitempty"`

	// Extensions are the file extensions treated as wiki sources.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Mail configures the mail format.
	Mail MailConfig `yaml:"mail,omitempty"`

	// CLI-level options (not persisted to config files).

	// Refresh recompiles even when the cache is fresh.
	Refresh bool `yaml:"-"`
}

// DefaultExtensions returns the file extensions treated as wiki sources
// when none are configured.
func DefaultExtensions() []string {
	return []string{".wiki", ".txt"}
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Format:     FormatText,
		Extensions: DefaultExtensions(),
		LogLevel:   "info",
		Mail: MailConfig{
			Logo: "images/mail_logo.png",
		},
	}
}

// EffectiveExtensions returns the configured extensions or the defaults.
func (c *Config) EffectiveExtensions() []string {
	if c == nil || len(c.Extensions) == 0 {
		return DefaultExtensions()
	}
	return c.Extensions
}
