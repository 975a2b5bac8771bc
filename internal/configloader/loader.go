// Package configloader resolves gowiki's configuration: XDG-style discovery,
// hierarchical merging, GOWIKI_* environment overrides, validation, and
// writing starter config files.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gowiki/pkg/config"
	"github.com/yaklabco/gowiki/pkg/fsutil"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config.
	ExplicitPath string

	// IgnoreSystemConfig skips the system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips the user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips the project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips GOWIKI_* environment variables.
	IgnoreEnv bool

	// CLIConfig holds values from command-line flags; they win over
	// everything else.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and where it came from.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were loaded, lowest precedence first.
	LoadedFrom []string

	// Warnings contains non-fatal issues.
	Warnings []string
}

// Load resolves the final configuration. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOWIKI_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gowiki.yml, searched upward)
//  5. User config ($XDG_CONFIG_HOME/gowiki/config.yaml)
//  6. System config (/etc/gowiki/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}

		fileCfg, err := loadConfigFile(ctx, layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}

		validation := ValidateWithFile(fileCfg, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

func loadConfigFile(ctx context.Context, path string) (*config.Config, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
