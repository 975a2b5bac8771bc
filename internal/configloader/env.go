package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gowiki/pkg/config"
)

// EnvPrefix is the prefix for all gowiki environment variables.
const EnvPrefix = "GOWIKI_"

// envVarPrefix introduces variable definitions: GOWIKI_VAR_USER=ann sets
// the "user" variable.
const envVarPrefix = EnvPrefix + "VAR_"

type envSetter func(cfg *config.Config, value, name string) error

type envMapping struct {
	description string
	set         envSetter
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT": {"Output format: " + config.FormatNames(), func(cfg *config.Config, v, _ string) error {
		cfg.Format = config.Format(strings.ToLower(v))
		return nil
	}},
	"CACHE_DIR": {"Directory for compiled documents", func(cfg *config.Config, v, _ string) error {
		cfg.CacheDir = v
		return nil
	}},
	"NO_CACHE": {"Disable the compile cache: true or false", func(cfg *config.Config, v, name string) error {
		b, err := parseBool(v, name)
		cfg.NoCache = b
		return err
	}},
	"WRAP": {"Wrap plain-text output at this column (0 = off)", func(cfg *config.Config, v, name string) error {
		i, err := parseInt(v, name)
		cfg.Wrap = i
		return err
	}},
	"JOBS": {"Number of parallel workers (0 = auto)", func(cfg *config.Config, v, name string) error {
		i, err := parseInt(v, name)
		cfg.Jobs = i
		return err
	}},
	"EXTENSIONS": {"Comma-separated wiki source extensions", func(cfg *config.Config, v, _ string) error {
		cfg.Extensions = parseSliceValue(v)
		return nil
	}},
	"IGNORE": {"Comma-separated list of ignore patterns", func(cfg *config.Config, v, _ string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	"LOG_LEVEL": {"Log level: debug, info, warn or error", func(cfg *config.Config, v, _ string) error {
		cfg.LogLevel = v
		return nil
	}},
	"MAIL_DATA_DIR": {"Root directory for mail images", func(cfg *config.Config, v, _ string) error {
		cfg.Mail.DataDir = v
		return nil
	}},
	"MAIL_LOGO": {"Mail header image, relative to the data dir", func(cfg *config.Config, v, _ string) error {
		cfg.Mail.Logo = v
		return nil
	}},
}

// LoadFromEnv applies GOWIKI_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnviron(cfg, os.Environ())
}

func loadFromEnviron(cfg *config.Config, environ []string) error {
	if cfg == nil {
		return nil
	}

	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) || value == "" {
			continue
		}

		if varName, isVar := strings.CutPrefix(name, envVarPrefix); isVar {
			if varName == "" {
				continue
			}
			if cfg.Variables == nil {
				cfg.Variables = make(map[string]string)
			}
			cfg.Variables[strings.ToLower(varName)] = value
			continue
		}

		mapping, known := envMappings[strings.TrimPrefix(name, EnvPrefix)]
		if !known {
			continue
		}
		if err := mapping.set(cfg, value, name); err != nil {
			return err
		}
	}

	return nil
}

func parseBool(value, name string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
	}
	return b, nil
}

func parseInt(value, name string) (int, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q", name, value)
	}
	return i, nil
}

// parseSliceValue splits a comma-separated list, dropping empty elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings)+1)
	for suffix, mapping := range envMappings {
		vars[EnvPrefix+suffix] = mapping.description
	}
	vars[envVarPrefix+"<NAME>"] = "Value for the {{{name}}} variable"
	return vars
}
