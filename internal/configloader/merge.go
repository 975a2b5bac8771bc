package configloader

import (
	"maps"
	"slices"

	"github.com/yaklabco/gowiki/pkg/config"
)

// merge combines two configurations, override taking precedence:
//   - scalars overwrite when set to a non-zero value
//   - booleans can only be switched on
//   - variables merge key by key
//   - slices replace the base entirely when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.CacheDir != "" {
		result.CacheDir = override.CacheDir
	}
	if override.Wrap != 0 {
		result.Wrap = override.Wrap
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Mail.DataDir != "" {
		result.Mail.DataDir = override.Mail.DataDir
	}
	if override.Mail.Logo != "" {
		result.Mail.Logo = override.Mail.Logo
	}

	if override.NoCache {
		result.NoCache = true
	}
	if override.Refresh {
		result.Refresh = true
	}

	if base.Variables != nil || override.Variables != nil {
		result.Variables = make(map[string]string, len(base.Variables)+len(override.Variables))
		maps.Copy(result.Variables, base.Variables)
		maps.Copy(result.Variables, override.Variables)
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return &result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
