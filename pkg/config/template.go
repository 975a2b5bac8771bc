package config

// DefaultTemplateHeader returns the header written above generated configs.
func DefaultTemplateHeader() string {
	return `# gowiki configuration
# See: https://github.com/yaklabco/gowiki`
}

// GenerateTemplate returns a commented configuration file. The minimal form
// leaves every setting commented out; the full form sets each to its default.
func GenerateTemplate(full bool) []byte {
	if full {
		return []byte(DefaultTemplateHeader() + `
#
# Every setting is shown with its default value.

# Output format: text, html, mail, debug or markdown
format: text

# Directory for compiled documents; empty keeps them beside the sources
cache_dir: ""

# Disable the compile cache entirely
no_cache: false

# Wrap plain-text output at this column (0 = no wrapping)
wrap: 0

# Values for {{{name}}} references
variables:
  product: gowiki

# Extensions treated as wiki sources
extensions:
  - .wiki
  - .txt

# File patterns to skip (glob patterns)
ignore:
  - "vendor/**"
  - "node_modules/**"

# Number of parallel workers (0 = auto)
jobs: 0

# Log level: debug, info, warn or error
log_level: info

# Mail format settings
mail:
  data_dir: ""
  logo: images/mail_logo.png
`)
	}

	return []byte(DefaultTemplateHeader() + `

# Output format: text, html, mail, debug or markdown
format: text

# Directory for compiled documents; empty keeps them beside the sources
# cache_dir: .gowiki-cache

# Wrap plain-text output at this column (0 = no wrapping)
# wrap: 80

# Values for {{{name}}} references
# variables:
#   product: gowiki

# File patterns to skip (glob patterns)
# ignore:
#   - "vendor/**"

# Mail format settings
# mail:
#   data_dir: ./assets
#   logo: images/mail_logo.png
`)
}
