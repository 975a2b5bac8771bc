package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Compilation fields.
	FieldCache    = "cache"
	FieldCacheHit = "cache_hit"
	FieldNodes    = "nodes"
	FieldBytes    = "bytes"
	FieldFormat   = "format"
	FieldJobs     = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesCompiled   = "files_compiled"
	FieldFilesFailed     = "files_failed"
	FieldCacheHits       = "cache_hits"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Configuration fields.
	FieldConfig = "config"
	FieldSource = "source"
)
