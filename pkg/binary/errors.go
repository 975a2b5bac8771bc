package binary

import "errors"

// Sentinel errors for decoding and encoding.
var (
	// ErrBadMagic indicates the stream does not start with the WIKI magic.
	ErrBadMagic = errors.New("not a wiki binary stream")

	// ErrBadVersion indicates an unsupported format version.
	ErrBadVersion = errors.New("unsupported wiki binary version")

	// ErrTruncated indicates the stream ended inside a value.
	ErrTruncated = errors.New("truncated wiki binary stream")

	// ErrUnknownTag indicates a tag outside the tag table.
	ErrUnknownTag = errors.New("unknown node tag")

	// ErrMalformed indicates a structurally invalid stream: a bad header
	// level, a misplaced link group, excessive nesting or trailing bytes.
	ErrMalformed = errors.New("malformed wiki binary stream")

	// ErrUnencodable indicates a tree the format cannot represent, such as a
	// string holding a NUL byte.
	ErrUnencodable = errors.New("node cannot be encoded")
)
