package format

import "errors"

var (
	// ErrSignatureMismatch indicates the magic was neither "DATA" nor "ATAD".
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer or file lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnsupportedVersion indicates a version other than 3 or 4.
	ErrUnsupportedVersion = errors.New("format: unsupported version")
	// ErrMalformedHeader indicates a size-header field failed a sanity check
	// or the planned layout does not fit 32 bits.
	ErrMalformedHeader = errors.New("format: malformed header")
	// ErrMalformed indicates an index-region structure is inconsistent.
	ErrMalformed = errors.New("format: malformed index")
)
