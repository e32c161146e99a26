package types

import "log/slog"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindTooShort           ErrKind = iota // file ends inside the header or index region
	ErrKindWrongMagic                        // first four bytes are neither "DATA" nor "ATAD"
	ErrKindUnsupportedVersion                // version other than 3 or 4
	ErrKindMalformedHeader                   // size field sanity failure or 32-bit overflow
	ErrKindMalformed                         // index region failed structural validation
	ErrKindOutOfRange                        // caller passed an invalid item/data index
	ErrKindDataDecompress                    // blob failed to inflate to its recorded size
	ErrKindNotImplemented                    // reserved for the write path
	ErrKindIO                                // the byte source failed
	ErrKindState                             // operation on a closed reader
)

var kindNames = [...]string{
	ErrKindTooShort:           "too short",
	ErrKindWrongMagic:         "wrong magic",
	ErrKindUnsupportedVersion: "unsupported version",
	ErrKindMalformedHeader:    "malformed header",
	ErrKindMalformed:          "malformed",
	ErrKindOutOfRange:         "out of range",
	ErrKindDataDecompress:     "data decompress",
	ErrKindNotImplemented:     "not implemented",
	ErrKindIO:                 "io",
	ErrKindState:              "state",
}

func (k ErrKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrMalformed)
// holds for every structural failure regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrTooShort           = &Error{Kind: ErrKindTooShort, Msg: "datafile too short"}
	ErrWrongMagic         = &Error{Kind: ErrKindWrongMagic, Msg: "not a datafile (bad magic)"}
	ErrUnsupportedVersion = &Error{Kind: ErrKindUnsupportedVersion, Msg: "unsupported datafile version"}
	ErrMalformedHeader    = &Error{Kind: ErrKindMalformedHeader, Msg: "malformed datafile header"}
	ErrMalformed          = &Error{Kind: ErrKindMalformed, Msg: "malformed datafile"}
	ErrOutOfRange         = &Error{Kind: ErrKindOutOfRange, Msg: "index out of range"}
	ErrDataDecompress     = &Error{Kind: ErrKindDataDecompress, Msg: "data decompression failed"}
	ErrNotImplemented     = &Error{Kind: ErrKindNotImplemented, Msg: "not implemented"}
	ErrIO                 = &Error{Kind: ErrKindIO, Msg: "i/o error"}
	ErrClosed             = &Error{Kind: ErrKindState, Msg: "datafile is closed"}
)

// -----------------------------------------------------------------------------
// Records
// -----------------------------------------------------------------------------

// Item is one typed record. Data aliases the reader's index buffer and must
// not be modified or retained after Close.
type Item struct {
	TypeID uint16
	ID     uint16
	Data   []int32
}

// ItemTypeRange is a type table entry: items [Start, Start+Num) carry TypeID.
type ItemTypeRange struct {
	TypeID uint16
	Start  int
	Num    int
}

// Info summarizes a datafile header and its planned layout.
type Info struct {
	Version      int32 `json:"version"`
	Swapped      bool  `json:"swapped"`
	Size         int32 `json:"size"`
	SwapLen      int32 `json:"swaplen"`
	NumItemTypes int   `json:"num_item_types"`
	NumItems     int   `json:"num_items"`
	NumData      int   `json:"num_data"`
	SizeItems    int   `json:"size_items"`
	SizeData     int   `json:"size_data"`
	IndexSize    int64 `json:"index_size"`
	DataStart    int64 `json:"data_start"`
	FileSize     int64 `json:"file_size"`
}

// -----------------------------------------------------------------------------
// Options
// -----------------------------------------------------------------------------

// OpenOptions controls how a datafile is opened.
type OpenOptions struct {
	// Logger receives debug and error records. Nil discards them.
	Logger *slog.Logger

	// Mmap maps the file instead of reading through a file handle.
	// Item views and loaded blobs never alias the mapping.
	Mmap bool

	// MaxDataSize guards against absurd recorded blob sizes.
	// Zero selects DefaultMaxDataSize.
	MaxDataSize int

	// Strict also requires the header size field to match the size the
	// layout implies.
	Strict bool
}
