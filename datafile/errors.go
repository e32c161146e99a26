package datafile

import (
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/datakit/datafile/verify"
	"github.com/joshuapare/datakit/internal/format"
	"github.com/joshuapare/datakit/pkg/types"
)

// wrapFormatErr maps decoder and validator failures onto stable error kinds.
// Anything that is not a format sentinel came from the source.
func wrapFormatErr(err error) error {
	var verr *verify.ValidationError
	switch {
	case errors.As(err, &verr):
		return &types.Error{Kind: types.ErrKindMalformed, Msg: "malformed datafile", Err: err}
	case errors.Is(err, format.ErrTruncated):
		return &types.Error{Kind: types.ErrKindTooShort, Msg: "datafile too short", Err: err}
	case errors.Is(err, format.ErrSignatureMismatch):
		return &types.Error{Kind: types.ErrKindWrongMagic, Msg: "not a datafile", Err: err}
	case errors.Is(err, format.ErrUnsupportedVersion):
		return &types.Error{Kind: types.ErrKindUnsupportedVersion, Msg: "unsupported datafile version", Err: err}
	case errors.Is(err, format.ErrMalformedHeader):
		return &types.Error{Kind: types.ErrKindMalformedHeader, Msg: "malformed datafile header", Err: err}
	case errors.Is(err, format.ErrMalformed):
		return &types.Error{Kind: types.ErrKindMalformed, Msg: "malformed datafile", Err: err}
	default:
		return wrapIOErr(err)
	}
}

func wrapIOErr(err error) error {
	return &types.Error{Kind: types.ErrKindIO, Msg: "datafile i/o", Err: err}
}

// readFull fills p from src at off. Running out of bytes is reported as
// format.ErrTruncated so callers can tell a short file from a failing one.
func readFull(src Source, p []byte, off int64) error {
	n, err := src.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("read %d bytes at %d, got %d: %w", len(p), off, n, format.ErrTruncated)
	}
	return err
}

func outOfRange(what string, index, n int) error {
	return &types.Error{
		Kind: types.ErrKindOutOfRange,
		Msg:  fmt.Sprintf("%s index %d out of range [0, %d)", what, index, n),
	}
}
