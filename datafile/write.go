package datafile

import (
	"io"

	"github.com/joshuapare/datakit/pkg/types"
)

// Write serializes df. Encoding datafiles is not supported yet; Write
// always fails with types.ErrNotImplemented.
func Write(w io.Writer, df Datafile) error {
	return &types.Error{Kind: types.ErrKindNotImplemented, Msg: "datafile write is not implemented"}
}
