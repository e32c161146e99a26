package datafile

import "github.com/joshuapare/datakit/pkg/types"

// OpenOptions controls how files are opened (alias of types.OpenOptions).
type OpenOptions = types.OpenOptions

// Info is the header summary (alias of types.Info).
type Info = types.Info

// Item is one typed record (alias of types.Item).
type Item = types.Item
