// Package types defines the shared vocabulary of datakit: typed errors with
// stable kinds, item and header records, and open options.
//
// Callers branch on error kinds rather than text:
//
//	df, err := datafile.Open(path, types.OpenOptions{})
//	if errors.Is(err, types.ErrMalformed) {
//	    // corrupt or hostile index region
//	}
//
// This package has no dependencies beyond the standard library.
package types
