package datafile

import (
	"errors"
	"fmt"

	core "github.com/joshuapare/datakit/datafile"
)

// Validate opens path, which runs the header and index checks (plus the
// declared size check when opts.Strict is set), and then inflates every
// blob. All blob failures are reported together.
func Validate(path string, opts OpenOptions) error {
	r, err := core.Open(path, opts)
	if err != nil {
		return err
	}
	defer r.Close()
	return ValidateData(r)
}

// ValidateData loads and releases every blob of r.
func ValidateData(r *core.Reader) error {
	var errs []error
	for i := 0; i < r.NumData(); i++ {
		if _, err := r.DataLoad(i); err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.DataUnload(i); err != nil {
			return fmt.Errorf("unload data %d: %w", i, err)
		}
	}
	return errors.Join(errs...)
}
