// Package verify checks the structural invariants of a decoded datafile
// index region.
//
// AllInvariants runs the checks a reader needs before it can serve items
// and blobs, and stops at the first failure:
//
//  1. TypeTable: type ids in [0, 0x10000), counts in range, start indexes
//     contiguous from 0, no duplicate ids, every item covered
//  2. ItemTable: stored offsets match the record packing exactly and each
//     record fits the item region
//  3. DataTable: uncompressed sizes non-negative, offsets inside the data
//     region and non-decreasing
//  4. TypeItems: each item carries its type's id
//
// Strict adds checks that real-world files satisfy but readers do not
// depend on: the header size field (DeclaredSize) and ascending type ids
// (TypeOrder).
//
// Failures are *ValidationError values:
//
//	if err := verify.AllInvariants(idx); err != nil {
//	    var verr *verify.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Printf("%s entry %d: %s\n", verr.Table, verr.Index, verr.Message)
//	    }
//	}
//
// Every ValidationError unwraps to format.ErrMalformed.
package verify
