/*
Package datafile provides whole-file helpers on top of the core reader: one
call per task, each opening the file, doing its work and closing it again.

# Validation

	if err := datafile.Validate("dm1.map", datafile.OpenOptions{Strict: true}); err != nil {
	    log.Fatal(err)
	}

Validate runs every open-time check and then inflates each blob, so a file
that passes can be read completely.

# Statistics

	st, err := datafile.Inspect("dm1.map", datafile.OpenOptions{})
	fmt.Println(st.Info.NumItems, st.CRC)

# Map versions

VersionTally scans the version item (type 0) of many map files and counts
the anomalies a map loader would trip over:

	t := datafile.VersionTally(paths, datafile.OpenOptions{})
	for _, c := range t.Categories() {
	    fmt.Printf("%s: %d\n", c, t.Count(c))
	}

Files that fail to open are recorded in the tally and do not stop the scan.
*/
package datafile
