package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/datakit/pkg/datafile"
)

func init() {
	rootCmd.AddCommand(newVersionsCmd())
}

func newVersionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <file>...",
		Short: "Tally map version items across many files",
		Long: `The versions command reads the version item (type 0) of each map and
reports files with no version item, several version items, a payload of
the wrong size, a nonzero item id or a version other than 1. It ends with
per-category totals and a histogram of the versions seen.

Files that cannot be opened are reported on stderr and skipped.

Example:
  dfctl versions maps/*.map
  dfctl versions maps/*.map --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersions(args)
		},
	}
}

type versionsReport struct {
	Files     []versionsFile          `json:"files"`
	Counts    map[string]int          `json:"counts"`
	Histogram []datafile.VersionCount `json:"histogram"`
}

type versionsFile struct {
	Path     string   `json:"path"`
	Findings []string `json:"findings,omitempty"`
	Versions []int32  `json:"versions,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func runVersions(args []string) error {
	t := datafile.NewTally()
	for _, path := range args {
		printVerbose("Reading %s\n", path)
		fv := t.AddFile(path, openOptions())
		if fv.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, fv.Err)
			continue
		}
		if !jsonOut {
			for _, c := range fv.Findings {
				printInfo("%s: %s\n", path, c)
			}
		}
	}

	if jsonOut {
		return printJSON(buildVersionsReport(t))
	}

	for _, c := range t.Categories() {
		printInfo("%s: %s\n", c, numbers.Sprint(t.Count(c)))
	}
	for _, h := range t.Histogram() {
		printInfo("version %d: %s\n", h.Version, numbers.Sprint(h.Count))
	}
	return nil
}

func buildVersionsReport(t *datafile.Tally) versionsReport {
	rep := versionsReport{
		Counts:    make(map[string]int),
		Histogram: t.Histogram(),
	}
	for _, c := range t.Categories() {
		rep.Counts[c.String()] = t.Count(c)
	}
	for _, f := range t.Files {
		vf := versionsFile{Path: f.Path, Versions: f.Versions}
		for _, c := range f.Findings {
			vf.Findings = append(vf.Findings, c.String())
		}
		if f.Err != nil {
			vf.Error = f.Err.Error()
		}
		rep.Files = append(rep.Files, vf)
	}
	return rep
}
