package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	core "github.com/joshuapare/datakit/datafile"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every item type, item payload and blob",
		Long: `The dump command prints the header, then each item type with its items
and payload words (hex, decimal and packed text), then each blob's size.
Blobs under 256 bytes are hex dumped as well.

Example:
  dfctl dump dm1.map
  dfctl dump dm1.map | less`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

func runDump(args []string) error {
	path := args[0]
	printVerbose("Opening datafile: %s\n", path)

	r, err := core.Open(path, openOptions())
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	return core.Dump(os.Stdout, r)
}
