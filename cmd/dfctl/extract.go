package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	core "github.com/joshuapare/datakit/datafile"
)

var extractOut string

func init() {
	cmd := newExtractCmd()
	cmd.Flags().StringVarP(&extractOut, "output", "o", "", "Write the blob to this file instead of stdout")
	rootCmd.AddCommand(cmd)
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file> <index>",
		Short: "Write one decompressed data blob",
		Long: `The extract command loads data blob <index> (decompressing it in
version 4 files) and writes the raw bytes to stdout or to --output.

Example:
  dfctl extract dm1.map 3 -o tiles.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args)
		},
	}
}

func runExtract(args []string) error {
	path := args[0]
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid blob index %q: %w", args[1], err)
	}

	r, err := core.Open(path, openOptions())
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	b, err := r.DataLoad(index)
	if err != nil {
		return err
	}

	if extractOut == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	if err := os.WriteFile(extractOut, b, 0o644); err != nil {
		return err
	}
	printVerbose("Wrote %s to %s\n", formatSize(int64(len(b))), extractOut)
	return nil
}
