package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	core "github.com/joshuapare/datakit/datafile"
)

func init() {
	rootCmd.AddCommand(newCRCCmd())
}

func newCRCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crc <file>...",
		Short: "Print the CRC-32 of whole datafiles",
		Long: `The crc command prints the IEEE CRC-32 of every byte of each file, the
checksum map servers advertise to clients. Each file must open as a valid
datafile.

Example:
  dfctl crc dm1.map ctf2.map`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCRC(args)
		},
	}
}

type crcResult struct {
	File  string `json:"file"`
	CRC   string `json:"crc,omitempty"`
	Error string `json:"error,omitempty"`
}

func runCRC(args []string) error {
	var (
		results []crcResult
		failed  int
	)
	for _, path := range args {
		crc, err := fileCRC(path)
		if err != nil {
			failed++
			results = append(results, crcResult{File: path, Error: err.Error()})
			if !jsonOut {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			}
			continue
		}
		results = append(results, crcResult{File: path, CRC: fmt.Sprintf("%08x", crc)})
		if !jsonOut {
			printInfo("%08x  %s\n", crc, path)
		}
	}

	if jsonOut {
		if err := printJSON(results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func fileCRC(path string) (uint32, error) {
	r, err := core.Open(path, openOptions())
	if err != nil {
		return 0, err
	}
	defer r.Close()
	return r.CRC()
}
