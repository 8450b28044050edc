package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/pureparts/pkg/formats"
)

func newScanCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file.model>",
		Short: "List the header and every index-table sentinel in a binary model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading model file: %w", err)
			}
			return printScan(cmd.OutOrStdout(), data)
		},
	}
}

// printScan reports the raw layout clues of a binary model. A bad magic
// is reported but the sentinels are still listed.
func printScan(w io.Writer, data []byte) error {
	hdr, err := formats.ParseModelHeader(data)
	if errors.Is(err, formats.ErrTruncatedModelData) {
		return err
	}
	fmt.Fprintf(w, "Size:   %d bytes\n", len(data))
	fmt.Fprintf(w, "Magic:  %d\n", hdr.Magic)
	fmt.Fprintf(w, "Opaque: %#08x\n", hdr.Opaque)
	if err != nil {
		fmt.Fprintf(w, "Header: %v\n", err)
	}

	hits := formats.ScanSentinels(data)
	fmt.Fprintf(w, "Sentinels: %d\n", len(hits))
	for _, hit := range hits {
		fmt.Fprintf(w, "  %#08x  %s\n", hit.Offset, hit.Sentinel)
	}
	return nil
}
