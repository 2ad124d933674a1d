// Package main provides the bitmask compactor command line interface.
//
// The compactor stores word sequences dominated by all-0 and all-1 words,
// such as missing-value bitmasks, in a few bits per word.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanagraspace/bitmask-compactor/compactor"
)

const (
	containerExt = ".bmc"
	expandExt    = ".raw"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "compactor",
		Short: "Compact bitmasks dominated by all-0 and all-1 words",
		Long: `Bitmask Compactor (v` + compactor.Version + `)

Each input word is stored as
  '0'        the more frequent of all-0 / all-1 words
  '10'       the other one
  '11' word  anything else

Input files are read as little-endian words of --width bits.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCompactCmd(),
		newExpandCmd(),
		newStatCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "compactor %s (Go)\n", compactor.Version)
		},
	}
}

func makeExpandFilename(input string) string {
	if strings.HasSuffix(input, containerExt) {
		return strings.TrimSuffix(input, containerExt) + expandExt
	}
	return input + expandExt
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
