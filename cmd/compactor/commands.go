package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tanagraspace/bitmask-compactor/compactor"
)

type compactOptions struct {
	width   int
	chunk   int
	workers int
	output  string
	verbose bool
}

func newCompactCmd() *cobra.Command {
	opts := &compactOptions{}
	cmd := &cobra.Command{
		Use:   "compact <input>",
		Short: "Compact a file of words into <input>" + containerExt,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompact(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.width, "width", "w", 32, "word width in bits (8, 16, 32, 64)")
	f.IntVarP(&opts.chunk, "chunk", "c", 4096, "words per independently compacted chunk")
	f.IntVarP(&opts.workers, "workers", "j", 0, "parallel workers (0 = GOMAXPROCS)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default <input>"+containerExt+")")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print per-chunk statistics")
	return cmd
}

func runCompact(cmd *cobra.Command, inputPath string, opts *compactOptions) error {
	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("cannot open input file: %s", inputPath)
	}

	chunks, err := compactBytes(inputData, opts.width, opts.chunk, opts.workers)
	if err != nil {
		return fmt.Errorf("compaction failed: %w", err)
	}

	var out bytes.Buffer
	if err := compactor.WriteContainer(&out, opts.width, chunks); err != nil {
		return err
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = inputPath + containerExt
	}
	if err := os.WriteFile(outputPath, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("cannot write output file: %s", outputPath)
	}

	w := cmd.OutOrStdout()
	if opts.verbose {
		for i, ch := range chunks {
			fmt.Fprintf(w, "Chunk %-6d %d words, strategy %s, %d bytes\n", i, ch.Count, ch.Strategy, len(ch.Data))
		}
	}

	ratio := float64(len(inputData)) / float64(out.Len())
	fmt.Fprintf(w, "Input:       %s (%d bytes, %d words)\n", inputPath, len(inputData), compactor.TotalWords(chunks))
	fmt.Fprintf(w, "Output:      %s (%d bytes, %d chunks)\n", outputPath, out.Len(), len(chunks))
	fmt.Fprintf(w, "Ratio:       %.2fx\n", ratio)
	fmt.Fprintf(w, "Parameters:  width=%d, chunk=%d\n", opts.width, opts.chunk)
	return nil
}

type expandOptions struct {
	workers int
	output  string
}

func newExpandCmd() *cobra.Command {
	opts := &expandOptions{}
	cmd := &cobra.Command{
		Use:   "expand <input" + containerExt + ">",
		Short: "Restore the original words from a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.workers, "workers", "j", 0, "parallel workers (0 = GOMAXPROCS)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default <base>"+expandExt+")")
	return cmd
}

func runExpand(cmd *cobra.Command, inputPath string, opts *expandOptions) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("cannot open input file: %s", inputPath)
	}
	defer f.Close()

	width, chunks, err := compactor.ReadContainer(f)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	outputData, err := expandChunks(chunks, width, opts.workers)
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = makeExpandFilename(inputPath)
	}
	if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
		return fmt.Errorf("cannot write output file: %s", outputPath)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Input:       %s (%d chunks)\n", inputPath, len(chunks))
	fmt.Fprintf(w, "Output:      %s (%d bytes, %d words)\n", outputPath, len(outputData), compactor.TotalWords(chunks))
	fmt.Fprintf(w, "Parameters:  width=%d\n", width)
	return nil
}

func newStatCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "stat <input>",
		Short: "Print word statistics and the compacted size without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("cannot open input file: %s", args[0])
			}
			c, err := censusBytes(data, width)
			if err != nil {
				return err
			}

			size := c.Bytes(width)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Words:       %d (zeros %d, ones %d, literals %d)\n", c.Words(), c.Zeros, c.Ones, c.Literals)
			fmt.Fprintf(w, "Strategy:    %s\n", c.Strategy())
			fmt.Fprintf(w, "Compacted:   %d bytes (%d bits)\n", size, c.Bits(width))
			fmt.Fprintf(w, "Ratio:       %.2fx\n", float64(len(data))/float64(size))
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 32, "word width in bits (8, 16, 32, 64)")
	return cmd
}
