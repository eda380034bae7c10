package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-blosc/filter"
	"github.com/cwbudde/algo-blosc/internal/kernel/registry"
	"github.com/cwbudde/algo-blosc/shuffle"
)

func printReport(w io.Writer, s settings, rows []row) error {
	if _, err := fmt.Fprintf(w, "codec=%s typesize=%d blocksize=%d\n\n", s.Codec, s.TypeSize, s.BlockSize); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Pipeline\tBlocks\tBytes\tCompressed\tRatio\tEntropy In\tEntropy Out\tTime\n")
	fmt.Fprintf(tw, "--------\t------\t-----\t----------\t-----\t----------\t-----------\t----\n")
	for _, r := range rows {
		label := r.Pipeline
		if r.Lossy {
			label += " (lossy)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.3f\t%.4f\t%.4f\t%s\n",
			label,
			r.Blocks,
			r.Bytes,
			r.Compressed,
			r.Ratio(),
			r.EntropyIn,
			r.EntropyOut,
			r.Elapsed.Round(time.Microsecond),
		)
	}
	return tw.Flush()
}

// printList writes the registered kernel families, the implementation each
// transposition binds to and the registered filter ids.
func printList(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Kernel\tSIMD\tPriority\tOperations\n")
	fmt.Fprintf(tw, "------\t----\t--------\t----------\n")
	for _, e := range registry.Global.ListEntries() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Name, e.SIMDLevel, e.Priority, entryOps(e))
	}
	fmt.Fprintln(tw)

	shuffle.Init()
	fmt.Fprintf(tw, "Operation\tBound\tChain\n")
	fmt.Fprintf(tw, "---------\t-----\t-----\n")
	for _, op := range shuffle.Ops {
		fmt.Fprintf(tw, "%s\t%s\t%v\n", op, shuffle.Implementation(op), shuffle.Default.Candidates(op))
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Filter\tID\n")
	fmt.Fprintf(tw, "------\t--\n")
	fmt.Fprintf(tw, "%s\t%d\n", filter.Shuffle, filter.Shuffle)
	fmt.Fprintf(tw, "%s\t%d\n", filter.BitShuffle, filter.BitShuffle)
	for _, id := range filter.Global.IDs() {
		fmt.Fprintf(tw, "%s\t%d\n", id, id)
	}
	return tw.Flush()
}

func entryOps(e registry.KernelEntry) string {
	var ops []string
	if e.Shuffle != nil {
		ops = append(ops, "shuffle")
	}
	if e.Unshuffle != nil {
		ops = append(ops, "unshuffle")
	}
	if e.BitShuffle != nil {
		ops = append(ops, "bitshuffle")
	}
	if e.BitUnshuffle != nil {
		ops = append(ops, "bitunshuffle")
	}
	if len(ops) == 0 {
		return "-"
	}
	return strings.Join(ops, ",")
}
