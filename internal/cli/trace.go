package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyseq/internal/pipeline"
	"github.com/roach88/lazyseq/seq"
	"github.com/roach88/lazyseq/seq/seqtest"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Take int
}

// TraceResult reports which source positions a pipeline drain touched.
type TraceResult struct {
	Pipeline      string  `json:"pipeline"`
	SourceLen     int     `json:"source_len"`
	DistinctReads int     `json:"distinct_reads"`
	Positions     []int   `json:"positions"`
	LenReads      int     `json:"len_reads"`
	Elements      []int64 `json:"elements"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <pipeline.yaml>",
		Short: "Drain a pipeline over a monitored source and show which positions were read",
		Long: `Trace a pipeline drain against an access-monitored copy of its inline
source values. The output lists every source position the drain
touched, which makes the engine's read behavior visible: a pipeline
ending in take(n) only ever touches the positions needed to produce
n outputs.

Only inline-values pipelines can be traced; dataset sources stream
from SQLite and have no positional access to observe.

Example:
  lazyseq trace ./evens.yaml --take 2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Take, "take", 0, "cap output at n elements (applied after the pipeline ops)")

	return cmd
}

func runTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts.Format, cmd.OutOrStdout(), opts.Verbose)

	p, err := pipeline.LoadFile(path)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load pipeline", err)
	}
	if p.Source.Dataset != "" {
		return WrapExitError(ExitCommandError, "trace requires an inline values source", nil)
	}

	mon := seqtest.Monitor(p.Source.Values)
	s, err := pipeline.Build(p, seq.Wrap(mon))
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build pipeline", err)
	}
	if opts.Take > 0 {
		s = s.Take(opts.Take)
	}
	elements := s.ToSlice()

	result := TraceResult{
		Pipeline:      p.Name,
		SourceLen:     len(p.Source.Values),
		DistinctReads: mon.DistinctReads(),
		Positions:     mon.Positions(),
		LenReads:      mon.LenReads(),
		Elements:      elements,
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}
	cmd.OutOrStdout().Write(seqtest.RenderTrace(p.Name, mon))
	fmt.Fprintf(cmd.OutOrStdout(), "elements: %v\n", elements)
	formatter.Countf("read %d of %d source positions\n", result.DistinctReads, result.SourceLen)
	return nil
}
