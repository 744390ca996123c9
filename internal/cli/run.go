package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyseq/internal/pipeline"
	"github.com/roach88/lazyseq/internal/store"
	"github.com/roach88/lazyseq/seq"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Async    bool
	Batch    int
	Take     int
}

// RunResult is the payload reported after a pipeline drain.
type RunResult struct {
	Pipeline string  `json:"pipeline"`
	Mode     string  `json:"mode"` // "sync" | "async"
	Elements []int64 `json:"elements"`
	Count    int     `json:"count"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "Run a pipeline and print its elements",
		Long: `Run a pipeline document against its source and print the drained
elements.

Inline-values pipelines run self-contained; dataset pipelines need
--db pointing at a database created with the load command. The drain
is lazy end to end - a pipeline ending in take(n) reads only the
source elements needed for n outputs.

Example:
  lazyseq run ./evens.yaml
  lazyseq run --db ./data.db ./primes.yaml --async --batch 2`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (for dataset sources)")
	cmd.Flags().BoolVar(&opts.Async, "async", false, "drain on the cooperative async scheduler")
	cmd.Flags().IntVar(&opts.Batch, "batch", 1, "async batch size (elements per scheduler step)")
	cmd.Flags().IntVar(&opts.Take, "take", 0, "cap output at n elements (applied after the pipeline ops)")

	return cmd
}

func runPipeline(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts.Format, cmd.OutOrStdout(), opts.Verbose)

	p, err := pipeline.LoadFile(path)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load pipeline", err)
	}
	slog.Debug("pipeline loaded", "name", p.Name, "ops", len(p.Ops))

	src, srcErr, cleanup, err := sourceSequence(opts, p, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := pipeline.Build(p, src)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build pipeline", err)
	}
	if opts.Take > 0 {
		s = s.Take(opts.Take)
	}

	result := RunResult{Pipeline: p.Name, Mode: "sync"}
	if opts.Async {
		result.Mode = "async"
		h := s.Async(seq.WithBatchSize(opts.Batch))
		elements, err := h.Collect(cmd.Context())
		if err != nil {
			return WrapExitError(ExitFailure, "async drain interrupted", err)
		}
		result.Elements = elements
	} else {
		result.Elements = s.ToSlice()
	}
	if err := srcErr(); err != nil {
		return WrapExitError(ExitFailure, "dataset stream failed", err)
	}
	result.Count = len(result.Elements)

	if formatter.JSON() {
		return formatter.Success(result)
	}
	for _, v := range result.Elements {
		fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	formatter.Countf("%s (%s): %d elements\n", result.Pipeline, result.Mode, result.Count)
	return nil
}

// sourceSequence resolves the pipeline's source to a sequence. The
// returned srcErr func reports deferred streaming errors for dataset
// sources and must be checked after the drain; a stream failure shows
// up as missing elements otherwise. cleanup closes the store.
func sourceSequence(opts *RunOptions, p *pipeline.Pipeline, cmd *cobra.Command) (*seq.Sequence[int64], func() error, func(), error) {
	if p.Source.Dataset == "" {
		return seq.FromSlice(p.Source.Values), func() error { return nil }, func() {}, nil
	}

	if opts.Database == "" {
		return nil, nil, nil, WrapExitError(ExitCommandError, "pipeline uses a dataset source: --db is required", nil)
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	values, streamErr := st.Stream(cmd.Context(), p.Source.Dataset)
	cleanup := func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}
	return seq.FromSeq(values), streamErr, cleanup, nil
}
