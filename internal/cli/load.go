package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyseq/internal/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Database string
}

// LoadResult is the payload reported after a dataset load.
type LoadResult struct {
	Dataset  string `json:"dataset"`
	Elements int    `json:"elements"`
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <name> <value>...",
		Short: "Store a dataset",
		Long: `Store a named integer dataset in the database, replacing any
existing dataset with the same name.

Example:
  lazyseq load --db ./data.db primes 2 3 5 7 11`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runLoad(opts *LoadOptions, name string, rawValues []string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts.Format, cmd.OutOrStdout(), opts.Verbose)

	values := make([]int64, 0, len(rawValues))
	for _, raw := range rawValues {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid value %q", raw), err)
		}
		values = append(values, v)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := st.SaveDataset(cmd.Context(), name, values); err != nil {
		return WrapExitError(ExitCommandError, "failed to save dataset", err)
	}
	slog.Debug("dataset saved", "name", name, "elements", len(values))

	if formatter.JSON() {
		return formatter.Success(LoadResult{Dataset: store.CanonicalName(name), Elements: len(values)})
	}
	formatter.Countf("stored %q: %d elements\n", store.CanonicalName(name), len(values))
	return nil
}
