package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lazyseq/internal/pipeline"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	Pipeline string `json:"pipeline,omitempty"`
	Ops      int    `json:"ops"`
	Error    string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pipeline.yaml>",
		Short: "Validate a pipeline document",
		Long: `Validate a pipeline document against the pipeline schema.

Checks YAML syntax, operator and function names, and argument
constraints without running anything.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts.Format, cmd.OutOrStdout(), opts.Verbose)

	p, err := pipeline.LoadFile(path)
	if err != nil {
		if formatter.JSON() {
			_ = formatter.Success(ValidationResult{Valid: false, Error: err.Error()})
		} else {
			_ = formatter.Error("validate", err.Error(), nil)
		}
		return WrapExitError(ExitFailure, "pipeline invalid", err)
	}

	if formatter.JSON() {
		return formatter.Success(ValidationResult{Valid: true, Pipeline: p.Name, Ops: len(p.Ops)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pipeline %q valid (%d ops)\n", p.Name, len(p.Ops))
	return nil
}
