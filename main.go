// Command lazyseq is the command line entry point for the lazy
// sequence engine: loading datasets, validating pipeline documents,
// and running or tracing pipelines.
package main

import (
	"os"

	"github.com/roach88/lazyseq/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
