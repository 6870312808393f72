package main

import (
	"context"
	"os"

	"github.com/desertthunder/spotapi/internal/shared"
)

func main() {
	runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(nil)})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		reportError(os.Stderr, runner.palette, err)
		os.Exit(1)
	}
}
