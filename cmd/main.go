package main

import (
	"context"
	"os"

	"github.com/desertthunder/spores/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := runner.App().Run(context.Background(), os.Args); err != nil {
		runner.fail(err)
		os.Exit(1)
	}
}
