// Command scvctl drives a Planner from a scenario file and prints the
// sampled trajectory: a thin CLI collaborator around the planner package,
// outside the planning core itself (spec.md §1 scope boundary).
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/katalvlaran/scv/cmd/scvctl/internal/cli"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "scvctl: failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := cli.NewRootCommand(logger).Execute(); err != nil {
		logger.Error("scvctl failed", zap.Error(err))
		os.Exit(1)
	}
}
