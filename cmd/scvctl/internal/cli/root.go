// Package cli wires scvctl's cobra command tree over the planner package:
// load a scenario file, run Calculate, and print the sampled trajectory.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand builds scvctl's top-level command.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "scvctl",
		Short: "Drive a three-axis S-curve motion planner from a scenario file",
	}

	root.AddCommand(newRunCommand(logger))

	return root
}

func newRunCommand(logger *zap.Logger) *cobra.Command {
	var scenarioPath string
	var step float64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Plan and sample the trajectory described by a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(logger, scenarioPath, step)
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to a scenario YAML/JSON/TOML file")
	cmd.Flags().Float64VarP(&step, "step", "t", 0.05, "sampling step in seconds")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runScenario(logger *zap.Logger, scenarioPath string, step float64) error {
	if step <= 0 {
		return fmt.Errorf("scvctl: --step must be positive, got %v", step)
	}

	cfg, err := loadScenario(scenarioPath)
	if err != nil {
		return fmt.Errorf("scvctl: loading scenario: %w", err)
	}

	p, err := buildPlanner(cfg)
	if err != nil {
		return fmt.Errorf("scvctl: building moves: %w", err)
	}

	if err := p.Calculate(); err != nil {
		color.Red("scvctl: calculate failed: %v", err)

		return err
	}

	total := p.TraverseTime()
	logger.Info("plan calculated", zap.Float64("duration_s", total), zap.Int("move_count", len(cfg.Moves)))

	color.Cyan("t\tx\ty\tz\tvel\trunning")
	for t := 0.0; t <= total; t += step {
		_, pos, vel, _, _, _, running := p.Sample(t)
		status := color.GreenString("yes")
		if !running {
			status = color.YellowString("no")
		}
		fmt.Printf("%.3f\t%.4f\t%.4f\t%.4f\t%.4f\t%s\n", t, pos.X, pos.Y, pos.Z, vel.Length(), status)
	}

	return nil
}
