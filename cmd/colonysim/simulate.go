package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"colonysim/internal/app/simulation"
)

type simulateFlags struct {
	ticks   int
	assign  []string
	compact bool
}

func newSimulateCmd(opts *options) *cobra.Command {
	f := &simulateFlags{}
	cmd := &cobra.Command{
		Use:     "simulate",
		Short:   "Run a fixed number of ticks headless and print the colony",
		Example: `  colonysim simulate --ticks 200 --assign ada=collect_samples --assign cy=study`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return simulate(cmd, opts, f)
		},
	}
	cmd.Flags().IntVarP(&f.ticks, "ticks", "n", 100, "number of ticks to run")
	cmd.Flags().StringArrayVar(&f.assign, "assign", nil, "colonist=kind assignment made before the first tick (repeatable)")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "print the colony without indentation")
	return cmd
}

type assignment struct {
	colonistID string
	kind       simulation.Kind
}

func parseAssignments(raw []string) ([]assignment, error) {
	out := make([]assignment, 0, len(raw))
	for _, r := range raw {
		id, kind, ok := strings.Cut(r, "=")
		id, kind = strings.TrimSpace(id), strings.TrimSpace(kind)
		if !ok || id == "" || kind == "" {
			return nil, fmt.Errorf("assignment %q: want colonist=kind", r)
		}
		out = append(out, assignment{colonistID: id, kind: simulation.Kind(kind)})
	}
	return out, nil
}

func simulate(cmd *cobra.Command, opts *options, f *simulateFlags) error {
	ctx := cmd.Context()
	assignments, err := parseAssignments(f.assign)
	if err != nil {
		return err
	}
	col, err := buildColony(ctx, opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if _, err := col.driver.Assign(ctx, a.colonistID, a.kind, simulation.Params{}); err != nil {
			return err
		}
	}
	results, err := col.driver.Advance(ctx, f.ticks)
	if err != nil {
		return err
	}
	last := results[len(results)-1]
	opts.logger.Info("simulation finished",
		zap.Int64("tick", last.Tick),
		zap.Float64("millisol", last.Millisol),
	)

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !f.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(map[string]any{
		"colony":  col.driver.Snapshot(),
		"metrics": col.metrics.Snapshot(),
	})
}
