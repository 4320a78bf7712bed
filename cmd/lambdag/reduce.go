// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dagreduce/lambdag/graph"
	"github.com/dagreduce/lambdag/internal/errs"
	"github.com/dagreduce/lambdag/term"
)

func runReduce(cmd *cobra.Command, args []string) (err error) {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	t, err := term.Parse(string(src))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	dag, err := graph.FromTerm(t)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	if cfg.Reduce.UnfoldRefs {
		d, err := loadDefs(cfg.Reduce.DefsFile)
		if err != nil {
			return err
		}
		dag.WithDefs(d)
	}
	dag.MaxSteps = cfg.Reduce.MaxSteps

	defer errs.Recover(&err)

	switch cfg.Reduce.Mode {
	case "whnf":
		dag.Whnf()
	case "norm":
		dag.Norm()
	default:
		return fmt.Errorf("unknown reduce.mode %q", cfg.Reduce.Mode)
	}

	fmt.Fprintln(cmd.OutOrStdout(), dag.ToTerm().String())

	if showStats {
		live, total, freed := dag.Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "nodes: live=%d total=%d freed=%d\n", live, total, freed)
	}
	return nil
}
