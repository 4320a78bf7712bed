// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dagreduce/lambdag/config"
	"github.com/dagreduce/lambdag/internal/obs"
)

var (
	cfgFile   string
	cfg       *config.Config
	showStats bool
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "lambdag [file]",
		Short: "Reduce a dependently-typed lambda term to WHNF or normal form",
		Long: `lambdag parses a source file containing a single surface term,
builds a sharing-preserving node graph from it, reduces the graph and
prints the result back out as a term.`,
		Args: cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v.BindPFlags(cmd.Flags())
			v.BindPFlags(cmd.PersistentFlags())

			loaded, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded

			level := slog.LevelInfo
			if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
				return fmt.Errorf("invalid log.level %q: %w", cfg.Log.Level, err)
			}
			obs.SetOutput(os.Stderr, level)
			return nil
		},
		RunE: runReduce,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file (yaml/json/toml)")
	root.Flags().String("reduce.mode", "norm", `reduction target: "whnf" or "norm"`)
	root.Flags().Bool("reduce.unfold_refs", false, "resolve Ref nodes against --reduce.defs_file during reduction")
	root.Flags().String("reduce.defs_file", "", "definitions file, required with --reduce.unfold_refs")
	root.Flags().Int("reduce.max_steps", 0, "override the reduction step budget (0 = engine default)")
	root.Flags().String("log.level", "info", "log level: debug, info, warn, error")
	root.Flags().BoolVar(&showStats, "stats", false, "print arena allocation counters to stderr after reducing")

	return root
}
