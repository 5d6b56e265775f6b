package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/hashkit"
)

const (
	defaultProbes     = 7
	defaultIndexBound = 1024
	defaultFunctions  = 5
)

func newEvaluateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Score the configured algorithm on a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.cfg.Function()
			if err != nil {
				return err
			}
			items, err := a.dataset()
			if err != nil {
				return err
			}

			row := a.evaluate(f, items)
			return renderQualities(cmd.OutOrStdout(), a.cfg.Format, []qualityRow{row})
		},
	}
}

func newCompareCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Score default, murmur3 and fnv1a with the configured seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, err := a.cfg.SeedValue()
			if err != nil {
				return err
			}
			items, err := a.dataset()
			if err != nil {
				return err
			}

			algs := []hashkit.Algorithm{hashkit.Default, hashkit.Murmur3, hashkit.FNV1a}
			if configured, err := hashkit.ParseAlgorithm(a.cfg.Algorithm); err == nil && configured.Kind() == hashkit.KindSeeded {
				algs = append(algs, configured)
			}

			rows := make([]qualityRow, 0, len(algs))
			for _, alg := range algs {
				rows = append(rows, a.evaluate(hashkit.NewWithSeed(alg, seed), items))
			}
			return renderQualities(cmd.OutOrStdout(), a.cfg.Format, rows)
		},
	}
}

func (a *app) evaluate(f hashkit.Function, items []string) qualityRow {
	buckets := a.cfg.BucketCount()
	start := time.Now()
	q := hashkit.Evaluate(f, items, buckets)
	a.log.Debug("evaluated",
		zap.Stringer("function", f),
		zap.Int("items", len(items)),
		zap.Int("buckets", buckets),
		zap.Duration("elapsed", time.Since(start)),
	)
	return newQualityRow(f, len(items), buckets, q)
}

func newIndicesCommand(a *app) *cobra.Command {
	var (
		probes int
		bound  uint64
		second string
	)

	cmd := &cobra.Command{
		Use:   "indices ITEM",
		Short: "Print the double-hashed indices of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if probes < 0 {
				return fmt.Errorf("probes must not be negative: %d", probes)
			}
			first, err := a.cfg.Function()
			if err != nil {
				return err
			}
			alg, err := hashkit.ParseAlgorithm(second)
			if err != nil {
				return err
			}

			d := hashkit.NewDoubleHasherFrom(first, hashkit.NewWithSeed(alg, first.Seed()))
			idx := d.HashMultiple(args[0], probes, bound)
			a.log.Debug("indices derived",
				zap.String("item", args[0]),
				zap.Int("probes", probes),
				zap.Uint64("bound", bound),
			)

			rows := make([]indexRow, len(idx))
			for i, v := range idx {
				rows[i] = indexRow{Probe: i, Index: v}
			}
			return renderIndices(cmd.OutOrStdout(), a.cfg.Format, rows)
		},
	}

	cmd.Flags().IntVarP(&probes, "probes", "k", defaultProbes, "number of indices to derive")
	cmd.Flags().Uint64VarP(&bound, "max", "m", defaultIndexBound, "exclusive upper bound of every index")
	cmd.Flags().StringVar(&second, "second", hashkit.Murmur3.String(), "algorithm of the second base hash")
	return cmd
}

func newFunctionsCommand(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List generated hash functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fns := hashkit.GenerateFunctions(count)
			rows := make([]functionRow, len(fns))
			for i, f := range fns {
				rows[i] = functionRow{
					Index:     i,
					Algorithm: f.Algorithm().String(),
					Seed:      fmt.Sprintf("%#016x", f.Seed()),
				}
			}
			return renderFunctions(cmd.OutOrStdout(), a.cfg.Format, rows)
		},
	}

	cmd.Flags().IntVar(&count, "number", defaultFunctions, "number of functions to generate")
	return cmd
}
