// Command hashkit evaluates and inspects hashkit hash functions offline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state resolved once per invocation.
type app struct {
	fs         afero.Fs
	configPath string
	verbose    bool

	cfg *Config
	log *zap.Logger
}

func main() {
	err := newRootCommand(afero.NewOsFs()).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "hashkit",
		Short: "Evaluate and inspect bloom-filter hash functions",
		Long: `hashkit scores hash functions on a sample dataset and shows the
indices a double hasher derives for an item.

Commands:
  evaluate   score one algorithm
  compare    score default, murmur3 and fnv1a side by side
  indices    print double-hashed indices for an item
  functions  list generated hash functions`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default .hashkit.yaml in . or $HOME)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging to stderr")
	pf.StringP("algorithm", "a", defaultAlgorithm, "algorithm: default, murmur3, fnv1a or seeded:<base>")
	pf.StringP("seed", "s", defaultSeed, "seed, decimal or 0x-hex")
	pf.IntP("buckets", "b", defaultBuckets, "bucket count for uniformity scoring")
	pf.Bool("pow2", false, "round bucket count up to a power of two")
	pf.StringP("input", "i", "", "dataset file, one item per line (default: generated items)")
	pf.IntP("count", "n", defaultCount, "number of generated items when no input is given")
	pf.StringP("format", "o", defaultFormat, "output format: table, json or yaml")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if a.verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.log = l
		}

		cfg, err := LoadConfig(a.fs, a.configPath, pf)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.log.Debug("config loaded",
			zap.String("command", cmd.Name()),
			zap.String("algorithm", cfg.Algorithm),
			zap.String("seed", cfg.Seed),
			zap.Int("buckets", cfg.BucketCount()),
		)
		return nil
	}
	root.PersistentPostRun = func(*cobra.Command, []string) {
		_ = a.log.Sync()
	}

	root.AddCommand(
		newEvaluateCommand(a),
		newCompareCommand(a),
		newIndicesCommand(a),
		newFunctionsCommand(a),
	)
	return root
}

func (a *app) dataset() ([]string, error) {
	items, err := loadDataset(a.fs, a.cfg.Input, a.cfg.Count)
	if err != nil {
		return nil, err
	}
	source := a.cfg.Input
	if source == "" {
		source = "generated"
	}
	a.log.Debug("dataset loaded", zap.String("source", source), zap.Int("items", len(items)))
	return items, nil
}
