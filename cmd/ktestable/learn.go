package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/coregx/ktestable/dataset"
	"github.com/coregx/ktestable/internal/config"
	"github.com/coregx/ktestable/internal/obslog"
	"github.com/coregx/ktestable/ktest"
	"github.com/coregx/ktestable/learner"
	"github.com/coregx/ktestable/oracle"
)

func newLearnCommand() *cobra.Command {
	var (
		flagK        int
		flagOracle   string
		flagFormat   string
		flagLogLevel string
	)

	cmd := &cobra.Command{
		Use:   "learn <file>",
		Short: "Learn a k-TSS union descriptor per cluster from a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(flagK, flagOracle, flagFormat, flagLogLevel)
			if err != nil {
				return err
			}
			return runLearn(cmd, args[0], cfg)
		},
	}

	cmd.Flags().IntVar(&flagK, "k", 0, "window size (default 3)")
	cmd.Flags().StringVar(&flagOracle, "oracle", "", "consistency oracle: de_facto or graph (default de_facto)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "output format: text or json (default text)")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: info or debug (default info)")

	return cmd
}

func runLearn(cmd *cobra.Command, path string, cfg config.Config) error {
	examples, err := dataset.Load(path)
	if err != nil {
		return err
	}

	log := obslog.New(obslog.Level(cfg.LogLevel))
	oracleFn := oracleByName(cfg.Oracle)
	if cfg.LogLevel == string(obslog.LevelDebug) {
		oracleFn = loggingOracle(oracleFn, log)
	}

	log.LearnStarted(len(examples), cfg.K, cfg.Oracle)
	start := time.Now()

	results, err := learner.Learn(context.Background(), examples, cfg.K, oracleFn)
	if err != nil {
		return err
	}

	log.LearnFinished(len(results), time.Since(start).Milliseconds())

	out, err := dataset.FormatClusters(results, cfg.Format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func oracleByName(name string) learner.OracleFunc {
	if name == "graph" {
		return oracle.ConsistentGraph
	}
	return oracle.Consistent
}

// loggingOracle wraps an OracleFunc so each merge candidate decision is
// logged at debug level. This is the only place in the repository
// where a consistency check and a log call happen together: ktest,
// oracle, and learner themselves never log, per spec §7.
func loggingOracle(fn learner.OracleFunc, log *obslog.Logger) learner.OracleFunc {
	return func(a, b *ktest.Descriptor) (bool, error) {
		accepted, err := fn(a, b)
		if err != nil {
			return false, err
		}
		dist, distErr := a.Distance(b)
		if distErr != nil {
			return accepted, nil
		}
		log.MergeCandidate(a.Len(), b.Len(), dist, accepted)
		return accepted, nil
	}
}
