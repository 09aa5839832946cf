package cmd

import (
	"fmt"
	"strconv"

	"github.com/cottand/rebank/grammar"
	"github.com/cottand/rebank/internal/log"
	"github.com/cottand/rebank/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func CheckCmd(s *Settings) *cobra.Command {
	var (
		withMetrics  bool
		showDiverged bool
		workers      int
		seed         uint64
	)
	c := &cobra.Command{
		Use:          "check [GRAMMAR_FILE]",
		Short:        "Round-trip every production of a grammar through replacement",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := s.Config.Grammar
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no grammar file given")
			}
			opts := grammar.Options{Workers: s.Config.Check.Workers, Seed: s.Config.Check.Seed, Lexicon: s.Lexicon}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}

			var reg *prometheus.Registry
			if withMetrics || s.Config.Metrics.Enabled {
				reg = prometheus.NewRegistry()
				metrics.Use(metrics.New(reg))
			}

			entries, err := grammar.ReadFile(path, s.Lexicon)
			if err != nil {
				return fmt.Errorf("could not read grammar: %w", err)
			}
			report, err := grammar.Check(cmd.Context(), entries, opts)
			if err != nil {
				return fmt.Errorf("could not check grammar: %w", err)
			}

			t := newTable(cmd.OutOrStdout())
			for _, o := range grammar.Outcomes() {
				t.row(o.String(), strconv.Itoa(report.Count(o)))
			}
			for _, res := range report.Results {
				switch {
				case res.Outcome == grammar.Failed:
					t.row("failed", strconv.Itoa(res.Entry.Line), res.Entry.String(), res.Err.Error())
				case res.Outcome == grammar.Diverged && showDiverged:
					t.row("diverged", strconv.Itoa(res.Entry.Line), res.Entry.String(), res.Alternative.String(), res.Left+" "+res.Right)
				}
			}
			if err := t.flush(); err != nil {
				return err
			}
			if reg != nil {
				if err := metrics.WriteText(reg, cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("could not write metrics: %w", err)
				}
			}

			if errs := report.Errors(); errs.HasError() {
				log.For(log.SectionGrammar).Error("invariant violations", "errors", errs)
			}
			if n := len(report.Failures()); n > 0 {
				return fmt.Errorf("%d productions violated invariants", n)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&withMetrics, "metrics", false, "print the counters gathered while checking")
	c.Flags().BoolVar(&showDiverged, "diverged", false, "list the productions whose children changed")
	c.Flags().IntVarP(&workers, "workers", "w", 4, "productions checked at once, overrides the config")
	c.Flags().Uint64Var(&seed, "seed", 1, "seed for the alternative parents, overrides the config")
	return c
}
