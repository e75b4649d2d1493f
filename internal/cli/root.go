// Package cli implements the command-line report surface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wikifreq/internal/aggregate"
	"wikifreq/internal/cache"
	"wikifreq/internal/config"
	"wikifreq/internal/textstats"
	"wikifreq/internal/wiki"
)

// errNoPages marks the distinct "no pages found" failure, reported with its
// own exit code.
var errNoPages = errors.New("no pages found for category")

var (
	flagTop      int
	flagMinCount int
	flagSleep    float64
	flagRefresh  bool
	flagConfig   string
)

var rootCmd = &cobra.Command{
	Use:   "wikifreq <category>",
	Short: "Word frequencies across a wiki category",
	Long: "wikifreq computes the cumulative frequency of non-common words across " +
		"all pages in an encyclopedia category, using the MediaWiki API.",
	Args:          cobra.ExactArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().IntVar(&flagTop, "top", 0, "if >0, only print the top N words (still cumulative over those rows)")
	rootCmd.Flags().IntVar(&flagMinCount, "min-count", 1, "drop words with fewer occurrences")
	rootCmd.Flags().Float64Var(&flagSleep, "sleep", 0, "seconds to pause between fetch batches (overrides the configured politeness delay)")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "recompute results instead of using cached output")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
}

func run(cmd *cobra.Command, args []string) error {
	if flagMinCount < 1 {
		return fmt.Errorf("--min-count must be at least 1")
	}
	if flagSleep < 0 {
		return fmt.Errorf("--sleep must not be negative")
	}

	cfg := config.Load()
	var yamlCfg *config.YAMLConfig
	var err error
	if flagConfig != "" {
		yamlCfg, err = config.LoadYAMLFile(flagConfig)
	} else {
		yamlCfg, err = config.LoadYAMLConfig()
	}
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	yamlCfg.Apply(cfg)

	store, err := cache.Open(cache.Options{
		Backend:    cfg.CacheBackend,
		Dir:        cfg.CacheDir,
		SQLitePath: cfg.SQLitePath,
		RedisURL:   cfg.RedisURL,
	})
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer store.Close()

	client := wiki.NewClient(cfg.APIEndpoint, cfg.UserAgent)
	agg := aggregate.New(client, store)

	counts, err := agg.Frequencies(context.Background(), args[0], aggregate.Options{
		Refresh: flagRefresh,
		Delay:   effectiveDelay(cmd.Flags().Changed("sleep"), flagSleep, cfg.PolitenessDelay),
	})
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		return errNoPages
	}

	rows := textstats.BuildView(counts, textstats.ViewParams{
		MinCount: flagMinCount,
		TopN:     flagTop,
		Metric:   textstats.MetricCount,
	})

	fmt.Println(formatTable(rows))
	return nil
}

// effectiveDelay resolves the pause between fetch batches: an explicit
// --sleep wins over the configured politeness delay.
func effectiveDelay(sleepSet bool, sleepSeconds float64, configured time.Duration) time.Duration {
	if sleepSet {
		return time.Duration(sleepSeconds * float64(time.Second))
	}
	return configured
}

// formatTable renders ranked rows as the tab-separated cumulative table.
func formatTable(rows []textstats.Row) string {
	var b strings.Builder
	b.WriteString("rank\tword\tcount\tcum_count\tcum_pct")
	for i, row := range rows {
		fmt.Fprintf(&b, "\n%d\t%s\t%d\t%d\t%.4f", i+1, row.Word, row.Count, row.CumCount, row.CumPct)
	}
	return b.String()
}

// Execute runs the root command. Exit code 2 means the category had no
// pages; 1 covers every other failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errNoPages) {
			fmt.Fprintln(os.Stderr, "No pages found for category.")
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
