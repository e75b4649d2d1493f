// Package aggregate coordinates the wiki client, tokenizer, and cache to
// produce the frequency mapping for a category.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"wikifreq/internal/cache"
	"wikifreq/internal/metrics"
	"wikifreq/internal/textstats"
	"wikifreq/internal/wiki"
)

// outerBatchSize is the number of page ids handed to the wiki client per
// round; the client subdivides into its own per-request batches. The
// politeness delay applies between rounds.
const outerBatchSize = 200

// WikiClient is the slice of the wiki API used by the pipeline.
type WikiClient interface {
	CategoryPages(ctx context.Context, category string) ([]wiki.PageRef, error)
	Extracts(ctx context.Context, pageIDs []int64) (map[int64]string, error)
}

// Options tune one aggregation run.
type Options struct {
	Refresh bool          // skip the cache load and recompute
	Delay   time.Duration // politeness pause between outer batches
}

// Aggregator is the single coordinating state machine of the core. One run
// ends in exactly one of three outcomes: cache hit, empty category, or a
// freshly aggregated and cached mapping.
type Aggregator struct {
	client WikiClient
	store  cache.Store
}

// New wires the pipeline with its collaborators.
func New(client WikiClient, store cache.Store) *Aggregator {
	return &Aggregator{client: client, store: store}
}

// Frequencies returns the word-frequency mapping for a category, from cache
// when possible. An empty category yields an empty mapping and is not
// cached, so a later call re-checks without an explicit refresh.
func (a *Aggregator) Frequencies(ctx context.Context, category string, opts Options) (map[string]int, error) {
	if !opts.Refresh {
		rec, err := a.store.Load(ctx, category)
		if err == nil {
			metrics.RecordAggregation(metrics.OutcomeCacheHit)
			return rec.Counts, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			// Store trouble is a miss, not a fault; recompute instead.
			slog.Warn("cache load failed", "category", category, "error", err)
		}
	}

	pages, err := a.client.CategoryPages(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("enumerating category pages: %w", err)
	}
	if len(pages) == 0 {
		metrics.RecordAggregation(metrics.OutcomeEmpty)
		return map[string]int{}, nil
	}

	pageIDs := make([]int64, len(pages))
	for i, p := range pages {
		pageIDs[i] = p.ID
	}
	slog.Info("aggregating category", "category", category, "pages", len(pageIDs))

	counts := make(map[string]int)
	for start := 0; start < len(pageIDs); start += outerBatchSize {
		end := min(start+outerBatchSize, len(pageIDs))

		extracts, err := a.client.Extracts(ctx, pageIDs[start:end])
		if err != nil {
			return nil, fmt.Errorf("fetching extracts: %w", err)
		}
		for _, text := range extracts {
			textstats.Accumulate(counts, text)
		}

		if opts.Delay > 0 && end < len(pageIDs) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	if err := a.store.Save(ctx, category, cache.NewRecord(category, counts)); err != nil {
		return nil, fmt.Errorf("saving cache record: %w", err)
	}
	metrics.RecordAggregation(metrics.OutcomeFetched)
	return counts, nil
}
