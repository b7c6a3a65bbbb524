// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package edges

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pdiddy/citegraph/pkg/types"
)

// DefaultWorkers is the fixed concurrency ceiling for edge collection. It is
// a tunable constant, never derived from the input size.
const DefaultWorkers = 10

// RunResult summarizes one edge-collection run.
type RunResult struct {
	// Edges is the deduplicated edge set, order-independent across seeds.
	Edges []types.CitationEdge

	// Processed counts seeds whose collection produced a usable (possibly
	// empty, possibly partial) result.
	Processed int

	// Failed counts seeds for which both citation queries failed.
	Failed int

	// DuplicatesRemoved counts edges discarded by the final dedup pass.
	DuplicatesRemoved int

	// Failures lists one "<doi> (<area>): <error>" line per failed seed.
	Failures []string
}

// Run dispatches one Collect call per seed over a bounded worker pool and
// merges the per-task results after all workers finish. A failing seed is
// logged and counted, never allowed to abort its siblings. Completion order
// is not meaningful; the final edge set is deduplicated by full-tuple
// equality before being returned.
func Run(ctx context.Context, collector *Collector, seeds []types.Seed, workers int, w io.Writer) RunResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	type taskResult struct {
		seed  types.Seed
		edges []types.CitationEdge
		err   error
	}

	jobs := make(chan types.Seed)
	results := make(chan taskResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				edges, err := collector.Collect(ctx, seed)
				results <- taskResult{seed: seed, edges: edges, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, seed := range seeds {
			select {
			case jobs <- seed:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var res RunResult
	var all []types.CitationEdge
	for tr := range results {
		if tr.err != nil {
			res.Failed++
			res.Failures = append(res.Failures,
				fmt.Sprintf("%s (%s): %v", tr.seed.DOI, tr.seed.SubArea, tr.err))
			fmt.Fprintf(w, "failed:  %s (%v)\n", tr.seed.DOI, tr.err)
			continue
		}
		res.Processed++
		all = append(all, tr.edges...)
	}

	res.Edges = Dedup(all)
	res.DuplicatesRemoved = len(all) - len(res.Edges)

	fmt.Fprintf(w, "\nRun summary: %d processed, %d failed, %d unique edges (%d duplicates removed)\n",
		res.Processed, res.Failed, len(res.Edges), res.DuplicatesRemoved)
	return res
}
