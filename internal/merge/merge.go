// Package merge combines independently fetched, independently failing
// collections into one ordered, deduplicated sequence.
package merge

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/ninebyfour/ninebyfour-go/internal/observability"
)

// Item is the normalized shape every source record is mapped into before
// merging. ID must be unique across sources; NormalizedID prefixes the
// native identifier with the source tag for that purpose. Timestamp is a
// canonical string whose lexicographic order matches chronological order.
type Item struct {
	ID        string
	YouTubeID string
	Title     string
	Thumbnail string
	Author    string
	Timestamp string
	Source    string
}

// NormalizedID builds a collision-free identifier from a source tag and the
// record's native id.
func NormalizedID(source, nativeID string) string {
	return source + "-" + nativeID
}

// Source fetches and normalizes one collection.
type Source struct {
	Name  string
	Fetch func(ctx context.Context) ([]Item, error)
}

// Fetch runs all sources concurrently and merges their results. A failing
// source contributes nothing instead of aborting the merge; the caller sees
// whatever succeeded. The merged list is sorted newest-first by comparing
// timestamps as strings, then deduplicated by ID keeping the first
// occurrence. An empty result is a valid no-data outcome, not an error.
func Fetch(ctx context.Context, sources ...Source) []Item {
	var mu sync.Mutex
	var collected []Item

	var wg conc.WaitGroup
	for _, src := range sources {
		src := src
		wg.Go(func() {
			items, err := src.Fetch(ctx)
			if err != nil {
				observability.Telemetry().IncCounter(observability.MetricSourceFailures, 1,
					map[string]string{"source": src.Name})
				observability.Log().Debug("merge source failed",
					observability.F("source", src.Name),
					observability.F("error", err.Error()),
				)
				return
			}
			mu.Lock()
			collected = append(collected, items...)
			mu.Unlock()
		})
	}
	wg.Wait()

	sort.SliceStable(collected, func(i, j int) bool {
		return strings.Compare(collected[i].Timestamp, collected[j].Timestamp) > 0
	})

	seen := make(map[string]struct{}, len(collected))
	merged := collected[:0]
	for _, item := range collected {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		merged = append(merged, item)
	}
	return merged
}
