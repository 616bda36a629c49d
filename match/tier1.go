package match

import (
	"sort"

	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
)

// candidate is one alignment hit inside a tier, before formatting.
type candidate struct {
	alignment *core.Alignment
	distance  float64
}

// tier1Exact returns every alignment whose component set is contained
// in the user's answer ids. Order-sensitive alignments additionally
// require the components to appear as a subsequence of the user's
// selection-ordered answers. Results sort by descending component
// count, so larger alignments beat the smaller ones they subsume.
func (e *Engine) tier1Exact(snap *catalog.Snapshot, userIDs map[string]struct{}, sequence []string) []candidate {
	var matches []candidate

	for _, alignment := range snap.Alignments() {
		if len(alignment.Components) < e.cfg.MinExactComponents {
			continue
		}
		if !containsAll(userIDs, alignment.Components) {
			continue
		}
		if alignment.OrderSensitive && !isSubsequence(alignment.Components, sequence) {
			continue
		}
		matches = append(matches, candidate{alignment: alignment})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].alignment.Components) > len(matches[j].alignment.Components)
	})

	return matches
}

func containsAll(set map[string]struct{}, ids []string) bool {
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

// isSubsequence reports whether components appear in order, not
// necessarily contiguously, within sequence. Single greedy pass.
func isSubsequence(components, sequence []string) bool {
	if len(components) == 0 {
		return true
	}

	next := 0
	for _, id := range sequence {
		if id == components[next] {
			next++
			if next == len(components) {
				return true
			}
		}
	}
	return false
}
