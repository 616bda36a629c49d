package match

import (
	"sort"

	"github.com/suiamor/alignd/catalog"
	"github.com/suiamor/alignd/core"
)

// tier2Axis ranks alignments by Euclidean distance between the user's
// axis profile and each alignment's derived axes, ascending. Category
// overlap is a hard gate, not a tie-break. The caller applies the
// acceptance threshold to the best distance.
func (e *Engine) tier2Axis(snap *catalog.Snapshot, profile core.Axes, userCategories map[string]struct{}) []candidate {
	var candidates []candidate

	for _, alignment := range snap.Alignments() {
		if !alignment.HasAnyCategory(userCategories) {
			continue
		}
		candidates = append(candidates, candidate{
			alignment: alignment,
			distance:  profile.DistanceTo(alignment.Axes),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	return candidates
}
