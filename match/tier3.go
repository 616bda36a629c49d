package match

import (
	"context"
	"strings"

	"github.com/suiamor/alignd/core"
)

// fallbackDistance marks Tier-3 results, where no geometric distance is
// meaningful.
const fallbackDistance = 999.0

// tier3Fallback queries the neighbor index with the concatenated texts
// of the user's normalized answers. The query asks for twice the result
// budget because unknown ids get dropped. When the index is missing,
// errors, times out or returns nothing, the tier degrades to returning
// alignments that share a category with the user, in catalog order.
func (e *Engine) tier3Fallback(ctx context.Context, v *view, normalized []core.NormalizedAnswer, userCategories map[string]struct{}) ([]candidate, core.MatchTier) {
	n := e.cfg.MaxResults

	if v.index != nil {
		queryCtx, cancel := context.WithTimeout(ctx, e.cfg.VectorTimeout)
		defer cancel()

		texts := make([]string, len(normalized))
		for i, answer := range normalized {
			texts[i] = answer.Text
		}

		ids, err := v.index.Query(queryCtx, strings.Join(texts, " "), n*2)
		if err != nil {
			e.logger.Warn("neighbor query failed, using category fallback", "err", err)
		} else if results := e.resolveNeighborIDs(v, ids, n); len(results) > 0 {
			return results, core.TierVector
		}
	}

	var results []candidate
	for _, alignment := range v.snapshot.Alignments() {
		if !alignment.HasAnyCategory(userCategories) {
			continue
		}
		results = append(results, candidate{alignment: alignment, distance: fallbackDistance})
		if len(results) >= n {
			break
		}
	}
	return results, core.TierCategoryFallback
}

// resolveNeighborIDs keeps the index ranking, drops ids the active
// snapshot no longer knows and caps the list at n.
func (e *Engine) resolveNeighborIDs(v *view, ids []string, n int) []candidate {
	var results []candidate
	for _, id := range ids {
		alignment, ok := v.snapshot.Alignment(id)
		if !ok {
			continue
		}
		results = append(results, candidate{alignment: alignment, distance: fallbackDistance})
		if len(results) >= n {
			break
		}
	}
	return results
}
