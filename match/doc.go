// Package match implements the three-tier alignment matching engine.
//
// Tier 1 returns alignments whose component ids are fully contained in
// the user's normalized answers. Tier 2 ranks alignments by Euclidean
// distance between the user's primacy-weighted axis profile and each
// alignment's derived axes, gated by category overlap and a distance
// threshold. Tier 3 falls back to a semantic nearest-neighbor query
// over alignment embedding text, degrading to a plain category scan
// when the index is unavailable.
//
// The Engine holds the active catalog snapshot, its normalizer and the
// neighbor index behind one atomic pointer. Reload builds everything
// off to the side and swaps the pointer, so concurrent Match calls
// always observe one consistent catalog version.
package match
