// Package vector implements the Tier-3 nearest-neighbor index as an
// in-memory chromem collection over alignment embedding text. An Index
// is immutable once built; a catalog reload builds a fresh one.
package vector
