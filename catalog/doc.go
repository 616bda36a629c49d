// Package catalog loads the answer and alignment reference data and exposes
// it as immutable snapshots.
//
// A Snapshot is built once from a parsed source and never mutated afterwards,
// so it is safe for unsynchronized concurrent reads. Hot reload is performed
// by building a complete new Snapshot off to the side and atomically swapping
// the active reference (see match.Engine), never by mutating in place.
//
// Derived data is computed at snapshot construction time: an alignment's
// trait-space position is the weighted average of its resolved components
// (weight 1/(position+1), earlier-listed components dominate) and its category
// set is the union of the resolved components' categories. Component ids that
// do not resolve to catalog answers are kept in the component list for exact
// matching but contribute nothing to the derived fields.
package catalog
