// Package normalize maps free-text quiz answers to canonical catalog
// answer ids. A Normalizer is built once per catalog snapshot and is
// safe for concurrent use; it holds a text lookup table keyed by both
// the exact lower-cased answer text and a cleaned alphanumeric form.
package normalize
