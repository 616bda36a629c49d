// Package mock provides test doubles for the ai interfaces.
// The default behavior is deterministic so similarity-dependent tests are
// reproducible without an embedding service.
package mock
