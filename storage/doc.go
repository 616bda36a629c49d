// Package storage defines the persistence contracts for catalog
// revisions. Every uploaded catalog source is kept with its metadata,
// so the service can restore the latest catalog at startup and expose
// the upload history. Implementations live in subpackages; BadgerDB is
// the default backend.
package storage
