package badger

import "github.com/suiamor/alignd/storage"

// NewMemoryRepository creates an in-memory revision repository for
// testing. Caller must close both the repo and the backend when done.
func NewMemoryRepository() (storage.RevisionRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}
	return NewRevisionRepository(backend), backend, nil
}
