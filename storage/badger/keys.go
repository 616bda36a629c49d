package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/suiamor/alignd/core"
)

// Key prefixes for different data types
const (
	revisionPrefix     = "catrev"
	revisionDatePrefix = "catrevd"
	sourcePrefix       = "catsrc"
	latestRevisionKey  = "catrevlatest"
)

// makeRevisionKey generates a key for revision metadata by ID.
func makeRevisionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", revisionPrefix, id))
}

// makeSourceKey generates a key for the raw catalog source by revision ID.
func makeSourceKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sourcePrefix, id))
}

// makeRevisionDateKey generates a composite key for the upload-time index.
// Format: prefix:timestamp:id
func makeRevisionDateKey(uploadedAt time.Time, id core.ID) []byte {
	prefix := revisionDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(uploadedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
