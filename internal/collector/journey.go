package collector

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// JourneyKey derives a deduplication key for one journey. It is a content
// hash, not an externally issued identifier: two payloads describing the
// same train run hash to the same key, and changing any input changes it.
func JourneyKey(trainID, trainType, firstStation, lastStation string, firstDeparture int64) string {
	parts := []string{
		trainID,
		trainType,
		firstStation,
		lastStation,
		strconv.FormatInt(firstDeparture, 10),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Dedup tracks journey keys seen during the current run. Nothing persists
// across runs.
type Dedup struct {
	seen map[string]struct{}
}

// NewDedup creates an empty dedup set.
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

// Seen reports whether the key has already been recorded.
func (d *Dedup) Seen(key string) bool {
	_, ok := d.seen[key]
	return ok
}

// Add records a key after its journey has been written successfully.
func (d *Dedup) Add(key string) {
	d.seen[key] = struct{}{}
}

// Len returns the number of recorded journeys.
func (d *Dedup) Len() int {
	return len(d.seen)
}
