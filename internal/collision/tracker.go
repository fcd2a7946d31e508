// Package collision detects pack name hash collisions within one naming
// scope (the direct children of a container chunk).
//
// The engine's FNV-1a variant is 32 bits and folds case, so distinct names
// can land on the same hash. Shipped data already baked its hashes in, but
// authoring tools must refuse to produce a container where two packs would
// be indistinguishable at lookup time.
package collision

import (
	"fmt"

	"github.com/arloliu/munge/errs"
)

// Tracker records the pack hashes seen in one scope and reports the first
// duplicate. The zero value is not usable; create trackers with NewTracker.
type Tracker struct {
	names map[uint32]string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint32]string),
	}
}

// TrackName records a pack by hash and name. It fails with
// errs.ErrDuplicatePack both for a repeated name and for two distinct
// names colliding on the same hash; the message tells the two apart.
func (t *Tracker) TrackName(hash uint32, name string) error {
	prev, seen := t.names[hash]
	if !seen {
		t.names[hash] = name
		return nil
	}

	if prev == name {
		return fmt.Errorf("%w: pack %q declared twice", errs.ErrDuplicatePack, name)
	}

	return fmt.Errorf("%w: %q and %q both hash to 0x%08X", errs.ErrDuplicatePack, prev, name, hash)
}

// TrackHash records a pack known only by hash, as when merging containers
// whose pack names are no longer recoverable.
func (t *Tracker) TrackHash(hash uint32) error {
	if prev, seen := t.names[hash]; seen {
		if prev != "" {
			return fmt.Errorf("%w: 0x%08X already used by pack %q", errs.ErrDuplicatePack, hash, prev)
		}

		return fmt.Errorf("%w: 0x%08X", errs.ErrDuplicatePack, hash)
	}

	t.names[hash] = ""

	return nil
}
