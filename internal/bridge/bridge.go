// Package bridge maps opaque provider-native string identifiers into the
// app-wide positive numeric id space, and back. The mapping lives for the
// process lifetime only: reverse lookups succeed solely for ids generated in
// this process since the last Clear.
package bridge

import (
	"sync"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
)

// IdentifierBridge is safe for concurrent use. Registration is idempotent:
// the same native id always produces the same numeric id, so two in-flight
// searches registering it concurrently cannot disagree.
//
// Two distinct native ids hashing to the same numeric id silently overwrite
// each other's reverse mapping. This mirrors the upstream behavior and is a
// known accepted risk; Size exists so operators can audit mapping growth.
type IdentifierBridge struct {
	mu        sync.RWMutex
	byNumeric *csmap.CsMap[int, string]
}

// New creates an empty bridge.
func New() *IdentifierBridge {
	return &IdentifierBridge{
		byNumeric: csmap.Create[int, string](),
	}
}

// hashNativeID computes a deterministic rolling hash over the characters of
// nativeID, truncated to 32 bits and made non-negative.
func hashNativeID(nativeID string) int {
	var h int32
	for _, r := range nativeID {
		h = h*31 + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v)
}

// GenerateNumericID returns the numeric id for nativeID and registers the
// pair for reverse lookup. Calling twice with the same input yields the same
// result; the result is never negative.
func (b *IdentifierBridge) GenerateNumericID(nativeID string) int {
	id := hashNativeID(nativeID)

	b.mu.RLock()
	b.byNumeric.Store(id, nativeID)
	b.mu.RUnlock()

	return id
}

// NativeID reverses a previously generated numeric id. There is no derivation
// in the reverse direction: ids never registered in this process are reported
// as not found.
func (b *IdentifierBridge) NativeID(numericID int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.byNumeric.Load(numericID)
}

// Clear empties the bridge, resetting identifier scope between independent
// sessions. First-class operation, also used for test isolation.
func (b *IdentifierBridge) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byNumeric = csmap.Create[int, string]()
}

// Size returns the number of registered mappings.
func (b *IdentifierBridge) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.byNumeric.Count()
}
