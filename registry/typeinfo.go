package registry

import (
	"sync"
	"sync/atomic"
)

// Slot layout constants. Every non-null shape reserves a leading slot for
// the default message implementation pseudo-mixin; real mixins follow.
const (
	// DefaultImplSlot is the reserved slot index holding the shape's
	// default-message-fallback binding.
	DefaultImplSlot = 0

	// SlotOffset is the slot index of the first real mixin.
	SlotOffset = 1
)

// TypeInfo is the shared, domain-owned descriptor of one object shape:
// the ordered set of mixin kinds an object is composed of. TypeInfos are
// interned by their Domain, so pointer equality is shape equality.
// Never copy a TypeInfo; all consumers hold pointers.
type TypeInfo struct {
	dom     *Domain
	compact []*MixinInfo
	index   map[MixinID]int
	feats   map[FeatureID]struct{}

	numObjects atomic.Int64
}

var (
	nullTypeOnce sync.Once
	nullType     *TypeInfo
)

// NullTypeInfo returns the process-wide descriptor of the empty shape.
// It is shared by every domain and owns no slots.
func NullTypeInfo() *TypeInfo {
	nullTypeOnce.Do(func() {
		nullType = &TypeInfo{
			index: map[MixinID]int{},
			feats: map[FeatureID]struct{}{},
		}
	})
	return nullType
}

// Domain returns the domain that issued this descriptor, or nil for the
// null descriptor.
func (t *TypeInfo) Domain() *Domain {
	return t.dom
}

// Mixins returns the compact mixin list: deduplicated, ordered by id.
// Callers must not mutate the returned slice.
func (t *TypeInfo) Mixins() []*MixinInfo {
	return t.compact
}

// Has reports whether the shape contains the given mixin kind.
func (t *TypeInfo) Has(id MixinID) bool {
	_, ok := t.index[id]
	return ok
}

// SlotIndex returns the slot index of the given mixin within this shape.
// Precondition: Has(id).
func (t *TypeInfo) SlotIndex(id MixinID) int {
	return t.index[id]
}

// SlotCount returns the slot array length for this shape, including the
// reserved leading slot. The null descriptor has no slots at all.
func (t *TypeInfo) SlotCount() int {
	if len(t.compact) == 0 {
		return 0
	}
	return len(t.compact) + SlotOffset
}

// Implements reports whether the shape's feature table contains the
// feature. This is the sole hook the external dispatch mechanism needs.
func (t *TypeInfo) Implements(f FeatureID) bool {
	_, ok := t.feats[f]
	return ok
}

// NumObjects reports how many live objects currently have this shape.
func (t *TypeInfo) NumObjects() int64 {
	return t.numObjects.Load()
}

// IncObjects records an object transitioning into this shape.
// Called by the object core; never called on the null descriptor.
func (t *TypeInfo) IncObjects() {
	t.numObjects.Add(1)
}

// DecObjects records an object transitioning out of this shape.
func (t *TypeInfo) DecObjects() {
	t.numObjects.Add(-1)
}

// signature returns the canonical interning key for a sorted id list.
func signature(ids []MixinID) string {
	// ids are small; a compact byte signature avoids fmt.
	buf := make([]byte, 0, len(ids)*3)
	for _, id := range ids {
		buf = append(buf, byte(id), byte(id>>8), ',')
	}
	return string(buf)
}
