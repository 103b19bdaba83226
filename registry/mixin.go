package registry

import (
	"sync/atomic"

	mixinruntime "github.com/wippyai/mixin-runtime"
)

// MixinID identifies a registered mixin kind within a domain.
type MixinID uint32

// FeatureID identifies a registered feature (dispatched capability).
type FeatureID uint32

// InvalidMixinID is returned by name lookups that resolve nothing.
// Every id at or above MaxMixins is invalid.
const InvalidMixinID = MixinID(mixinruntime.MaxMixins)

// InvalidFeatureID is returned by feature name lookups that resolve nothing.
const InvalidFeatureID = FeatureID(mixinruntime.MaxFeatures)

// Ops is the operation set of a mixin kind. Any entry may be nil, which
// marks the operation as unsupported. The object core checks for presence
// before invoking an operation and applies the per-operation failure policy
// (degrade, record, or abort) when one is missing.
type Ops struct {
	// Construct returns a new default-constructed mixin value. Mixin
	// values must be pointers for assignment operations to be observable.
	Construct func() any

	// Destroy releases resources held by the value. Optional even for
	// mixins that are otherwise fully supported.
	Destroy func(v any)

	// CopyConstruct returns a new value initialized from src. A non-nil
	// error marks the construction as failed; the object core then
	// default-constructs instead to keep the object valid.
	CopyConstruct func(src any) (any, error)

	// CopyAssign copies the state of src into the existing value dst.
	CopyAssign func(dst, src any)

	// MoveConstruct returns a value that has taken over src's state,
	// leaving src in a valid but unspecified state.
	MoveConstruct func(src any) any

	// MoveAssign moves the state of src into the existing value dst.
	MoveAssign func(dst, src any)
}

// MixinInfo is the shared, domain-owned descriptor of one mixin kind.
// It is never copied; all consumers hold the pointer issued at
// registration.
type MixinInfo struct {
	ID       MixinID
	Name     string
	Ops      Ops
	Features []FeatureID

	numLive atomic.Int64
}

// NumLive reports the number of constructed instances of this mixin kind
// across all objects. It is a global statistic, not per-object state.
func (m *MixinInfo) NumLive() int64 {
	return m.numLive.Load()
}

// IncLive records one constructed instance. Called by the object core.
func (m *MixinInfo) IncLive() {
	m.numLive.Add(1)
}

// DecLive records one destroyed instance. Called by the object core.
func (m *MixinInfo) DecLive() {
	m.numLive.Add(-1)
}

// Provides reports whether the mixin declares the given feature.
func (m *MixinInfo) Provides(f FeatureID) bool {
	for _, have := range m.Features {
		if have == f {
			return true
		}
	}
	return false
}
