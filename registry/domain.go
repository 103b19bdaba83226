package registry

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	mixinruntime "github.com/wippyai/mixin-runtime"
	"github.com/wippyai/mixin-runtime/errors"
)

// Domain is the registration authority for mixins, features and composed
// types. It assigns stable identifiers, resolves names, and interns one
// TypeInfo per unique mixin set.
//
// Domains are safe for concurrent use. Registration is expected to happen
// up front; lookups are read-mostly.
type Domain struct {
	mu       sync.RWMutex
	mixins   []*MixinInfo
	byName   map[string]*MixinInfo
	features map[string]FeatureID
	types    map[string]*TypeInfo
}

// NewDomain creates an empty domain.
func NewDomain() *Domain {
	return &Domain{
		byName:   make(map[string]*MixinInfo),
		features: make(map[string]FeatureID),
		types:    make(map[string]*TypeInfo),
	}
}

// RegisterMixin registers a mixin kind under a unique name and returns its
// descriptor. The descriptor is domain-owned and immutable once issued.
func (d *Domain) RegisterMixin(name string, ops Ops, features ...FeatureID) (*MixinInfo, error) {
	if name == "" {
		return nil, errors.Registration("mixin", name, errors.InvalidInput(errors.PhaseRegistry, "empty mixin name"))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byName[name]; exists {
		return nil, errors.Registration("mixin", name, errors.InvalidInput(errors.PhaseRegistry, "duplicate mixin name"))
	}
	if len(d.mixins) >= mixinruntime.MaxMixins {
		return nil, errors.Registration("mixin", name,
			errors.OutOfRange(errors.PhaseRegistry, "mixin", uint32(len(d.mixins)), mixinruntime.MaxMixins))
	}

	info := &MixinInfo{
		ID:       MixinID(len(d.mixins)),
		Name:     name,
		Ops:      ops,
		Features: features,
	}
	d.mixins = append(d.mixins, info)
	d.byName[name] = info

	Logger().Debug("registered mixin",
		zap.String("name", name),
		zap.Uint32("id", uint32(info.ID)))

	return info, nil
}

// Mixin returns the descriptor for an id, or nil when the id was never
// issued by this domain.
func (d *Domain) Mixin(id MixinID) *MixinInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if int(id) >= len(d.mixins) {
		return nil
	}
	return d.mixins[id]
}

// MixinByName returns the descriptor registered under name, or nil.
func (d *Domain) MixinByName(name string) *MixinInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byName[name]
}

// MixinIDByName resolves a mixin name to its identifier.
// Unknown names resolve to InvalidMixinID.
func (d *Domain) MixinIDByName(name string) MixinID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	info, ok := d.byName[name]
	if !ok {
		return InvalidMixinID
	}
	return info.ID
}

// NumMixins reports how many mixin kinds are registered.
func (d *Domain) NumMixins() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.mixins)
}

// RegisterFeature registers (or looks up) a feature by name and returns
// its identifier. Registering the same name twice yields the same id.
func (d *Domain) RegisterFeature(name string) FeatureID {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.features[name]; ok {
		return id
	}
	if len(d.features) >= mixinruntime.MaxFeatures {
		return InvalidFeatureID
	}
	id := FeatureID(len(d.features))
	d.features[name] = id
	return id
}

// FeatureIDByName resolves a feature name to its identifier.
// Unknown names resolve to InvalidFeatureID.
func (d *Domain) FeatureIDByName(name string) FeatureID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.features[name]
	if !ok {
		return InvalidFeatureID
	}
	return id
}

// TypeInfoFor returns the interned composed-type descriptor for the given
// set of mixins. The ids are deduplicated and ordered, so any permutation
// of the same set yields the same descriptor. An empty set yields the
// shared null descriptor. Ids not issued by this domain are an error.
func (d *Domain) TypeInfoFor(ids ...MixinID) (*TypeInfo, error) {
	if len(ids) == 0 {
		return NullTypeInfo(), nil
	}

	sorted := make([]MixinID, 0, len(ids))
	seen := make(map[MixinID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, id := range sorted {
		if int(id) >= len(d.mixins) {
			return nil, errors.OutOfRange(errors.PhaseRegistry, "mixin", uint32(id), uint32(len(d.mixins)))
		}
	}

	key := signature(sorted)
	if ti, ok := d.types[key]; ok {
		return ti, nil
	}

	ti := &TypeInfo{
		dom:     d,
		compact: make([]*MixinInfo, 0, len(sorted)),
		index:   make(map[MixinID]int, len(sorted)),
		feats:   make(map[FeatureID]struct{}),
	}
	for i, id := range sorted {
		info := d.mixins[id]
		ti.compact = append(ti.compact, info)
		ti.index[id] = i + SlotOffset
		for _, f := range info.Features {
			ti.feats[f] = struct{}{}
		}
	}
	d.types[key] = ti

	Logger().Debug("interned composed type",
		zap.Int("mixins", len(ti.compact)),
		zap.Int("features", len(ti.feats)))

	return ti, nil
}

// NumTypes reports how many composed-type descriptors have been interned.
func (d *Domain) NumTypes() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.types)
}
