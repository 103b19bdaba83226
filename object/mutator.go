package object

import (
	"github.com/wippyai/mixin-runtime/errors"
	"github.com/wippyai/mixin-runtime/registry"
)

// Mutator applies incremental composition changes to a single object: the
// target shape is the object's current shape plus the added mixins minus
// the removed ones, applied in one type transition.
//
//	err := object.Mutate(o, dom).
//		Add("velocity").
//		Remove("renderable").
//		Apply()
type Mutator struct {
	o      *Object
	dom    *registry.Domain
	add    map[registry.MixinID]struct{}
	remove map[registry.MixinID]struct{}
	errs   []error
}

// Mutate starts a mutation of o. Names are resolved in dom; the domain is
// explicit because an empty object has none of its own.
func Mutate(o *Object, dom *registry.Domain) *Mutator {
	return &Mutator{
		o:      o,
		dom:    dom,
		add:    make(map[registry.MixinID]struct{}),
		remove: make(map[registry.MixinID]struct{}),
	}
}

// Add includes a mixin by name.
func (m *Mutator) Add(name string) *Mutator {
	info := m.dom.MixinByName(name)
	if info == nil {
		m.errs = append(m.errs, errors.NotFound(errors.PhaseCompose, "mixin", name))
		return m
	}
	return m.AddInfo(info)
}

// AddInfo includes a mixin by descriptor.
func (m *Mutator) AddInfo(info *registry.MixinInfo) *Mutator {
	m.add[info.ID] = struct{}{}
	delete(m.remove, info.ID)
	return m
}

// Remove excludes a mixin by name. Removing a mixin the object does not
// have is a no-op at Apply time.
func (m *Mutator) Remove(name string) *Mutator {
	info := m.dom.MixinByName(name)
	if info == nil {
		m.errs = append(m.errs, errors.NotFound(errors.PhaseCompose, "mixin", name))
		return m
	}
	return m.RemoveInfo(info)
}

// RemoveInfo excludes a mixin by descriptor.
func (m *Mutator) RemoveInfo(info *registry.MixinInfo) *Mutator {
	m.remove[info.ID] = struct{}{}
	delete(m.add, info.ID)
	return m
}

// Apply computes the target composed type and performs the transition.
// The first name resolution error recorded during description is returned
// instead, and the object is left unchanged.
func (m *Mutator) Apply() error {
	if len(m.errs) > 0 {
		return m.errs[0]
	}

	ids := make([]registry.MixinID, 0, len(m.o.typeInfo.Mixins())+len(m.add))
	for _, info := range m.o.typeInfo.Mixins() {
		if _, gone := m.remove[info.ID]; gone {
			continue
		}
		ids = append(ids, info.ID)
	}
	for id := range m.add {
		ids = append(ids, id)
	}

	ti, err := m.dom.TypeInfoFor(ids...)
	if err != nil {
		return err
	}
	return m.o.ChangeType(ti)
}
