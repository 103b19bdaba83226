package object

// Manual relocation operations. These exist for external storage managers
// that defragment or migrate mixin storage; they bypass parts of the
// safety the rest of the API guarantees and are named accordingly.

import (
	mixinruntime "github.com/wippyai/mixin-runtime"
	"github.com/wippyai/mixin-runtime/errors"
	"github.com/wippyai/mixin-runtime/registry"
)

// MoveMixin move-constructs the mixin's existing instance into the
// caller-provided storage and rebinds the slot, including its owner
// back-reference. It returns the previous storage for the caller to
// release. Out-of-range ids and mixins the object does not hold return
// (nil, 0, nil); a mixin without move-construct is an error.
func (o *Object) MoveMixin(id registry.MixinID, st Store, h Handle) (Store, Handle, error) {
	if uint32(id) >= mixinruntime.MaxMixins || !o.typeInfo.Has(id) {
		return nil, 0, nil
	}

	s := &o.slots[o.typeInfo.SlotIndex(id)]
	if s.value() == nil {
		return nil, 0, nil
	}

	info := o.mixinInfo(id)
	if info.Ops.MoveConstruct == nil {
		return nil, 0, errors.UnsupportedMove(info.Name)
	}

	oldStore, oldHandle := s.store, s.h
	oldValue := s.value()

	s.store = st
	s.h = h
	c := s.cell()
	c.Owner = o
	c.Value = info.Ops.MoveConstruct(oldValue)

	return oldStore, oldHandle, nil
}

// HardReplaceMixin swaps the slot's storage without running any
// construction or destruction. The caller must already have placed a
// valid instance in the new storage. The owner back-reference is NOT
// rebound; that too is the caller's responsibility. Returns the previous
// storage.
func (o *Object) HardReplaceMixin(id registry.MixinID, st Store, h Handle) (Store, Handle, error) {
	if uint32(id) >= mixinruntime.MaxMixins || !o.typeInfo.Has(id) {
		return nil, 0, errors.OutOfRange(errors.PhaseMove, "mixin", uint32(id), mixinruntime.MaxMixins)
	}

	s := &o.slots[o.typeInfo.SlotIndex(id)]
	oldStore, oldHandle := s.store, s.h
	s.store = st
	s.h = h

	return oldStore, oldHandle, nil
}

// ReallocateMixins moves every mixin in the object's shape into fresh
// storage from its active allocator, releasing the old storage, e.g. to
// compact after churn. A mixin without move-construct aborts the loop;
// mixins already relocated in the same call stay in their new storage.
func (o *Object) ReallocateMixins() error {
	for _, info := range o.typeInfo.Mixins() {
		if info.Ops.MoveConstruct == nil {
			return errors.UnsupportedMove(info.Name)
		}

		s := &o.slots[o.typeInfo.SlotIndex(info.ID)]
		al := o.activeAllocator(info)

		oldStore, oldHandle := s.store, s.h
		oldValue := s.value()

		st, h, err := al.AllocMixin(info, o)
		if err != nil {
			return errors.AllocationFailed(errors.PhaseMove, info.Name, err)
		}

		s.store = st
		s.h = h
		c := s.cell()
		c.Owner = o
		c.Value = info.Ops.MoveConstruct(oldValue)

		al.DeallocMixin(oldStore, oldHandle, info, o)
	}
	return nil
}

// mixinInfo returns the descriptor for a mixin the object is known to
// hold.
func (o *Object) mixinInfo(id registry.MixinID) *registry.MixinInfo {
	return o.typeInfo.Mixins()[o.typeInfo.SlotIndex(id)-registry.SlotOffset]
}
