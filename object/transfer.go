package object

import (
	"github.com/wippyai/mixin-runtime/errors"
	"github.com/wippyai/mixin-runtime/registry"
)

// Usurp takes over other's composed type, slot storage and allocator in
// one step: no per-mixin move operations run and no storage is
// reallocated. Every slot's back-reference is rebound to o and other is
// reset to the empty state.
//
// Usurp does not clear o first; it is the building block move operations
// share. Use MoveFrom for move assignment semantics.
func (o *Object) Usurp(other *Object) {
	if o == other {
		return
	}

	if o.alloc != nil {
		o.alloc.OnRelease(o)
		o.alloc = nil
	}

	if other.alloc != nil {
		o.alloc = other.alloc.OnMove(o, other)
		if o.alloc != nil {
			o.alloc.OnAttach(o)
		}
		other.alloc = nil
	}

	o.typeInfo = other.typeInfo
	o.slots = other.slots

	for i := registry.SlotOffset; i < len(o.slots); i++ {
		o.slots[i].setOwner(o)
	}

	if !o.Empty() {
		o.bindDefaultImplSlot()
	}

	other.typeInfo = registry.NullTypeInfo()
	other.slots = nullSlots
}

// Move creates a new object that usurps other (move construction).
func Move(other *Object) *Object {
	o := New()
	o.Usurp(other)
	return o
}

// MoveFrom clears o's current mixins and usurps other (move assignment).
func (o *Object) MoveFrom(other *Object) {
	if o == other {
		return
	}
	o.Clear()
	o.Usurp(other)
}

// CopyFrom makes o a copy of other. Self-copy is a no-op.
//
// If o is currently empty and other carries an object allocator, a fresh
// allocator is acquired through the allocator's copy-source hook before
// any mixin data is touched. Matching shapes take the fast path that
// copy-assigns in place; different shapes run a full type transition with
// other's slots as copy source, and any degradation that transition
// records is returned as an error. The object is valid either way.
func (o *Object) CopyFrom(other *Object) error {
	if o == other {
		return nil
	}

	if o.Empty() && other.alloc != nil {
		if o.alloc != nil {
			o.alloc.OnRelease(o)
		}
		o.alloc = other.alloc.OnCopySource(o, other)
		if o.alloc != nil {
			o.alloc.OnAttach(o)
		}
	}

	if other.Empty() {
		o.Clear()
		return nil
	}

	if other.typeInfo == o.typeInfo {
		return o.copyMatchingFrom(other)
	}

	res, err := o.changeTypeFrom(other.typeInfo, other.slots)
	if err != nil {
		return err
	}

	switch res {
	case changeBadCopyConstruct:
		return errors.UnsupportedCopyConstruct(errors.PhaseCopy, "", nil)
	case changeBadAssign:
		return errors.UnsupportedAssign(errors.PhaseCopy, "")
	default:
		return nil
	}
}

// Copy returns a new object copied from o. Degraded copies are reported
// as an error, matching CopyFrom.
func (o *Object) Copy() (*Object, error) {
	n := New()
	if err := n.CopyFrom(o); err != nil {
		n.Close()
		return nil, err
	}
	return n, nil
}

// copyMatchingFrom is the fast copy path for objects that share the exact
// same descriptor: each shared mixin is copy-assigned into the existing
// instance, with no slot reallocation. A mixin without copy-assign aborts
// the call; mixins assigned earlier in the same call keep their new
// values.
func (o *Object) copyMatchingFrom(other *Object) error {
	for _, info := range other.typeInfo.Mixins() {
		id := info.ID
		if !o.typeInfo.Has(id) {
			continue
		}
		if info.Ops.CopyAssign == nil {
			return errors.UnsupportedAssign(errors.PhaseCopy, info.Name)
		}
		info.Ops.CopyAssign(
			o.slots[o.typeInfo.SlotIndex(id)].value(),
			other.slots[other.typeInfo.SlotIndex(id)].value())
	}
	return nil
}

// MoveMatchingFrom move-assigns every mixin both objects share from other
// into o. A mixin without move-assign aborts the call.
func (o *Object) MoveMatchingFrom(other *Object) error {
	for _, info := range other.typeInfo.Mixins() {
		id := info.ID
		if !o.typeInfo.Has(id) {
			continue
		}
		if info.Ops.MoveAssign == nil {
			return errors.New(errors.PhaseMove, errors.KindUnsupportedMove).
				Mixin(info.Name).
				Detail("mixin does not support move assignment").
				Build()
		}
		info.Ops.MoveAssign(
			o.slots[o.typeInfo.SlotIndex(id)].value(),
			other.slots[other.typeInfo.SlotIndex(id)].value())
	}
	return nil
}

// Copyable reports whether every mixin in the object's current shape
// supports both copy-construct and copy-assign, i.e. whether a copy of
// this object can be made without degradation.
func (o *Object) Copyable() bool {
	for _, info := range o.typeInfo.Mixins() {
		if info.Ops.CopyConstruct == nil {
			return false
		}
		if info.Ops.CopyAssign == nil {
			return false
		}
	}
	return true
}
