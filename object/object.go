package object

import (
	"go.uber.org/zap"

	mixinruntime "github.com/wippyai/mixin-runtime"
	"github.com/wippyai/mixin-runtime/errors"
	"github.com/wippyai/mixin-runtime/registry"
)

// Object is a composite: a dynamically assembled bundle of independently
// allocated mixins. Its composed type can change at runtime while the data
// of every mixin shared between the old and new shape is preserved.
//
// An Object is not safe for concurrent mutation; callers serialize access
// per object. The descriptors it points at are shared, read-mostly data.
type Object struct {
	typeInfo *registry.TypeInfo
	slots    []slot
	alloc    ObjectAllocator

	// defaultImplCell is the fixed in-object buffer behind the reserved
	// default-message slot of every non-empty shape.
	defaultImplCell Cell
}

// New creates an empty object: null composed type, sentinel slot array.
func New() *Object {
	return &Object{
		typeInfo: registry.NullTypeInfo(),
		slots:    nullSlots,
	}
}

// NewWithAllocator creates an empty object bound to an object allocator.
func NewWithAllocator(a ObjectAllocator) *Object {
	o := New()
	if a != nil {
		o.alloc = a
		a.OnAttach(o)
	}
	return o
}

// NewFromTemplate creates an object and applies the template's composed
// type to it.
func NewFromTemplate(t *registry.Template) (*Object, error) {
	ti, err := t.Resolve()
	if err != nil {
		return nil, err
	}
	o := New()
	if err := o.ChangeType(ti); err != nil {
		o.Close()
		return nil, err
	}
	return o, nil
}

// TypeInfo returns the object's current composed-type descriptor. Empty
// objects return the shared null descriptor, never nil.
func (o *Object) TypeInfo() *registry.TypeInfo {
	return o.typeInfo
}

// Allocator returns the object-level allocator, or nil.
func (o *Object) Allocator() ObjectAllocator {
	return o.alloc
}

// Empty reports whether the object has the null composed type.
func (o *Object) Empty() bool {
	return o.typeInfo == registry.NullTypeInfo()
}

// Clear destroys and deallocates every mixin and reduces the object to the
// empty state.
func (o *Object) Clear() {
	for _, info := range o.typeInfo.Mixins() {
		o.deleteMixin(info)
	}

	if !o.Empty() {
		o.typeInfo.DecObjects()
	}

	o.typeInfo = registry.NullTypeInfo()
	o.slots = nullSlots
}

// Close reduces the object to the empty state and releases its allocator.
// The object remains usable as an empty object afterwards.
func (o *Object) Close() error {
	o.Clear()
	if o.alloc != nil {
		o.alloc.OnRelease(o)
		o.alloc = nil
	}
	return nil
}

// changeTypeResult describes the outcome of a type transition. Whatever
// the outcome, the object is left in a valid, fully initialized state;
// the result only reports whether some mixin's value degraded. CopyFrom
// surfaces the degraded outcomes as structured errors.
type changeTypeResult uint8

const (
	// changeOK: all mixin data was transferred as requested.
	changeOK changeTypeResult = iota

	// changeBadAssign: at least one shared mixin has no copy-assign
	// operation; its value was carried over unassigned.
	changeBadAssign

	// changeBadCopyConstruct: at least one newly introduced mixin could
	// not be copy-constructed and was default-constructed instead.
	changeBadCopyConstruct
)

// ChangeType migrates the object to a new composed type. Mixins present
// in both shapes keep their storage and value; removed mixins are
// destroyed; added mixins are default-constructed. A nil descriptor is
// treated as the null type. The only possible error is a fatal resource
// failure while allocating mixin storage.
func (o *Object) ChangeType(newType *registry.TypeInfo) error {
	if newType == nil {
		newType = registry.NullTypeInfo()
	}
	_, err := o.changeTypeFrom(newType, nil)
	return err
}

// changeTypeFrom is the core transition algorithm. When source is non-nil
// (copy-from-other-object mode) shared mixins are additionally copy-assigned
// from, and new mixins copy-constructed from, the corresponding source slot.
//
// Failure policy is best-effort, report afterward: an unsupported assign or
// copy-construct is recorded in the result and the loop continues, trading
// the correctness of that one mixin's value for object validity.
func (o *Object) changeTypeFrom(newType *registry.TypeInfo, source []slot) (changeTypeResult, error) {
	res := changeOK
	oldType := o.typeInfo
	oldSlots := o.slots
	newSlots := newSlotArray(newType)

	for _, info := range oldType.Mixins() {
		id := info.ID
		if newType.Has(id) {
			newIndex := newType.SlotIndex(id)
			newSlots[newIndex] = oldSlots[oldType.SlotIndex(id)]

			if source != nil {
				if info.Ops.CopyAssign == nil {
					res = changeBadAssign
					Logger().Debug("copy-assign unsupported, keeping prior value",
						zap.String("mixin", info.Name))
				} else {
					info.Ops.CopyAssign(newSlots[newIndex].value(), source[newIndex].value())
				}
			}
		} else {
			o.deleteMixin(info)
		}
	}

	if oldType != registry.NullTypeInfo() {
		oldType.DecObjects()
	}
	if newType != registry.NullTypeInfo() {
		newType.IncObjects()
	}

	o.typeInfo = newType
	o.slots = newSlots

	for _, info := range newType.Mixins() {
		index := newType.SlotIndex(info.ID)
		if o.slots[index].store != nil {
			continue
		}
		var sourceValue any
		if source != nil {
			sourceValue = source[index].value()
		}
		ok, err := o.makeMixin(info, sourceValue)
		if err != nil {
			return res, err
		}
		if !ok {
			res = changeBadCopyConstruct
		}
	}

	if !o.Empty() {
		o.bindDefaultImplSlot()
	}

	return res, nil
}

// makeMixin allocates storage for a mixin, binds the slot and constructs
// the value. With a non-nil source it copy-constructs instead; when that
// is unsupported or fails it default-constructs so the object stays fully
// initialized, and reports false.
func (o *Object) makeMixin(info *registry.MixinInfo, source any) (bool, error) {
	s := &o.slots[o.typeInfo.SlotIndex(info.ID)]

	al := o.activeAllocator(info)
	st, h, err := al.AllocMixin(info, o)
	if err != nil {
		return false, errors.AllocationFailed(errors.PhaseAlloc, info.Name, err)
	}

	s.store = st
	s.h = h
	c := s.cell()
	c.Owner = o

	info.IncLive()

	if source == nil {
		al.ConstructMixin(info, c)
		return true, nil
	}

	if !al.CopyConstructMixin(info, c, source) {
		// Keep the object valid: the mixin exists, it just did not
		// receive the source's value.
		al.ConstructMixin(info, c)
		Logger().Debug("copy-construct unsupported or failed, default-constructed",
			zap.String("mixin", info.Name))
		return false, nil
	}

	return true, nil
}

// deleteMixin destroys a mixin instance and releases its storage through
// the allocator that is active for it. A slot left unconstructed by a
// failed transition has nothing to destroy and no live count to settle.
func (o *Object) deleteMixin(info *registry.MixinInfo) {
	s := &o.slots[o.typeInfo.SlotIndex(info.ID)]
	if s.store == nil {
		return
	}

	al := o.activeAllocator(info)
	al.DestroyMixin(info, s.cell())
	al.DeallocMixin(s.store, s.h, info, o)

	info.DecLive()
	s.clear()
}

// activeAllocator resolves the allocator for one mixin: the object-level
// allocator when present, else the mixin kind's default.
func (o *Object) activeAllocator(info *registry.MixinInfo) MixinAllocator {
	if o.alloc != nil {
		return o.alloc
	}
	return MixinAllocatorFor(info)
}

// bindDefaultImplSlot points the reserved default-message slot at the
// object's own fixed fallback cell and sets its back-reference.
func (o *Object) bindDefaultImplSlot() {
	s := &o.slots[registry.DefaultImplSlot]
	s.store = ownCell{c: &o.defaultImplCell}
	s.h = 1
	o.defaultImplCell.Owner = o
}

// newSlotArray builds a fresh slot array sized for the shape, or the
// shared sentinel for the null type.
func newSlotArray(ti *registry.TypeInfo) []slot {
	n := ti.SlotCount()
	if n == 0 {
		return nullSlots
	}
	return make([]slot, n)
}

// Has reports whether the object's current shape contains the mixin.
// Out-of-range identifiers report false rather than erroring.
func (o *Object) Has(id registry.MixinID) bool {
	if uint32(id) >= mixinruntime.MaxMixins {
		return false
	}
	return o.typeInfo.Has(id)
}

// HasNamed reports whether the object contains the mixin registered under
// name in the object's domain. Unknown names report false.
func (o *Object) HasNamed(name string) bool {
	return o.Has(o.resolveName(name))
}

// Get returns the mixin value for an id. Absent mixins, out-of-range ids
// and empty objects yield (nil, false).
func (o *Object) Get(id registry.MixinID) (any, bool) {
	if uint32(id) >= mixinruntime.MaxMixins || !o.typeInfo.Has(id) {
		return nil, false
	}
	return o.slots[o.typeInfo.SlotIndex(id)].value(), true
}

// GetNamed returns the mixin value registered under name in the object's
// domain. Unknown names yield (nil, false).
func (o *Object) GetNamed(name string) (any, bool) {
	return o.Get(o.resolveName(name))
}

// OwnerOf returns the owner recorded in the mixin's storage cell. It is
// o for every mixin the object holds; the accessor exists so external
// storage managers can verify back-references after relocations.
func (o *Object) OwnerOf(id registry.MixinID) (*Object, bool) {
	if uint32(id) >= mixinruntime.MaxMixins || !o.typeInfo.Has(id) {
		return nil, false
	}
	c := o.slots[o.typeInfo.SlotIndex(id)].cell()
	if c == nil {
		return nil, false
	}
	return c.Owner, true
}

// Implements reports whether the object's current shape implements the
// feature.
func (o *Object) Implements(f registry.FeatureID) bool {
	return o.typeInfo.Implements(f)
}

// resolveName resolves a mixin name through the domain that issued the
// object's current descriptor. Empty objects resolve nothing.
func (o *Object) resolveName(name string) registry.MixinID {
	dom := o.typeInfo.Domain()
	if dom == nil {
		return registry.InvalidMixinID
	}
	return dom.MixinIDByName(name)
}
