package object

import (
	"sync"

	"github.com/wippyai/mixin-runtime/registry"
)

// MixinAllocator allocates and manages storage for individual mixins
// within one object. Implementations may pool, arena or otherwise batch
// cells; the object core only requires that DeallocMixin accepts exactly
// what AllocMixin produced.
type MixinAllocator interface {
	// AllocMixin obtains storage for one instance of the mixin kind.
	AllocMixin(info *registry.MixinInfo, owner *Object) (Store, Handle, error)

	// ConstructMixin default-constructs the mixin value into the cell.
	ConstructMixin(info *registry.MixinInfo, c *Cell)

	// CopyConstructMixin initializes the cell's value from source.
	// It reports false when the mixin has no copy-construct operation or
	// the operation failed; the cell is left untouched in that case.
	CopyConstructMixin(info *registry.MixinInfo, c *Cell, source any) bool

	// DestroyMixin runs the mixin's destroy operation, if any.
	DestroyMixin(info *registry.MixinInfo, c *Cell)

	// DeallocMixin releases storage previously produced by AllocMixin.
	DeallocMixin(st Store, h Handle, info *registry.MixinInfo, owner *Object)
}

// ObjectAllocator is bound to a single object and follows it through its
// lifetime. It handles that object's mixin storage and observes ownership
// transfer across move and copy operations.
type ObjectAllocator interface {
	MixinAllocator

	// OnAttach is invoked when the allocator becomes bound to an object.
	OnAttach(o *Object)

	// OnMove decides the allocator for the move target when the current
	// owner is being usurped. It may migrate itself, hand out a sibling
	// sharing underlying pools, or return nil to leave the target
	// without an object allocator.
	OnMove(to, from *Object) ObjectAllocator

	// OnCopySource produces a fresh allocator for a copy target before
	// any mixin data is transferred. Returning nil leaves the target
	// without an object allocator.
	OnCopySource(to, from *Object) ObjectAllocator

	// OnRelease is invoked when the allocator is detached from an object.
	OnRelease(o *Object)
}

// mixinAllocators associates mixin kinds with their default allocator.
// Keyed by *registry.MixinInfo; values are MixinAllocator.
var mixinAllocators sync.Map

// SetMixinAllocator attaches a default allocator to a mixin kind. Objects
// without an object-level allocator use it for that mixin's storage.
// Per-object allocators take precedence when present.
func SetMixinAllocator(info *registry.MixinInfo, a MixinAllocator) {
	if a == nil {
		mixinAllocators.Delete(info)
		return
	}
	mixinAllocators.Store(info, a)
}

// MixinAllocatorFor returns the default allocator registered for a mixin
// kind, falling back to the built-in allocator.
func MixinAllocatorFor(info *registry.MixinInfo) MixinAllocator {
	if a, ok := mixinAllocators.Load(info); ok {
		return a.(MixinAllocator)
	}
	return DefaultAllocator()
}

// DefaultAllocator returns the built-in garbage-collected allocator: each
// mixin gets its own single-cell store and deallocation is left to the
// runtime.
func DefaultAllocator() MixinAllocator {
	return defaultAlloc{}
}

// singleCell is a store holding exactly one cell.
type singleCell struct {
	c Cell
}

func (s *singleCell) Cell(Handle) *Cell { return &s.c }

type defaultAlloc struct{}

func (defaultAlloc) AllocMixin(info *registry.MixinInfo, owner *Object) (Store, Handle, error) {
	return &singleCell{}, 1, nil
}

func (defaultAlloc) ConstructMixin(info *registry.MixinInfo, c *Cell) {
	ConstructCell(info, c)
}

func (defaultAlloc) CopyConstructMixin(info *registry.MixinInfo, c *Cell, source any) bool {
	return CopyConstructCell(info, c, source)
}

func (defaultAlloc) DestroyMixin(info *registry.MixinInfo, c *Cell) {
	DestroyCell(info, c)
}

func (defaultAlloc) DeallocMixin(st Store, h Handle, info *registry.MixinInfo, owner *Object) {
	// single-cell stores are reclaimed by the garbage collector
}

// ConstructCell, CopyConstructCell and DestroyCell apply a mixin's
// operation set to a cell. Allocator implementations share them so custom
// allocators only differ in where cells live.

// ConstructCell default-constructs the mixin value into the cell.
// Mixins without a construct operation yield a nil value.
func ConstructCell(info *registry.MixinInfo, c *Cell) {
	if info.Ops.Construct != nil {
		c.Value = info.Ops.Construct()
	}
}

// CopyConstructCell initializes the cell's value from source. It reports
// false, leaving the cell untouched, when the mixin has no copy-construct
// operation or the operation failed.
func CopyConstructCell(info *registry.MixinInfo, c *Cell, source any) bool {
	if info.Ops.CopyConstruct == nil {
		return false
	}
	v, err := info.Ops.CopyConstruct(source)
	if err != nil {
		return false
	}
	c.Value = v
	return true
}

// DestroyCell runs the mixin's destroy operation, if any, and drops the
// cell's value.
func DestroyCell(info *registry.MixinInfo, c *Cell) {
	if c == nil {
		return
	}
	if info.Ops.Destroy != nil && c.Value != nil {
		info.Ops.Destroy(c.Value)
	}
	c.Value = nil
}
