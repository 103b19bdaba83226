package object

import (
	mixinruntime "github.com/wippyai/mixin-runtime"
)

// Handle references one allocation cell within a Store.
type Handle = mixinruntime.Handle

// Cell is one unit of mixin storage: the constructed value plus a
// back-reference to the owning object. The back-reference is a companion
// field of the value rather than a pointer hidden inside a raw buffer.
type Cell struct {
	Value any
	Owner *Object
}

// Store gives access to allocated mixin cells. A Store plus a Handle is
// the storage address of one mixin instance; both are produced by a
// MixinAllocator and must be released through the same allocator.
type Store interface {
	Cell(h Handle) *Cell
}

// slot is the per-object record locating one mixin. A nil store means the
// slot is not yet constructed, which type transitions use to tell freshly
// introduced mixins apart from relocated ones.
type slot struct {
	store Store
	h     Handle
}

func (s *slot) cell() *Cell {
	if s.store == nil {
		return nil
	}
	return s.store.Cell(s.h)
}

func (s *slot) value() any {
	c := s.cell()
	if c == nil {
		return nil
	}
	return c.Value
}

func (s *slot) setOwner(o *Object) {
	if c := s.cell(); c != nil {
		c.Owner = o
	}
}

func (s *slot) clear() {
	s.store = nil
	s.h = 0
}

// nullSlots is the shared sentinel slot array for empty objects, so they
// never carry an allocation of their own.
var nullSlots []slot

// ownCell adapts an object's fixed fallback cell to the Store interface.
// The default-message slot always points at such a store, never into
// externally allocated mixin storage.
type ownCell struct {
	c *Cell
}

func (s ownCell) Cell(Handle) *Cell { return s.c }
