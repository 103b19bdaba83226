// Package arena provides a per-object arena allocator. All mixins of the
// objects it serves live in one cell run with free-list reuse, which keeps
// them together for cache locality and gives ReallocateMixins a compaction
// target. The allocator implements both allocation protocols: it places
// individual mixins (object.MixinAllocator) and follows its object across
// move and copy operations (object.ObjectAllocator).
package arena

import (
	"errors"
	"sync"

	"github.com/wippyai/mixin-runtime/object"
	"github.com/wippyai/mixin-runtime/registry"
)

// ErrFull is returned when a fixed-capacity arena has no free cells left.
var ErrFull = errors.New("arena: no free cells")

// Store is the arena's cell run. It implements object.Store.
type Store struct {
	mu       sync.Mutex
	cells    []object.Cell
	freeList []object.Handle
	capacity int // 0 = unbounded
	live     int
}

// Cell returns the cell addressed by h. Handles are issued by Allocator
// and stay valid until freed.
func (s *Store) Cell(h object.Handle) *object.Cell {
	return &s.cells[h-1]
}

func (s *Store) alloc() (object.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.freeList); n > 0 {
		h := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		s.live++
		return h, nil
	}
	if s.capacity > 0 && len(s.cells) >= s.capacity {
		return 0, ErrFull
	}
	s.cells = append(s.cells, object.Cell{})
	s.live++
	return object.Handle(len(s.cells)), nil
}

func (s *Store) free(h object.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cells[h-1] = object.Cell{}
	s.freeList = append(s.freeList, h)
	s.live--
}

// Allocator is a per-object arena allocator.
type Allocator struct {
	store *Store
	bound *object.Object
}

// New creates an unbounded arena allocator.
func New() *Allocator {
	return &Allocator{store: &Store{}}
}

// NewSized creates an arena allocator with a fixed cell capacity.
// Allocation beyond the capacity fails with ErrFull, which the object
// core propagates as a fatal resource error.
func NewSized(capacity int) *Allocator {
	return &Allocator{store: &Store{capacity: capacity}}
}

// Len reports the number of live cells in the arena.
func (a *Allocator) Len() int {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return a.store.live
}

// Bound returns the object this allocator is currently attached to.
func (a *Allocator) Bound() *object.Object {
	return a.bound
}

// AllocMixin places one mixin in the arena.
func (a *Allocator) AllocMixin(info *registry.MixinInfo, owner *object.Object) (object.Store, object.Handle, error) {
	h, err := a.store.alloc()
	if err != nil {
		return nil, 0, err
	}
	return a.store, h, nil
}

// ConstructMixin default-constructs the mixin value into the cell.
func (a *Allocator) ConstructMixin(info *registry.MixinInfo, c *object.Cell) {
	object.ConstructCell(info, c)
}

// CopyConstructMixin initializes the cell's value from source.
func (a *Allocator) CopyConstructMixin(info *registry.MixinInfo, c *object.Cell, source any) bool {
	return object.CopyConstructCell(info, c, source)
}

// DestroyMixin runs the mixin's destroy operation.
func (a *Allocator) DestroyMixin(info *registry.MixinInfo, c *object.Cell) {
	object.DestroyCell(info, c)
}

// DeallocMixin returns a cell to the arena's free list. Storage produced
// by a different allocator is ignored and left to the garbage collector;
// that happens when an object acquired an arena after some of its mixins
// were already placed elsewhere.
func (a *Allocator) DeallocMixin(st object.Store, h object.Handle, info *registry.MixinInfo, owner *object.Object) {
	if st == a.store {
		a.store.free(h)
	}
}

// OnAttach binds the allocator to an object.
func (a *Allocator) OnAttach(o *object.Object) {
	a.bound = o
}

// OnMove migrates the allocator to the move target: the arena holds the
// storage the target just took over, so it follows the storage.
func (a *Allocator) OnMove(to, from *object.Object) object.ObjectAllocator {
	return a
}

// OnCopySource hands the copy target a fresh arena of the same capacity.
// The copy's mixins are placed there as they are constructed.
func (a *Allocator) OnCopySource(to, from *object.Object) object.ObjectAllocator {
	return &Allocator{store: &Store{capacity: a.store.capacity}}
}

// OnRelease detaches the allocator from an object.
func (a *Allocator) OnRelease(o *object.Object) {
	if a.bound == o {
		a.bound = nil
	}
}
