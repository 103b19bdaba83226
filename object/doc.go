// Package object implements composite objects: dynamically assembled
// bundles of independently allocated mixins whose composition can change
// at runtime.
//
// # Storage Model
//
// An object owns one slot per mixin in its current shape (plus a reserved
// leading slot for the default-message fallback). A slot addresses the
// mixin's storage cell through a Store and a Handle, both produced by the
// allocator active for that mixin. The cell carries the constructed value
// and a back-reference to the owning object. Empty objects share a
// zero-length sentinel slot array and the process-wide null descriptor.
//
// # Type Transitions
//
// ChangeType walks the old and new shapes once: slots of mixins present in
// both are relocated as-is (the value is untouched and keeps its storage),
// removed mixins are destroyed and deallocated, added mixins are allocated
// and constructed. The transition is best-effort rather than transactional:
// when a copy operation is unsupported or fails midway, the affected mixin
// is default-constructed instead and the degradation reported afterwards,
// so the object is always left fully valid. This is deliberate; callers
// that need all-or-nothing copies probe with Copyable first.
//
// # Copy and Move
//
// Move (Usurp) transfers the whole slot array and the object allocator
// without touching individual mixins. Copy between matching shapes assigns
// in place; between different shapes it is a type transition with the
// source object's slots as copy source.
//
// # Allocators
//
// Storage placement is pluggable at two levels: per mixin kind
// (SetMixinAllocator) and per object (NewWithAllocator), the object-level
// allocator taking precedence. The built-in default gives every mixin its
// own garbage-collected cell.
//
// Objects are not safe for concurrent mutation; serialize access per
// object. Descriptor counters are atomic and shared.
package object
