// Package registry manages the shared, globally-registered metadata behind
// composite objects: mixin descriptors, composed type descriptors, and
// feature identifiers.
//
// A Domain is the unit of registration. Mixins are registered once, by name,
// and receive a stable small-integer MixinID. Composed type descriptors
// (TypeInfo) are interned per unique set of mixins, so two objects composed
// of the same mixins share one TypeInfo and pointer equality can stand in
// for shape equality.
//
// # Registering Mixins
//
//	dom := registry.NewDomain()
//	pos, err := dom.RegisterMixin("position", registry.Ops{
//	    Construct:  func() any { return &Position{} },
//	    CopyAssign: func(dst, src any) { *dst.(*Position) = *src.(*Position) },
//	})
//
// Every operation in Ops is optional. A nil entry means the mixin does not
// support that operation; the object core probes for presence before use and
// degrades or fails according to the operation's documented policy.
//
// # Composed Types
//
//	ti, err := dom.TypeInfoFor(pos.ID, vel.ID)
//
// The compact mixin list inside a TypeInfo is deduplicated and ordered by
// id, so any permutation of the same ids resolves to the same descriptor.
// The empty set resolves to the process-wide null descriptor, shared by all
// domains.
//
// # Features
//
// Features model externally dispatched capabilities (messages). Mixins
// declare the features they provide at registration; a TypeInfo's feature
// set is the union over its mixins, and Implements answers presence queries
// for the dispatch layer.
//
// TypeInfo and MixinInfo values are owned by their Domain and must never be
// copied; all consumers hold pointers. Lifetimes: a Domain outlives every
// TypeInfo it issued, which outlives every object referencing it.
package registry
