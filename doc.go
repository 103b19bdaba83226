// Package mixinruntime provides composition-based runtime polymorphism for Go.
//
// Instead of instantiating a fixed type, callers assemble objects out of
// independently allocated capability units called mixins. The set of mixins
// an object carries (its composed type) can change at any point in the
// object's lifetime while the data of every surviving mixin is preserved.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	mixinruntime/        Root package with shared handles and limits
//	├── registry/        Domain registry: mixin metadata, composed type
//	│                    descriptors, feature ids, type templates
//	├── object/          Composite objects: slot storage, type transitions,
//	│                    copy/move orchestration, allocator protocols
//	├── arena/           Per-object arena allocator implementing both
//	│                    allocation protocols
//	├── errors/          Structured error types for debugging
//	└── cmd/mixrun/      Demo CLI with a TOML scene loader and TUI inspector
//
// # Quick Start
//
// Register mixins in a domain, build a shape, compose an object:
//
//	dom := registry.NewDomain()
//	pos, _ := dom.RegisterMixin("position", registry.Ops{
//	    Construct: func() any { return &Position{} },
//	})
//	vel, _ := dom.RegisterMixin("velocity", registry.Ops{
//	    Construct: func() any { return &Velocity{} },
//	})
//
//	ti, _ := dom.TypeInfoFor(pos.ID, vel.ID)
//
//	o := object.New()
//	defer o.Close()
//	if err := o.ChangeType(ti); err != nil {
//	    log.Fatal(err)
//	}
//
//	p, _ := o.Get(pos.ID)
//	p.(*Position).X = 10
//
// Changing the object's type later keeps the data of every mixin the old
// and new shapes share:
//
//	ti2, _ := dom.TypeInfoFor(pos.ID, renderable.ID)
//	_ = o.ChangeType(ti2) // position survives, velocity is destroyed
//
// # Thread Safety
//
// Domains are safe for concurrent registration and lookup. Descriptor
// counters are atomic. A single Object is NOT safe for concurrent
// mutation; callers must serialize access per object.
package mixinruntime
