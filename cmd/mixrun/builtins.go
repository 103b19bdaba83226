package main

import (
	"github.com/wippyai/mixin-runtime/registry"
)

// Built-in demo mixins. Values are pointers so assignment operations are
// observable, as the object core requires.

type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Renderable struct {
	Sprite string
}

type Health struct {
	HP, Max int
}

type Label struct {
	Text string
}

// Unique deliberately has no copy operations, so copying an object that
// carries it demonstrates the degraded-copy outcome.
type Unique struct {
	Token int
}

func copyableOps[T any]() registry.Ops {
	return registry.Ops{
		Construct: func() any { return new(T) },
		CopyConstruct: func(src any) (any, error) {
			c := *src.(*T)
			return &c, nil
		},
		CopyAssign:    func(dst, src any) { *dst.(*T) = *src.(*T) },
		MoveConstruct: func(src any) any { return src },
		MoveAssign: func(dst, src any) {
			*dst.(*T) = *src.(*T)
			*src.(*T) = *new(T)
		},
	}
}

// buildDomain registers the demo mixin library.
func buildDomain() (*registry.Domain, error) {
	dom := registry.NewDomain()

	draw := dom.RegisterFeature("draw")
	tick := dom.RegisterFeature("tick")

	type entry struct {
		name     string
		ops      registry.Ops
		features []registry.FeatureID
	}
	entries := []entry{
		{"position", copyableOps[Position](), nil},
		{"velocity", copyableOps[Velocity](), []registry.FeatureID{tick}},
		{"renderable", copyableOps[Renderable](), []registry.FeatureID{draw}},
		{"health", copyableOps[Health](), []registry.FeatureID{tick}},
		{"label", copyableOps[Label](), []registry.FeatureID{draw}},
		{"unique", registry.Ops{Construct: func() any { return new(Unique) }}, nil},
	}

	for _, e := range entries {
		if _, err := dom.RegisterMixin(e.name, e.ops, e.features...); err != nil {
			return nil, err
		}
	}
	return dom, nil
}
