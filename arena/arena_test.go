package arena

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/mixin-runtime/object"
	"github.com/wippyai/mixin-runtime/registry"
)

type health struct {
	HP int
}

type mana struct {
	MP int
}

func fullOps[T any]() registry.Ops {
	return registry.Ops{
		Construct: func() any { return new(T) },
		CopyConstruct: func(src any) (any, error) {
			c := *src.(*T)
			return &c, nil
		},
		CopyAssign:    func(dst, src any) { *dst.(*T) = *src.(*T) },
		MoveConstruct: func(src any) any { return src },
	}
}

func testDomain(t *testing.T) (*registry.Domain, *registry.MixinInfo, *registry.MixinInfo) {
	t.Helper()
	dom := registry.NewDomain()
	h, err := dom.RegisterMixin("health", fullOps[health]())
	require.NoError(t, err)
	m, err := dom.RegisterMixin("mana", fullOps[mana]())
	require.NoError(t, err)
	return dom, h, m
}

func TestArena_ObjectLifecycle(t *testing.T) {
	dom, h, m := testDomain(t)

	al := New()
	o := object.NewWithAllocator(al)
	assert.Same(t, o, al.Bound())

	ti, err := dom.TypeInfoFor(h.ID, m.ID)
	require.NoError(t, err)
	require.NoError(t, o.ChangeType(ti))
	assert.Equal(t, 2, al.Len(), "both mixins live in the arena")

	hp, ok := o.Get(h.ID)
	require.True(t, ok)
	hp.(*health).HP = 100

	// Dropping a mixin returns its cell to the arena.
	ti2, err := dom.TypeInfoFor(h.ID)
	require.NoError(t, err)
	require.NoError(t, o.ChangeType(ti2))
	assert.Equal(t, 1, al.Len())

	hp2, _ := o.Get(h.ID)
	assert.Equal(t, 100, hp2.(*health).HP, "surviving mixin keeps its value")

	o.Clear()
	assert.Equal(t, 0, al.Len())

	require.NoError(t, o.Close())
	assert.Nil(t, al.Bound(), "close detaches the allocator")
}

func TestArena_FreeListReuse(t *testing.T) {
	dom, h, m := testDomain(t)

	al := New()
	o := object.NewWithAllocator(al)
	defer o.Close()

	both, err := dom.TypeInfoFor(h.ID, m.ID)
	require.NoError(t, err)
	onlyH, err := dom.TypeInfoFor(h.ID)
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		require.NoError(t, o.ChangeType(both))
		require.NoError(t, o.ChangeType(onlyH))
	}
	assert.Equal(t, 1, al.Len(), "churn must not leak cells")
}

func TestArena_MoveFollowsStorage(t *testing.T) {
	dom, h, _ := testDomain(t)

	al := New()
	a := object.NewWithAllocator(al)
	ti, err := dom.TypeInfoFor(h.ID)
	require.NoError(t, err)
	require.NoError(t, a.ChangeType(ti))

	b := object.Move(a)
	defer b.Close()

	assert.Nil(t, a.Allocator(), "move source loses its allocator")
	assert.Same(t, al, b.Allocator(), "the arena migrates with its storage")
	assert.Same(t, b, al.Bound())
	assert.Equal(t, 1, al.Len())

	owner, ok := b.OwnerOf(h.ID)
	require.True(t, ok)
	assert.Same(t, b, owner)
}

func TestArena_CopyGetsFreshArena(t *testing.T) {
	dom, h, _ := testDomain(t)

	src := object.NewWithAllocator(New())
	defer src.Close()
	ti, err := dom.TypeInfoFor(h.ID)
	require.NoError(t, err)
	require.NoError(t, src.ChangeType(ti))
	hp, _ := src.Get(h.ID)
	hp.(*health).HP = 55

	dst := object.New()
	require.NoError(t, dst.CopyFrom(src))
	defer dst.Close()

	require.NotNil(t, dst.Allocator(), "copy target acquires an allocator from the source's hook")
	assert.NotSame(t, src.Allocator(), dst.Allocator(), "the copy gets its own arena")

	dhp, _ := dst.Get(h.ID)
	assert.Equal(t, 55, dhp.(*health).HP)
	assert.NotSame(t, hp, dhp, "the copy must not alias source storage")
}

func TestArena_Exhaustion(t *testing.T) {
	dom, h, m := testDomain(t)

	o := object.NewWithAllocator(NewSized(1))
	ti, err := dom.TypeInfoFor(h.ID, m.ID)
	require.NoError(t, err)

	err = o.ChangeType(ti)
	require.Error(t, err, "a full arena is a fatal resource error")
	assert.True(t, stderrors.Is(err, ErrFull), "the arena's sentinel is preserved in the chain")

	// The failed transition constructed health and left mana's slot empty.
	assert.Equal(t, int64(1), h.NumLive())
	assert.Equal(t, int64(0), m.NumLive())

	// Closing afterwards settles only the mixins actually constructed;
	// the unconstructed slot must not drive a counter negative.
	require.NoError(t, o.Close())
	assert.Equal(t, int64(0), h.NumLive())
	assert.Equal(t, int64(0), m.NumLive())
}

func TestArena_Compaction(t *testing.T) {
	dom, h, m := testDomain(t)

	al := New()
	o := object.NewWithAllocator(al)
	defer o.Close()

	both, err := dom.TypeInfoFor(h.ID, m.ID)
	require.NoError(t, err)
	onlyM, err := dom.TypeInfoFor(m.ID)
	require.NoError(t, err)

	require.NoError(t, o.ChangeType(both))
	require.NoError(t, o.ChangeType(onlyM))
	require.NoError(t, o.ChangeType(both))
	hp, _ := o.Get(h.ID)
	hp.(*health).HP = 7

	require.NoError(t, o.ReallocateMixins())

	assert.Equal(t, 2, al.Len())
	hp2, _ := o.Get(h.ID)
	assert.Equal(t, 7, hp2.(*health).HP, "values survive compaction")
	owner, _ := o.OwnerOf(h.ID)
	assert.Same(t, o, owner)
}
