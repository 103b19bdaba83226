package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOps() Ops {
	return Ops{
		Construct: func() any { return new(int) },
	}
}

func TestDomain_RegisterMixin(t *testing.T) {
	dom := NewDomain()

	a, err := dom.RegisterMixin("alpha", testOps())
	require.NoError(t, err)
	b, err := dom.RegisterMixin("beta", testOps())
	require.NoError(t, err)

	assert.Equal(t, MixinID(0), a.ID)
	assert.Equal(t, MixinID(1), b.ID)
	assert.Equal(t, 2, dom.NumMixins())

	assert.Same(t, a, dom.Mixin(a.ID))
	assert.Same(t, a, dom.MixinByName("alpha"))
	assert.Equal(t, a.ID, dom.MixinIDByName("alpha"))

	// Unknown and out-of-range lookups degrade, never panic.
	assert.Equal(t, InvalidMixinID, dom.MixinIDByName("ghost"))
	assert.Nil(t, dom.MixinByName("ghost"))
	assert.Nil(t, dom.Mixin(MixinID(99)))
}

func TestDomain_RegisterMixin_Errors(t *testing.T) {
	dom := NewDomain()

	_, err := dom.RegisterMixin("", testOps())
	assert.Error(t, err, "empty name must be rejected")

	_, err = dom.RegisterMixin("dup", testOps())
	require.NoError(t, err)
	_, err = dom.RegisterMixin("dup", testOps())
	assert.Error(t, err, "duplicate name must be rejected")
}

func TestDomain_TypeInfoInterning(t *testing.T) {
	dom := NewDomain()
	a, _ := dom.RegisterMixin("alpha", testOps())
	b, _ := dom.RegisterMixin("beta", testOps())
	c, _ := dom.RegisterMixin("gamma", testOps())

	t1, err := dom.TypeInfoFor(a.ID, b.ID)
	require.NoError(t, err)
	t2, err := dom.TypeInfoFor(b.ID, a.ID)
	require.NoError(t, err)
	assert.Same(t, t1, t2, "permutations of the same set must intern to one descriptor")

	t3, err := dom.TypeInfoFor(a.ID, b.ID, b.ID, a.ID)
	require.NoError(t, err)
	assert.Same(t, t1, t3, "duplicates must not change the shape")

	t4, err := dom.TypeInfoFor(a.ID, b.ID, c.ID)
	require.NoError(t, err)
	assert.NotSame(t, t1, t4)
	assert.Equal(t, 2, dom.NumTypes())

	_, err = dom.TypeInfoFor(MixinID(42))
	assert.Error(t, err, "unregistered id must be rejected")
}

func TestDomain_TypeInfoLayout(t *testing.T) {
	dom := NewDomain()
	a, _ := dom.RegisterMixin("alpha", testOps())
	b, _ := dom.RegisterMixin("beta", testOps())

	ti, err := dom.TypeInfoFor(b.ID, a.ID)
	require.NoError(t, err)

	require.Len(t, ti.Mixins(), 2)
	assert.Same(t, a, ti.Mixins()[0], "compact list is ordered by id")
	assert.Same(t, b, ti.Mixins()[1])

	assert.True(t, ti.Has(a.ID))
	assert.False(t, ti.Has(MixinID(17)))

	// Real mixins start after the reserved default-impl slot.
	assert.Equal(t, SlotOffset, ti.SlotIndex(a.ID))
	assert.Equal(t, SlotOffset+1, ti.SlotIndex(b.ID))
	assert.Equal(t, 3, ti.SlotCount())

	assert.Same(t, dom, ti.Domain())
}

func TestNullTypeInfo(t *testing.T) {
	null := NullTypeInfo()

	assert.Same(t, null, NullTypeInfo(), "null descriptor is shared process-wide")
	assert.Equal(t, 0, null.SlotCount())
	assert.Empty(t, null.Mixins())
	assert.False(t, null.Has(0))
	assert.False(t, null.Implements(0))
	assert.Nil(t, null.Domain())

	dom := NewDomain()
	ti, err := dom.TypeInfoFor()
	require.NoError(t, err)
	assert.Same(t, null, ti, "the empty set resolves to the null descriptor")
}

func TestDomain_Features(t *testing.T) {
	dom := NewDomain()

	draw := dom.RegisterFeature("draw")
	tick := dom.RegisterFeature("tick")
	assert.NotEqual(t, draw, tick)
	assert.Equal(t, draw, dom.RegisterFeature("draw"), "re-registration is idempotent")
	assert.Equal(t, draw, dom.FeatureIDByName("draw"))
	assert.Equal(t, InvalidFeatureID, dom.FeatureIDByName("ghost"))

	r, _ := dom.RegisterMixin("renderable", testOps(), draw)
	u, _ := dom.RegisterMixin("updatable", testOps(), tick)
	p, _ := dom.RegisterMixin("plain", testOps())

	assert.True(t, r.Provides(draw))
	assert.False(t, r.Provides(tick))

	ti, err := dom.TypeInfoFor(r.ID, u.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ti.Implements(draw), "feature table is the union over mixins")
	assert.True(t, ti.Implements(tick))

	ti2, err := dom.TypeInfoFor(p.ID)
	require.NoError(t, err)
	assert.False(t, ti2.Implements(draw))
}

func TestMixinInfo_LiveCounter(t *testing.T) {
	dom := NewDomain()
	m, _ := dom.RegisterMixin("counted", testOps())

	assert.EqualValues(t, 0, m.NumLive())
	m.IncLive()
	m.IncLive()
	assert.EqualValues(t, 2, m.NumLive())
	m.DecLive()
	assert.EqualValues(t, 1, m.NumLive())
}

func TestTypeInfo_ObjectCounter(t *testing.T) {
	dom := NewDomain()
	m, _ := dom.RegisterMixin("solo", testOps())
	ti, err := dom.TypeInfoFor(m.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, ti.NumObjects())
	ti.IncObjects()
	assert.EqualValues(t, 1, ti.NumObjects())
	ti.DecObjects()
	assert.EqualValues(t, 0, ti.NumObjects())
}
