package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Resolve(t *testing.T) {
	dom := NewDomain()
	a, _ := dom.RegisterMixin("alpha", testOps())
	b, _ := dom.RegisterMixin("beta", testOps())

	ti, err := dom.NewTemplate().Add("alpha").Add("beta").Resolve()
	require.NoError(t, err)
	assert.True(t, ti.Has(a.ID))
	assert.True(t, ti.Has(b.ID))

	direct, err := dom.TypeInfoFor(a.ID, b.ID)
	require.NoError(t, err)
	assert.Same(t, direct, ti, "template resolves through the same interning")
}

func TestTemplate_AddRemove(t *testing.T) {
	dom := NewDomain()
	a, _ := dom.RegisterMixin("alpha", testOps())
	_, err := dom.RegisterMixin("beta", testOps())
	require.NoError(t, err)

	ti, err := dom.NewTemplate().
		Add("alpha").
		Add("beta").
		Remove("beta").
		Resolve()
	require.NoError(t, err)
	require.Len(t, ti.Mixins(), 1)
	assert.Same(t, a, ti.Mixins()[0])

	// Removing something never added is a no-op; removing an unknown
	// name is too.
	ti2, err := dom.NewTemplate().Add("alpha").Remove("ghost").Resolve()
	require.NoError(t, err)
	assert.Same(t, ti, ti2)
}

func TestTemplate_Errors(t *testing.T) {
	dom := NewDomain()
	_, err := dom.RegisterMixin("alpha", testOps())
	require.NoError(t, err)

	_, err = dom.NewTemplate().Add("alpha").Add("ghost").Resolve()
	assert.Error(t, err, "unknown names surface at Resolve")

	_, err = dom.NewTemplate().AddID(MixinID(400)).Resolve()
	assert.Error(t, err, "unknown ids surface at Resolve")

	ti, err := dom.NewTemplate().Resolve()
	require.NoError(t, err)
	assert.Same(t, NullTypeInfo(), ti, "an empty template is the null shape")
}
