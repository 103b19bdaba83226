package registry

import (
	"github.com/wippyai/mixin-runtime/errors"
)

// Template assembles a target composed type declaratively, by mixin name
// or id, and resolves it to an interned TypeInfo. Unknown names are not
// reported at Add time; they surface as a single error at Resolve, so a
// template can be described in full before validation.
//
// Templates are cheap and single-use oriented; Resolve may be called any
// number of times and reflects the template's state at that moment.
type Template struct {
	dom  *Domain
	ids  map[MixinID]struct{}
	errs []error
}

// NewTemplate starts an empty template for this domain.
func (d *Domain) NewTemplate() *Template {
	return &Template{
		dom: d,
		ids: make(map[MixinID]struct{}),
	}
}

// Add includes a mixin by name.
func (t *Template) Add(name string) *Template {
	info := t.dom.MixinByName(name)
	if info == nil {
		t.errs = append(t.errs, errors.NotFound(errors.PhaseRegistry, "mixin", name))
		return t
	}
	t.ids[info.ID] = struct{}{}
	return t
}

// AddID includes a mixin by identifier.
func (t *Template) AddID(id MixinID) *Template {
	if t.dom.Mixin(id) == nil {
		t.errs = append(t.errs, errors.OutOfRange(errors.PhaseRegistry, "mixin", uint32(id), uint32(t.dom.NumMixins())))
		return t
	}
	t.ids[id] = struct{}{}
	return t
}

// Remove excludes a previously added mixin by name. Removing a mixin that
// is not part of the template is a no-op.
func (t *Template) Remove(name string) *Template {
	info := t.dom.MixinByName(name)
	if info == nil {
		return t
	}
	delete(t.ids, info.ID)
	return t
}

// Resolve returns the interned TypeInfo for the template's current mixin
// set. The first recorded description error is returned instead, if any.
func (t *Template) Resolve() (*TypeInfo, error) {
	if len(t.errs) > 0 {
		return nil, t.errs[0]
	}
	ids := make([]MixinID, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	return t.dom.TypeInfoFor(ids...)
}
