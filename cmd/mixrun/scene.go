package main

import (
	"sort"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/wippyai/mixin-runtime/arena"
	"github.com/wippyai/mixin-runtime/errors"
	"github.com/wippyai/mixin-runtime/object"
	"github.com/wippyai/mixin-runtime/registry"
)

// sceneFile is the TOML description of a set of composite objects and the
// type transitions to run against them.
type sceneFile struct {
	Objects   []sceneObject   `toml:"objects"`
	Mutations []sceneMutation `toml:"mutations"`
}

type sceneObject struct {
	Name   string   `toml:"name"`
	Mixins []string `toml:"mixins"`
	Arena  bool     `toml:"arena"`
}

type sceneMutation struct {
	Object string   `toml:"object"`
	Add    []string `toml:"add"`
	Remove []string `toml:"remove"`
}

// scene is a live set of composed objects sharing one domain.
type scene struct {
	dom     *registry.Domain
	names   []string
	objects map[string]*object.Object
}

func loadSceneFile(path string) (*sceneFile, error) {
	var sf sceneFile
	if _, err := toml.DecodeFile(path, &sf); err != nil {
		return nil, errors.Wrap(errors.PhaseScene, errors.KindInvalidInput, err, "decode scene file")
	}
	return &sf, nil
}

func buildScene(sf *sceneFile) (*scene, error) {
	dom, err := buildDomain()
	if err != nil {
		return nil, err
	}

	s := &scene{
		dom:     dom,
		objects: make(map[string]*object.Object),
	}

	for _, so := range sf.Objects {
		if so.Name == "" {
			return nil, errors.InvalidInput(errors.PhaseScene, "object without a name")
		}
		if _, dup := s.objects[so.Name]; dup {
			return nil, errors.InvalidInput(errors.PhaseScene, "duplicate object name "+so.Name)
		}

		tpl := dom.NewTemplate()
		for _, m := range so.Mixins {
			tpl.Add(m)
		}
		ti, err := tpl.Resolve()
		if err != nil {
			s.Close()
			return nil, err
		}

		var o *object.Object
		if so.Arena {
			o = object.NewWithAllocator(arena.New())
		} else {
			o = object.New()
		}
		if err := o.ChangeType(ti); err != nil {
			o.Close()
			s.Close()
			return nil, err
		}
		s.add(so.Name, o)
	}

	return s, nil
}

func (s *scene) add(name string, o *object.Object) {
	s.objects[name] = o
	s.names = append(s.names, name)
}

func (s *scene) remove(name string) {
	delete(s.objects, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			return
		}
	}
}

// mutate applies one scene mutation as a single type transition.
func (s *scene) mutate(m sceneMutation) error {
	o, ok := s.objects[m.Object]
	if !ok {
		return errors.NotFound(errors.PhaseScene, "object", m.Object)
	}

	mut := object.Mutate(o, s.dom)
	for _, name := range m.Add {
		mut.Add(name)
	}
	for _, name := range m.Remove {
		mut.Remove(name)
	}
	return mut.Apply()
}

// mixinNames returns the selected object's mixins, in shape order.
func (s *scene) mixinNames(o *object.Object) []string {
	infos := o.TypeInfo().Mixins()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}

// registered returns every registered mixin name, sorted.
func (s *scene) registered() []string {
	names := make([]string, 0, s.dom.NumMixins())
	for id := 0; id < s.dom.NumMixins(); id++ {
		names = append(names, s.dom.Mixin(registry.MixinID(id)).Name)
	}
	sort.Strings(names)
	return names
}

// Close releases every object in the scene.
func (s *scene) Close() error {
	var err error
	for _, name := range s.names {
		err = multierr.Append(err, s.objects[name].Close())
	}
	s.objects = make(map[string]*object.Object)
	s.names = nil
	return err
}
