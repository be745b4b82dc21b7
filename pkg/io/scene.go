package io

import (
	"fmt"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
)

// Scene is the on-disk description of a world: a forest of entities.
type Scene struct {
	Entities []SceneEntity `json:"entities" toml:"entities"`
}

// SceneEntity describes one entity and, recursively, its children.
type SceneEntity struct {
	Name       string        `json:"name,omitempty" toml:"name,omitempty"`
	Components []string      `json:"components,omitempty" toml:"components,omitempty"`
	Children   []SceneEntity `json:"children,omitempty" toml:"children,omitempty"`
}

// Validate checks every name and component name in the scene. The type
// names of [ecs.Name], [ecs.ChildOf] and [ecs.Children] are rejected as
// components: use the name field and nesting instead.
// The returned error has code [errors.ErrCodeInvalidScene] and names the
// offending entity by its path in the document, e.g. "entities[0].children[2]".
func (s *Scene) Validate() error {
	type item struct {
		path string
		ent  *SceneEntity
	}
	stack := make([]item, 0, len(s.Entities))
	for i := len(s.Entities) - 1; i >= 0; i-- {
		stack = append(stack, item{path: indexPath("entities", i), ent: &s.Entities[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := errors.ValidateLabel(it.ent.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", it.path)
		}
		for _, c := range it.ent.Components {
			if err := errors.ValidateComponentName(c); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", it.path)
			}
			if ecs.IsBuiltin(c) {
				return errors.New(errors.ErrCodeInvalidScene, "%s: component %q is implied by the scene structure", it.path, c)
			}
		}
		for i := len(it.ent.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{path: indexPath(it.path+".children", i), ent: &it.ent.Children[i]})
		}
	}
	return nil
}

// Build validates the scene and spawns it into a new world.
//
// Entities are spawned in document order (pre-order), so the first entity in
// the file gets index 0 and a child always has a higher index than its
// parent. Each entity receives its [ecs.Name] first (when named), then one
// [ecs.Tag] per declared component, then the relation components. Build
// returns the top-level entities in document order.
func (s *Scene) Build() (*ecs.World, []ecs.Entity, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	w := ecs.NewWorld()
	roots := make([]ecs.Entity, 0, len(s.Entities))

	type item struct {
		parent *ecs.Entity
		ent    *SceneEntity
	}
	stack := make([]item, 0, len(s.Entities))
	for i := len(s.Entities) - 1; i >= 0; i-- {
		stack = append(stack, item{ent: &s.Entities[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		comps := it.ent.components()
		var e ecs.Entity
		if it.parent == nil {
			e = w.Spawn(comps...)
			roots = append(roots, e)
		} else {
			var err error
			if e, err = w.SpawnChild(*it.parent, comps...); err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "spawn child of %s", *it.parent)
			}
		}
		for i := len(it.ent.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{parent: &e, ent: &it.ent.Children[i]})
		}
	}
	return w, roots, nil
}

func (se *SceneEntity) components() []any {
	out := make([]any, 0, len(se.Components)+1)
	if se.Name != "" {
		out = append(out, ecs.Name(se.Name))
	}
	for _, c := range se.Components {
		out = append(out, ecs.Tag(c))
	}
	return out
}

func indexPath(prefix string, i int) string {
	return fmt.Sprintf("%s[%d]", prefix, i)
}
