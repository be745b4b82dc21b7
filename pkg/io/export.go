package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
)

var (
	nameComponent     = ecs.ComponentNameOf(ecs.Name(""))
	childOfComponent  = ecs.ComponentNameOf(ecs.ChildOf{})
	childrenComponent = ecs.ComponentNameOf(ecs.Children(nil))
)

// SceneOf captures the subtrees below roots as a [Scene].
//
// Names and relations are taken from the world; every other component is
// exported by its fully qualified name. Building the returned scene yields a
// world with the same shape, names and component lists, although entity
// indices are renumbered in document order.
func SceneOf(w *ecs.World, roots ...ecs.Entity) (*Scene, error) {
	s := &Scene{Entities: make([]SceneEntity, len(roots))}
	err := w.Read(func(v ecs.View) error {
		type item struct {
			entity ecs.Entity
			out    *SceneEntity
		}
		stack := make([]item, 0, len(roots))
		for i := len(roots) - 1; i >= 0; i-- {
			stack = append(stack, item{entity: roots[i], out: &s.Entities[i]})
		}
		for len(stack) > 0 {
			it := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !v.Contains(it.entity) {
				return errors.Wrap(errors.ErrCodeEntityNotFound, ecs.ErrNoSuchEntity, "export %s", it.entity)
			}
			if name, ok := v.Label(it.entity); ok {
				it.out.Name = name
			}
			comps, err := v.Components(it.entity)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "export %s", it.entity)
			}
			for _, c := range comps {
				switch c.Name {
				case nameComponent, childOfComponent, childrenComponent:
				default:
					it.out.Components = append(it.out.Components, c.Name)
				}
			}

			kids, ok := v.Children(it.entity)
			if !ok {
				continue
			}
			// Sized up front so the pointers handed to the stack stay valid.
			it.out.Children = make([]SceneEntity, len(kids))
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, item{entity: kids[i], out: &it.out.Children[i]})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// WriteJSON encodes the scene as indented JSON. The output can be read back
// with [ReadJSON].
func WriteJSON(s *Scene, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "encode json")
	}
	return nil
}

// WriteTOML encodes the scene as TOML. The output can be read back with
// [ReadTOML].
func WriteTOML(s *Scene, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "encode toml")
	}
	return nil
}

// ExportFile writes the scene to path, choosing the encoding by extension.
func ExportFile(s *Scene, path string) error {
	write := WriteJSON
	switch sceneExt(path) {
	case ".json":
	case ".toml":
		write = WriteTOML
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported scene file %q (want .json or .toml)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(s, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
