package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
)

// SelectRoots resolves which entities to render.
//
// An empty selector selects every root of the world in index order. A full
// id such as "3v0" must match a live entity exactly; a bare index such as "3"
// matches whatever generation currently occupies the slot. The selected
// entity does not have to be a root: its subtree is rendered on its own.
func SelectRoots(w *ecs.World, selector string) ([]ecs.Entity, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		roots := w.Roots()
		if len(roots) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no entities")
		}
		return roots, nil
	}

	if !strings.Contains(selector, "v") {
		idx, err := strconv.ParseUint(selector, 10, 32)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid entity %q", selector)
		}
		e, ok := w.Resolve(uint32(idx))
		if !ok {
			return nil, errors.New(errors.ErrCodeEntityNotFound, "no entity at index %d", idx)
		}
		return []ecs.Entity{e}, nil
	}

	e, err := ecs.ParseEntity(selector)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid entity %q", selector)
	}
	if !w.Contains(e) {
		return nil, errors.New(errors.ErrCodeEntityNotFound, "entity %s does not exist", e)
	}
	return []ecs.Entity{e}, nil
}
