package hierarchy

import (
	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
)

// Tree drawing glyphs.
const (
	GlyphLast   = '└' // connector for the final child
	GlyphBranch = '├' // connector for any other child
	GlyphPipe   = '│' // continuation below a non-final child
	GlyphBlank  = ' ' // continuation below a final child
)

// Store is the read-only view of an entity hierarchy consumed by the
// renderer.
type Store interface {
	// Children returns e's children in display order, or false when e has
	// none. A true result with an empty slice is a store bug.
	Children(e ecs.Entity) ([]ecs.Entity, bool)

	// Label returns e's display name, if it has one.
	Label(e ecs.Entity) (string, bool)

	// Components enumerates the components attached to e.
	Components(e ecs.Entity) ([]ecs.ComponentInfo, error)
}

// Snapshotter is implemented by stores that can hold off writers while a
// whole rendering reads from them.
type Snapshotter interface {
	Read(fn func(ecs.View) error) error
}

// Snapshot calls fn with a store that stays consistent for the duration of
// the call. Stores implementing [Snapshotter] are read inside one snapshot;
// any other store is passed through unchanged.
func Snapshot(store Store, fn func(Store) error) error {
	if s, ok := store.(Snapshotter); ok {
		return s.Read(func(v ecs.View) error { return fn(v) })
	}
	return fn(store)
}

// Record is one visited entity.
type Record struct {
	Entity ecs.Entity
	// Prefix is the full tree prefix, connector glyph included. Empty for
	// the root.
	Prefix string
	// Last reports whether Entity is the final child of its parent.
	// Always true for the root.
	Last  bool
	Depth int
}

// pending is a stacked record whose connector has not been applied yet.
type pending struct {
	entity ecs.Entity
	prefix string
	last   bool
	depth  int
}

// Walk visits root and all of its descendants depth first, pre-order, and
// calls fn once per entity. An error from fn stops the walk and is returned
// unchanged. A store that reports an empty children list yields an
// [errors.ErrCodeInvariantViolation] error.
//
// Memory is bounded by the pending siblings along the current path, not by
// the size of the tree.
func Walk(store Store, root ecs.Entity, fn func(Record) error) error {
	stack := []pending{{entity: root, last: true}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rec := Record{Entity: p.entity, Prefix: p.prefix, Last: p.last, Depth: p.depth}
		if p.prefix != "" {
			rec.Prefix = connect(p.prefix, p.last)
		}
		if err := fn(rec); err != nil {
			return err
		}

		kids, ok := store.Children(p.entity)
		if !ok {
			continue
		}
		if len(kids) == 0 {
			return errors.New(errors.ErrCodeInvariantViolation, "entity %s has an empty children list", p.entity)
		}

		next := continuation(p.prefix, p.last)
		// Pushed in reverse so the first child is popped first.
		stack = append(stack, pending{entity: kids[len(kids)-1], prefix: next, last: true, depth: p.depth + 1})
		for i := len(kids) - 2; i >= 0; i-- {
			stack = append(stack, pending{entity: kids[i], prefix: next, last: false, depth: p.depth + 1})
		}
	}
	return nil
}

func connect(prefix string, last bool) string {
	if last {
		return prefix + string(GlyphLast)
	}
	return prefix + string(GlyphBranch)
}

func continuation(prefix string, last bool) string {
	if last {
		return prefix + string(GlyphBlank)
	}
	return prefix + string(GlyphPipe)
}
