package ecs

import (
	"errors"
	"slices"
	"sync"
)

var (
	// ErrNoSuchEntity is returned when a handle does not refer to a live
	// entity: it was never spawned, or it was despawned and its slot reused.
	ErrNoSuchEntity = errors.New("no such entity")

	// ErrSelfParent is returned by [World.AddChild] when parent and child are
	// the same entity.
	ErrSelfParent = errors.New("entity cannot be its own parent")

	// ErrHierarchyCycle is returned by [World.AddChild] when the child is an
	// ancestor of the parent. The world only ever holds a forest.
	ErrHierarchyCycle = errors.New("edge would create a hierarchy cycle")

	// ErrRelationComponent is returned by [World.Insert] for [ChildOf] and
	// [Children]. Relations must go through [World.AddChild].
	ErrRelationComponent = errors.New("hierarchy components are managed by the world")

	// ErrBuiltinName is returned by [World.Insert] for a value of another
	// type that claims the type name of a built-in component, such as a
	// [Tag] spelled like [Name].
	ErrBuiltinName = errors.New("component name is reserved for a built-in type")
)

// component is one attached value with its cached type name.
type component struct {
	name  string
	value any
}

// slot holds the state of one entity index.
type slot struct {
	generation uint32
	alive      bool
	components []component // insertion order
}

// World stores entities, their components and the parent/child hierarchy.
//
// The zero value is not usable - use NewWorld to create a World.
// World is safe for concurrent use.
type World struct {
	mu    sync.RWMutex
	slots []slot
	free  []uint32 // recycled indices, most recent last
	live  int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// Spawn creates an entity with the given components, attached in order.
// [ChildOf] and [Children] values are ignored; use [World.SpawnChild]. So
// are values of other types that claim a built-in component name.
func (w *World) Spawn(components ...any) Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.spawn(components)
}

func (w *World) spawn(components []any) Entity {
	var e Entity
	if n := len(w.free); n > 0 {
		e.Index = w.free[n-1]
		w.free = w.free[:n-1]
		e.Generation = w.slots[e.Index].generation
	} else {
		e.Index = uint32(len(w.slots))
		w.slots = append(w.slots, slot{})
	}
	s := &w.slots[e.Index]
	s.alive = true
	s.components = s.components[:0]
	for _, c := range components {
		if isRelation(c) || isImpostor(c) {
			continue
		}
		w.set(e, c)
	}
	w.live++
	return e
}

// SpawnChild creates an entity with the given components and appends it to
// parent's children.
func (w *World) SpawnChild(parent Entity, components ...any) (Entity, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.alive(parent) {
		return Entity{}, ErrNoSuchEntity
	}
	child := w.spawn(components)
	w.link(parent, child)
	return child, nil
}

// Despawn removes e and all of its descendants. The entity is detached from
// its parent first, and every freed slot has its generation bumped.
func (w *World) Despawn(e Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.alive(e) {
		return ErrNoSuchEntity
	}
	w.unlink(e)

	stack := []Entity{e}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c, ok := w.get(cur, childrenComponent); ok {
			kids, _ := c.(Children)
			stack = append(stack, kids...)
		}
		s := &w.slots[cur.Index]
		s.alive = false
		s.components = nil
		s.generation++
		w.free = append(w.free, cur.Index)
		w.live--
	}
	return nil
}

// Contains reports whether e refers to a live entity.
func (w *World) Contains(e Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.alive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.live
}

// Insert attaches c to e. A component of the same type already on e is
// replaced in place and keeps its position in the enumeration order.
func (w *World) Insert(e Entity, c any) error {
	if isRelation(c) {
		return ErrRelationComponent
	}
	if isImpostor(c) {
		return ErrBuiltinName
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.alive(e) {
		return ErrNoSuchEntity
	}
	w.set(e, c)
	return nil
}

// Remove detaches the component with the given fully qualified name.
// It reports whether a component was removed.
func (w *World) Remove(e Entity, name string) bool {
	if name == childOfComponent || name == childrenComponent {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.alive(e) {
		return false
	}
	return w.del(e, name)
}

// AddChild appends child to parent's children. If child already has a
// parent it is moved. Returns [ErrSelfParent] or [ErrHierarchyCycle] for
// edges that would break the forest shape.
func (w *World) AddChild(parent, child Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.alive(parent) || !w.alive(child) {
		return ErrNoSuchEntity
	}
	if parent == child {
		return ErrSelfParent
	}
	for cur, ok := w.parent(parent); ok; cur, ok = w.parent(cur) {
		if cur == child {
			return ErrHierarchyCycle
		}
	}
	if p, ok := w.parent(child); ok && p == parent {
		return nil
	}
	w.unlink(child)
	w.link(parent, child)
	return nil
}

// Get returns the component of type T attached to e.
func Get[T any](w *World, e Entity) (T, bool) {
	var zero T
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.alive(e) {
		return zero, false
	}
	v, ok := w.get(e, ComponentNameOf(zero))
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Parent returns the parent of e, if any.
func (w *World) Parent(e Entity) (Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.alive(e) {
		return Entity{}, false
	}
	return w.parent(e)
}

// Children returns the children of e in insertion order. The boolean is
// false when e has no children. The returned slice is a copy.
func (w *World) Children(e Entity) ([]Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	kids, ok := View{w}.Children(e)
	return slices.Clone(kids), ok
}

// Label returns the [Name] of e, if any.
func (w *World) Label(e Entity) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return View{w}.Label(e)
}

// Components enumerates the components attached to e in insertion order.
func (w *World) Components(e Entity) ([]ComponentInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return View{w}.Components(e)
}

// Roots returns every live entity without a parent, in index order.
func (w *World) Roots() []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	var roots []Entity
	for i := range w.slots {
		e := Entity{Index: uint32(i), Generation: w.slots[i].generation}
		if !w.slots[i].alive {
			continue
		}
		if _, ok := w.parent(e); !ok {
			roots = append(roots, e)
		}
	}
	return roots
}

// Resolve returns the live entity occupying index, whatever its generation.
func (w *World) Resolve(index uint32) (Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if int(index) >= len(w.slots) || !w.slots[index].alive {
		return Entity{}, false
	}
	return Entity{Index: index, Generation: w.slots[index].generation}, true
}

// Read calls fn with a [View] while holding the read lock, so that no
// writer can modify the world until fn returns. fn must not call methods
// on w itself; the View provides the read API without re-locking.
func (w *World) Read(fn func(View) error) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return fn(View{w})
}

// View is an unlocked read-only accessor obtained from [World.Read].
// It must not be retained after the callback returns.
type View struct {
	w *World
}

// Contains reports whether e refers to a live entity.
func (v View) Contains(e Entity) bool { return v.w.alive(e) }

// Children returns the children of e in insertion order. The returned
// slice aliases world storage and must not be modified.
func (v View) Children(e Entity) ([]Entity, bool) {
	if !v.w.alive(e) {
		return nil, false
	}
	c, _ := v.w.get(e, childrenComponent)
	kids, ok := c.(Children)
	return kids, ok
}

// Label returns the [Name] of e, if any.
func (v View) Label(e Entity) (string, bool) {
	if !v.w.alive(e) {
		return "", false
	}
	c, _ := v.w.get(e, nameComponent)
	switch n := c.(type) {
	case Name:
		return string(n), true
	case *Name:
		if n != nil {
			return string(*n), true
		}
	}
	return "", false
}

// Components enumerates the components attached to e in insertion order.
// Returns [ErrNoSuchEntity] if e is not alive.
func (v View) Components(e Entity) ([]ComponentInfo, error) {
	if !v.w.alive(e) {
		return nil, ErrNoSuchEntity
	}
	comps := v.w.slots[e.Index].components
	infos := make([]ComponentInfo, len(comps))
	for i, c := range comps {
		infos[i] = ComponentInfo{Name: c.name}
	}
	return infos, nil
}

// =============================================================================
// Internal helpers (callers hold the lock)
// =============================================================================

func (w *World) alive(e Entity) bool {
	return int(e.Index) < len(w.slots) &&
		w.slots[e.Index].alive &&
		w.slots[e.Index].generation == e.Generation
}

func (w *World) get(e Entity, name string) (any, bool) {
	for _, c := range w.slots[e.Index].components {
		if c.name == name {
			return c.value, true
		}
	}
	return nil, false
}

func (w *World) set(e Entity, v any) {
	name := ComponentNameOf(v)
	s := &w.slots[e.Index]
	for i := range s.components {
		if s.components[i].name == name {
			s.components[i].value = v
			return
		}
	}
	s.components = append(s.components, component{name: name, value: v})
}

func (w *World) del(e Entity, name string) bool {
	s := &w.slots[e.Index]
	n := len(s.components)
	s.components = slices.DeleteFunc(s.components, func(c component) bool { return c.name == name })
	return len(s.components) != n
}

func (w *World) parent(e Entity) (Entity, bool) {
	c, _ := w.get(e, childOfComponent)
	rel, ok := c.(ChildOf)
	return rel.Parent, ok
}

// link attaches child (which must have no parent) to the end of parent's
// children list.
func (w *World) link(parent, child Entity) {
	w.set(child, ChildOf{Parent: parent})
	c, _ := w.get(parent, childrenComponent)
	kids, _ := c.(Children)
	w.set(parent, append(kids, child))
}

// unlink detaches e from its parent, dropping the parent's Children
// component when it becomes empty.
func (w *World) unlink(e Entity) {
	p, ok := w.parent(e)
	if !ok {
		return
	}
	w.del(e, childOfComponent)
	c, _ := w.get(p, childrenComponent)
	kids, ok := c.(Children)
	if !ok {
		return
	}
	kids = slices.DeleteFunc(slices.Clone(kids), func(k Entity) bool { return k == e })
	if len(kids) == 0 {
		w.del(p, childrenComponent)
		return
	}
	w.set(p, kids)
}

// isRelation reports whether c would be stored as ChildOf or Children.
func isRelation(c any) bool {
	switch c.(type) {
	case ChildOf, *ChildOf, Children, *Children:
		return true
	}
	return false
}

// isImpostor reports whether c carries a built-in component name without
// being of the built-in type.
func isImpostor(c any) bool {
	name := ComponentNameOf(c)
	if !IsBuiltin(name) {
		return false
	}
	switch c.(type) {
	case Name, *Name, ChildOf, *ChildOf, Children, *Children:
		return false
	}
	return true
}
