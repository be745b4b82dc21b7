// Package ecs provides a small entity/component store with a parent/child
// hierarchy, used as the data source for hierarchy rendering.
//
// # Overview
//
// A [World] owns entities and the components attached to them. Entities are
// generational handles ([Entity]): an index into a slot table plus a
// generation counter that is bumped every time a slot is recycled, so a stale
// handle never aliases a newer entity.
//
// Components are arbitrary Go values. Each entity keeps its components in
// insertion order, and [World.Components] enumerates them in that order as
// [ComponentInfo] descriptors carrying the fully qualified type name. Use
// [ShortName] to strip package paths for display.
//
// # Hierarchy
//
// Parent/child relations are stored as components, mirroring how most ECS
// engines model them:
//
//   - [ChildOf] on the child, pointing at its parent
//   - [Children] on the parent, listing children in insertion order
//
// Relations are maintained by [World.AddChild], [World.SpawnChild] and
// [World.Despawn]; a [Children] component is removed as soon as its list
// would become empty, so a present [Children] list is never empty. The world
// refuses edges that would create a cycle, so the hierarchy is always a
// forest.
//
//	w := ecs.NewWorld()
//	root := w.Spawn(ecs.Name("root"))
//	child, _ := w.SpawnChild(root, ecs.Name("child"))
//	kids, _ := w.Children(root) // [child]
//
// # Concurrency
//
// World methods are safe for concurrent use. Readers that need a consistent
// view across many calls (such as a full hierarchy rendering) should use
// [World.Read], which holds the read lock for the duration of the callback
// and hands out an unlocked [View].
package ecs
