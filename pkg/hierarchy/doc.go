// Package hierarchy renders an entity hierarchy as a text tree.
//
// # Overview
//
// Given a root entity and a read-only [Store], [New] returns a [Hierarchy]
// that prints the root and every descendant, one line per entity:
//
//	"root" (0v0): [Name, Children]
//	 ├"child_a" (1v0): [Name, ChildOf, Children]
//	 │├"child_c" (2v0): [Name, ChildOf]
//	 │└"child_d" (3v0): [Name, ChildOf, Children]
//	 │ └"child_f" (4v0): [Name, ChildOf]
//	 └"child_b" (5v0): [Name, ChildOf, Children]
//	  └"child_e" (6v0): [Name, ChildOf]
//
// Each line is the tree prefix, the entity label (its name in quotes followed
// by the entity id, or the bare id when unnamed), and the short names of its
// components in store order. With [Options.Color] set, the label is wrapped
// in a 24-bit foreground color picked by the options' palette from the
// entity index; the component list is never colored.
//
// # Traversal
//
// [Walk] visits the tree depth first, pre-order, using an explicit stack, so
// arbitrarily deep trees cannot overflow the call stack. Children are visited
// in the order the store lists them. The store must describe a finite tree;
// no cycle guard is applied.
//
// # Consistency
//
// The store is read many times during one rendering. When the store also
// implements [Snapshotter] (as *ecs.World does), [Hierarchy.WriteTo] renders
// inside a single read-locked snapshot so writers cannot interleave.
package hierarchy
