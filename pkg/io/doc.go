// Package io loads and saves scene files: plain descriptions of an entity
// forest that are spawned into an [ecs.World].
//
// # Scene Format
//
// A scene has one top-level array of entities. Each entity has an optional
// name, an optional list of component type names, and optional nested
// children:
//
//	{
//	  "entities": [
//	    {
//	      "name": "root",
//	      "components": ["game.Transform"],
//	      "children": [
//	        {"name": "child_a", "children": [{"name": "child_c"}]},
//	        {"name": "child_b"}
//	      ]
//	    }
//	  ]
//	}
//
// The same structure is accepted as TOML using arrays of tables
// ([[entities]], [[entities.children]]).
//
// Component names are attached as [ecs.Tag] components, so the rendered
// hierarchy shows their short names ("game.Transform" prints as
// "Transform"). Names must not contain control characters and component
// names must not contain whitespace; see [Scene.Validate].
//
// # Spawn Order
//
// [Scene.Build] spawns entities in document order, depth first. In a fresh
// world the n-th entity in the file therefore gets index n-1, which makes
// rendered ids predictable from the file alone.
//
// # Import
//
// Use [ImportFile] to load and spawn a file, [LoadFile] to only decode it,
// or [ReadJSON] and [ReadTOML] to read from any io.Reader:
//
//	world, roots, err := io.ImportFile("scene.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Errors carry the codes from pkg/errors: INVALID_SCENE for malformed or
// invalid content, INVALID_FORMAT for an unknown file extension and
// FILE_NOT_FOUND when the file does not exist.
//
// # Export
//
// [SceneOf] captures live subtrees of a world as a [Scene], which
// [WriteJSON], [WriteTOML] and [ExportFile] encode. Export followed by import
// reproduces names, component lists and shape; indices are renumbered.
package io
