// Package pkg provides the core libraries for Entitree entity hierarchy
// printing.
//
// # Overview
//
// Entitree takes a world of entities linked by parent/child relations and
// prints the tree below a root entity, one line per entity:
//
//	"root" (0v0): [Name, Children]
//	 ├"child_a" (1v0): [Name, ChildOf, Children]
//	 │└"child_c" (2v0): [Name, ChildOf]
//	 └"child_b" (3v0): [Name, ChildOf]
//
// The pkg directory is organized into these areas:
//
//  1. [ecs] - Entities, components and the parent/child relation
//  2. [hierarchy] - Tree traversal and the text renderer
//  3. [io] - JSON and TOML scene files
//  4. [render] - Graphviz diagrams and SVG conversion
//  5. [pipeline] - Orchestration (load → select roots → render) with caching
//
// # Architecture
//
// The typical data flow through Entitree:
//
//	Scene file (.json / .toml)
//	         ↓
//	    [io] package (decode + validate + spawn)
//	         ↓
//	    [ecs] package (World with Name, ChildOf, Children)
//	         ↓
//	    [hierarchy] package (pre-order walk + colored labels)
//	         ↓
//	    text / DOT / SVG / PNG / PDF / JSON output
//
// # Quick Start
//
// Build a world and print it:
//
//	w := ecs.NewWorld()
//	root := w.Spawn(ecs.Name("root"))
//	w.SpawnChild(root, ecs.Name("child"))
//
//	fmt.Print(hierarchy.New(root, w, hierarchy.DefaultOptions()))
//
// Load a scene and render every root:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Execute(ctx, "scene.json", pipeline.Options{})
//	os.Stdout.Write(result.Artifacts[pipeline.FormatText])
//
// # Supporting Packages
//
// [errors] - Error codes shared by every package.
//
// [cache] - File and null caches for rendered images.
//
// [observability] - Hooks for load, render and cache events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/hierarchy -update      # Regenerate golden files
//	go test -run Example ./pkg/...       # Examples only
//
// [ecs]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/ecs
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/hierarchy
// [io]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/errors
// [cache]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/entitree/pkg/buildinfo
package pkg
