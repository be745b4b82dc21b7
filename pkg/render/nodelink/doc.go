// Package nodelink renders entity hierarchies as node-link diagrams.
//
// # Overview
//
// Where pkg/hierarchy prints the tree as text, this package emits Graphviz
// DOT with one box per entity and one arrow per parent/child relation.
// Nodes are named by entity id ("3v0") and labeled with the entity name.
//
// # Usage
//
// Convert a hierarchy to DOT, then render to SVG:
//
//	dot, err := nodelink.ToDOT(world, []ecs.Entity{root}, nodelink.Options{Color: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include the short component names
//   - Color: nodes are filled with the same per-entity color the text
//     renderer uses for labels
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
