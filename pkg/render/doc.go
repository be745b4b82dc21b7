// Package render holds the graphical output formats for entity hierarchies.
//
// The text tree lives in pkg/hierarchy. This package adds:
//
//   - Node-link diagrams via Graphviz (in the [nodelink] subpackage)
//   - Format conversion from SVG to PDF and PNG ([ToPDF], [ToPNG])
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). When the tool
// is missing they return an UNSUPPORTED error with install instructions.
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/entitree/pkg/render/nodelink
package render
