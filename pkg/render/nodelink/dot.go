package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/hierarchy"
	"github.com/matzehuels/entitree/pkg/hierarchy/palette"
	"github.com/matzehuels/entitree/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the component list to every node label.
	// When false, only the name and entity id are shown.
	Detailed bool

	// Color fills every node with its palette color.
	Color bool

	// Palette picks the fill color from the entity index.
	// Nil means [palette.Dispersed].
	Palette palette.Palette
}

// ToDOT converts the hierarchies below roots to a single Graphviz DOT graph.
// Nodes are declared in the same pre-order as the text rendering, one root
// after another, so the output is deterministic for a given store. The
// resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or
// [RenderPNG].
func ToDOT(store hierarchy.Store, roots []ecs.Entity, opts Options) (string, error) {
	if opts.Palette == nil {
		opts.Palette = palette.Dispersed
	}

	var nodes, edges bytes.Buffer
	err := hierarchy.Snapshot(store, func(s hierarchy.Store) error {
		// path[d] is the most recently visited entity at depth d, which is
		// the parent of the next record at depth d+1.
		var path []ecs.Entity
		visit := func(rec hierarchy.Record) error {
			path = append(path[:rec.Depth], rec.Entity)

			label := fmtLabel(s, rec.Entity, opts.Detailed)
			attrs := fmtAttrs(rec.Entity, label, opts)
			fmt.Fprintf(&nodes, "  %q [%s];\n", rec.Entity.String(), strings.Join(attrs, ", "))
			if rec.Depth > 0 {
				fmt.Fprintf(&edges, "  %q -> %q;\n", path[rec.Depth-1].String(), rec.Entity.String())
			}
			return nil
		}
		for _, root := range roots {
			if err := hierarchy.Walk(s, root, visit); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
	buf.Write(nodes.Bytes())
	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(s hierarchy.Store, e ecs.Entity, detailed bool) string {
	label := e.String()
	if name, ok := s.Label(e); ok {
		label = name + "\n" + label
	}
	if !detailed {
		return label
	}

	comps, err := s.Components(e)
	if err != nil || len(comps) == 0 {
		return label
	}
	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = c.ShortName()
	}
	return label + "\n" + strings.Join(names, ", ")
}

func fmtAttrs(e ecs.Entity, label string, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if opts.Color {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", opts.Palette(e.Index).Hex()))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
