package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
	"github.com/matzehuels/entitree/pkg/hierarchy"
	"github.com/matzehuels/entitree/pkg/io"
	"github.com/matzehuels/entitree/pkg/render"
	"github.com/matzehuels/entitree/pkg/render/nodelink"
)

// RenderText writes the text hierarchy of every root, one after another.
// The context is checked between roots.
func RenderText(ctx context.Context, w *ecs.World, roots []ecs.Entity, opts Options) ([]byte, error) {
	hopts := hierarchy.Options{Color: opts.Color, Logger: opts.Logger}

	var buf bytes.Buffer
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := hierarchy.New(root, w, hopts).WriteTo(&buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// RenderDOT returns the Graphviz source for all roots as one graph.
func RenderDOT(w *ecs.World, roots []ecs.Entity, opts Options) (string, error) {
	return nodelink.ToDOT(w, roots, nodelink.Options{Color: opts.Color, Detailed: opts.Detailed})
}

// RenderJSON exports the subtrees below roots as a JSON scene.
func RenderJSON(w *ecs.World, roots []ecs.Entity) ([]byte, error) {
	s, err := io.SceneOf(w, roots...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := io.WriteJSON(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderImage converts DOT source into an image format.
func RenderImage(ctx context.Context, dot, format string, opts Options) ([]byte, error) {
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}

	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		return render.ToPNG(ctx, svg, opts.Scale)
	case FormatPDF:
		return render.ToPDF(ctx, svg)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported image format: %s", format)
	}
}
