package hierarchy

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
	"github.com/matzehuels/entitree/pkg/hierarchy/palette"
)

// Options configures hierarchy rendering.
type Options struct {
	// Color wraps every entity label in a per-entity foreground color.
	Color bool

	// Palette picks the label color from the entity index.
	// Nil means [palette.Dispersed].
	Palette palette.Palette

	// Logger receives debug messages about entities whose components could
	// not be enumerated. Nil disables logging.
	Logger *log.Logger
}

// DefaultOptions returns the options used when the caller has no
// preference: colored output with the dispersed palette.
func DefaultOptions() Options {
	return Options{Color: true}
}

// Hierarchy renders the tree below one root entity.
// It holds no output; every call to WriteTo or String re-reads the store.
type Hierarchy struct {
	root  ecs.Entity
	store Store
	opts  Options
}

// New returns a Hierarchy rooted at root.
func New(root ecs.Entity, store Store, opts Options) *Hierarchy {
	if opts.Palette == nil {
		opts.Palette = palette.Dispersed
	}
	return &Hierarchy{root: root, store: store, opts: opts}
}

// WriteTo streams the rendering to w, one Write call per line.
//
// A failed write aborts the rendering; the returned error has code
// [errors.ErrCodeWriteFailed] and wraps the writer's error. Entities whose
// components cannot be enumerated are rendered with no components.
func (h *Hierarchy) WriteTo(w io.Writer) (int64, error) {
	var n int64
	err := Snapshot(h.store, func(s Store) error {
		var err error
		n, err = h.write(w, s)
		return err
	})
	return n, err
}

// String renders the hierarchy into a string. If rendering fails, the
// output produced so far is followed by "%!(ERROR <err>)".
func (h *Hierarchy) String() string {
	var b strings.Builder
	if _, err := h.WriteTo(&b); err != nil {
		fmt.Fprintf(&b, "%%!(ERROR %v)", err)
	}
	return b.String()
}

func (h *Hierarchy) write(w io.Writer, store Store) (int64, error) {
	var (
		total int64
		line  []byte
	)
	err := Walk(store, h.root, func(rec Record) error {
		line = h.appendLine(line[:0], store, rec)
		n, err := w.Write(line)
		total += int64(n)
		if err != nil {
			return errors.Wrap(errors.ErrCodeWriteFailed, err, "write %s", rec.Entity)
		}
		return nil
	})
	return total, err
}

// appendLine formats one record: prefix, colored label, component list.
func (h *Hierarchy) appendLine(buf []byte, store Store, rec Record) []byte {
	buf = append(buf, rec.Prefix...)

	if h.opts.Color {
		buf = append(buf, palette.Start(h.opts.Palette(rec.Entity.Index))...)
	}
	if name, ok := store.Label(rec.Entity); ok {
		buf = append(buf, '"')
		buf = append(buf, name...)
		buf = append(buf, `" (`...)
		buf = append(buf, rec.Entity.String()...)
		buf = append(buf, ')')
	} else {
		buf = append(buf, rec.Entity.String()...)
	}
	if h.opts.Color {
		buf = append(buf, palette.Reset()...)
	}

	comps, err := store.Components(rec.Entity)
	if err != nil {
		comps = nil
		if h.opts.Logger != nil {
			h.opts.Logger.Debug("cannot enumerate components", "entity", rec.Entity, "err", err)
		}
	}
	for i, c := range comps {
		if i == 0 {
			buf = append(buf, ": ["...)
		} else {
			buf = append(buf, ", "...)
		}
		buf = append(buf, c.ShortName()...)
	}
	if len(comps) > 0 {
		buf = append(buf, ']')
	}

	return append(buf, '\n')
}
