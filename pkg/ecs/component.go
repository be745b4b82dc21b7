package ecs

import (
	"reflect"
	"strings"
)

// Name is a human readable label for an entity.
type Name string

// ChildOf marks an entity as a child of Parent.
type ChildOf struct {
	Parent Entity
}

// Children lists the children of an entity in insertion order.
// The world never stores an empty Children component.
type Children []Entity

// Tag is a data-less component identified only by its name. Scene files use
// tags to declare components that have no Go type in this process.
type Tag string

// ComponentName returns the tag itself as the component type name.
func (t Tag) ComponentName() string { return string(t) }

// Namer is implemented by components that report their own type name
// instead of the name derived from their Go type.
type Namer interface {
	ComponentName() string
}

// ComponentInfo describes a component attached to an entity.
type ComponentInfo struct {
	// Name is the fully qualified type name,
	// e.g. "github.com/matzehuels/entitree/pkg/ecs.Name".
	Name string
}

// ShortName returns Name with every package qualifier removed.
func (c ComponentInfo) ShortName() string { return ShortName(c.Name) }

// ComponentNameOf returns the fully qualified component name for value v.
// Pointer types are named after the type they point to.
func ComponentNameOf(v any) string {
	if n, ok := v.(Namer); ok {
		return n.ComponentName()
	}
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// nameDelims separate the type names nested inside a composite name.
const nameDelims = "[]<>(),;*& "

// ShortName strips package paths from every type name inside full.
//
//	github.com/acme/game/physics.Velocity       -> Velocity
//	pkg.Store[github.com/acme/component.Glyph]  -> Store[Glyph]
//	bevy_transform::components::Transform       -> Transform
//	*physics.Body                               -> *Body
func ShortName(full string) string {
	var b strings.Builder
	b.Grow(len(full))
	start := 0
	for i := 0; i < len(full); i++ {
		if strings.IndexByte(nameDelims, full[i]) < 0 {
			continue
		}
		b.WriteString(unqualify(full[start:i]))
		b.WriteByte(full[i])
		start = i + 1
	}
	b.WriteString(unqualify(full[start:]))
	return b.String()
}

func unqualify(seg string) string {
	if i := strings.LastIndexAny(seg, "./:"); i >= 0 {
		return seg[i+1:]
	}
	return seg
}

var (
	nameComponent     = ComponentNameOf(Name(""))
	childOfComponent  = ComponentNameOf(ChildOf{})
	childrenComponent = ComponentNameOf(Children(nil))
)

// IsBuiltin reports whether name is the type name of [Name], [ChildOf] or
// [Children]. Only values of those types may be stored under these names.
func IsBuiltin(name string) bool {
	return name == nameComponent || name == childOfComponent || name == childrenComponent
}
