package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
	"github.com/matzehuels/entitree/pkg/hierarchy"
)

const canonical = `"root" (0v0): [Name, Children]
 ├"child_a" (1v0): [Name, ChildOf, Children]
 │├"child_c" (2v0): [Name, ChildOf]
 │└"child_d" (3v0): [Name, ChildOf, Children]
 │ └"child_f" (4v0): [Name, ChildOf]
 └"child_b" (5v0): [Name, ChildOf, Children]
  └"child_e" (6v0): [Name, ChildOf]
`

func render(w *ecs.World, root ecs.Entity) string {
	return hierarchy.New(root, w, hierarchy.Options{}).String()
}

func TestImportFile(t *testing.T) {
	for _, name := range []string{"canonical.json", "canonical.toml"} {
		t.Run(name, func(t *testing.T) {
			w, roots, err := ImportFile(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("ImportFile: %v", err)
			}
			if len(roots) != 1 {
				t.Fatalf("roots = %v, want 1 root", roots)
			}
			if got := render(w, roots[0]); got != canonical {
				t.Errorf("render =\n%s\nwant\n%s", got, canonical)
			}
		})
	}
}

func TestReadJSONComponents(t *testing.T) {
	in := `{"entities": [
		{"components": ["game::physics::Velocity", "game.Player"]},
		{"name": "second", "components": ["Vec<f32>"]}
	]}`
	w, roots, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}

	tests := []struct {
		root ecs.Entity
		want string
	}{
		{roots[0], "0v0: [Velocity, Player]\n"},
		{roots[1], "\"second\" (1v0): [Name, Vec<f32>]\n"},
	}
	for _, tt := range tests {
		if got := render(w, tt.root); got != tt.want {
			t.Errorf("render(%v) = %q, want %q", tt.root, got, tt.want)
		}
	}
}

func TestSpawnOrderFollowsDocument(t *testing.T) {
	in := `{"entities": [
		{"name": "a", "children": [{"name": "b"}, {"name": "c"}]},
		{"name": "d"}
	]}`
	w, roots, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		e, ok := w.Resolve(uint32(i))
		if !ok {
			t.Fatalf("index %d not alive", i)
		}
		if got, _ := w.Label(e); got != want {
			t.Errorf("index %d = %q, want %q", i, got, want)
		}
	}
	if roots[1].Index != 3 {
		t.Errorf("second root = %v, want index 3", roots[1])
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want errors.Code
	}{
		{"malformed", `{"entities": [`, errors.ErrCodeInvalidScene},
		{"unknown field", `{"entities": [{"childs": []}]}`, errors.ErrCodeInvalidScene},
		{"control char in name", `{"entities": [{"name": "a\nb"}]}`, errors.ErrCodeInvalidScene},
		{"empty component", `{"entities": [{"components": [""]}]}`, errors.ErrCodeInvalidScene},
		{"nested bad component", `{"entities": [{"children": [{"components": ["a b"]}]}]}`, errors.ErrCodeInvalidScene},
		{"children as component", `{"entities": [{"name": "root", "components": ["github.com/matzehuels/entitree/pkg/ecs.Children"]}]}`, errors.ErrCodeInvalidScene},
		{"child of as component", `{"entities": [{"children": [{"components": ["github.com/matzehuels/entitree/pkg/ecs.ChildOf"]}]}]}`, errors.ErrCodeInvalidScene},
		{"name as component", `{"entities": [{"name": "root", "components": ["github.com/matzehuels/entitree/pkg/ecs.Name"]}]}`, errors.ErrCodeInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadJSON(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("ReadJSON() error = nil, want error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.want, err)
			}
		})
	}
}

func TestBuiltinComponentNamesKeepLabel(t *testing.T) {
	s := &Scene{Entities: []SceneEntity{{
		Name:       "root",
		Components: []string{"github.com/matzehuels/entitree/pkg/ecs.Name"},
	}}}
	err := s.Validate()
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Fatalf("Validate() = %v, want %v", err, errors.ErrCodeInvalidScene)
	}
	if !strings.Contains(err.Error(), "entities[0]") {
		t.Errorf("error %q does not name the entity path", err)
	}
}

func TestValidateNamesPath(t *testing.T) {
	s := &Scene{Entities: []SceneEntity{
		{Name: "ok"},
		{Name: "ok", Children: []SceneEntity{{}, {Components: []string{"bad."}}}},
	}}
	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "entities[1].children[1]") {
		t.Errorf("error %q does not name the entity path", err)
	}
}

func TestReadTOMLUnknownKey(t *testing.T) {
	in := "[[entities]]\nname = \"a\"\ncolour = \"red\"\n"
	_, _, err := ReadTOML(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("ReadTOML() error = %v, want %v", err, errors.ErrCodeInvalidScene)
	}
}

func TestImportFileErrors(t *testing.T) {
	dir := t.TempDir()
	yaml := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(yaml, []byte("entities: []"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want errors.Code
	}{
		{filepath.Join(dir, "missing.json"), errors.ErrCodeFileNotFound},
		{yaml, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		_, _, err := ImportFile(tt.path)
		if !errors.Is(err, tt.want) {
			t.Errorf("ImportFile(%s) error = %v, want %v", filepath.Base(tt.path), err, tt.want)
		}
	}
}

func TestExportRoundTrip(t *testing.T) {
	in := `{"entities": [
		{"name": "root", "components": ["game.Transform"], "children": [
			{"components": ["game::Sprite", "game.Visible"]},
			{"name": "b", "children": [{"name": "c"}]}
		]},
		{"name": "other"}
	]}`
	w, roots, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	want := render(w, roots[0]) + render(w, roots[1])

	s, err := SceneOf(w, roots...)
	if err != nil {
		t.Fatalf("SceneOf: %v", err)
	}
	if got := s.Entities[0].Components; len(got) != 1 || got[0] != "game.Transform" {
		t.Errorf("root components = %v, want [game.Transform]", got)
	}

	for _, enc := range []struct {
		name  string
		write func(*Scene, *bytes.Buffer) error
		read  func(*bytes.Buffer) (*ecs.World, []ecs.Entity, error)
	}{
		{
			"json",
			func(s *Scene, b *bytes.Buffer) error { return WriteJSON(s, b) },
			func(b *bytes.Buffer) (*ecs.World, []ecs.Entity, error) { return ReadJSON(b) },
		},
		{
			"toml",
			func(s *Scene, b *bytes.Buffer) error { return WriteTOML(s, b) },
			func(b *bytes.Buffer) (*ecs.World, []ecs.Entity, error) { return ReadTOML(b) },
		},
	} {
		t.Run(enc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := enc.write(s, &buf); err != nil {
				t.Fatalf("write: %v", err)
			}
			w2, roots2, err := enc.read(&buf)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if len(roots2) != 2 {
				t.Fatalf("got %d roots, want 2", len(roots2))
			}
			if got := render(w2, roots2[0]) + render(w2, roots2[1]); got != want {
				t.Errorf("round trip =\n%s\nwant\n%s", got, want)
			}
		})
	}
}

func TestSceneOfUnknownEntity(t *testing.T) {
	w := ecs.NewWorld()
	_, err := SceneOf(w, ecs.Entity{Index: 9})
	if !errors.Is(err, errors.ErrCodeEntityNotFound) {
		t.Errorf("SceneOf() error = %v, want %v", err, errors.ErrCodeEntityNotFound)
	}
}

func TestExportFile(t *testing.T) {
	w, roots, err := ImportFile(filepath.Join("testdata", "canonical.json"))
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	s, err := SceneOf(w, roots...)
	if err != nil {
		t.Fatalf("SceneOf: %v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{"scene.json", "scene.toml", "SCENE.TOML"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := ExportFile(s, path); err != nil {
				t.Fatalf("ExportFile: %v", err)
			}
			w2, roots2, err := ImportFile(path)
			if err != nil {
				t.Fatalf("ImportFile: %v", err)
			}
			if got := render(w2, roots2[0]); got != canonical {
				t.Errorf("render =\n%s\nwant\n%s", got, canonical)
			}
		})
	}
}

func TestExportFileErrors(t *testing.T) {
	s := &Scene{Entities: []SceneEntity{{Name: "solo"}}}
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"unsupported extension", filepath.Join(dir, "scene.yaml"), errors.ErrCodeInvalidFormat},
		{"missing directory", filepath.Join(dir, "missing", "scene.json"), errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExportFile(s, tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("ExportFile() error = %v, want %v", err, tt.code)
			}
			if _, statErr := os.Stat(tt.path); !os.IsNotExist(statErr) {
				t.Errorf("%s was created", tt.path)
			}
		})
	}
}
