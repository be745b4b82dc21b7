package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/entitree/pkg/ecs"
	"github.com/matzehuels/entitree/pkg/errors"
)

// DecodeJSON decodes a JSON scene from r without spawning it.
// Unknown fields are rejected so that typos like "childs" do not silently
// drop part of the tree.
func DecodeJSON(r io.Reader) (*Scene, error) {
	var s Scene
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
	}
	return &s, nil
}

// DecodeTOML decodes a TOML scene from r without spawning it.
//
// Entities are written as arrays of tables:
//
//	[[entities]]
//	name = "root"
//	components = ["game.Transform"]
//
//	  [[entities.children]]
//	  name = "child_a"
func DecodeTOML(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "decode toml: unknown key %q", undecoded[0].String())
	}
	return &s, nil
}

// ReadJSON decodes a JSON scene from r and spawns it into a new world.
//
// The input must be an object with an "entities" array:
//
//	{"entities": [
//	  {"name": "root", "components": ["game.Transform"],
//	   "children": [{"name": "child_a"}]}
//	]}
//
// See [Scene.Build] for spawn order and component layout. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*ecs.World, []ecs.Entity, error) {
	s, err := DecodeJSON(r)
	if err != nil {
		return nil, nil, err
	}
	return s.Build()
}

// ReadTOML is the TOML counterpart of [ReadJSON].
func ReadTOML(r io.Reader) (*ecs.World, []ecs.Entity, error) {
	s, err := DecodeTOML(r)
	if err != nil {
		return nil, nil, err
	}
	return s.Build()
}

// LoadFile reads and decodes the scene file at path. The decoder is chosen by
// extension: ".json" or ".toml".
func LoadFile(path string) (*Scene, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	s, err := decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", path)
	}
	return s, nil
}

// ImportFile reads the scene file at path and spawns it into a new world.
func ImportFile(path string) (*ecs.World, []ecs.Entity, error) {
	s, err := LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return s.Build()
}

func sceneExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func decoderFor(path string) (func(io.Reader) (*Scene, error), error) {
	switch sceneExt(path) {
	case ".json":
		return DecodeJSON, nil
	case ".toml":
		return DecodeTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene file %q (want .json or .toml)", path)
	}
}
