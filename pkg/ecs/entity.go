package ecs

import (
	"fmt"
	"strconv"
	"strings"
)

// Entity is a generational handle to a slot in a [World].
//
// Index identifies the slot; Generation counts how many times the slot has
// been recycled. Two handles are the same entity only if both fields match.
// Entity is comparable and safe to use as a map key.
type Entity struct {
	Index      uint32
	Generation uint32
}

// String formats the entity as "<index>v<generation>", e.g. "3v0".
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.Index), 10) + "v" + strconv.FormatUint(uint64(e.Generation), 10)
}

// ParseEntity parses the format produced by [Entity.String]. A bare index
// such as "3" is accepted and parsed with generation 0.
func ParseEntity(s string) (Entity, error) {
	idx, gen, found := strings.Cut(s, "v")
	index, err := strconv.ParseUint(idx, 10, 32)
	if err != nil {
		return Entity{}, fmt.Errorf("parse entity %q: bad index: %w", s, err)
	}
	var generation uint64
	if found {
		generation, err = strconv.ParseUint(gen, 10, 32)
		if err != nil {
			return Entity{}, fmt.Errorf("parse entity %q: bad generation: %w", s, err)
		}
	}
	return Entity{Index: uint32(index), Generation: uint32(generation)}, nil
}
