// Package vox loads voxel shapes from their text description and keeps them
// in a sparse, insertion-ordered store.
package vox

import (
	"encoding/binary"
	"iter"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Key is a voxel coordinate.
type Key struct {
	X, Y, Z int
}

// KeyOf truncates a floating point coordinate toward zero.
func KeyOf(x, y, z float32) Key {
	return Key{int(x), int(y), int(z)}
}

// Vec returns k as a vector.
func (k Key) Vec() mgl32.Vec3 {
	return mgl32.Vec3{float32(k.X), float32(k.Y), float32(k.Z)}
}

// Store maps voxel coordinates to color groups (hues). It remembers the order
// of every Save, duplicates included.
type Store struct {
	colors map[Key]int
	order  []Key
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{colors: make(map[Key]int)}
}

// Save records color at k. Saving an existing key overwrites its color and
// appends k to the order again.
func (s *Store) Save(k Key, color int) {
	s.colors[k] = color
	s.order = append(s.order, k)
}

// Has reports whether k was ever saved.
func (s *Store) Has(k Key) bool {
	_, ok := s.colors[k]
	return ok
}

// Color returns the last color saved at k.
func (s *Store) Color(k Key) (int, bool) {
	c, ok := s.colors[k]
	return c, ok
}

// All returns every saved key in save order, duplicates included.
func (s *Store) All() []Key {
	return append([]Key(nil), s.order...)
}

// Entries yields every saved key in save order together with its current
// color.
func (s *Store) Entries() iter.Seq2[Key, int] {
	return func(yield func(Key, int) bool) {
		for _, k := range s.order {
			if !yield(k, s.colors[k]) {
				return
			}
		}
	}
}

// Len returns the number of distinct keys.
func (s *Store) Len() int { return len(s.colors) }

// Order returns the number of Save calls recorded.
func (s *Store) Order() int { return len(s.order) }

// Digest returns an xxhash64 over the ordered (key, color) sequence.
func (s *Store) Digest() uint64 {
	h := xxhash.New()
	var b [16]byte
	for k, c := range s.Entries() {
		binary.LittleEndian.PutUint32(b[0:], uint32(int32(k.X)))
		binary.LittleEndian.PutUint32(b[4:], uint32(int32(k.Y)))
		binary.LittleEndian.PutUint32(b[8:], uint32(int32(k.Z)))
		binary.LittleEndian.PutUint32(b[12:], uint32(int32(c)))
		_, _ = h.Write(b[:])
	}
	return h.Sum64()
}
