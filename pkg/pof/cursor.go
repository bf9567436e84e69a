// Package pof provides a parser for POF (Parallax Object File) 3D models.
// POF is a chunk-tagged little-endian binary format describing a mesh
// hierarchy, hardpoints, and physical properties.
package pof

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	vmath "github.com/nova-forge/poftools/pkg/math"
)

// Cursor errors.
var (
	ErrTruncatedRead  = errors.New("read past end of buffer")
	ErrSeekOutOfRange = errors.New("seek position out of range")
)

// Cursor is a bounds-checked sequential reader over an immutable byte
// buffer. Every read advances the position and fails explicitly rather
// than reading out of bounds. The buffer itself is never modified.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Seek moves the cursor to an absolute position. Seeking to the exact
// end of the buffer is valid; past it is not.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("%w: %d (buffer size %d)", ErrSeekOutOfRange, pos, len(c.data))
	}
	c.pos = pos
	return nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	return c.Seek(c.pos + n)
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (c *Cursor) ReadInt32() (int32, error) {
	if c.Remaining() < 4 {
		return 0, ErrTruncatedRead
	}
	v := int32(binary.LittleEndian.Uint32(c.data[c.pos:]))
	c.pos += 4
	return v, nil
}

// ReadUint32 reads a little-endian unsigned 32-bit integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	if c.Remaining() < 4 {
		return 0, ErrTruncatedRead
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadFloat32 reads a little-endian 32-bit float.
func (c *Cursor) ReadFloat32() (float32, error) {
	bits, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadVec2 reads two consecutive float32 values.
func (c *Cursor) ReadVec2() (vmath.Vec2, error) {
	if c.Remaining() < 8 {
		return vmath.Vec2{}, ErrTruncatedRead
	}
	var v vmath.Vec2
	v.X = math.Float32frombits(binary.LittleEndian.Uint32(c.data[c.pos:]))
	v.Y = math.Float32frombits(binary.LittleEndian.Uint32(c.data[c.pos+4:]))
	c.pos += 8
	return v, nil
}

// ReadVec3 reads three consecutive float32 values.
func (c *Cursor) ReadVec3() (vmath.Vec3, error) {
	if c.Remaining() < 12 {
		return vmath.Vec3{}, ErrTruncatedRead
	}
	var v vmath.Vec3
	v.X = math.Float32frombits(binary.LittleEndian.Uint32(c.data[c.pos:]))
	v.Y = math.Float32frombits(binary.LittleEndian.Uint32(c.data[c.pos+4:]))
	v.Z = math.Float32frombits(binary.LittleEndian.Uint32(c.data[c.pos+8:]))
	c.pos += 12
	return v, nil
}

// ReadCString reads bytes up to (and consuming) a zero terminator.
// Reaching the end of the buffer before a terminator also ends the
// string; an empty buffer yields an empty string, not an error.
func (c *Cursor) ReadCString() string {
	start := c.pos
	for c.pos < len(c.data) && c.data[c.pos] != 0 {
		c.pos++
	}
	s := string(c.data[start:c.pos])
	if c.pos < len(c.data) {
		c.pos++ // terminator
	}
	return s
}

// ReadBytes reads exactly n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, ErrTruncatedRead
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}
