package pof

import (
	"errors"
	"testing"
)

func TestCursor_ReadInt32(t *testing.T) {
	c := NewCursor([]byte{0x2c, 0x01, 0x00, 0x00, 0xff})

	v, err := c.ReadInt32()
	if err != nil {
		t.Fatalf("ReadInt32 failed: %v", err)
	}
	if v != 300 {
		t.Errorf("ReadInt32() = %d, want 300", v)
	}
	if c.Pos() != 4 {
		t.Errorf("Pos() = %d, want 4", c.Pos())
	}

	// One byte left, not enough for another int32
	if _, err := c.ReadInt32(); !errors.Is(err, ErrTruncatedRead) {
		t.Errorf("ReadInt32 on short buffer: got %v, want ErrTruncatedRead", err)
	}
	if c.Pos() != 4 {
		t.Errorf("failed read moved cursor: Pos() = %d, want 4", c.Pos())
	}
}

func TestCursor_ReadFloat32(t *testing.T) {
	// 1.0 as little-endian float32
	c := NewCursor([]byte{0x00, 0x00, 0x80, 0x3f})

	v, err := c.ReadFloat32()
	if err != nil {
		t.Fatalf("ReadFloat32 failed: %v", err)
	}
	if v != 1.0 {
		t.Errorf("ReadFloat32() = %f, want 1.0", v)
	}
}

func TestCursor_ReadVec3(t *testing.T) {
	data := []byte{
		0x00, 0x00, 0x80, 0x3f, // 1.0
		0x00, 0x00, 0x00, 0x40, // 2.0
		0x00, 0x00, 0x40, 0x40, // 3.0
	}
	c := NewCursor(data)

	v, err := c.ReadVec3()
	if err != nil {
		t.Fatalf("ReadVec3 failed: %v", err)
	}
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Errorf("ReadVec3() = %v, want {1 2 3}", v)
	}

	// 11 bytes must not be enough
	c = NewCursor(data[:11])
	if _, err := c.ReadVec3(); !errors.Is(err, ErrTruncatedRead) {
		t.Errorf("ReadVec3 on 11 bytes: got %v, want ErrTruncatedRead", err)
	}
	if c.Pos() != 0 {
		t.Errorf("failed ReadVec3 moved cursor to %d", c.Pos())
	}
}

func TestCursor_ReadCString(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantPos int
	}{
		{"terminated", []byte{'h', 'u', 'l', 'l', 0, 'x'}, "hull", 5},
		{"empty string", []byte{0, 'x'}, "", 1},
		{"unterminated", []byte{'a', 'b'}, "ab", 2},
		{"empty buffer", []byte{}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			if got := c.ReadCString(); got != tt.want {
				t.Errorf("ReadCString() = %q, want %q", got, tt.want)
			}
			if c.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
		})
	}
}

func TestCursor_Seek(t *testing.T) {
	c := NewCursor(make([]byte, 10))

	if err := c.Seek(10); err != nil {
		t.Errorf("Seek(10) to end of buffer failed: %v", err)
	}
	if c.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", c.Remaining())
	}

	if err := c.Seek(11); !errors.Is(err, ErrSeekOutOfRange) {
		t.Errorf("Seek(11): got %v, want ErrSeekOutOfRange", err)
	}
	if err := c.Seek(-1); !errors.Is(err, ErrSeekOutOfRange) {
		t.Errorf("Seek(-1): got %v, want ErrSeekOutOfRange", err)
	}
	// Failed seeks must not move the cursor
	if c.Pos() != 10 {
		t.Errorf("Pos() = %d after failed seeks, want 10", c.Pos())
	}
}

func TestCursor_ReadBytes(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})

	b, err := c.ReadBytes(2)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if len(b) != 2 || b[0] != 1 || b[1] != 2 {
		t.Errorf("ReadBytes(2) = %v, want [1 2]", b)
	}

	if _, err := c.ReadBytes(2); !errors.Is(err, ErrTruncatedRead) {
		t.Errorf("ReadBytes over end: got %v, want ErrTruncatedRead", err)
	}
	if _, err := c.ReadBytes(-1); !errors.Is(err, ErrTruncatedRead) {
		t.Errorf("ReadBytes(-1): got %v, want ErrTruncatedRead", err)
	}
}
