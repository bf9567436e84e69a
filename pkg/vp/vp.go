// Package vp provides reading functionality for VP container archives,
// the package format that ships model and table files.
package vp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	vpMagic     = "VPVP"
	headerSize  = 16
	direntSize  = 44
	nameFieldSz = 32
)

// Archive errors.
var (
	ErrInvalidVPMagic     = errors.New("invalid VP magic: expected 'VPVP'")
	ErrUnsupportedVersion = errors.New("unsupported VP version")
	ErrTruncatedIndex     = errors.New("truncated VP directory index")
	ErrFileNotFound       = errors.New("file not found in archive")
)

// Header contains VP file header information.
type Header struct {
	Version     int32
	IndexOffset int32
	IndexCount  int32
}

// Entry represents a stored file in the archive. VP stores files
// uncompressed, so Size is both the stored and extracted length.
type Entry struct {
	Name      string // Full normalized path inside the archive
	Offset    int32
	Size      int32
	Timestamp int32
}

// Archive represents an opened VP archive.
type Archive struct {
	file     *os.File
	header   Header
	fileList map[string]*Entry
}

// Open opens a VP archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	archive := &Archive{
		file:     file,
		fileList: make(map[string]*Entry),
	}

	if err := archive.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if err := archive.readIndex(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading index: %w", err)
	}

	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

// Version returns the archive format version.
func (a *Archive) Version() int32 {
	return a.header.Version
}

func (a *Archive) readHeader() error {
	if _, err := a.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(a.file, buf); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	if string(buf[:4]) != vpMagic {
		return ErrInvalidVPMagic
	}

	a.header.Version = int32(binary.LittleEndian.Uint32(buf[4:]))
	a.header.IndexOffset = int32(binary.LittleEndian.Uint32(buf[8:]))
	a.header.IndexCount = int32(binary.LittleEndian.Uint32(buf[12:]))

	if a.header.Version != 2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, a.header.Version)
	}
	if a.header.IndexOffset < headerSize || a.header.IndexCount < 0 {
		return ErrTruncatedIndex
	}

	return nil
}

// readIndex walks the directory-entry table. Zero-size entries are
// directory records: a name pushes onto the current path, ".." pops.
func (a *Archive) readIndex() error {
	if _, err := a.file.Seek(int64(a.header.IndexOffset), io.SeekStart); err != nil {
		return err
	}

	buf := make([]byte, direntSize)
	var dirStack []string

	for i := int32(0); i < a.header.IndexCount; i++ {
		if _, err := io.ReadFull(a.file, buf); err != nil {
			return ErrTruncatedIndex
		}

		offset := int32(binary.LittleEndian.Uint32(buf[0:]))
		size := int32(binary.LittleEndian.Uint32(buf[4:]))
		name := cstring(buf[8 : 8+nameFieldSz])
		timestamp := int32(binary.LittleEndian.Uint32(buf[40:]))

		if size == 0 {
			// Directory record
			if name == ".." {
				if len(dirStack) > 0 {
					dirStack = dirStack[:len(dirStack)-1]
				}
			} else if name != "" {
				dirStack = append(dirStack, name)
			}
			continue
		}

		// Anything below here is a stored file; its bytes must sit
		// after the header.
		if size < 0 || offset < headerSize {
			return fmt.Errorf("%w: entry %q has size %d at offset %d",
				ErrTruncatedIndex, name, size, offset)
		}

		full := name
		if len(dirStack) > 0 {
			full = strings.Join(dirStack, "/") + "/" + name
		}

		entry := &Entry{
			Name:      normalizePath(full),
			Offset:    offset,
			Size:      size,
			Timestamp: timestamp,
		}
		a.fileList[entry.Name] = entry
	}

	return nil
}

// List returns all file paths in the archive.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.fileList))
	for path := range a.fileList {
		result = append(result, path)
	}
	return result
}

// Contains checks if a file exists.
func (a *Archive) Contains(path string) bool {
	_, ok := a.fileList[normalizePath(path)]
	return ok
}

// Stat returns the entry for a stored file.
func (a *Archive) Stat(path string) (*Entry, error) {
	entry, ok := a.fileList[normalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return entry, nil
}

// Read reads a file from the archive. VP stores files uncompressed, so
// this is a positioned read of exactly Entry.Size bytes.
func (a *Archive) Read(path string) ([]byte, error) {
	entry, err := a.Stat(path)
	if err != nil {
		return nil, err
	}

	data := make([]byte, entry.Size)
	if _, err := a.file.ReadAt(data, int64(entry.Offset)); err != nil {
		return nil, fmt.Errorf("reading %s: %w", entry.Name, err)
	}
	return data, nil
}

func normalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.ToLower(path)
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
