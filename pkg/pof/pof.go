package pof

import (
	"errors"
	"fmt"
	"os"

	vmath "github.com/nova-forge/poftools/pkg/math"
)

// POF format errors.
var (
	ErrInvalidPOFMagic  = errors.New("invalid POF magic: expected 'PSPO'")
	ErrTruncatedPOFData = errors.New("truncated POF data")
)

const pofMagic = "PSPO"

// Chunk tags, stored in the file as four ASCII bytes and read here as
// little-endian int32 values.
const (
	chunkHeader         int32 = 0x32524448 // "HDR2"
	chunkSubModel       int32 = 0x324a424f // "OBJ2"
	chunkTextures       int32 = 0x52545854 // "TXTR"
	chunkGunPoints      int32 = 0x544e5047 // "GPNT"
	chunkMissilePoints  int32 = 0x544e504d // "MPNT"
	chunkTurretGuns     int32 = 0x4e554754 // "TGUN"
	chunkTurretMissiles int32 = 0x53494d54 // "TMIS"
	chunkDockPoints     int32 = 0x4b434f44 // "DOCK"
	chunkThrusters      int32 = 0x4c455546 // "FUEL"
	chunkGlowPoints     int32 = 0x574f4c47 // "GLOW"
	chunkEyePoints      int32 = 0x20455945 // "EYE "
	chunkSpecialPoints  int32 = 0x4c435053 // "SPCL"
	chunkAutoCenter     int32 = 0x4e454341 // "ACEN"
	chunkShieldMesh     int32 = 0x444c4853 // "SHLD"
	chunkInsignia       int32 = 0x47534e49 // "INSG"
	chunkPaths          int32 = 0x48544150 // "PATH"
	chunkShieldTree     int32 = 0x43444c53 // "SLDC"
)

// knownVersions lists file versions the parser has been verified
// against. Other versions decode on a best-effort basis with a
// WarnUnknownVersion recorded.
var knownVersions = map[int32]bool{
	1800: true,
	2112: true,
	2114: true,
	2116: true,
	2117: true,
}

// tagString renders a chunk tag as its four ASCII characters.
func tagString(tag int32) string {
	b := [4]byte{
		byte(tag),
		byte(tag >> 8),
		byte(tag >> 16),
		byte(tag >> 24),
	}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", uint32(tag))
		}
	}
	return string(b[:])
}

// Parse decodes a POF model from a byte slice. A fatal format or
// truncation error returns a nil model; recoverable conditions are
// collected on Model.Warnings and decoding continues.
func Parse(data []byte) (*Model, error) {
	if len(data) < 8 {
		return nil, ErrTruncatedPOFData
	}
	if string(data[:4]) != pofMagic {
		return nil, ErrInvalidPOFMagic
	}

	c := NewCursor(data)
	c.Skip(4) // magic

	version, err := c.ReadInt32()
	if err != nil {
		return nil, ErrTruncatedPOFData
	}

	model := &Model{
		Version:       version,
		SkippedChunks: make(map[string]int),
	}

	if !knownVersions[version] {
		model.warn(WarnUnknownVersion, "version %d not in verified set, decoding best-effort", version)
	}

	// Chunk stream: (tag, length, payload) until fewer than 8 bytes
	// remain. The declared length is the authoritative chunk boundary;
	// handlers may under- or over-read within it and the cursor is
	// repositioned unconditionally afterwards.
	for c.Remaining() >= 8 {
		tag, _ := c.ReadInt32()
		length, _ := c.ReadInt32()

		if length < 0 || int(length) > c.Remaining() {
			return nil, fmt.Errorf("%w: chunk %s declares %d bytes, %d remain",
				ErrTruncatedPOFData, tagString(tag), length, c.Remaining())
		}

		chunkStart := c.Pos()

		if err := dispatchChunk(c, tag, model); err != nil {
			return nil, fmt.Errorf("chunk %s: %w", tagString(tag), err)
		}

		if err := c.Seek(chunkStart + int(length)); err != nil {
			return nil, fmt.Errorf("%w: chunk %s", ErrTruncatedPOFData, tagString(tag))
		}
	}

	return model, nil
}

// ParseFile decodes a POF model from disk.
func ParseFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading POF file: %w", err)
	}
	return Parse(data)
}

// dispatchChunk routes one chunk payload to its handler. Unknown tags
// are a legal no-op. Truncation inside a handler is promoted to
// ErrTruncatedPOFData: a short array read means the declared counts
// cannot be trusted, so the whole decode aborts.
func dispatchChunk(c *Cursor, tag int32, model *Model) error {
	var err error

	switch tag {
	case chunkHeader:
		model.Header, err = parseHeader(c)
	case chunkSubModel:
		var sub SubModel
		sub, err = parseSubModel(c, model)
		if err == nil {
			model.SubModels = append(model.SubModels, sub)
		}
	case chunkTextures:
		err = parseTextures(c, model)
	case chunkGunPoints, chunkTurretGuns:
		model.GunPoints, err = parsePointList(c, model.GunPoints)
	case chunkMissilePoints, chunkTurretMissiles:
		model.MissilePoints, err = parsePointList(c, model.MissilePoints)
	case chunkThrusters:
		err = parseThrusters(c, model)
	case chunkDockPoints:
		err = parseDockPoints(c, model)
	case chunkGlowPoints:
		err = parseGlowPoints(c, model)
	case chunkEyePoints:
		err = parseEyePoints(c, model)
	case chunkSpecialPoints:
		err = parseSpecialPoints(c, model)
	case chunkAutoCenter:
		model.AutoCenter, err = c.ReadVec3()
		model.HasAutoCenter = err == nil
	case chunkShieldMesh, chunkInsignia, chunkPaths, chunkShieldTree:
		// Recognized but not converted; skipped by the seek after
		// dispatch and counted for the manifest.
		model.SkippedChunks[tagString(tag)]++
	default:
		// Unknown tags are legal forward-compatibility padding.
	}

	if errors.Is(err, ErrTruncatedRead) {
		return ErrTruncatedPOFData
	}
	return err
}

func parseHeader(c *Cursor) (Header, error) {
	var h Header
	var err error

	if h.Radius, err = c.ReadFloat32(); err != nil {
		return h, err
	}
	if h.Flags, err = c.ReadUint32(); err != nil {
		return h, err
	}
	if h.SubModelCount, err = c.ReadInt32(); err != nil {
		return h, err
	}
	if h.BoundsMin, err = c.ReadVec3(); err != nil {
		return h, err
	}
	if h.BoundsMax, err = c.ReadVec3(); err != nil {
		return h, err
	}

	detailCount, err := c.ReadInt32()
	if err != nil {
		return h, err
	}
	if detailCount > 0 {
		// A count larger than the remaining payload could hold is
		// corrupt; reject before allocating.
		if int(detailCount) > c.Remaining()/4 {
			return h, ErrTruncatedRead
		}
		h.DetailLevels = make([]float32, detailCount)
		for i := range h.DetailLevels {
			if h.DetailLevels[i], err = c.ReadFloat32(); err != nil {
				return h, err
			}
		}
	}

	debrisCount, err := c.ReadInt32()
	if err != nil {
		return h, err
	}
	if debrisCount > 0 {
		if int(debrisCount) > c.Remaining()/4 {
			return h, ErrTruncatedRead
		}
		h.DebrisPieces = make([]float32, debrisCount)
		for i := range h.DebrisPieces {
			if h.DebrisPieces[i], err = c.ReadFloat32(); err != nil {
				return h, err
			}
		}
	}

	if h.Mass, err = c.ReadFloat32(); err != nil {
		return h, err
	}
	if h.CenterOfMass, err = c.ReadVec3(); err != nil {
		return h, err
	}
	for i := 0; i < 9; i++ {
		if h.InertiaTensor[i], err = c.ReadFloat32(); err != nil {
			return h, err
		}
	}

	return h, nil
}

// parseSubModel decodes one OBJ2 chunk. The sub-model is built as a
// complete value and only appended by the caller once decoding
// succeeds, so a failed chunk never leaves a half-filled entry.
func parseSubModel(c *Cursor, model *Model) (SubModel, error) {
	var sub SubModel
	var err error

	if sub.Radius, err = c.ReadFloat32(); err != nil {
		return sub, err
	}
	if sub.Parent, err = c.ReadInt32(); err != nil {
		return sub, err
	}
	if sub.Offset, err = c.ReadVec3(); err != nil {
		return sub, err
	}
	if sub.GeometricCenter, err = c.ReadVec3(); err != nil {
		return sub, err
	}
	if sub.BoundsMin, err = c.ReadVec3(); err != nil {
		return sub, err
	}
	if sub.BoundsMax, err = c.ReadVec3(); err != nil {
		return sub, err
	}

	sub.Name = c.ReadCString()
	sub.Properties = c.ReadCString()

	if sub.MovementType, err = c.ReadInt32(); err != nil {
		return sub, err
	}
	if sub.MovementAxis, err = c.ReadInt32(); err != nil {
		return sub, err
	}

	vertexCount, err := c.ReadInt32()
	if err != nil {
		return sub, err
	}
	if vertexCount > 0 {
		// 24 bytes per vertex record on the wire.
		if int(vertexCount) > c.Remaining()/24 {
			return sub, ErrTruncatedRead
		}
		sub.Vertices = make([]Vertex, vertexCount)
		for i := range sub.Vertices {
			if sub.Vertices[i].Position, err = c.ReadVec3(); err != nil {
				return sub, err
			}
			if sub.Vertices[i].Normal, err = c.ReadVec3(); err != nil {
				return sub, err
			}
		}
	}

	faceCount, err := c.ReadInt32()
	if err != nil {
		return sub, err
	}
	for fi := int32(0); fi < faceCount; fi++ {
		face, keep, err := parseFace(c, len(sub.Vertices), model, fi)
		if err != nil {
			return sub, err
		}
		if keep {
			sub.Faces = append(sub.Faces, face)
		}
	}

	return sub, nil
}

// parseFace decodes one face record. Faces with fewer than 3 loop
// entries or with any vertex index outside the sub-model's vertex list
// are fully consumed from the stream but not retained.
func parseFace(c *Cursor, vertexCount int, model *Model, faceIndex int32) (Face, bool, error) {
	var face Face
	var err error

	if face.TextureID, err = c.ReadInt32(); err != nil {
		return face, false, err
	}

	loopCount, err := c.ReadInt32()
	if err != nil {
		return face, false, err
	}
	// 12 bytes per loop entry on the wire.
	if loopCount < 0 || int(loopCount) > c.Remaining()/12 {
		return face, false, ErrTruncatedRead
	}

	face.VertexIndices = make([]int32, 0, loopCount)
	face.UVs = make([]vmath.Vec2, 0, loopCount)

	valid := true
	for i := int32(0); i < loopCount; i++ {
		idx, err := c.ReadInt32()
		if err != nil {
			return face, false, err
		}
		uv, err := c.ReadVec2()
		if err != nil {
			return face, false, err
		}
		if idx < 0 || int(idx) >= vertexCount {
			valid = false
		}
		face.VertexIndices = append(face.VertexIndices, idx)
		face.UVs = append(face.UVs, uv)
	}

	if loopCount < 3 {
		model.warn(WarnDegenerateFace, "sub-model %d face %d has %d vertices, dropped",
			len(model.SubModels), faceIndex, loopCount)
		return face, false, nil
	}
	if !valid {
		model.warn(WarnFaceIndexOutOfRange, "sub-model %d face %d references vertex outside 0..%d, dropped",
			len(model.SubModels), faceIndex, vertexCount-1)
		return face, false, nil
	}

	return face, true, nil
}

func parseTextures(c *Cursor, model *Model) error {
	count, err := c.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		if c.Remaining() == 0 {
			return ErrTruncatedRead
		}
		model.Textures = append(model.Textures, Texture{
			ID:   int32(len(model.Textures)),
			Name: c.ReadCString(),
		})
	}
	return nil
}

func parsePointList(c *Cursor, points []GunPoint) ([]GunPoint, error) {
	count, err := c.ReadInt32()
	if err != nil {
		return points, err
	}
	for i := int32(0); i < count; i++ {
		pos, err := c.ReadVec3()
		if err != nil {
			return points, err
		}
		points = append(points, GunPoint{Position: pos})
	}
	return points, nil
}

func parseThrusters(c *Cursor, model *Model) error {
	count, err := c.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		var p ThrusterPoint
		if p.Position, err = c.ReadVec3(); err != nil {
			return err
		}
		if p.Normal, err = c.ReadVec3(); err != nil {
			return err
		}
		if p.Radius, err = c.ReadFloat32(); err != nil {
			return err
		}
		model.ThrusterPoints = append(model.ThrusterPoints, p)
	}
	return nil
}

func parseDockPoints(c *Cursor, model *Model) error {
	count, err := c.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		var p DockPoint
		if p.Position, err = c.ReadVec3(); err != nil {
			return err
		}
		if p.Normal, err = c.ReadVec3(); err != nil {
			return err
		}
		if p.Forward, err = c.ReadVec3(); err != nil {
			return err
		}
		model.DockPoints = append(model.DockPoints, p)
	}
	return nil
}

func parseGlowPoints(c *Cursor, model *Model) error {
	count, err := c.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		var p GlowPoint
		if p.Position, err = c.ReadVec3(); err != nil {
			return err
		}
		if p.Normal, err = c.ReadVec3(); err != nil {
			return err
		}
		if p.Radius, err = c.ReadFloat32(); err != nil {
			return err
		}
		model.GlowPoints = append(model.GlowPoints, p)
	}
	return nil
}

func parseEyePoints(c *Cursor, model *Model) error {
	count, err := c.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		var p EyePoint
		if p.Parent, err = c.ReadInt32(); err != nil {
			return err
		}
		if p.Position, err = c.ReadVec3(); err != nil {
			return err
		}
		if p.Normal, err = c.ReadVec3(); err != nil {
			return err
		}
		model.EyePoints = append(model.EyePoints, p)
	}
	return nil
}

func parseSpecialPoints(c *Cursor, model *Model) error {
	count, err := c.ReadInt32()
	if err != nil {
		return err
	}
	for i := int32(0); i < count; i++ {
		var p SpecialPoint
		p.Name = c.ReadCString()
		p.Properties = c.ReadCString()
		if p.Position, err = c.ReadVec3(); err != nil {
			return err
		}
		if p.Radius, err = c.ReadFloat32(); err != nil {
			return err
		}
		model.SpecialPoints = append(model.SpecialPoints, p)
	}
	return nil
}
