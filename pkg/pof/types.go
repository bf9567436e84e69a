package pof

import (
	"fmt"

	vmath "github.com/nova-forge/poftools/pkg/math"
)

// Header holds the object-header (HDR2) chunk data.
type Header struct {
	Radius        float32    // Bounding sphere radius
	Flags         uint32     // Model flag bitmask
	SubModelCount int32      // Declared sub-model count
	BoundsMin     vmath.Vec3 // Axis-aligned bounding box minimum
	BoundsMax     vmath.Vec3 // Axis-aligned bounding box maximum
	DetailLevels  []float32  // Per-detail-level switch distances
	DebrisPieces  []float32  // Per-debris-piece distances
	Mass          float32    // Model mass
	CenterOfMass  vmath.Vec3 // Center of mass
	InertiaTensor [9]float32 // 3x3 inertia tensor, row-major
}

// Vertex is a position/normal pair in a sub-model's vertex list.
type Vertex struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
}

// Face is a textured polygon in a sub-model. VertexIndices and UVs
// always have equal length, at least 3.
type Face struct {
	TextureID     int32        // Index into the model's texture table
	VertexIndices []int32      // Ordered vertex loop
	UVs           []vmath.Vec2 // One UV per loop entry
}

// SubModel is one rigid mesh segment of the model hierarchy (OBJ2).
type SubModel struct {
	Radius          float32
	Parent          int32      // Document index of parent, -1 for root
	Offset          vmath.Vec3 // Offset relative to parent
	GeometricCenter vmath.Vec3
	BoundsMin       vmath.Vec3
	BoundsMax       vmath.Vec3
	Name            string // May be empty; never used for lookups by the assembler
	Properties      string // Free-form properties string
	MovementType    int32
	MovementAxis    int32
	Vertices        []Vertex
	Faces           []Face
}

// Texture is one entry in the model's texture table. The ID is assigned
// by decode order; the payload carries only names.
type Texture struct {
	ID   int32
	Name string
}

// GunPoint is a gun or missile hardpoint.
type GunPoint struct {
	Position vmath.Vec3
}

// ThrusterPoint is a thruster hardpoint.
type ThrusterPoint struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
	Radius   float32
}

// DockPoint is a docking-bay hardpoint.
type DockPoint struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
	Forward  vmath.Vec3
}

// GlowPoint is a glow-emitter hardpoint.
type GlowPoint struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
	Radius   float32
}

// EyePoint is a viewpoint attachment.
type EyePoint struct {
	Parent   int32 // Sub-model the eye is attached to
	Position vmath.Vec3
	Normal   vmath.Vec3
}

// SpecialPoint is a named auxiliary point (subsystems, custom markers).
type SpecialPoint struct {
	Name       string
	Properties string
	Position   vmath.Vec3
	Radius     float32
}

// WarningKind classifies a recoverable decode or assembly condition.
type WarningKind int

// Warning kinds.
const (
	WarnUnknownVersion WarningKind = iota
	WarnFaceIndexOutOfRange
	WarnDegenerateFace
	WarnDanglingParent
)

// String returns a human-readable warning kind name.
func (k WarningKind) String() string {
	switch k {
	case WarnUnknownVersion:
		return "UnknownVersion"
	case WarnFaceIndexOutOfRange:
		return "FaceIndexOutOfRange"
	case WarnDegenerateFace:
		return "DegenerateFace"
	case WarnDanglingParent:
		return "DanglingParent"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Warning is a recoverable condition noted during decode or assembly.
// Warnings never abort a conversion; they are collected so callers can
// decide whether a best-effort result is acceptable.
type Warning struct {
	Kind   WarningKind
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}

// Model is the complete in-memory decode result. It is populated in
// chunk-arrival order by Parse and never mutated afterwards. SubModels
// keeps document decode order, which is also the namespace for parent
// back-references.
type Model struct {
	Version int32
	Header  Header

	SubModels []SubModel
	Textures  []Texture

	GunPoints      []GunPoint
	MissilePoints  []GunPoint
	ThrusterPoints []ThrusterPoint
	DockPoints     []DockPoint
	GlowPoints     []GlowPoint

	EyePoints     []EyePoint
	SpecialPoints []SpecialPoint

	AutoCenter    vmath.Vec3
	HasAutoCenter bool

	// SkippedChunks counts recognized-but-unparsed chunk tags.
	SkippedChunks map[string]int

	// Warnings collects every recoverable condition hit during decode.
	Warnings []Warning
}

// TotalVertexCount returns the number of vertices across all sub-models.
func (m *Model) TotalVertexCount() int {
	total := 0
	for i := range m.SubModels {
		total += len(m.SubModels[i].Vertices)
	}
	return total
}

// TotalFaceCount returns the number of retained faces across all sub-models.
func (m *Model) TotalFaceCount() int {
	total := 0
	for i := range m.SubModels {
		total += len(m.SubModels[i].Faces)
	}
	return total
}

// SubModelByName returns the first sub-model with the given name, or
// nil if none matches. Names may legally be empty or duplicated, so
// this is a convenience for inspection, not a structural lookup.
func (m *Model) SubModelByName(name string) *SubModel {
	for i := range m.SubModels {
		if m.SubModels[i].Name == name {
			return &m.SubModels[i]
		}
	}
	return nil
}

// RootSubModels returns the document indices of all sub-models with no
// parent.
func (m *Model) RootSubModels() []int {
	var roots []int
	for i := range m.SubModels {
		if m.SubModels[i].Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// HardpointCounts returns per-category hardpoint counts keyed by
// category name, as reported in conversion manifests.
func (m *Model) HardpointCounts() map[string]int {
	return map[string]int{
		"gun":      len(m.GunPoints),
		"missile":  len(m.MissilePoints),
		"thruster": len(m.ThrusterPoints),
		"dock":     len(m.DockPoints),
		"glow":     len(m.GlowPoints),
		"eye":      len(m.EyePoints),
		"special":  len(m.SpecialPoints),
	}
}

func (m *Model) warn(kind WarningKind, format string, args ...any) {
	m.Warnings = append(m.Warnings, Warning{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}
