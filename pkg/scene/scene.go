// Package scene assembles a decoded POF model into a renderable node
// hierarchy with triangulated meshes and hardpoint marker groups.
package scene

import (
	"fmt"
	"sync"

	vmath "github.com/nova-forge/poftools/pkg/math"
	"github.com/nova-forge/poftools/pkg/pof"
)

// Triangle is one output triangle. Indices refer to the owning mesh's
// vertex list.
type Triangle struct {
	V         [3]int32
	UV        [3]vmath.Vec2
	TextureID int32
}

// Mesh holds the triangulated geometry of one sub-model. Vertices are
// shared with the source model; triangles are produced by fan
// triangulation of the decoded faces.
type Mesh struct {
	Vertices  []pof.Vertex
	Triangles []Triangle
}

// Marker carries hardpoint metadata on a marker node.
type Marker struct {
	Category   string
	Normal     vmath.Vec3
	Forward    vmath.Vec3
	Radius     float32
	Properties string
}

// Node is one element of the assembled hierarchy: a sub-model mesh, a
// hardpoint group, or a single hardpoint marker.
type Node struct {
	Name        string
	Index       int        // Document index for sub-model nodes, -1 otherwise
	Offset      vmath.Vec3 // Relative to parent
	WorldOffset vmath.Vec3 // Accumulated from the root
	Mesh        *Mesh
	Marker      *Marker
	Children    []*Node
}

// Scene is the assembled hierarchy. SubModelNodes holds the mesh nodes
// in document order regardless of where they attached; Groups holds
// the hardpoint marker groups.
type Scene struct {
	Root          *Node
	SubModelNodes []*Node
	Groups        []*Node
	Textures      []string
	Warnings      []pof.Warning
}

func (n *Node) addChild(child *Node) {
	child.WorldOffset = n.WorldOffset.Add(child.Offset)
	n.Children = append(n.Children, child)
}

// TriangulateFace decomposes a vertex loop into a triangle fan: for a
// loop v0..vn-1 the triangles are (v0, vi, vi+1) for i in 1..n-2, UVs
// carried in parallel. The loop is assumed convex, matching the legacy
// renderer; concave polygons are not handled specially. Faces shorter
// than 3 entries yield no triangles.
func TriangulateFace(face pof.Face) []Triangle {
	n := len(face.VertexIndices)
	if n < 3 {
		return nil
	}
	tris := make([]Triangle, 0, n-2)
	for i := 1; i <= n-2; i++ {
		tris = append(tris, Triangle{
			V:         [3]int32{face.VertexIndices[0], face.VertexIndices[i], face.VertexIndices[i+1]},
			UV:        [3]vmath.Vec2{face.UVs[0], face.UVs[i], face.UVs[i+1]},
			TextureID: face.TextureID,
		})
	}
	return tris
}

// Assemble converts a decoded model into a scene. Triangulation runs
// in parallel across sub-models; hierarchy attachment is a sequential
// second pass so every parent exists before its children attach.
// Recoverable conditions (dangling parents) are noted on
// Scene.Warnings; Assemble itself never fails.
func Assemble(model *pof.Model) *Scene {
	s := &Scene{
		Root: &Node{Name: "root", Index: -1},
	}
	for _, t := range model.Textures {
		s.Textures = append(s.Textures, t.Name)
	}

	meshes := make([]*Mesh, len(model.SubModels))
	var wg sync.WaitGroup
	for i := range model.SubModels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			meshes[i] = triangulateSubModel(&model.SubModels[i])
		}(i)
	}
	wg.Wait()

	// Attachment in document order: a parent index always refers to an
	// already-attached node. The index namespace is document decode
	// order, never names, which may legally be empty or duplicated.
	for i := range model.SubModels {
		sub := &model.SubModels[i]
		node := &Node{
			Name:   sub.Name,
			Index:  i,
			Offset: sub.Offset,
			Mesh:   meshes[i],
		}

		switch {
		case sub.Parent < 0:
			s.Root.addChild(node)
		case int(sub.Parent) < i:
			s.SubModelNodes[sub.Parent].addChild(node)
		default:
			s.warn(pof.WarnDanglingParent,
				"sub-model %d (%q) references parent %d before it exists, attached to root",
				i, sub.Name, sub.Parent)
			s.Root.addChild(node)
		}
		s.SubModelNodes = append(s.SubModelNodes, node)
	}

	s.attachHardpoints(model)
	return s
}

func triangulateSubModel(sub *pof.SubModel) *Mesh {
	mesh := &Mesh{Vertices: sub.Vertices}
	for _, face := range sub.Faces {
		mesh.Triangles = append(mesh.Triangles, TriangulateFace(face)...)
	}
	return mesh
}

// attachHardpoints builds one named group node per non-empty hardpoint
// category. Hardpoints are stored in model space, so every marker
// hangs off the root frame.
func (s *Scene) attachHardpoints(model *pof.Model) {
	addGroup := func(category string, count int, marker func(i int) (*Marker, vmath.Vec3)) {
		if count == 0 {
			return
		}
		group := &Node{Name: category, Index: -1}
		for i := 0; i < count; i++ {
			m, pos := marker(i)
			m.Category = category
			group.addChild(&Node{
				Name:   fmt.Sprintf("%s.%d", category, i),
				Index:  -1,
				Offset: pos,
				Marker: m,
			})
		}
		s.Root.addChild(group)
		s.Groups = append(s.Groups, group)
	}

	addGroup("gunpoints", len(model.GunPoints), func(i int) (*Marker, vmath.Vec3) {
		return &Marker{}, model.GunPoints[i].Position
	})
	addGroup("missilepoints", len(model.MissilePoints), func(i int) (*Marker, vmath.Vec3) {
		return &Marker{}, model.MissilePoints[i].Position
	})
	addGroup("thrusters", len(model.ThrusterPoints), func(i int) (*Marker, vmath.Vec3) {
		p := model.ThrusterPoints[i]
		return &Marker{Normal: p.Normal, Radius: p.Radius}, p.Position
	})
	addGroup("dockpoints", len(model.DockPoints), func(i int) (*Marker, vmath.Vec3) {
		p := model.DockPoints[i]
		return &Marker{Normal: p.Normal, Forward: p.Forward}, p.Position
	})
	addGroup("glowpoints", len(model.GlowPoints), func(i int) (*Marker, vmath.Vec3) {
		p := model.GlowPoints[i]
		return &Marker{Normal: p.Normal, Radius: p.Radius}, p.Position
	})
	addGroup("eyepoints", len(model.EyePoints), func(i int) (*Marker, vmath.Vec3) {
		p := model.EyePoints[i]
		return &Marker{Normal: p.Normal}, p.Position
	})
	addGroup("specialpoints", len(model.SpecialPoints), func(i int) (*Marker, vmath.Vec3) {
		p := model.SpecialPoints[i]
		return &Marker{Radius: p.Radius, Properties: p.Properties}, p.Position
	})
}

func (s *Scene) warn(kind pof.WarningKind, format string, args ...any) {
	s.Warnings = append(s.Warnings, pof.Warning{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

// TriangleCount returns the number of triangles across all sub-model
// meshes.
func (s *Scene) TriangleCount() int {
	total := 0
	for _, n := range s.SubModelNodes {
		if n.Mesh != nil {
			total += len(n.Mesh.Triangles)
		}
	}
	return total
}
