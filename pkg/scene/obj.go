package scene

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// WriteOBJ serializes the scene as a Wavefront OBJ document. Geometry
// is flattened into the root frame using each node's accumulated world
// offset; sub-model meshes are emitted in document order so output is
// deterministic. Hardpoint markers carry no geometry and are recorded
// as comment lines.
func WriteOBJ(w io.Writer, s *Scene, mtlName string) error {
	if mtlName != "" {
		if _, err := fmt.Fprintf(w, "mtllib %s\n", mtlName); err != nil {
			return err
		}
	}

	vertexBase, uvBase := 1, 1 // OBJ indices are 1-based and global
	for _, node := range s.SubModelNodes {
		if node.Mesh == nil || len(node.Mesh.Triangles) == 0 {
			continue
		}
		if err := writeMeshNode(w, s, node, &vertexBase, &uvBase); err != nil {
			return err
		}
	}

	for _, group := range s.Groups {
		for _, marker := range group.Children {
			p := marker.WorldOffset
			if _, err := fmt.Fprintf(w, "# marker %s %g %g %g\n", marker.Name, p.X, p.Y, p.Z); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMeshNode(w io.Writer, s *Scene, node *Node, vertexBase, uvBase *int) error {
	name := node.Name
	if name == "" {
		name = fmt.Sprintf("submodel%d", node.Index)
	}
	if _, err := fmt.Fprintf(w, "o %s\n", name); err != nil {
		return err
	}

	mesh := node.Mesh
	for _, v := range mesh.Vertices {
		p := node.WorldOffset.Add(v.Position)
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	for _, v := range mesh.Vertices {
		n := v.Normal
		if _, err := fmt.Fprintf(w, "vn %g %g %g\n", n.X, n.Y, n.Z); err != nil {
			return err
		}
	}

	// UVs live on triangle corners, not vertices, so each triangle
	// contributes its own vt records.
	for _, tri := range mesh.Triangles {
		for _, uv := range tri.UV {
			if _, err := fmt.Fprintf(w, "vt %g %g\n", uv.X, uv.Y); err != nil {
				return err
			}
		}
	}

	currentTexture := int32(-1)
	uv := *uvBase
	for _, tri := range mesh.Triangles {
		if tri.TextureID != currentTexture {
			currentTexture = tri.TextureID
			if _, err := fmt.Fprintf(w, "usemtl %s\n", s.materialName(currentTexture)); err != nil {
				return err
			}
		}
		a := *vertexBase + int(tri.V[0])
		b := *vertexBase + int(tri.V[1])
		c := *vertexBase + int(tri.V[2])
		if _, err := fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n",
			a, uv, a, b, uv+1, b, c, uv+2, c); err != nil {
			return err
		}
		uv += 3
	}

	*vertexBase += len(mesh.Vertices)
	*uvBase += 3 * len(mesh.Triangles)
	return nil
}

// materialName maps a texture id to a stable material name. Ids with
// no texture table entry fall back to a generated name so malformed
// input still serializes.
func (s *Scene) materialName(textureID int32) string {
	if textureID >= 0 && int(textureID) < len(s.Textures) {
		base := path.Base(strings.ReplaceAll(s.Textures[textureID], "\\", "/"))
		if ext := path.Ext(base); ext != "" {
			base = strings.TrimSuffix(base, ext)
		}
		if base != "" {
			return base
		}
	}
	return fmt.Sprintf("texture%d", textureID)
}

// WriteMTL serializes a material library naming every texture in the
// scene's texture table.
func WriteMTL(w io.Writer, s *Scene) error {
	for i, tex := range s.Textures {
		name := s.materialName(int32(i))
		if _, err := fmt.Fprintf(w, "newmtl %s\n", name); err != nil {
			return err
		}
		if tex != "" {
			if _, err := fmt.Fprintf(w, "map_Kd %s\n", tex); err != nil {
				return err
			}
		}
	}
	return nil
}
