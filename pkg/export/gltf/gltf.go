// Package gltf exports resolved elements as glTF 2.0 documents using
// github.com/qmuntal/gltf. Each element becomes one node; each of its
// packed buffers becomes one mesh primitive.
package gltf

import (
	"fmt"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/chazu/tenon/pkg/mesh"
	"github.com/chazu/tenon/pkg/resolve"
)

// Document builds a glTF document from resolved elements. Empty results
// are skipped; they contribute no nodes.
func Document(results []resolve.Result) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	for _, res := range results {
		if res.Empty() {
			continue
		}
		mode, err := primitiveMode(res.Mode)
		if err != nil {
			return nil, fmt.Errorf("gltf: element %q: %w", res.Name, err)
		}

		m := &gltf.Mesh{Name: res.Name}
		for _, buf := range res.Buffers {
			prim, err := primitive(doc, buf, mode)
			if err != nil {
				return nil, fmt.Errorf("gltf: element %q: %w", res.Name, err)
			}
			m.Primitives = append(m.Primitives, prim)
		}
		doc.Meshes = append(doc.Meshes, m)

		meshIdx := len(doc.Meshes) - 1
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: res.Name,
			Mesh: gltf.Index(meshIdx),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	return doc, nil
}

// primitive writes one packed buffer's arrays into the document and
// returns the referencing primitive.
func primitive(doc *gltf.Document, buf *mesh.Buffer, mode gltf.PrimitiveMode) (*gltf.Primitive, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	attrs := map[string]int{
		gltf.POSITION: modeler.WritePosition(doc, grouped3(buf.Positions)),
	}
	if len(buf.Normals) > 0 {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, grouped3(buf.Normals))
	}
	if len(buf.UVs) > 0 {
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, grouped2(buf.UVs))
	}
	if len(buf.Colors) > 0 {
		attrs[gltf.COLOR_0] = modeler.WriteColor(doc, grouped4(buf.Colors))
	}

	prim := &gltf.Primitive{
		Attributes: attrs,
		Mode:       mode,
	}
	if len(buf.Indices) > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, buf.Indices))
	}
	return prim, nil
}

// Save resolves the document for the given results and writes it to path.
// A .glb extension selects the binary container.
func Save(path string, results []resolve.Result) error {
	doc, err := Document(results)
	if err != nil {
		return err
	}
	if strings.HasSuffix(strings.ToLower(path), ".glb") {
		return gltf.SaveBinary(doc, path)
	}
	return gltf.Save(doc, path)
}

func primitiveMode(m mesh.DrawMode) (gltf.PrimitiveMode, error) {
	switch m {
	case mesh.ModePoints:
		return gltf.PrimitivePoints, nil
	case mesh.ModeLines:
		return gltf.PrimitiveLines, nil
	case mesh.ModeTriangles:
		return gltf.PrimitiveTriangles, nil
	default:
		return 0, fmt.Errorf("unsupported draw mode %s", m)
	}
}

func grouped3(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out
}

func grouped2(flat []float32) [][2]float32 {
	out := make([][2]float32, len(flat)/2)
	for i := range out {
		out[i] = [2]float32{flat[i*2], flat[i*2+1]}
	}
	return out
}

func grouped4(flat []float32) [][4]float32 {
	out := make([][4]float32, len(flat)/4)
	for i := range out {
		out[i] = [4]float32{flat[i*4], flat[i*4+1], flat[i*4+2], flat[i*4+3]}
	}
	return out
}
