// Package dxf exports resolved elements as DXF drawings using
// github.com/yofu/dxf. Each element gets its own layer; triangles are
// written as 3DFACE entities.
package dxf

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/chazu/tenon/pkg/mesh"
	"github.com/chazu/tenon/pkg/resolve"
)

// Save writes resolved elements to a DXF file at path. Only triangle
// results are representable; other draw modes are rejected. Empty results
// are skipped.
func Save(path string, results []resolve.Result) error {
	d := dxf.NewDrawing()

	for i, res := range results {
		if res.Empty() {
			continue
		}
		if res.Mode != mesh.ModeTriangles {
			return fmt.Errorf("dxf: element %q: unsupported draw mode %s", res.Name, res.Mode)
		}

		layer := res.Name
		if layer == "" {
			layer = fmt.Sprintf("element-%d", i)
		}
		if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("dxf: layer %q: %w", layer, err)
		}

		for _, buf := range res.Buffers {
			if err := writeBuffer(d, buf); err != nil {
				return fmt.Errorf("dxf: element %q: %w", res.Name, err)
			}
		}
	}

	return d.SaveAs(path)
}

func writeBuffer(d *drawing.Drawing, buf *mesh.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	at := func(i uint32) []float64 {
		return []float64{
			float64(buf.Positions[i*3]),
			float64(buf.Positions[i*3+1]),
			float64(buf.Positions[i*3+2]),
		}
	}
	for t := 0; t < buf.TriangleCount(); t++ {
		p0 := at(buf.Indices[t*3])
		p1 := at(buf.Indices[t*3+1])
		p2 := at(buf.Indices[t*3+2])
		if _, err := d.ThreeDFace([][]float64{p0, p1, p2}); err != nil {
			return err
		}
	}
	return nil
}
