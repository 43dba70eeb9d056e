package dxf_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/tenon/pkg/brep"
	exportdxf "github.com/chazu/tenon/pkg/export/dxf"
	"github.com/chazu/tenon/pkg/mesh"
	"github.com/chazu/tenon/pkg/model"
	"github.com/chazu/tenon/pkg/resolve"
	"github.com/chazu/tenon/pkg/tessellate"
)

func cubeResult(t *testing.T, name string) resolve.Result {
	t.Helper()
	rep := &model.Representation{
		Ops:       []model.SolidOp{{Solid: brep.NewBox(1, 1, 1), Kind: model.OpAdd}},
		SkipUnion: true,
	}
	buf := tessellate.Operations(rep, nil)
	require.NotNil(t, buf)
	return resolve.Result{
		Buffers: []*mesh.Buffer{buf},
		Mode:    mesh.ModeTriangles,
		Name:    name,
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.dxf")

	err := exportdxf.Save(path, []resolve.Result{
		cubeResult(t, "frame"),
		{}, // skipped
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "3DFACE")
	assert.Contains(t, text, "frame")
	// A unit cube tessellates to 12 triangles, one 3DFACE each.
	assert.Equal(t, 12, strings.Count(text, "3DFACE"))
}

func TestSaveRejectsNonTriangleMode(t *testing.T) {
	res := cubeResult(t, "lines")
	res.Mode = mesh.ModeLines

	err := exportdxf.Save(filepath.Join(t.TempDir(), "bad.dxf"), []resolve.Result{res})
	assert.Error(t, err)
}
