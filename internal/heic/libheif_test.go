//go:build heic

package heic

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/strukturag/libheif-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_SelectsFirstTopLevelImage(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "example.heic"))
	require.NoError(t, err)

	ctx, err := libheif.NewContext()
	require.NoError(t, err)
	require.NoError(t, ctx.ReadFromMemory(data))

	ids := ctx.GetListOfTopLevelImageIDs()
	require.Len(t, ids, 2)

	first, err := ctx.GetImageHandle(ids[0])
	require.NoError(t, err)
	decoded, err := first.DecodeImage(libheif.ColorspaceRGB, libheif.ChromaInterleavedRGB, nil)
	require.NoError(t, err)
	want, err := decoded.GetImage()
	require.NoError(t, err)

	got, err := decode(data)
	require.NoError(t, err)
	require.Equal(t, want.Bounds(), got.Bounds())

	b := got.Bounds()
	for _, p := range []image.Point{b.Min, {b.Dx() / 2, b.Dy() / 2}, {b.Dx() - 1, b.Dy() - 1}, {b.Dx() / 3, b.Dy() / 4}} {
		assert.Equal(t, want.At(p.X, p.Y), got.At(p.X, p.Y), "pixel %v", p)
	}
}
