package bgf

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"meridian59-tools/internal/material"
)

func TestWritePNGRoundTrips(t *testing.T) {
	bm := Bitmap{Width: 2, Height: 2, Pixels: []byte{0, transparentIndex, 1, 2}}
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, WritePNG(path, bm))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	_, _, _, a := img.At(1, 0).RGBA()
	require.Equal(t, uint32(0), a) // transparentIndex pixel is fully transparent
}

func TestWriteSidecarShape(t *testing.T) {
	f := &File{
		Name:         "testgrd",
		Version:      10,
		ShrinkFactor: 2,
		Bitmaps: []Bitmap{
			{XPos: 1, YPos: 2, Width: 16, Height: 32, Hotspots: []Hotspot{{Number: 0, X: 4, Y: 8}}},
		},
		Groups: [][]uint32{{0}},
	}

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteSidecar(path, f, "out.png"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var sc material.Sidecar
	require.NoError(t, json.Unmarshal(raw, &sc))
	require.Equal(t, "testgrd", sc.Name)
	require.Equal(t, "out.png", sc.ImageFile)
	require.Equal(t, 2, sc.ShrinkFactor)
	require.Len(t, sc.Sprites, 1)
	require.Equal(t, 16, sc.Sprites[0].Width)
	require.Equal(t, 1, sc.Sprites[0].XPos)
	require.Len(t, sc.Sprites[0].Hotspots, 1)
	require.Len(t, sc.Groups, 1)
	require.Equal(t, 1, sc.Groups[0].IndexCount)
	require.Equal(t, []int{0}, sc.Groups[0].Indices)
}
