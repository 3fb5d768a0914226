package bgf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func solidBitmap(w, h int32, fill byte) Bitmap {
	px := make([]byte, int(w)*int(h))
	for i := range px {
		px[i] = fill
	}
	return Bitmap{Width: w, Height: h, Pixels: px}
}

func TestPackSingleBitmapPassesThrough(t *testing.T) {
	bm := solidBitmap(10, 10, 3)
	f := &File{Bitmaps: []Bitmap{bm}}

	atlas, err := f.Pack()
	require.NoError(t, err)
	require.Equal(t, bm.Width, atlas.Width)
	require.Equal(t, bm.Height, atlas.Height)
	require.Equal(t, bm.Pixels, atlas.Pixels)
}

func TestPackMultipleBitmapsNonOverlapping(t *testing.T) {
	f := &File{Bitmaps: []Bitmap{
		solidBitmap(16, 16, 1),
		solidBitmap(32, 8, 2),
		solidBitmap(8, 8, 3),
	}}

	atlas, err := f.Pack()
	require.NoError(t, err)
	require.True(t, int(atlas.Width) > 0 && int(atlas.Height) > 0)

	// every bitmap's placement is recorded and stays within atlas bounds
	for _, bm := range f.Bitmaps {
		require.True(t, bm.XPos >= 0 && bm.YPos >= 0)
		require.True(t, bm.XPos+int(bm.Width) <= int(atlas.Width))
		require.True(t, bm.YPos+int(bm.Height) <= int(atlas.Height))
	}

	// placements pairwise don't overlap
	for i := range f.Bitmaps {
		for j := i + 1; j < len(f.Bitmaps); j++ {
			a, b := f.Bitmaps[i], f.Bitmaps[j]
			overlap := a.XPos < b.XPos+int(b.Width) && b.XPos < a.XPos+int(a.Width) &&
				a.YPos < b.YPos+int(b.Height) && b.YPos < a.YPos+int(a.Height)
			require.False(t, overlap, "bitmaps %d and %d overlap", i, j)
		}
	}

	// the transparent background shows through everywhere not covered
	covered := make([]bool, int(atlas.Width)*int(atlas.Height))
	for _, bm := range f.Bitmaps {
		for row := 0; row < int(bm.Height); row++ {
			for col := 0; col < int(bm.Width); col++ {
				covered[(bm.YPos+row)*int(atlas.Width)+bm.XPos+col] = true
			}
		}
	}
	for i, c := range covered {
		if !c {
			require.EqualValues(t, transparentIndex, atlas.Pixels[i])
		}
	}
}

func TestPackRectsFailsWhenTooLarge(t *testing.T) {
	rects := []packRect{{w: atlasMaxDim * 2, h: atlasMaxDim * 2}}
	err := packRects(rects)
	require.Error(t, err)
}
