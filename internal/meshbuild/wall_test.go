package meshbuild

import (
	"testing"

	"github.com/stretchr/testify/require"

	"meridian59-tools/internal/material"
	"meridian59-tools/internal/roo"
)

type stubResolver struct {
	materials map[uint16]material.Material
}

func (s stubResolver) Resolve(bitmapNum uint16) material.Material {
	return s.materials[bitmapNum]
}

func roomWithWall(posFloor, posCeil, negFloor, negCeil float64, posBitmap, negBitmap uint16) (*roo.Room, *roo.Wall) {
	room := &roo.Room{
		Sidedefs: []roo.Sidedef{
			{ID: 1, NormalBitmapNum: posBitmap},
			{ID: 2, NormalBitmapNum: negBitmap},
		},
		Sectors: []roo.Sector{
			{ID: 1, FloorHeight: posFloor, CeilingHeight: posCeil},
			{ID: 2, FloorHeight: negFloor, CeilingHeight: negCeil},
		},
		MaxY: 0,
	}
	w := &roo.Wall{
		PosSidedefNum: 1, NegSidedefNum: 2,
		PosSectorNum: 0, NegSectorNum: 1,
		X0: 0, Y0: 0, X1: 40, Y1: 0,
	}
	room.Walls = []roo.Wall{*w}
	return room, &room.Walls[0]
}

func TestBuildWallFacesFlatQuad(t *testing.T) {
	room, w := roomWithWall(0, 1600, 0, 1600, 5, 0)
	resolver := stubResolver{materials: map[uint16]material.Material{}}

	faces := BuildWallFaces(room, w, resolver)
	require.Len(t, faces, 1)

	f := faces[0]
	require.Equal(t, uint16(5), f.BitmapNum)
	require.Len(t, f.Positions, 12) // 4 vertices, untextured (no bowtie, material invalid)
	require.Equal(t, []uint32{0, 2, 1, 0, 3, 2}, f.Indices)
}

func TestBuildWallFacesNoSidedefsEmitsNothing(t *testing.T) {
	room := &roo.Room{
		Sectors: []roo.Sector{{ID: 1, FloorHeight: 0, CeilingHeight: 1600}},
	}
	w := &roo.Wall{PosSidedefNum: 0, NegSidedefNum: 0, PosSectorNum: -1, NegSectorNum: -1}
	faces := BuildWallFaces(room, w, stubResolver{})
	require.Empty(t, faces)
}

func TestBuildWallFacesBowtieSuppressesOneVertex(t *testing.T) {
	// pos floor starts above neg floor at x0 but ends below at x1: below-band bowtie
	room := &roo.Room{
		Sidedefs: []roo.Sidedef{
			{ID: 1, BelowBitmapNum: 9},
			{ID: 2, BelowBitmapNum: 9},
		},
		Sectors: []roo.Sector{
			{ID: 1, SectorFlags: roo.SectorSlopedFloor, FloorSlope: roo.SlopeData{A: 1, B: 0, C: 1, D: 0}, CeilingHeight: 1600},
			{ID: 2, FloorHeight: 0, CeilingHeight: 1600},
		},
	}
	w := &roo.Wall{PosSidedefNum: 1, NegSidedefNum: 2, PosSectorNum: 0, NegSectorNum: 1, X0: -10, Y0: 0, X1: 10, Y1: 0}
	room.Walls = []roo.Wall{*w}

	faces := BuildWallFaces(room, &room.Walls[0], stubResolver{})
	// one below face per side, each compacted to a single triangle (3 vertices)
	require.Len(t, faces, 2)
	for _, f := range faces {
		require.Equal(t, []uint32{0, 1, 2}, f.Indices)
		require.Len(t, f.Positions, 9)
	}
}

func TestBuildWallFacesTexturedUV(t *testing.T) {
	room, w := roomWithWall(0, 1600, 0, 1600, 5, 0)
	resolver := stubResolver{materials: map[uint16]material.Material{
		5: {Valid: true, TexWidth: 64, TexHeight: 64, ShrinkFactor: 1},
	}}

	faces := BuildWallFaces(room, w, resolver)
	require.Len(t, faces, 1)
	require.Len(t, faces[0].TexCoords, 8)
}
