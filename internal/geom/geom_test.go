package geom

import (
	"testing"

	"github.com/stretchr/testify/require"

	"meridian59-tools/internal/roo"
)

func flatSector(floor, ceiling float64) *roo.Sector {
	return &roo.Sector{FloorHeight: floor, CeilingHeight: ceiling}
}

func TestFloorCeilingHeightFlat(t *testing.T) {
	sec := flatSector(0, 1600)
	require.Equal(t, 0.0, FloorHeight(sec, 10, 20))
	require.Equal(t, 1600.0, CeilingHeight(sec, 10, 20))
}

func TestFloorCeilingHeightNilSector(t *testing.T) {
	require.Equal(t, 0.0, FloorHeight(nil, 0, 0))
	require.Equal(t, 0.0, CeilingHeight(nil, 0, 0))
}

func TestFloorHeightSloped(t *testing.T) {
	// plane: z - x = 0  ->  a=-1, b=0, c=1, d=0  =>  z = x
	sec := &roo.Sector{
		SectorFlags: roo.SectorSlopedFloor,
		FloorSlope:  roo.SlopeData{A: -1, B: 0, C: 1, D: 0},
	}
	require.Equal(t, 5.0, FloorHeight(sec, 5, 100))
}

func TestResolveWallHeightsBothAbsent(t *testing.T) {
	h := ResolveWallHeights(nil, nil, 0, 0, 100, 0)
	require.Equal(t, 0.0, h.Z00)
	require.Equal(t, float64(roo.Fineness), h.Z02)
	require.Equal(t, BowtieNone, h.BelowBowtie)
	require.Equal(t, BowtieNone, h.AboveBowtie)
}

func TestResolveWallHeightsOneAbsent(t *testing.T) {
	pos := flatSector(0, 800)
	h := ResolveWallHeights(pos, nil, 0, 0, 100, 0)
	require.Equal(t, 0.0, h.Z00)
	require.Equal(t, 0.0, h.Z01)
	require.Equal(t, 800.0, h.Z02)
	require.Equal(t, 800.0, h.Z03)
}

func TestResolveWallHeightsNoBowtie(t *testing.T) {
	pos := flatSector(0, 1600)
	neg := flatSector(0, 1600)
	h := ResolveWallHeights(pos, neg, 0, 0, 100, 0)
	require.Equal(t, BowtieNone, h.BelowBowtie)
	require.Equal(t, BowtieNone, h.AboveBowtie)
	require.False(t, h.BelowVisible(1))
	require.False(t, h.AboveVisible(1))
	require.True(t, h.NormalVisible(1))
	require.False(t, h.NormalVisible(0))
}

func TestResolveWallHeightsBowtie(t *testing.T) {
	// positive sector's floor starts above the negative sector's floor at
	// x0 but ends below it at x1: a below-band bowtie.
	pos := &roo.Sector{
		SectorFlags: roo.SectorSlopedFloor,
		FloorSlope:  roo.SlopeData{A: 1, B: 0, C: 1, D: 0}, // z = -x
		CeilingHeight: 1600,
	}
	neg := flatSector(0, 1600)

	h := ResolveWallHeights(pos, neg, -10, 0, 10, 0)
	require.Equal(t, BowtiePos, h.BelowBowtie)
}

func TestWallEndpointsFlipsY(t *testing.T) {
	w := &roo.Wall{X0: 0, Y0: 0, X1: 10, Y1: 5}
	x0, y0, x1, y1 := WallEndpoints(0, 20, w)
	require.Equal(t, 0.0, x0)
	require.Equal(t, float64(20*roo.BlakFactor), y0)
	require.Equal(t, float64(10*roo.BlakFactor), x1)
	require.Equal(t, float64(15*roo.BlakFactor), y1)
}
