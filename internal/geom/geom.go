// Package geom resolves per-wall corner heights and bowtie classification
// from a parsed Room, bridging the raw ROO records and the mesh builder.
package geom

import (
	"math"

	"meridian59-tools/internal/roo"
)

// BowtieFlag classifies how a wall band's positive/negative sector planes
// relate to each other along the wall.
type BowtieFlag int

const (
	BowtieNone BowtieFlag = iota
	BowtiePos             // positive sector starts above, ends below
	BowtieNeg             // negative sector starts above, ends below
)

// Side identifies which sidedef of a wall a face belongs to.
type Side int

const (
	SidePos Side = iota
	SideNeg
)

// FaceKind identifies which of the three stacked faces a wall band forms.
type FaceKind int

const (
	FaceBelow FaceKind = iota
	FaceNormal
	FaceAbove
)

const epsilon = 1e-5

// WallHeights is the resolved 8-tuple of corner heights for a wall, plus
// the bowtie classification of its below and above bands.
type WallHeights struct {
	Z00, Z01, Z02, Z03 float64
	Z10, Z11, Z12, Z13 float64
	BelowBowtie        BowtieFlag
	AboveBowtie        BowtieFlag
}

// FloorHeight evaluates a sector's floor height at (x, y), resolving the
// slope plane equation a*x + b*y + c*z + d = 0 when the sector is sloped.
func FloorHeight(sec *roo.Sector, x, y float64) float64 {
	if sec == nil {
		return 0
	}
	if !sec.HasSlopedFloor() {
		return sec.FloorHeight
	}
	s := &sec.FloorSlope
	return math.Round((-s.A*x - s.B*y - s.D) / s.C)
}

// CeilingHeight evaluates a sector's ceiling height at (x, y).
func CeilingHeight(sec *roo.Sector, x, y float64) float64 {
	if sec == nil {
		return 0
	}
	if !sec.HasSlopedCeiling() {
		return sec.CeilingHeight
	}
	s := &sec.CeilingSlope
	return math.Round((-s.A*x - s.B*y - s.D) / s.C)
}

// ResolveWallHeights computes the four-band height tuple and bowtie
// classification for a wall, given its world-space endpoints (already
// translated into the output frame) and its resolved pos/neg sectors.
func ResolveWallHeights(posSector, negSector *roo.Sector, x0, y0, x1, y1 float64) WallHeights {
	var h WallHeights

	if posSector == nil && negSector == nil {
		h.Z00, h.Z01 = 0, 0
		h.Z02, h.Z03 = roo.Fineness, roo.Fineness
		h.Z10, h.Z11 = 0, 0
		h.Z12, h.Z13 = roo.Fineness, roo.Fineness
		return h
	}

	if posSector == nil || negSector == nil {
		present := posSector
		if present == nil {
			present = negSector
		}
		bottomStart := FloorHeight(present, x0, y0)
		topStart := CeilingHeight(present, x0, y0)
		bottomEnd := FloorHeight(present, x1, y1)
		topEnd := CeilingHeight(present, x1, y1)
		h.Z00, h.Z01 = bottomStart, bottomStart
		h.Z02, h.Z03 = topStart, topStart
		h.Z10, h.Z11 = bottomEnd, bottomEnd
		h.Z12, h.Z13 = topEnd, topEnd
		return h
	}

	// below band, from floor heights
	posZ0 := FloorHeight(posSector, x0, y0)
	posZ1 := FloorHeight(posSector, x1, y1)
	negZ0 := FloorHeight(negSector, x0, y0)
	negZ1 := FloorHeight(negSector, x1, y1)

	if posZ0 > negZ0 {
		if posZ1 >= negZ1 {
			h.BelowBowtie = BowtieNone
			h.Z00, h.Z10, h.Z01, h.Z11 = negZ0, negZ1, posZ0, posZ1
		} else {
			h.BelowBowtie = BowtiePos
			h.Z00, h.Z10, h.Z01, h.Z11 = negZ0, posZ1, posZ0, negZ1
		}
	} else {
		if negZ1 >= posZ1 {
			h.BelowBowtie = BowtieNone
			h.Z00, h.Z10, h.Z01, h.Z11 = posZ0, posZ1, negZ0, negZ1
		} else {
			h.BelowBowtie = BowtieNeg
			h.Z00, h.Z10, h.Z01, h.Z11 = posZ0, negZ1, negZ0, posZ1
		}
	}

	// above band, from ceiling heights
	posZ0 = CeilingHeight(posSector, x0, y0)
	posZ1 = CeilingHeight(posSector, x1, y1)
	negZ0 = CeilingHeight(negSector, x0, y0)
	negZ1 = CeilingHeight(negSector, x1, y1)

	if posZ0 > negZ0 {
		if posZ1 >= negZ1 {
			h.AboveBowtie = BowtieNone
			h.Z02, h.Z12, h.Z03, h.Z13 = negZ0, negZ1, posZ0, posZ1
		} else {
			h.AboveBowtie = BowtiePos
			h.Z02, h.Z12, h.Z03, h.Z13 = negZ0, posZ1, posZ0, negZ1
		}
	} else {
		if negZ1 >= posZ1 {
			h.AboveBowtie = BowtieNone
			h.Z02, h.Z12, h.Z03, h.Z13 = posZ0, posZ1, negZ0, negZ1
		} else {
			h.AboveBowtie = BowtieNeg
			h.Z02, h.Z12, h.Z03, h.Z13 = posZ0, negZ1, negZ0, posZ1
		}
	}

	return h
}

// WallEndpoints translates a wall's raw room-file endpoints into the
// output coordinate frame: offset by the map bounding box and scaled by
// BlakFactor, with Y flipped.
func WallEndpoints(minX, maxY int16, w *roo.Wall) (x0, y0, x1, y1 float64) {
	x0 = float64(w.X0-minX) * roo.BlakFactor
	y0 = float64(maxY-w.Y0) * roo.BlakFactor
	x1 = float64(w.X1-minX) * roo.BlakFactor
	y1 = float64(maxY-w.Y1) * roo.BlakFactor
	return
}

// BelowVisible reports whether the below face is visible on the given
// side, per the non-zero-bitmap-and-height-difference predicate (§4.2).
func (h WallHeights) BelowVisible(bitmapNum uint16) bool {
	return bitmapNum != 0 && (h.Z00 != h.Z01 || h.Z10 != h.Z11)
}

// NormalVisible reports whether the normal face is visible.
func (h WallHeights) NormalVisible(bitmapNum uint16) bool {
	return bitmapNum != 0 && (h.Z01 != h.Z02 || h.Z11 != h.Z12)
}

// AboveVisible reports whether the above face is visible.
func (h WallHeights) AboveVisible(bitmapNum uint16) bool {
	return bitmapNum != 0 && (h.Z02 != h.Z03 || h.Z12 != h.Z13)
}
