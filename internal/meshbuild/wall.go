package meshbuild

import (
	"math"

	"meridian59-tools/internal/geom"
	"meridian59-tools/internal/material"
	"meridian59-tools/internal/roo"
)

const wallEpsilon = 1e-5

// BuildWallFaces resolves a wall's four side heights and emits one Face
// per visible (side, face-kind) combination.
func BuildWallFaces(room *roo.Room, w *roo.Wall, resolver material.Resolver) []Face {
	posSidedef := room.PosSidedef(w)
	negSidedef := room.NegSidedef(w)
	posSector := room.PosSector(w)
	negSector := room.NegSector(w)

	x0, y0, x1, y1 := geom.WallEndpoints(room.MinX, room.MaxY, w)
	heights := geom.ResolveWallHeights(posSector, negSector, x0, y0, x1, y1)

	var faces []Face

	if posSidedef != nil {
		xOff, yOff := float64(w.PosXTexOffset), float64(w.PosYTexOffset)
		if heights.BelowVisible(posSidedef.BelowBitmapNum) {
			faces = append(faces, buildWallFace(posSidedef.BelowBitmapNum, posSidedef, heights, geom.SidePos, geom.FaceBelow, x0, y0, x1, y1, xOff, yOff, resolver))
		}
		if heights.AboveVisible(posSidedef.AboveBitmapNum) {
			faces = append(faces, buildWallFace(posSidedef.AboveBitmapNum, posSidedef, heights, geom.SidePos, geom.FaceAbove, x0, y0, x1, y1, xOff, yOff, resolver))
		}
		if heights.NormalVisible(posSidedef.NormalBitmapNum) {
			faces = append(faces, buildWallFace(posSidedef.NormalBitmapNum, posSidedef, heights, geom.SidePos, geom.FaceNormal, x0, y0, x1, y1, xOff, yOff, resolver))
		}
	}

	if negSidedef != nil {
		xOff, yOff := float64(w.NegXTexOffset), float64(w.NegYTexOffset)
		if heights.BelowVisible(negSidedef.BelowBitmapNum) {
			faces = append(faces, buildWallFace(negSidedef.BelowBitmapNum, negSidedef, heights, geom.SideNeg, geom.FaceBelow, x0, y0, x1, y1, xOff, yOff, resolver))
		}
		if heights.AboveVisible(negSidedef.AboveBitmapNum) {
			faces = append(faces, buildWallFace(negSidedef.AboveBitmapNum, negSidedef, heights, geom.SideNeg, geom.FaceAbove, x0, y0, x1, y1, xOff, yOff, resolver))
		}
		if heights.NormalVisible(negSidedef.NormalBitmapNum) {
			faces = append(faces, buildWallFace(negSidedef.NormalBitmapNum, negSidedef, heights, geom.SideNeg, geom.FaceNormal, x0, y0, x1, y1, xOff, yOff, resolver))
		}
	}

	return faces
}

func buildWallFace(bitmapNum uint16, sidedef *roo.Sidedef, h geom.WallHeights, side geom.Side, face geom.FaceKind, x0, y0, x1, y1, xTexOffset, yTexOffset float64, resolver material.Resolver) Face {
	mat := resolver.Resolve(bitmapNum)

	flipH := sidedef.WallFlags&roo.FlagBackwards != 0
	noVTile := sidedef.WallFlags&roo.FlagNoVTile != 0

	topDown := (face == geom.FaceBelow && sidedef.WallFlags&roo.FlagBelowTopDown != 0) ||
		(face == geom.FaceNormal && sidedef.WallFlags&roo.FlagNormalTopDown != 0) ||
		(face == geom.FaceAbove && sidedef.WallFlags&roo.FlagAboveBottomUp == 0)

	// default to below band
	z00, z01, z10, z11 := h.Z00, h.Z01, h.Z10, h.Z11
	switch face {
	case geom.FaceNormal:
		z00, z01, z10, z11 = h.Z01, h.Z02, h.Z11, h.Z12
	case geom.FaceAbove:
		z00, z01, z10, z11 = h.Z02, h.Z03, h.Z12, h.Z13
	}

	ignoreTriangle := -1

	switch face {
	case geom.FaceBelow:
		switch h.BelowBowtie {
		case geom.BowtiePos:
			if side == geom.SidePos {
				z01 = z00
				ignoreTriangle = 1
			} else {
				z11 = z10
				ignoreTriangle = 0
			}
		case geom.BowtieNeg:
			if side == geom.SidePos {
				z11 = z10
				ignoreTriangle = 0
			} else {
				z01 = z00
				ignoreTriangle = 1
			}
		}
	case geom.FaceAbove:
		switch h.AboveBowtie {
		case geom.BowtiePos:
			if side == geom.SidePos {
				z10 = z11
				ignoreTriangle = 0
			} else {
				z00 = z01
				ignoreTriangle = 1
			}
		case geom.BowtieNeg:
			if side == geom.SidePos {
				z00 = z01
				ignoreTriangle = 1
			} else {
				z10 = z11
				ignoreTriangle = 0
			}
		}
	default: // normal: revert the crossing corner, never suppresses a triangle
		switch h.BelowBowtie {
		case geom.BowtiePos:
			if side == geom.SidePos {
				z00 = h.Z00
			} else {
				z10 = h.Z10
			}
		case geom.BowtieNeg:
			if side == geom.SidePos {
				z10 = h.Z10
			} else {
				z00 = h.Z00
			}
		}
		switch h.AboveBowtie {
		case geom.BowtiePos:
			if side == geom.SidePos {
				z11 = h.Z13
			} else {
				z01 = h.Z03
			}
		case geom.BowtieNeg:
			if side == geom.SidePos {
				z01 = h.Z03
			} else {
				z11 = h.Z13
			}
		}
	}

	var winding [6]uint32
	if side == geom.SidePos {
		winding = [6]uint32{0, 2, 1, 0, 3, 2}
	} else {
		winding = [6]uint32{0, 2, 3, 0, 1, 2}
	}

	// the positive side's horizontal flip sense is inverted relative to
	// the raw BACKWARDS flag (matches transform_wall's asymmetric facing)
	effectiveFlipH := flipH
	if side == geom.SidePos {
		effectiveFlipH = !flipH
	}

	btwX := x1 - x0
	btwY := y1 - y0
	btwLength := math.Hypot(btwX, btwY)

	normal := [3]float64{btwY / btwLength, -btwX / btwLength, 0}
	if side == geom.SidePos {
		normal[0] *= -1
		normal[1] *= -1
	}

	if mat.Valid {
		// textures are stored transposed (90 degrees rotated)
		texWidth := mat.TexHeight / float64(mat.ShrinkFactor)
		texHeight := mat.TexWidth / float64(mat.ShrinkFactor)

		if noVTile && face == geom.FaceNormal {
			maxHeight := (texHeight - yTexOffset) / roo.BitmapWidth * roo.Fineness
			if topDown {
				if z01-z00 > maxHeight {
					z00 = z01 - maxHeight
				}
				if z11-z10 > maxHeight {
					z10 = z11 - maxHeight
				}
			} else {
				if z01-z00 > maxHeight {
					z01 = z00 + maxHeight
				}
				if z11-z10 > maxHeight {
					z11 = z10 + maxHeight
				}
			}
		}

		positions := [12]float64{
			x0, y0, z01,
			x1, y1, z11,
			x1, y1, z10,
			x0, y0, z00,
		}

		xOrigin := 0.0
		zOrigin := z00
		if topDown {
			zOrigin = z01
		}
		if math.Abs(z00-z10) > wallEpsilon && !topDown {
			zOrigin = math.Ceil(math.Min(z00, z10)/roo.Fineness) * roo.Fineness
		}
		if math.Abs(z01-z11) > wallEpsilon && topDown {
			zOrigin = math.Ceil(math.Min(z01, z11)/roo.Fineness) * roo.Fineness
		}

		xOrigin -= xTexOffset / roo.BitmapWidth * roo.Fineness
		zOrigin -= yTexOffset / roo.BitmapWidth * roo.Fineness

		u0 := (0 - xOrigin) / roo.Fineness * roo.BitmapWidth / texWidth
		u1 := (btwLength - xOrigin) / roo.Fineness * roo.BitmapWidth / texWidth

		shift := 0.5 - (u1+u0)/2
		u0 += 2 * shift
		u1 += 2 * shift

		v00 := (zOrigin-z00)/roo.Fineness*roo.BitmapWidth/texHeight + 1
		v01 := (zOrigin-z01)/roo.Fineness*roo.BitmapWidth/texHeight + 1
		v10 := (zOrigin-z10)/roo.Fineness*roo.BitmapWidth/texHeight + 1
		v11 := (zOrigin-z11)/roo.Fineness*roo.BitmapWidth/texHeight + 1

		// transposed: (tex_u, tex_v) = (v, u)
		texCoords := [8]float64{v01, u0, v11, u1, v10, u1, v00, u0}
		if effectiveFlipH {
			texCoords[1], texCoords[3] = texCoords[3], texCoords[1]
			texCoords[5], texCoords[7] = texCoords[7], texCoords[5]
		}

		return compactWallFace(bitmapNum, winding, ignoreTriangle, positions, texCoords, normal)
	}

	positions := [12]float64{
		x0, y0, z01,
		x1, y1, z11,
		x1, y1, z10,
		x0, y0, z00,
	}
	return compactWallFace(bitmapNum, winding, ignoreTriangle, positions, [8]float64{}, normal)
}

func compactWallFace(bitmapNum uint16, winding [6]uint32, ignoreTriangle int, positions [12]float64, texCoords [8]float64, normal [3]float64) Face {
	if ignoreTriangle == -1 {
		f := Face{
			BitmapNum: bitmapNum,
			Positions: append([]float64{}, positions[:]...),
			TexCoords: append([]float64{}, texCoords[:]...),
			Indices:   append([]uint32{}, winding[:]...),
		}
		f.Normals = make([]float64, 0, 12)
		for i := 0; i < 4; i++ {
			f.Normals = append(f.Normals, normal[0], normal[1], normal[2])
		}
		return f
	}

	ignoreVertex := -1
	if ignoreTriangle == 0 {
		ignoreVertex = 1
	} else if ignoreTriangle == 1 {
		ignoreVertex = 3
	}

	f := Face{BitmapNum: bitmapNum, Indices: []uint32{0, 1, 2}}
	for i := 0; i < 4; i++ {
		if i == ignoreVertex {
			continue
		}
		f.Positions = append(f.Positions, positions[i*3], positions[i*3+1], positions[i*3+2])
		f.TexCoords = append(f.TexCoords, texCoords[i*2], texCoords[i*2+1])
		f.Normals = append(f.Normals, normal[0], normal[1], normal[2])
	}
	return f
}
