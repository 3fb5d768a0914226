package meshbuild

import (
	"math"

	"meridian59-tools/internal/geom"
	"meridian59-tools/internal/material"
	"meridian59-tools/internal/roo"
)

// BuildSubsectorFaces fan-triangulates a subsector's floor and/or ceiling
// plane, producing zero, one, or two Faces.
func BuildSubsectorFaces(room *roo.Room, s *roo.Subsector, resolver material.Resolver) []Face {
	sec := room.Sector(s)
	if sec == nil {
		return nil
	}

	var faces []Face
	if sec.FloorBitmapNum != 0 {
		faces = append(faces, buildSubsectorPlane(sec, s, true, resolver))
	}
	if sec.CeilingBitmapNum != 0 {
		faces = append(faces, buildSubsectorPlane(sec, s, false, resolver))
	}
	return faces
}

func buildSubsectorPlane(sec *roo.Sector, s *roo.Subsector, isFloor bool, resolver material.Resolver) Face {
	n := len(s.Points)
	bitmapNum := sec.CeilingBitmapNum
	if isFloor {
		bitmapNum = sec.FloorBitmapNum
	}

	f := Face{
		BitmapNum: bitmapNum,
		Positions: make([]float64, 0, n*3),
		TexCoords: make([]float64, 0, n*2),
		Normals:   make([]float64, 0, n*3),
		Indices:   make([]uint32, 0, (n-2)*3),
	}

	for i := 0; i < n-2; i++ {
		if isFloor {
			f.Indices = append(f.Indices, 0, uint32(i+2), uint32(i+1))
		} else {
			f.Indices = append(f.Indices, 0, uint32(i+1), uint32(i+2))
		}
	}

	for _, p := range s.Points {
		var z float64
		if isFloor {
			z = geom.FloorHeight(sec, p.X, p.Y)
		} else {
			z = geom.CeilingHeight(sec, p.X, p.Y)
		}
		f.Positions = append(f.Positions, p.X, p.Y, z)
	}

	var slope *roo.SlopeData
	if isFloor && sec.HasSlopedFloor() {
		slope = &sec.FloorSlope
	} else if !isFloor && sec.HasSlopedCeiling() {
		slope = &sec.CeilingSlope
	}

	normal := planeVec3{0, 0, 1}
	if slope != nil {
		normal = planeVec3{slope.A, slope.B, slope.C}
	}
	if !isFloor {
		normal = normal.Scale(-1)
	}
	unitNormal := normal
	if slope != nil {
		unitNormal = normal.Normalize()
	}

	mat := resolver.Resolve(bitmapNum)
	for range s.Points {
		f.Normals = append(f.Normals, unitNormal[0], unitNormal[1], unitNormal[2])
	}

	if !mat.Valid {
		f.TexCoords = append(f.TexCoords, make([]float64, n*2)...)
		return f
	}

	uAxis := planeVec3{1, 0, 0}
	vAxis := planeVec3{0, 1, 0}
	xOrigin, yOrigin := 0.0, 0.0

	if slope != nil {
		xOrigin, yOrigin = slope.TexOriginX, slope.TexOriginY

		angle := float64(slope.TexAngle) / roo.NumDegrees * math.Pi * 2
		t := planeVec3{math.Cos(angle), math.Sin(angle), 0}

		vAxis = normal.Cross(t)
		uAxis = vAxis.Cross(normal)
		vAxis = vAxis.Normalize()
		uAxis = uAxis.Normalize()
	}

	var zOrigin float64
	if isFloor {
		zOrigin = geom.FloorHeight(sec, xOrigin, yOrigin)
	} else {
		zOrigin = geom.CeilingHeight(sec, xOrigin, yOrigin)
	}

	xOrigin /= roo.Fineness
	yOrigin /= roo.Fineness
	zOrigin /= roo.Fineness

	uOffset := float64(sec.XTexOffset) / mat.TexWidth
	vOffset := float64(sec.YTexOffset) / mat.TexHeight

	origin := planeVec3{xOrigin, yOrigin, zOrigin}
	for i := 0; i < n; i++ {
		p := planeVec3{f.Positions[i*3] / roo.Fineness, f.Positions[i*3+1] / roo.Fineness, f.Positions[i*3+2] / roo.Fineness}
		p = p.Sub(origin)
		u := uAxis.Dot(p) - uOffset
		v := vAxis.Dot(p) - vOffset
		f.TexCoords = append(f.TexCoords, u, v)
	}

	return f
}
