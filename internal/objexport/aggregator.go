// Package objexport aggregates mesh faces from internal/meshbuild into
// per-bitmap mesh objects, keyed and ordered by first touch, and writes
// them out as a Wavefront OBJ + MTL pair.
package objexport

import (
	"meridian59-tools/internal/material"
	"meridian59-tools/internal/meshbuild"
)

// MeshObject accumulates every vertex/triangle sharing one bitmap number.
type MeshObject struct {
	BitmapNum uint16
	Material  material.Material

	Positions []float64 // x,y,z triples, in raw fineness units
	TexCoords []float64 // u,v pairs
	Normals   []float64 // x,y,z triples
	Indices   []uint32  // triangle list, rebased against this object's own vertex block
}

// Aggregator is the per-bitmap mesh object table: a MeshObject is created
// the first time its bitmap number is touched, and objects are later
// iterated in that first-touch order.
type Aggregator struct {
	resolver material.Resolver
	byBitmap map[uint16]*MeshObject
	order    []uint16
}

// NewAggregator creates an Aggregator backed by a material Resolver.
func NewAggregator(resolver material.Resolver) *Aggregator {
	return &Aggregator{
		resolver: resolver,
		byBitmap: make(map[uint16]*MeshObject),
	}
}

func (a *Aggregator) object(bitmapNum uint16) *MeshObject {
	if obj, ok := a.byBitmap[bitmapNum]; ok {
		return obj
	}
	obj := &MeshObject{
		BitmapNum: bitmapNum,
		Material:  a.resolver.Resolve(bitmapNum),
	}
	a.byBitmap[bitmapNum] = obj
	a.order = append(a.order, bitmapNum)
	return obj
}

// Add appends a Face's vertex/UV/normal data to its mesh object, rebasing
// the face's local triangle indices against the object's current vertex
// count.
func (a *Aggregator) Add(f meshbuild.Face) {
	obj := a.object(f.BitmapNum)

	nextVertex := uint32(len(obj.Positions) / 3)
	for _, idx := range f.Indices {
		obj.Indices = append(obj.Indices, idx+nextVertex)
	}
	obj.Positions = append(obj.Positions, f.Positions...)
	obj.TexCoords = append(obj.TexCoords, f.TexCoords...)
	obj.Normals = append(obj.Normals, f.Normals...)
}

// Objects returns every mesh object in first-touch order.
func (a *Aggregator) Objects() []*MeshObject {
	objs := make([]*MeshObject, len(a.order))
	for i, id := range a.order {
		objs[i] = a.byBitmap[id]
	}
	return objs
}
