package bgf

import (
	"fmt"
	"sort"
)

// skylineNode is one segment of the packer's skyline: the occupied height
// from x to x+width, mirroring stb_rect_pack's stbrp_node.
type skylineNode struct {
	x, width, y int
}

// skylinePacker packs rectangles against a growing skyline, the same
// bottom-left heuristic stb_rect_pack's stbrp_pack_rects uses.
type skylinePacker struct {
	width, height int
	skyline       []skylineNode
}

func newSkylinePacker(width, height int) *skylinePacker {
	return &skylinePacker{
		width:   width,
		height:  height,
		skyline: []skylineNode{{x: 0, width: width, y: 0}},
	}
}

// fit returns the lowest y at which a w×h rect fits at the given skyline
// index's x position, or false if it would exceed the packer's width.
func (p *skylinePacker) fit(index, w int) (x, y int, ok bool) {
	node := p.skyline[index]
	x = node.x
	if x+w > p.width {
		return 0, 0, false
	}

	y = 0
	widthLeft := w
	i := index
	for widthLeft > 0 {
		if i >= len(p.skyline) {
			return 0, 0, false
		}
		if p.skyline[i].y > y {
			y = p.skyline[i].y
		}
		widthLeft -= p.skyline[i].width
		i++
	}
	return x, y, true
}

// insert places a w×h rect at the skyline position with the lowest y (the
// first such position when several tie) and updates the skyline. Reports false if the
// rect does not fit within the packer's bounds at all.
func (p *skylinePacker) insert(w, h int) (x, y int, ok bool) {
	bestY := p.height + 1
	bestIndex := -1
	var bestX int

	for i := range p.skyline {
		cx, cy, fits := p.fit(i, w)
		if !fits {
			continue
		}
		if cy+h > p.height {
			continue
		}
		if cy < bestY {
			bestY = cy
			bestX = cx
			bestIndex = i
		}
	}

	if bestIndex < 0 {
		return 0, 0, false
	}

	p.addSkylineLevel(bestX, bestY, w, h)
	return bestX, bestY, true
}

func (p *skylinePacker) addSkylineLevel(x, y, w, h int) {
	newNode := skylineNode{x: x, width: w, y: y + h}

	var merged []skylineNode
	inserted := false
	for _, node := range p.skyline {
		switch {
		case node.x+node.width <= x:
			merged = append(merged, node)
		case node.x >= x+w:
			if !inserted {
				merged = append(merged, newNode)
				inserted = true
			}
			merged = append(merged, node)
		default:
			if !inserted {
				merged = append(merged, newNode)
				inserted = true
			}
			if node.x < x {
				merged = append(merged, skylineNode{x: node.x, width: x - node.x, y: node.y})
			}
			right := node.x + node.width
			if right > x+w {
				merged = append(merged, skylineNode{x: x + w, width: right - (x + w), y: node.y})
			}
		}
	}
	if !inserted {
		merged = append(merged, newNode)
	}
	p.skyline = merged
}

// packRect is one bitmap's atlas placement request and result.
type packRect struct {
	w, h int
	x, y int
}

// packRects packs every bitmap's padded rect into the smallest power-of-two
// square (starting at 256, doubling up to atlasMaxDim) that fits all of
// them, mirroring pack_rects' growing-dimension retry loop. Rects are
// packed tallest-first, the ordering stb_rect_pack's own rect sort uses,
// then results are scattered back to the caller's original order.
func packRects(rects []packRect) error {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return rects[order[i]].h > rects[order[j]].h
	})

	for dim := 256; dim <= atlasMaxDim; dim *= 2 {
		packer := newSkylinePacker(dim, dim)
		ok := true
		placed := make([]packRect, len(rects))
		for _, idx := range order {
			r := rects[idx]
			x, y, fits := packer.insert(r.w, r.h)
			if !fits {
				ok = false
				break
			}
			placed[idx] = packRect{w: r.w, h: r.h, x: x, y: y}
		}
		if ok {
			copy(rects, placed)
			return nil
		}
	}
	return fmt.Errorf("failed to pack bitmaps, try increasing the atlas dimension")
}

// Pack assigns XPos/YPos to every bitmap in f by packing them (each padded
// by atlasPad on every side) into a single atlas, and returns the combined
// atlas as a single Bitmap whose Pixels buffer is initialized to the
// transparent palette index before bitmaps are blitted in.
func (f *File) Pack() (Bitmap, error) {
	if len(f.Bitmaps) == 1 {
		return f.Bitmaps[0], nil
	}

	rects := make([]packRect, len(f.Bitmaps))
	for i, bm := range f.Bitmaps {
		rects[i] = packRect{w: int(bm.Width) + atlasPad*2, h: int(bm.Height) + atlasPad*2}
	}
	if err := packRects(rects); err != nil {
		return Bitmap{}, err
	}

	maxWidth, maxHeight := 0, 0
	for i := range f.Bitmaps {
		f.Bitmaps[i].XPos = rects[i].x + atlasPad
		f.Bitmaps[i].YPos = rects[i].y + atlasPad
		if w := f.Bitmaps[i].XPos + int(f.Bitmaps[i].Width) + atlasPad; w > maxWidth {
			maxWidth = w
		}
		if h := f.Bitmaps[i].YPos + int(f.Bitmaps[i].Height) + atlasPad; h > maxHeight {
			maxHeight = h
		}
	}

	atlas := Bitmap{
		Width:  int32(maxWidth),
		Height: int32(maxHeight),
		Pixels: make([]byte, maxWidth*maxHeight),
	}
	for i := range atlas.Pixels {
		atlas.Pixels[i] = transparentIndex
	}

	for _, bm := range f.Bitmaps {
		w, h := int(bm.Width), int(bm.Height)
		for row := 0; row < h; row++ {
			src := bm.Pixels[row*w : row*w+w]
			destOff := bm.XPos + (bm.YPos+row)*maxWidth
			copy(atlas.Pixels[destOff:destOff+w], src)
		}
	}

	return atlas, nil
}
