package roo

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

var magic = [4]byte{0x52, 0x4F, 0x4F, 0xB1}

const minVersion = 10

// ParseError reports a fatal failure while decoding a ROO file: bad magic,
// unsupported version, a truncated section, or an unrecognized node tag.
type ParseError struct {
	Path   string
	Offset int // byte offset the failure was detected at, -1 if unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("roo: %s: at byte %d: %v", e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("roo: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// cursor is a byte-slice reader with an absolute read position: plain
// readX() helpers over an in-memory buffer, plus random-access seeks for
// ROO's subsection offset table.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return fmt.Errorf("seek to %d out of range (len %d)", pos, len(c.data))
	}
	c.off = pos
	return nil
}

func (c *cursor) need(n int) error {
	if c.off+n > len(c.data) {
		return fmt.Errorf("short read: need %d bytes at offset %d, have %d", n, c.off, len(c.data)-c.off)
	}
	return nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

func (c *cursor) u16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.off:])
	c.off += 2
	return v, nil
}

func (c *cursor) i16() (int16, error) {
	v, err := c.u16()
	return int16(v), err
}

func (c *cursor) u32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v, nil
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.off += n
	return nil
}

// readCoord decodes one 4-byte field as either a plain signed integer
// (room_version < 13) or an IEEE-754 float (room_version >= 13).
func (c *cursor) readCoord(version int32) (float64, error) {
	raw, err := c.u32()
	if err != nil {
		return 0, err
	}
	if version < 13 {
		return float64(int32(raw)), nil
	}
	return float64(math.Float32frombits(raw)), nil
}

// Parse reads a complete ROO file and returns its decoded Room.
func Parse(path string) (*Room, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roo: open %s: %w", path, err)
	}

	c := &cursor{data: raw}
	room, err := c.parseRoom()
	if err != nil {
		return nil, &ParseError{Path: path, Offset: c.off, Err: err}
	}
	return room, nil
}

func (c *cursor) parseRoom() (*Room, error) {
	var magicBuf [4]byte
	for i := range magicBuf {
		b, err := c.u8()
		if err != nil {
			return nil, fmt.Errorf("read magic: %w", err)
		}
		magicBuf[i] = b
	}
	if magicBuf != magic {
		return nil, fmt.Errorf("bad magic %x, want %x", magicBuf, magic)
	}

	version, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version < minVersion {
		return nil, fmt.Errorf("unsupported room version %d (want >= %d)", version, minVersion)
	}

	if err := c.skip(4); err != nil { // security number, ignored
		return nil, fmt.Errorf("skip security number: %w", err)
	}

	mainInfoPos, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read main-info offset: %w", err)
	}
	if err := c.seek(int(mainInfoPos)); err != nil {
		return nil, fmt.Errorf("seek to main-info: %w", err)
	}

	width, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read width: %w", err)
	}
	height, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read height: %w", err)
	}

	nodePos, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read node offset: %w", err)
	}
	if _, err := c.i32(); err != nil { // client-geometry offset, ignored
		return nil, fmt.Errorf("read client-geometry offset: %w", err)
	}
	wallPos, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read wall offset: %w", err)
	}
	sidedefPos, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read sidedef offset: %w", err)
	}
	sectorPos, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read sector offset: %w", err)
	}
	thingsPos, err := c.i32()
	if err != nil {
		return nil, fmt.Errorf("read things offset: %w", err)
	}

	room := &Room{Version: version, Width: width, Height: height}

	if err := c.seek(int(nodePos)); err != nil {
		return nil, fmt.Errorf("seek to node section: %w", err)
	}
	if room.Subsectors, err = c.readSubsectors(version); err != nil {
		return nil, fmt.Errorf("read node section: %w", err)
	}

	if err := c.seek(int(wallPos)); err != nil {
		return nil, fmt.Errorf("seek to wall section: %w", err)
	}
	if room.Walls, err = c.readWalls(); err != nil {
		return nil, fmt.Errorf("read wall section: %w", err)
	}

	if err := c.seek(int(sidedefPos)); err != nil {
		return nil, fmt.Errorf("seek to sidedef section: %w", err)
	}
	if room.Sidedefs, err = c.readSidedefs(); err != nil {
		return nil, fmt.Errorf("read sidedef section: %w", err)
	}

	if err := c.seek(int(sectorPos)); err != nil {
		return nil, fmt.Errorf("seek to sector section: %w", err)
	}
	if room.Sectors, err = c.readSectors(version); err != nil {
		return nil, fmt.Errorf("read sector section: %w", err)
	}

	if err := c.seek(int(thingsPos)); err != nil {
		return nil, fmt.Errorf("seek to things section: %w", err)
	}
	if room.Things, err = c.readThings(); err != nil {
		return nil, fmt.Errorf("read things section: %w", err)
	}

	room.setBounds()

	return room, nil
}

// readSubsectors parses the node section: a tagged sequence of internal
// nodes (skipped) and leaves (kept as Subsectors).
func (c *cursor) readSubsectors(version int32) ([]Subsector, error) {
	nodeCount, err := c.u16()
	if err != nil {
		return nil, fmt.Errorf("read node count: %w", err)
	}

	subsectors := make([]Subsector, 0, nodeCount/2)
	for i := 0; i < int(nodeCount); i++ {
		tag, err := c.u8()
		if err != nil {
			return nil, fmt.Errorf("read node %d tag: %w", i, err)
		}

		switch tag {
		case 1: // internal node: 16-byte bounding box + 18-byte splitter
			if err := c.skip(34); err != nil {
				return nil, fmt.Errorf("skip internal node %d: %w", i, err)
			}
		case 2: // leaf
			if err := c.skip(16); err != nil { // bounding box
				return nil, fmt.Errorf("skip leaf %d bounding box: %w", i, err)
			}
			sectorNumber, err := c.u16()
			if err != nil {
				return nil, fmt.Errorf("read leaf %d sector number: %w", i, err)
			}
			pointCount, err := c.u16()
			if err != nil {
				return nil, fmt.Errorf("read leaf %d point count: %w", i, err)
			}
			points := make([]Point, pointCount)
			for j := range points {
				x, err := c.readCoord(version)
				if err != nil {
					return nil, fmt.Errorf("read leaf %d point %d x: %w", i, j, err)
				}
				y, err := c.readCoord(version)
				if err != nil {
					return nil, fmt.Errorf("read leaf %d point %d y: %w", i, j, err)
				}
				points[j] = Point{X: x, Y: y}
			}
			subsectors = append(subsectors, Subsector{SectorNumber: sectorNumber, Points: points})
		default:
			return nil, fmt.Errorf("unknown node tag %d at node %d", tag, i)
		}
	}
	return subsectors, nil
}

func (c *cursor) readWalls() ([]Wall, error) {
	count, err := c.u16()
	if err != nil {
		return nil, fmt.Errorf("read wall count: %w", err)
	}

	walls := make([]Wall, count)
	for i := range walls {
		w := &walls[i]
		var err error
		if w.PosSidedefNum, err = c.u16(); err != nil {
			return nil, fmt.Errorf("wall %d pos sidedef: %w", i, err)
		}
		if w.NegSidedefNum, err = c.u16(); err != nil {
			return nil, fmt.Errorf("wall %d neg sidedef: %w", i, err)
		}
		if w.PosXTexOffset, err = c.i16(); err != nil {
			return nil, fmt.Errorf("wall %d pos x offset: %w", i, err)
		}
		if w.NegXTexOffset, err = c.i16(); err != nil {
			return nil, fmt.Errorf("wall %d neg x offset: %w", i, err)
		}
		if w.PosYTexOffset, err = c.i16(); err != nil {
			return nil, fmt.Errorf("wall %d pos y offset: %w", i, err)
		}
		if w.NegYTexOffset, err = c.i16(); err != nil {
			return nil, fmt.Errorf("wall %d neg y offset: %w", i, err)
		}
		if w.PosSectorNum, err = c.i16(); err != nil {
			return nil, fmt.Errorf("wall %d pos sector: %w", i, err)
		}
		if w.NegSectorNum, err = c.i16(); err != nil {
			return nil, fmt.Errorf("wall %d neg sector: %w", i, err)
		}

		x0, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("wall %d x0: %w", i, err)
		}
		y0, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("wall %d y0: %w", i, err)
		}
		x1, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("wall %d x1: %w", i, err)
		}
		y1, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("wall %d y1: %w", i, err)
		}
		w.X0, w.Y0, w.X1, w.Y1 = int16(x0), int16(y0), int16(x1), int16(y1)
	}
	return walls, nil
}

func (c *cursor) readSidedefs() ([]Sidedef, error) {
	count, err := c.u16()
	if err != nil {
		return nil, fmt.Errorf("read sidedef count: %w", err)
	}

	sidedefs := make([]Sidedef, count)
	for i := range sidedefs {
		s := &sidedefs[i]
		var err error
		if s.ID, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sidedef %d id: %w", i, err)
		}
		if s.NormalBitmapNum, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sidedef %d normal bitmap: %w", i, err)
		}
		if s.AboveBitmapNum, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sidedef %d above bitmap: %w", i, err)
		}
		if s.BelowBitmapNum, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sidedef %d below bitmap: %w", i, err)
		}
		if s.WallFlags, err = c.u32(); err != nil {
			return nil, fmt.Errorf("sidedef %d flags: %w", i, err)
		}
		speed, err := c.u8()
		if err != nil {
			return nil, fmt.Errorf("sidedef %d animation speed: %w", i, err)
		}
		s.AnimationSpeed = speed
	}
	return sidedefs, nil
}

func (c *cursor) readSlope(version int32) (SlopeData, error) {
	var s SlopeData
	var err error
	if s.A, err = c.readCoord(version); err != nil {
		return s, fmt.Errorf("a: %w", err)
	}
	if s.B, err = c.readCoord(version); err != nil {
		return s, fmt.Errorf("b: %w", err)
	}
	if s.C, err = c.readCoord(version); err != nil {
		return s, fmt.Errorf("c: %w", err)
	}
	if s.D, err = c.readCoord(version); err != nil {
		return s, fmt.Errorf("d: %w", err)
	}
	if s.TexOriginX, err = c.readCoord(version); err != nil {
		return s, fmt.Errorf("tex origin x: %w", err)
	}
	if s.TexOriginY, err = c.readCoord(version); err != nil {
		return s, fmt.Errorf("tex origin y: %w", err)
	}
	if s.TexAngle, err = c.i32(); err != nil {
		return s, fmt.Errorf("tex angle: %w", err)
	}
	// Skip the trailing vertex triplet: 3 * (x, y, z) at 2 bytes each.
	if err := c.skip(18); err != nil {
		return s, fmt.Errorf("skip vertex triplet: %w", err)
	}
	return s, nil
}

func (c *cursor) readSectors(version int32) ([]Sector, error) {
	count, err := c.u16()
	if err != nil {
		return nil, fmt.Errorf("read sector count: %w", err)
	}

	sectors := make([]Sector, count)
	for i := range sectors {
		sec := &sectors[i]
		var err error
		if sec.ID, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sector %d id: %w", i, err)
		}
		if sec.FloorBitmapNum, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sector %d floor bitmap: %w", i, err)
		}
		if sec.CeilingBitmapNum, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sector %d ceiling bitmap: %w", i, err)
		}
		if sec.XTexOffset, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sector %d x tex offset: %w", i, err)
		}
		if sec.YTexOffset, err = c.u16(); err != nil {
			return nil, fmt.Errorf("sector %d y tex offset: %w", i, err)
		}
		floorRaw, err := c.i16()
		if err != nil {
			return nil, fmt.Errorf("sector %d floor height: %w", i, err)
		}
		ceilRaw, err := c.i16()
		if err != nil {
			return nil, fmt.Errorf("sector %d ceiling height: %w", i, err)
		}
		sec.FloorHeight = float64(floorRaw) * BlakFactor
		sec.CeilingHeight = float64(ceilRaw) * BlakFactor

		if sec.LightLevel, err = c.u8(); err != nil {
			return nil, fmt.Errorf("sector %d light level: %w", i, err)
		}
		if sec.SectorFlags, err = c.u32(); err != nil {
			return nil, fmt.Errorf("sector %d flags: %w", i, err)
		}

		if version >= minVersion {
			if sec.AnimationSpeed, err = c.u8(); err != nil {
				return nil, fmt.Errorf("sector %d animation speed: %w", i, err)
			}
		}

		if sec.HasSlopedFloor() {
			if sec.FloorSlope, err = c.readSlope(version); err != nil {
				return nil, fmt.Errorf("sector %d floor slope: %w", i, err)
			}
		}
		if sec.HasSlopedCeiling() {
			if sec.CeilingSlope, err = c.readSlope(version); err != nil {
				return nil, fmt.Errorf("sector %d ceiling slope: %w", i, err)
			}
		}
	}
	return sectors, nil
}

func (c *cursor) readThings() ([]Thing, error) {
	count, err := c.u16()
	if err != nil {
		return nil, fmt.Errorf("read thing count: %w", err)
	}

	things := make([]Thing, count)

	if count <= 2 {
		for i := range things {
			x, err := c.i32()
			if err != nil {
				return nil, fmt.Errorf("thing %d x: %w", i, err)
			}
			y, err := c.i32()
			if err != nil {
				return nil, fmt.Errorf("thing %d y: %w", i, err)
			}
			things[i] = Thing{XPos: int16(x), YPos: int16(y)}
		}
		return things, nil
	}

	for i := range things {
		t := &things[i]
		typ, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("thing %d type: %w", i, err)
		}
		angle, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("thing %d angle: %w", i, err)
		}
		x, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("thing %d x: %w", i, err)
		}
		y, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("thing %d y: %w", i, err)
		}
		when, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("thing %d when: %w", i, err)
		}
		xExit, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("thing %d exit x: %w", i, err)
		}
		yExit, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("thing %d exit y: %w", i, err)
		}
		flags, err := c.i32()
		if err != nil {
			return nil, fmt.Errorf("thing %d flags: %w", i, err)
		}
		if err := c.need(64); err != nil {
			return nil, fmt.Errorf("thing %d comment: %w", i, err)
		}
		comment := c.data[c.off : c.off+64]
		c.off += 64

		t.Type = int16(typ)
		t.Angle = int16(angle)
		t.XPos = int16(x)
		t.YPos = int16(y)
		t.When = int16(when)
		t.XExitPos = int16(xExit)
		t.YExitPos = int16(yExit)
		t.Flags = int16(flags)
		t.Comment = cString(comment)
	}
	return things, nil
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// setBounds computes the map bounding box: from the things when there are
// one or two of them (a single thing gives a zero-size box), otherwise,
// including when there are no things, from the union of wall endpoints.
func (r *Room) setBounds() {
	if len(r.Things) <= 2 && len(r.Things) > 0 {
		t0, t1 := r.Things[0], r.Things[0]
		if len(r.Things) == 2 {
			t1 = r.Things[1]
		}
		r.MinX = min16(t0.XPos, t1.XPos)
		r.MinY = min16(t0.YPos, t1.YPos)
		r.MaxX = max16(t0.XPos, t1.XPos)
		r.MaxY = max16(t0.YPos, t1.YPos)
		return
	}

	r.MinX, r.MinY = 32767, 32767
	r.MaxX, r.MaxY = -32767, -32767
	for _, w := range r.Walls {
		r.MinX = min16(r.MinX, min16(w.X0, w.X1))
		r.MinY = min16(r.MinY, min16(w.Y0, w.Y1))
		r.MaxX = max16(r.MaxX, max16(w.X0, w.X1))
		r.MaxY = max16(r.MaxY, max16(w.Y0, w.Y1))
	}
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}
