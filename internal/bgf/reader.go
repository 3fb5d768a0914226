package bgf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ParseError reports a fatal failure while decoding a BGF file: bad magic,
// unsupported version, or a truncated section.
type ParseError struct {
	Path   string
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bgf: %s: at byte %d: %v", e.Path, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// cursor is a byte-slice reader with an absolute read position, the same
// shape as internal/roo's cursor.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) need(n int) error {
	if c.off+n > len(c.data) {
		return fmt.Errorf("short read: need %d bytes at offset %d, have %d", n, c.off, len(c.data)-c.off)
	}
	return nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.data[c.off : c.off+n]
	c.off += n
	return v, nil
}

func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

func (c *cursor) i8() (int8, error) {
	v, err := c.u8()
	return int8(v), err
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

// Parse reads and fully decodes a BGF file, inflating every bitmap's
// zlib-compressed pixel data (or reading it raw, per the per-bitmap format
// byte) into palette-index bytes.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bgf: read %s: %w", path, err)
	}

	c := &cursor{data: data}
	f, err := c.parseFile()
	if err != nil {
		return nil, &ParseError{Path: path, Offset: c.off, Err: err}
	}
	return f, nil
}

func (c *cursor) parseFile() (*File, error) {
	gotMagic, err := c.bytes(4)
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if !bytes.Equal(gotMagic, magic[:]) {
		return nil, fmt.Errorf("invalid BGF magic")
	}

	version, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != bgfVersion {
		return nil, fmt.Errorf("unsupported BGF version %d", version)
	}

	nameBytes, err := c.bytes(32)
	if err != nil {
		return nil, fmt.Errorf("read bitmap name: %w", err)
	}

	bitmapCount, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("read bitmap count: %w", err)
	}
	groupCount, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("read group count: %w", err)
	}
	maxGroupBitmaps, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("read max group bitmaps: %w", err)
	}
	shrinkFactor, err := c.u32()
	if err != nil {
		return nil, fmt.Errorf("read shrink factor: %w", err)
	}

	f := &File{
		Version:         version,
		Name:            trimNulString(nameBytes),
		ShrinkFactor:    shrinkFactor,
		MaxGroupBitmaps: maxGroupBitmaps,
		Bitmaps:         make([]Bitmap, bitmapCount),
	}

	for i := range f.Bitmaps {
		bm, err := c.readBitmap()
		if err != nil {
			return nil, fmt.Errorf("read bitmap %d: %w", i, err)
		}
		f.Bitmaps[i] = bm
	}

	f.Groups = make([][]uint32, groupCount)
	for i := range f.Groups {
		indexCount, err := c.u32()
		if err != nil {
			return nil, fmt.Errorf("read group %d index count: %w", i, err)
		}
		indices := make([]uint32, indexCount)
		for j := range indices {
			idx, err := c.u32()
			if err != nil {
				return nil, fmt.Errorf("read group %d index %d: %w", i, j, err)
			}
			indices[j] = idx
		}
		f.Groups[i] = indices
	}

	return f, nil
}

func (c *cursor) readBitmap() (Bitmap, error) {
	var bm Bitmap

	width, err := c.i32()
	if err != nil {
		return bm, fmt.Errorf("read width: %w", err)
	}
	height, err := c.i32()
	if err != nil {
		return bm, fmt.Errorf("read height: %w", err)
	}
	xOffset, err := c.i32()
	if err != nil {
		return bm, fmt.Errorf("read x offset: %w", err)
	}
	yOffset, err := c.i32()
	if err != nil {
		return bm, fmt.Errorf("read y offset: %w", err)
	}
	hotspotCount, err := c.u8()
	if err != nil {
		return bm, fmt.Errorf("read hotspot count: %w", err)
	}

	hotspots := make([]Hotspot, hotspotCount)
	for i := range hotspots {
		number, err := c.i8()
		if err != nil {
			return bm, fmt.Errorf("read hotspot %d number: %w", i, err)
		}
		x, err := c.i32()
		if err != nil {
			return bm, fmt.Errorf("read hotspot %d x: %w", i, err)
		}
		y, err := c.i32()
		if err != nil {
			return bm, fmt.Errorf("read hotspot %d y: %w", i, err)
		}
		hotspots[i] = Hotspot{Number: number, X: x, Y: y}
	}

	format, err := c.u8()
	if err != nil {
		return bm, fmt.Errorf("read format: %w", err)
	}
	compressedSize, err := c.u32()
	if err != nil {
		return bm, fmt.Errorf("read compressed size: %w", err)
	}

	uncompSize := int(width) * int(height)
	var pixels []byte
	if format == compressedFormat {
		compressed, err := c.bytes(int(compressedSize))
		if err != nil {
			return bm, fmt.Errorf("read compressed bytes: %w", err)
		}
		pixels, err = inflate(compressed, uncompSize)
		if err != nil {
			return bm, fmt.Errorf("inflate pixels: %w", err)
		}
	} else {
		raw, err := c.bytes(uncompSize)
		if err != nil {
			return bm, fmt.Errorf("read raw pixels: %w", err)
		}
		pixels = append([]byte(nil), raw...)
	}

	bm.Width, bm.Height = width, height
	bm.XOffset, bm.YOffset = xOffset, yOffset
	bm.Hotspots = hotspots
	bm.Pixels = pixels
	return bm, nil
}

func inflate(compressed []byte, expectedSize int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	out := make([]byte, expectedSize)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}

func trimNulString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
