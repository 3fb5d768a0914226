package bgf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeBitmap(buf *bytes.Buffer, width, height int32, pixels []byte, compressed bool) {
	binary.Write(buf, binary.LittleEndian, width)
	binary.Write(buf, binary.LittleEndian, height)
	binary.Write(buf, binary.LittleEndian, int32(0)) // x offset
	binary.Write(buf, binary.LittleEndian, int32(0)) // y offset
	binary.Write(buf, binary.LittleEndian, uint8(1)) // hotspot count
	binary.Write(buf, binary.LittleEndian, int8(0))  // hotspot number
	binary.Write(buf, binary.LittleEndian, int32(1)) // hotspot x
	binary.Write(buf, binary.LittleEndian, int32(2)) // hotspot y

	if compressed {
		var zbuf bytes.Buffer
		zw := zlib.NewWriter(&zbuf)
		zw.Write(pixels)
		zw.Close()
		binary.Write(buf, binary.LittleEndian, uint8(compressedFormat))
		binary.Write(buf, binary.LittleEndian, uint32(zbuf.Len()))
		buf.Write(zbuf.Bytes())
	} else {
		binary.Write(buf, binary.LittleEndian, uint8(0))
		binary.Write(buf, binary.LittleEndian, uint32(len(pixels)))
		buf.Write(pixels)
	}
}

func buildBGF(t *testing.T, bitmaps [][]byte, widths, heights []int32, compressed bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(magic[:])
	binary.Write(&buf, binary.LittleEndian, uint32(bgfVersion))

	name := make([]byte, 32)
	copy(name, "testgrd")
	buf.Write(name)

	binary.Write(&buf, binary.LittleEndian, uint32(len(bitmaps))) // bitmap count
	binary.Write(&buf, binary.LittleEndian, uint32(1))            // group count
	binary.Write(&buf, binary.LittleEndian, uint32(len(bitmaps))) // max group bitmaps
	binary.Write(&buf, binary.LittleEndian, uint32(1))            // shrink factor

	for i, px := range bitmaps {
		writeBitmap(&buf, widths[i], heights[i], px, compressed)
	}

	binary.Write(&buf, binary.LittleEndian, uint32(len(bitmaps))) // group 0 index count
	for i := range bitmaps {
		binary.Write(&buf, binary.LittleEndian, uint32(i))
	}

	return buf.Bytes()
}

func TestParseUncompressedSingleBitmap(t *testing.T) {
	pixels := []byte{1, 2, 3, 4}
	data := buildBGF(t, [][]byte{pixels}, []int32{2}, []int32{2}, false)
	path := writeBGFFile(t, data)

	f, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, "testgrd", f.Name)
	require.Len(t, f.Bitmaps, 1)
	require.Equal(t, pixels, f.Bitmaps[0].Pixels)
	require.Len(t, f.Bitmaps[0].Hotspots, 1)
	require.Len(t, f.Groups, 1)
	require.Equal(t, []uint32{0}, f.Groups[0])
}

func TestParseCompressedBitmap(t *testing.T) {
	pixels := bytes.Repeat([]byte{7}, 64)
	data := buildBGF(t, [][]byte{pixels}, []int32{8}, []int32{8}, true)
	path := writeBGFFile(t, data)

	f, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, pixels, f.Bitmaps[0].Pixels)
}

func TestParseMultiBitmap(t *testing.T) {
	p1 := []byte{1, 1, 1, 1}
	p2 := []byte{2, 2, 2, 2, 2, 2}
	data := buildBGF(t, [][]byte{p1, p2}, []int32{2, 2}, []int32{2, 3}, false)
	path := writeBGFFile(t, data)

	f, err := Parse(path)
	require.NoError(t, err)
	require.Len(t, f.Bitmaps, 2)
	require.Equal(t, p1, f.Bitmaps[0].Pixels)
	require.Equal(t, p2, f.Bitmaps[1].Pixels)
}

func TestParseBadMagic(t *testing.T) {
	data := buildBGF(t, [][]byte{{1}}, []int32{1}, []int32{1}, false)
	data[0] = 0xFF
	path := writeBGFFile(t, data)

	_, err := Parse(path)
	require.Error(t, err)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseBadVersion(t *testing.T) {
	data := buildBGF(t, [][]byte{{1}}, []int32{1}, []int32{1}, false)
	binary.LittleEndian.PutUint32(data[4:8], 9)
	path := writeBGFFile(t, data)

	_, err := Parse(path)
	require.Error(t, err)
}

func writeBGFFile(t *testing.T, data []byte) string {
	t.Helper()
	path := t.TempDir() + "/test.bgf"
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
