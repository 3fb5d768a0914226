package bgf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaletteTransparentIndex(t *testing.T) {
	require.Len(t, Palette, 256)
	_, _, _, a := Palette[transparentIndex].RGBA()
	require.Equal(t, uint32(0), a)
}

func TestPaletteFirstEntryIsBlack(t *testing.T) {
	r, g, b, a := Palette[0].RGBA()
	require.Equal(t, uint32(0), r)
	require.Equal(t, uint32(0), g)
	require.Equal(t, uint32(0), b)
	require.True(t, a > 0)
}
