package bgf

import "image/color"

// hexPalette is Meridian 59's fixed 256-color palette, index 254 reserved
// for transparency.
var hexPalette = [256]uint32{
	0x000000, 0x800000, 0x008000, 0x808000, 0x000080, 0x800080, 0x008080,
	0xC0C0C0, 0x800000, 0x008000, 0x800000, 0x008000, 0x800000, 0x008000,
	0x800000, 0x008000, 0xC20101, 0xB40101, 0xAB0202, 0xA60101, 0x9A0202,
	0x910200, 0x890200, 0x7F0000, 0x780200, 0x6D0100, 0x560000, 0x4C0000,
	0x400000, 0x380000, 0x260000, 0x110000, 0xFEC294, 0xEBB892, 0xDBA983,
	0xCB9D7C, 0xC69475, 0xB58769, 0xB18866, 0xA88060, 0x9D7356, 0x916B51,
	0x886048, 0x7A5844, 0x755440, 0x684D3B, 0x604631, 0x4A3B2D, 0xFFB580,
	0xF3A872, 0xDC9968, 0xCA8D61, 0xC48257, 0xB97A51, 0xAB7347, 0xA56E44,
	0x935C36, 0x855231, 0x7B4626, 0x6B3D22, 0x63381C, 0x552F18, 0x4B280D,
	0x321C0B, 0xB95F2B, 0x91461A, 0x833F18, 0x793B16, 0x773412, 0x722F10,
	0x69300C, 0x662D0C, 0x5E250C, 0x54220C, 0x4B1B0B, 0x41190B, 0x3C170B,
	0x33140B, 0x2A140B, 0x1B0F0A, 0xFFB233, 0xFFA91B, 0xFFA511, 0xFA9C00,
	0xEE9400, 0xD88700, 0xCC7F00, 0xC27900, 0xAA6A00, 0xA06400, 0x885500,
	0x7E4F00, 0x684100, 0x5C3900, 0x442A00, 0x301E00, 0x89B174, 0x82A96E,
	0x78A164, 0x70955C, 0x678B53, 0x5F814C, 0x587C49, 0x507042, 0x476537,
	0x3E5A31, 0x304F26, 0x29441F, 0x253E16, 0x1C3010, 0x101E08, 0x070E03,
	0x00C432, 0x00B82F, 0x00AA2B, 0x009E27, 0x009A27, 0x008C24, 0x008A23,
	0x007E20, 0x00721D, 0x006219, 0x005014, 0x004511, 0x003E10, 0x00300C,
	0x001A07, 0x000E04, 0xABD5DE, 0xA5CED7, 0x89BCC5, 0x7FACB3, 0x709AA3,
	0x6A919A, 0x4E8189, 0x48757D, 0x345F67, 0x2E555D, 0x1B464E, 0x173D46,
	0x0A343D, 0x062930, 0x031B21, 0x00090B, 0x344EDE, 0x324AD3, 0x2B3EC7,
	0x2A3ABC, 0x2434AB, 0x2230A1, 0x1B2C92, 0x172684, 0x0A1B78, 0x08186B,
	0x021256, 0x010F4B, 0x000A46, 0x00073B, 0x000329, 0x000018, 0xA042C2,
	0x993FB9, 0x9438B2, 0x862EA2, 0x7A2CA1, 0x6E2893, 0x66248B, 0x5E2081,
	0x56186F, 0x4E1263, 0x3F0355, 0x36004C, 0x2D003E, 0x21002F, 0x170020,
	0x0A0010, 0xF4F0CE, 0xEDE7B0, 0xEBE4A3, 0xE5DC89, 0xD8D7F6, 0xBBBAF0,
	0xAFADED, 0x9491E7, 0x9CE99C, 0x84E484, 0x5AD75A, 0x28B828, 0xF2C5C5,
	0xE89898, 0xE17777, 0xDC6262, 0xFFEA6E, 0xFADE37, 0xF7D51B, 0xF0D019,
	0xEECA1A, 0xDEBD19, 0xDCC413, 0xCFB910, 0xC5B40A, 0xB9A708, 0x9A8902,
	0x877A00, 0x807300, 0x777100, 0x706A00, 0x555100, 0xE7E7E7, 0xD5D5D5,
	0xCDCDCD, 0xBCBCBC, 0xB4B4B4, 0xA3A3A3, 0x9A9A9A, 0x929292, 0x818181,
	0x787878, 0x676767, 0x5F5F5F, 0x4E4E4E, 0x464646, 0x343434, 0x242424,
	0x7CBFFF, 0x67ABEF, 0x5FA3E7, 0x5F9AD5, 0x4E89C5, 0x4678AB, 0x3D70A3,
	0x3C6B9A, 0x345F89, 0x2C5277, 0x1B4167, 0x112F4D, 0x0A243D, 0x05182B,
	0x010E1B, 0x000B16, 0xE0B494, 0xD0B084, 0xCCA87C, 0xC4A074, 0x800000,
	0x008000, 0x800000, 0x008000, 0x808080, 0xFF0000, 0x00FF00, 0xFFFF00,
	0x0000FF, 0xFF00FF, 0x00FFFF, 0xFFFFFF,
}

// Palette is the Meridian 59 palette as a Go image/color.Palette, with
// index transparentIndex carrying zero alpha for PNG export.
var Palette = buildPalette()

func buildPalette() color.Palette {
	pal := make(color.Palette, len(hexPalette))
	for i, hex := range hexPalette {
		pal[i] = color.NRGBA{
			R: byte(hex >> 16),
			G: byte(hex >> 8),
			B: byte(hex),
			A: 255,
		}
	}
	pal[transparentIndex] = color.NRGBA{A: 0}
	return pal
}
