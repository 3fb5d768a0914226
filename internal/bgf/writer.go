package bgf

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"

	"meridian59-tools/internal/material"
)

// WritePNG encodes bm as a palettized PNG at path, using the fixed Meridian
// 59 palette with index 254 fully transparent.
func WritePNG(path string, bm Bitmap) error {
	img := image.NewPaletted(image.Rect(0, 0, int(bm.Width), int(bm.Height)), Palette)
	copy(img.Pix, bm.Pixels)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bgf: create %s: %w", path, err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("bgf: encode %s: %w", path, err)
	}
	return nil
}

// WriteSidecar writes the grd#####.json-shaped metadata document describing
// f's sprites and groups, pointing at imageFile as the packed atlas or
// single-bitmap PNG.
func WriteSidecar(path string, f *File, imageFile string) error {
	sidecar := material.Sidecar{
		Name:         f.Name,
		Version:      int(f.Version),
		SpriteCount:  len(f.Bitmaps),
		GroupCount:   len(f.Groups),
		ShrinkFactor: int(f.ShrinkFactor),
		ImageFile:    imageFile,
		Sprites:      make([]material.SidecarSprite, len(f.Bitmaps)),
		Groups:       make([]material.SpriteGroup, len(f.Groups)),
	}

	for i, bm := range f.Bitmaps {
		hotspots := make([]material.Hotspot, len(bm.Hotspots))
		for j, h := range bm.Hotspots {
			hotspots[j] = material.Hotspot{Number: int(h.Number), X: float64(h.X), Y: float64(h.Y)}
		}
		sidecar.Sprites[i] = material.SidecarSprite{
			XPos:     bm.XPos,
			YPos:     bm.YPos,
			Width:    int(bm.Width),
			Height:   int(bm.Height),
			XOffset:  int(bm.XOffset),
			YOffset:  int(bm.YOffset),
			Hotspots: hotspots,
		}
	}

	for i, group := range f.Groups {
		indices := make([]int, len(group))
		for j, idx := range group {
			indices[j] = int(idx)
		}
		sidecar.Groups[i] = material.SpriteGroup{IndexCount: len(indices), Indices: indices}
	}

	data, err := json.MarshalIndent(sidecar, "", "\t")
	if err != nil {
		return fmt.Errorf("bgf: marshal sidecar: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("bgf: write %s: %w", path, err)
	}
	return nil
}
