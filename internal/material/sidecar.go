// Package material resolves a bitmap number to its texture sidecar
// metadata: the grd#####.json document a BGF→PNG run produces, and the
// dimensions/shrink-factor the mesh builder needs to project UVs.
package material

// Hotspot is one named anchor point carried in a BGF bitmap record.
type Hotspot struct {
	Number int     `json:"number"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// SidecarSprite is one packed sprite's placement and source dimensions.
type SidecarSprite struct {
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	XPos     int       `json:"x_pos"`
	YPos     int       `json:"y_pos"`
	XOffset  int       `json:"x_offset"`
	YOffset  int       `json:"y_offset"`
	Hotspots []Hotspot `json:"hotspots,omitempty"`
}

// SpriteGroup is a named animation group referencing sprite indices.
type SpriteGroup struct {
	IndexCount int   `json:"index_count"`
	Indices    []int `json:"indexes"`
}

// Sidecar is the parsed shape of a grd#####.json document: the metadata
// BGF→PNG emits alongside its atlas image, and the shape roo2obj reads
// back to resolve wall/sector textures.
type Sidecar struct {
	Name        string          `json:"name"`
	Version     int             `json:"version"`
	ShrinkFactor int            `json:"shrink_factor"`
	ImageFile   string          `json:"image_file"`
	SpriteCount int             `json:"sprite_count"`
	GroupCount  int             `json:"group_count"`
	Sprites     []SidecarSprite `json:"sprites"`
	Groups      []SpriteGroup   `json:"groups,omitempty"`
}

// Material is the resolved, mesh-builder-facing view of a sidecar: the
// texture dimensions (untransposed; wall code transposes where needed),
// the shrink factor, and the texture file path, or Valid=false if the
// sidecar was missing or malformed.
type Material struct {
	Valid           bool
	TexWidth        float64
	TexHeight       float64
	ShrinkFactor    int
	TextureFilePath string
}

// fromSidecar builds a Material from a parsed Sidecar, applying the same
// validity checks set_material_info runs: positive width/height/shrink,
// a non-empty sprites array, and a non-empty image file name.
func fromSidecar(s *Sidecar) Material {
	if s == nil || len(s.Sprites) == 0 || s.ImageFile == "" || s.ShrinkFactor <= 0 {
		return Material{}
	}
	sprite := s.Sprites[0]
	if sprite.Width <= 0 || sprite.Height <= 0 {
		return Material{}
	}
	return Material{
		Valid:           true,
		TexWidth:        float64(sprite.Width),
		TexHeight:       float64(sprite.Height),
		ShrinkFactor:    s.ShrinkFactor,
		TextureFilePath: s.ImageFile,
	}
}
