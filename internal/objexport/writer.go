package objexport

import (
	"fmt"
	"io"
	"path/filepath"

	"meridian59-tools/internal/roo"
)

// WriteOBJ writes the OBJ document for every mesh object, referencing
// mtlName as its material library. Vertex/UV/normal blocks are written
// per object in aggregation order, then per-object usemtl/f blocks with
// indices rebased cumulatively across the whole file.
func WriteOBJ(w io.Writer, mtlName string, objects []*MeshObject) error {
	if _, err := fmt.Fprintf(w, "mtllib %s\n", mtlName); err != nil {
		return fmt.Errorf("objexport: write mtllib directive: %w", err)
	}

	for _, obj := range objects {
		for i := 0; i < len(obj.Positions); i += 3 {
			x, y, z := obj.Positions[i], obj.Positions[i+1], obj.Positions[i+2]
			ox, oy, oz := transformPosition(x, y, z)
			if _, err := fmt.Fprintf(w, "v %.6f %.6f %.6f\n", ox, oy, oz); err != nil {
				return fmt.Errorf("objexport: write vertex: %w", err)
			}
		}
	}

	for _, obj := range objects {
		for i := 0; i < len(obj.TexCoords); i += 2 {
			if _, err := fmt.Fprintf(w, "vt %.6f %.6f\n", obj.TexCoords[i], obj.TexCoords[i+1]); err != nil {
				return fmt.Errorf("objexport: write texcoord: %w", err)
			}
		}
	}

	for _, obj := range objects {
		for i := 0; i < len(obj.Normals); i += 3 {
			x, y, z := obj.Normals[i], obj.Normals[i+1], obj.Normals[i+2]
			ox, oy, oz := transformNormal(x, y, z)
			if _, err := fmt.Fprintf(w, "vn %.6f %.6f %.6f\n", ox, oy, oz); err != nil {
				return fmt.Errorf("objexport: write normal: %w", err)
			}
		}
	}

	iOffset := uint32(1)
	for _, obj := range objects {
		matName := fmt.Sprintf("mat_%d", obj.BitmapNum)
		if _, err := fmt.Fprintf(w, "usemtl %s\n", matName); err != nil {
			return fmt.Errorf("objexport: write usemtl: %w", err)
		}

		for i := 0; i < len(obj.Indices); i += 3 {
			i1 := obj.Indices[i] + iOffset
			i2 := obj.Indices[i+1] + iOffset
			i3 := obj.Indices[i+2] + iOffset
			if _, err := fmt.Fprintf(w, "f %d/%d/%d %d/%d/%d %d/%d/%d\n",
				i1, i1, i1, i2, i2, i2, i3, i3, i3); err != nil {
				return fmt.Errorf("objexport: write face: %w", err)
			}
		}
		iOffset += uint32(len(obj.Positions) / 3)
	}

	return nil
}

// WriteMTL writes the MTL document: one fixed-boilerplate material per
// mesh object, textured with its resolved (or missing) image file under
// textureDir.
func WriteMTL(w io.Writer, textureDir string, objects []*MeshObject) error {
	for _, obj := range objects {
		matName := fmt.Sprintf("mat_%d", obj.BitmapNum)
		texFile := obj.Material.TextureFilePath
		if texFile == "" {
			texFile = fmt.Sprintf("grd%05d.png", obj.BitmapNum)
		}
		texPath := filepath.Join(textureDir, texFile)

		if _, err := fmt.Fprintf(w, "newmtl %s\n", matName); err != nil {
			return fmt.Errorf("objexport: write newmtl: %w", err)
		}
		fmt.Fprintf(w, "Ka 1.000000 1.000000 1.000000\n")
		fmt.Fprintf(w, "Kd 1.000000 1.000000 1.000000\n")
		fmt.Fprintf(w, "Ks 0.000000 0.000000 0.000000\n")
		fmt.Fprintf(w, "Tr 1.000000\n")
		fmt.Fprintf(w, "illum 1\n")
		fmt.Fprintf(w, "Ns 0.000000\n")
		if _, err := fmt.Fprintf(w, "map_Kd %s\n\n", texPath); err != nil {
			return fmt.Errorf("objexport: write map_Kd: %w", err)
		}
	}
	return nil
}

// transformPosition converts a raw-fineness (x, y, z) into the OBJ output
// frame: forward axis -Z, up axis Y. Self-inverse up to sign.
func transformPosition(x, y, z float64) (float64, float64, float64) {
	return -x / roo.Fineness, z / roo.Fineness, -y / roo.Fineness
}

// transformNormal applies the same axis swap as transformPosition, without
// the fineness division.
func transformNormal(x, y, z float64) (float64, float64, float64) {
	return -x, z, -y
}
