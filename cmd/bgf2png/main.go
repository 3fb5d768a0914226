// Command bgf2png converts a Meridian 59 BGF bitmap-group file into a
// palettized PNG (a single image, or an atlas when the file holds more than
// one bitmap) plus a JSON sidecar describing sprite placement and groups.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"meridian59-tools/internal/bgf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s <bgf-file>\n", filepath.Base(os.Args[0]))
		return
	}

	bgfPath := os.Args[1]

	fmt.Printf("Unpacking %s\n", bgfPath)

	f, err := bgf.Parse(bgfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var atlas bgf.Bitmap
	if len(f.Bitmaps) > 1 {
		fmt.Println("Converting bitmaps to PNG atlas...")
		atlas, err = f.Pack()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v, try increasing the atlas dimension\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println("Converting bitmap to PNG...")
		atlas = f.Bitmaps[0]
	}

	base := strings.TrimSuffix(filepath.Base(bgfPath), filepath.Ext(bgfPath))
	pngName := base + ".png"
	jsonName := base + ".json"

	if err := bgf.WritePNG(pngName, atlas); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Exporting metadata to json file...")
	if err := bgf.WriteSidecar(jsonName, f, pngName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s successfully unpacked\n", bgfPath)
}
