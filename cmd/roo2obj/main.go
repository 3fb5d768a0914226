// Command roo2obj converts a Meridian 59 ROO room file into a textured
// Wavefront OBJ/MTL mesh pair.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"meridian59-tools/internal/material"
	"meridian59-tools/internal/meshbuild"
	"meridian59-tools/internal/objexport"
	"meridian59-tools/internal/roo"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: %s <roo-file> <texture-dir>\n", filepath.Base(os.Args[0]))
		return
	}

	rooPath := os.Args[1]
	texDir := os.Args[2]

	if info, err := os.Stat(texDir); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: failed to open texture directory %s\n", texDir)
		os.Exit(1)
	}

	room, err := roo.Parse(rooPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resolver := material.NewCache(texDir)
	agg := objexport.NewAggregator(resolver)

	for i := range room.Walls {
		for _, face := range meshbuild.BuildWallFaces(room, &room.Walls[i], resolver) {
			agg.Add(face)
		}
	}
	for i := range room.Subsectors {
		for _, face := range meshbuild.BuildSubsectorFaces(room, &room.Subsectors[i], resolver) {
			agg.Add(face)
		}
	}

	objects := agg.Objects()

	base := strings.TrimSuffix(filepath.Base(rooPath), filepath.Ext(rooPath))
	objPath := base + ".obj"
	mtlPath := base + ".mtl"

	objFile, err := os.Create(objPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create %s: %v\n", objPath, err)
		os.Exit(1)
	}
	defer objFile.Close()

	mtlFile, err := os.Create(mtlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create %s: %v\n", mtlPath, err)
		os.Exit(1)
	}
	defer mtlFile.Close()

	if err := objexport.WriteOBJ(objFile, mtlPath, objects); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := objexport.WriteMTL(mtlFile, texDir, objects); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s and %s (%d mesh objects)\n", objPath, mtlPath, len(objects))
}
