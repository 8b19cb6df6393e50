// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/gogpu/raycam"

// MaterialSky is the material index that always draws background.
const MaterialSky = 7

// Palette holds the background color and the material color table.
type Palette struct {
	Background raycam.RGBA
	Materials  [8]raycam.RGBA
}

// DefaultPalette returns the standard outdoor palette.
func DefaultPalette() Palette {
	sky := raycam.Hex("#87ceeb")
	return Palette{
		Background: sky,
		Materials: [8]raycam.RGBA{
			raycam.Hex("#5b8c3a"), // grass
			raycam.Hex("#8b5a2b"), // dirt
			raycam.Hex("#7f7f7f"), // stone
			raycam.Hex("#d8c48a"), // sand
			raycam.Hex("#3f76e4"), // water
			raycam.Hex("#6b4f2a"), // wood
			raycam.Hex("#c0c0c8"), // structure
			sky,
		},
	}
}

// Material returns the color for material m. Materials at or above
// MaterialSky map to the background.
func (p Palette) Material(m uint8) raycam.RGBA {
	if int(m) >= MaterialSky {
		return p.Background
	}
	return p.Materials[m]
}
