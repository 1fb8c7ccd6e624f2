// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"gomdl/math"
)

// Dangly augments a Mesh with jiggle physics parameters and one
// constraint weight per vertex (0..255).
type Dangly struct {
	Period       float32
	Tightness    float32
	Displacement float32
	Constraints  []float32
}

// Light is the light source payload. Lens flare layers are stored as
// parallel arrays like the legacy format does, so a length mismatch
// written by a broken producer stays visible.
type Light struct {
	Priority    int32
	AmbientOnly bool
	Shadow      bool
	Flare       bool
	FadingLight bool
	FlareRadius float32

	FlareTextures    []string
	FlareSizes       []float32
	FlarePositions   []float32
	FlareColorShifts []math.Vec3
}

// Reference points at another model that gets grafted in at load time.
type Reference struct {
	RefModel     string
	Reattachable bool
}

// Saber is the blade payload of lightsaber models.
type Saber struct {
	SaberType   int32
	Color       int32
	Length      float32
	Width       float32
	FlareColor  math.Vec3
	FlareRadius float32
}

// AABBNode is one record of a walkmesh's axis aligned bounding box
// tree. FaceIdx is -1 for inner records. Child pointers are absent in
// the textual form and recomputed on binarization.
type AABBNode struct {
	Min     math.Vec3
	Max     math.Vec3
	FaceIdx int32
}

type Walkmesh struct {
	AABBs []AABBNode
}
