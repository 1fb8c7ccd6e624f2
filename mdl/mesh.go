// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"gomdl/math"
)

// Mesh is the shared triangle geometry payload. Skin and Dangly extend
// the vertex set with their own per-vertex data but stay separate
// payload objects on the node.
type Mesh struct {
	Box      BoundingBox
	Average  math.Vec3
	Area     float32
	Ambient  math.Vec3
	Diffuse  math.Vec3
	Texture1 string
	Texture2 string

	TransparencyHint int32
	Render           bool
	Shadow           bool
	Beaming          bool
	BackgroundGeom   bool
	RotateTexture    bool
	HasLightmap      bool

	DirtEnabled bool
	DirtTexture int32
	DirtWorld   int32
	HologramOff bool

	Verts   []math.Vec3
	Normals []math.Vec3
	TVerts  [][2]float32
	TVerts1 [][2]float32
	Faces   []Face
}

// TVertSentinel marks a texture vertex index that should reuse the
// geometry vertex index. The parser keeps it verbatim; substituting the
// geometry index is the consumer's job.
const TVertSentinel = -1

// Face is one triangle. Material and Smoothgroup are kept apart even
// though the binary format multiplexes both into one integer.
type Face struct {
	V1, V2, V3  int32
	Material    int32
	Smoothgroup int32
	T1, T2, T3  int32
}

// TVert returns the face's texture vertex index for corner i with the
// sentinel substitution applied.
func (f *Face) TVert(i int) int32 {
	t, v := f.T1, f.V1
	switch i {
	case 1:
		t, v = f.T2, f.V2
	case 2:
		t, v = f.T3, f.V3
	}
	if t == TVertSentinel {
		return v
	}
	return t
}

// PackMaterial merges a surface material id and a smoothing group mask
// into the single legacy field: material in the low 5 bits, the mask
// above.
func PackMaterial(material, smoothgroup int32) int32 {
	return (material & 0x1F) | smoothgroup<<5
}

// UnpackMaterial splits the single legacy field back apart.
func UnpackMaterial(packed int32) (material, smoothgroup int32) {
	return packed & 0x1F, packed >> 5
}

// NormalizeMaterial repairs a (material, smoothgroup) pair that an
// upstream tool already merged into the smoothgroup column. A mask
// above 31 whose low 5 bits repeat the material's low 5 bits is such a
// merge; the true group sits above bit 4.
func NormalizeMaterial(material, smoothgroup int32) (int32, int32) {
	if smoothgroup > 31 && smoothgroup&0x1F == material&0x1F {
		return smoothgroup & 0x1F, smoothgroup >> 5
	}
	return material, smoothgroup
}
