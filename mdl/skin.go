// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"gomdl/math"
)

// MaxBonesPerVert is fixed by the binary record layout.
const MaxBonesPerVert = 4

// BoneVertex binds one mesh vertex to up to four bones. Unused slots
// carry index -1 and weight 0 so the record always binarizes to the
// same width.
type BoneVertex struct {
	BoneIdx [MaxBonesPerVert]int32
	// BoneName keeps the textual bone reference when the source spelled
	// it by name; resolution against node names happens on binarization.
	BoneName [MaxBonesPerVert]string
	Weight   [MaxBonesPerVert]float32
}

// NewBoneVertex builds a padded record from up to four pairs.
func NewBoneVertex(names []string, idx []int32, weights []float32) BoneVertex {
	bv := BoneVertex{}
	for i := 0; i < MaxBonesPerVert; i++ {
		bv.BoneIdx[i] = -1
	}
	for i := 0; i < len(weights) && i < MaxBonesPerVert; i++ {
		if i < len(names) {
			bv.BoneName[i] = names[i]
		}
		if i < len(idx) {
			bv.BoneIdx[i] = idx[i]
		}
		bv.Weight[i] = weights[i]
	}
	return bv
}

// Pairs returns how many slots are in use.
func (bv *BoneVertex) Pairs() int {
	n := 0
	for i := 0; i < MaxBonesPerVert; i++ {
		if bv.BoneIdx[i] >= 0 || bv.BoneName[i] != "" {
			n++
		}
	}
	return n
}

// Skin augments a Mesh with bone bindings. QBones/TBones are the bind
// pose per bone; both are optional in the textual form.
type Skin struct {
	BoneIDs []int32
	QBones  []math.Quat
	TBones  []math.Vec3
	Verts   []BoneVertex
}
