// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

// Emitter flag register bits. The textual form writes each as its own
// 0/1 keyword line; the binary header packs them into one field.
const (
	EmitterP2P            = 0x0001
	EmitterP2PSel         = 0x0002
	EmitterAffectedByWind = 0x0004
	EmitterTinted         = 0x0008
	EmitterBounce         = 0x0010
	EmitterRandom         = 0x0020
	EmitterInherit        = 0x0040
	EmitterInheritVel     = 0x0080
	EmitterInheritLocal   = 0x0100
	EmitterSplat          = 0x0200
	EmitterInheritPart    = 0x0400
	EmitterDepthTexture   = 0x0800
)

// Emitter is the particle system payload. Animatable attributes
// (birthrate, sizes, colors, ...) ride on controllers; only the static
// configuration lives here.
type Emitter struct {
	DeadSpace        float32
	BlastRadius      float32
	BlastLength      float32
	NumBranches      int32
	ControlPtSmooth  float32
	XGrid            int32
	YGrid            int32
	SpawnType        int32
	Update           string
	Render           string
	Blend            string
	Texture          string
	ChunkName        string
	TwoSidedTex      bool
	Loop             bool
	RenderOrder      int32
	FrameBlending    bool
	DepthTextureName string

	Flags uint32
}

func (e *Emitter) Has(flag uint32) bool {
	return e.Flags&flag != 0
}

func (e *Emitter) Set(flag uint32, on bool) {
	if on {
		e.Flags |= flag
	} else {
		e.Flags &^= flag
	}
}
