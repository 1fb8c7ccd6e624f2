// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"gomdl/mdl"
)

// The emitter grammar is one closed table, keyword to typed setter.
// The legacy tool matched keywords against live object attributes by
// reflection; the table keeps the same surface without depending on
// what attributes happen to exist.
var emitterFields = map[string]func(*mdl.Emitter, []string) error{
	"deadspace": func(e *mdl.Emitter, t []string) (err error) {
		e.DeadSpace, err = parseFloat(arg(t, 1))
		return
	},
	"blastradius": func(e *mdl.Emitter, t []string) (err error) {
		e.BlastRadius, err = parseFloat(arg(t, 1))
		return
	},
	"blastlength": func(e *mdl.Emitter, t []string) (err error) {
		e.BlastLength, err = parseFloat(arg(t, 1))
		return
	},
	"numbranches": func(e *mdl.Emitter, t []string) (err error) {
		e.NumBranches, err = parseInt(arg(t, 1))
		return
	},
	"controlptsmoothing": func(e *mdl.Emitter, t []string) (err error) {
		e.ControlPtSmooth, err = parseFloat(arg(t, 1))
		return
	},
	"xgrid": func(e *mdl.Emitter, t []string) (err error) {
		e.XGrid, err = parseInt(arg(t, 1))
		return
	},
	"ygrid": func(e *mdl.Emitter, t []string) (err error) {
		e.YGrid, err = parseInt(arg(t, 1))
		return
	},
	"spawntype": func(e *mdl.Emitter, t []string) (err error) {
		e.SpawnType, err = parseInt(arg(t, 1))
		return
	},
	"update": func(e *mdl.Emitter, t []string) error {
		e.Update = arg(t, 1)
		return nil
	},
	"render": func(e *mdl.Emitter, t []string) error {
		e.Render = arg(t, 1)
		return nil
	},
	"blend": func(e *mdl.Emitter, t []string) error {
		e.Blend = arg(t, 1)
		return nil
	},
	"texture": func(e *mdl.Emitter, t []string) error {
		e.Texture = arg(t, 1)
		return nil
	},
	"chunkname": func(e *mdl.Emitter, t []string) error {
		e.ChunkName = arg(t, 1)
		return nil
	},
	"twosidedtex": func(e *mdl.Emitter, t []string) (err error) {
		e.TwoSidedTex, err = parseBool(arg(t, 1))
		return
	},
	"loop": func(e *mdl.Emitter, t []string) (err error) {
		e.Loop, err = parseBool(arg(t, 1))
		return
	},
	"renderorder": func(e *mdl.Emitter, t []string) (err error) {
		e.RenderOrder, err = parseInt(arg(t, 1))
		return
	},
	"m_bframeblending": func(e *mdl.Emitter, t []string) (err error) {
		e.FrameBlending, err = parseBool(arg(t, 1))
		return
	},
	"m_sdepthtexturename": func(e *mdl.Emitter, t []string) error {
		e.DepthTextureName = arg(t, 1)
		return nil
	},
}

// Flag register bits, one 0/1 keyword line each on the wire.
var emitterFlags = map[string]uint32{
	"p2p":            mdl.EmitterP2P,
	"p2p_sel":        mdl.EmitterP2PSel,
	"affectedbywind": mdl.EmitterAffectedByWind,
	"m_istinted":     mdl.EmitterTinted,
	"bounce":         mdl.EmitterBounce,
	"random":         mdl.EmitterRandom,
	"inherit":        mdl.EmitterInherit,
	"inheritvel":     mdl.EmitterInheritVel,
	"inherit_local":  mdl.EmitterInheritLocal,
	"splat":          mdl.EmitterSplat,
	"inherit_part":   mdl.EmitterInheritPart,
	"depth_texture":  mdl.EmitterDepthTexture,
}

func emitterLine(e *mdl.Emitter, kw string, toks []string) (bool, error) {
	if set, ok := emitterFields[kw]; ok {
		return true, set(e, toks)
	}
	if bit, ok := emitterFlags[kw]; ok {
		on, err := parseBool(arg(toks, 1))
		if err != nil {
			return true, err
		}
		e.Set(bit, on)
		return true, nil
	}
	return false, nil
}
