// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

// CtrlType tags a controller curve. Tags are globally unique in the
// data model; the legacy numeric ids are not, they collide across the
// header/light/emitter/mesh namespaces (88 is the light radius and the
// emitter birthrate). The namespace tables below own the id mapping.
type CtrlType int

const (
	CtrlInvalid CtrlType = iota

	// header namespace
	CtrlPosition
	CtrlOrientation
	CtrlScale
	// alpha sits in both the header and the mesh table under the same
	// id, so one tag serves both.
	CtrlAlpha

	// mesh namespace
	CtrlSelfIllumColor

	// light namespace
	CtrlColor
	CtrlRadius
	CtrlShadowRadius
	CtrlVerticalDisplacement
	CtrlMultiplier

	// emitter namespace
	CtrlAlphaEnd
	CtrlAlphaStart
	CtrlBirthrate
	CtrlBounceCo
	CtrlCombineTime
	CtrlDrag
	CtrlFPS
	CtrlFrameEnd
	CtrlFrameStart
	CtrlGrav
	CtrlLifeExp
	CtrlMass
	CtrlP2PBezier2
	CtrlP2PBezier3
	CtrlParticleRot
	CtrlRandVel
	CtrlSizeStart
	CtrlSizeEnd
	CtrlSizeStartY
	CtrlSizeEndY
	CtrlSpread
	CtrlThreshold
	CtrlVelocity
	CtrlXSize
	CtrlYSize
	CtrlBlurLength
	CtrlLightningDelay
	CtrlLightningRadius
	CtrlLightningScale
	CtrlLightningSubDiv
	CtrlLightningZigZag
	CtrlAlphaMid
	CtrlPercentStart
	CtrlPercentMid
	CtrlPercentEnd
	CtrlSizeMid
	CtrlSizeMidY
	CtrlRandomBirthrate
	CtrlTargetSize
	CtrlNumControlPts
	CtrlControlPtRadius
	CtrlControlPtDelay
	CtrlTangentSpread
	CtrlTangentLength
	CtrlColorMid
	CtrlColorEnd
	CtrlColorStart
	CtrlDetonate
)

// ControllerRow is one keyframe. Orientation rows hold quaternions in
// memory; the wire carries angle-axis and the codec converts on every
// row in both directions.
type ControllerRow struct {
	Time float32
	Data []float32
}

// Controller is one animatable property curve of a node.
type Controller struct {
	Type   CtrlType
	Bezier bool
	Rows   []ControllerRow
}

// CtrlDef describes one controller inside one namespace: its legacy
// numeric id, its keyword and how many values one row carries on the
// wire.
type CtrlDef struct {
	Type CtrlType
	ID   int32
	Name string
	Cols int
}

var headerCtrls = []CtrlDef{
	{CtrlPosition, 8, "position", 3},
	{CtrlOrientation, 20, "orientation", 4},
	{CtrlScale, 36, "scale", 1},
	{CtrlAlpha, 132, "alpha", 1},
}

var lightCtrls = []CtrlDef{
	{CtrlColor, 76, "color", 3},
	{CtrlRadius, 88, "radius", 1},
	{CtrlShadowRadius, 96, "shadowradius", 1},
	{CtrlVerticalDisplacement, 100, "verticaldisplacement", 1},
	{CtrlMultiplier, 140, "multiplier", 1},
}

var emitterCtrls = []CtrlDef{
	{CtrlAlphaEnd, 80, "alphaend", 1},
	{CtrlAlphaStart, 84, "alphastart", 1},
	{CtrlBirthrate, 88, "birthrate", 1},
	{CtrlBounceCo, 92, "bounce_co", 1},
	{CtrlCombineTime, 96, "combinetime", 1},
	{CtrlDrag, 100, "drag", 1},
	{CtrlFPS, 104, "fps", 1},
	{CtrlFrameEnd, 108, "frameend", 1},
	{CtrlFrameStart, 112, "framestart", 1},
	{CtrlGrav, 116, "grav", 1},
	{CtrlLifeExp, 120, "lifeexp", 1},
	{CtrlMass, 124, "mass", 1},
	{CtrlP2PBezier2, 128, "p2p_bezier2", 1},
	{CtrlP2PBezier3, 132, "p2p_bezier3", 1},
	{CtrlParticleRot, 136, "particlerot", 1},
	{CtrlRandVel, 140, "randvel", 1},
	{CtrlSizeStart, 144, "sizestart", 1},
	{CtrlSizeEnd, 148, "sizeend", 1},
	{CtrlSizeStartY, 152, "sizestart_y", 1},
	{CtrlSizeEndY, 156, "sizeend_y", 1},
	{CtrlSpread, 160, "spread", 1},
	{CtrlThreshold, 164, "threshold", 1},
	{CtrlVelocity, 168, "velocity", 1},
	{CtrlXSize, 172, "xsize", 1},
	{CtrlYSize, 176, "ysize", 1},
	{CtrlBlurLength, 180, "blurlength", 1},
	{CtrlLightningDelay, 184, "lightningdelay", 1},
	{CtrlLightningRadius, 188, "lightningradius", 1},
	{CtrlLightningScale, 192, "lightningscale", 1},
	{CtrlLightningSubDiv, 196, "lightningsubdiv", 1},
	{CtrlLightningZigZag, 200, "lightningzigzag", 1},
	{CtrlAlphaMid, 216, "alphamid", 1},
	{CtrlPercentStart, 220, "percentstart", 1},
	{CtrlPercentMid, 224, "percentmid", 1},
	{CtrlPercentEnd, 228, "percentend", 1},
	{CtrlSizeMid, 232, "sizemid", 1},
	{CtrlSizeMidY, 236, "sizemid_y", 1},
	{CtrlRandomBirthrate, 240, "randombirthrate", 1},
	{CtrlTargetSize, 252, "targetsize", 1},
	{CtrlNumControlPts, 256, "numcontrolpts", 1},
	{CtrlControlPtRadius, 260, "controlptradius", 1},
	{CtrlControlPtDelay, 264, "controlptdelay", 1},
	{CtrlTangentSpread, 268, "tangentspread", 1},
	{CtrlTangentLength, 272, "tangentlength", 1},
	{CtrlColorMid, 284, "colormid", 3},
	{CtrlColorEnd, 380, "colorend", 3},
	{CtrlColorStart, 392, "colorstart", 3},
	{CtrlDetonate, 502, "detonate", 1},
}

var meshCtrls = []CtrlDef{
	{CtrlSelfIllumColor, 100, "selfillumcolor", 3},
	{CtrlAlpha, 132, "alpha", 1},
}

func findByName(table []CtrlDef, name string) (CtrlDef, bool) {
	for _, d := range table {
		if d.Name == name {
			return d, true
		}
	}
	return CtrlDef{}, false
}

func findByType(table []CtrlDef, t CtrlType) (CtrlDef, bool) {
	for _, d := range table {
		if d.Type == t {
			return d, true
		}
	}
	return CtrlDef{}, false
}

// scopedTables lists the namespaces to probe for a node, in the fixed
// legacy priority order light, emitter, mesh, header. The payload
// namespaces only apply when the node carries that payload; animation
// nodes carry none, so for them every namespace is probed.
func scopedTables(n *Node) [][]CtrlDef {
	var tables [][]CtrlDef
	bare := n == nil || (n.Light == nil && n.Emitter == nil && n.Mesh == nil)
	if bare || n.Light != nil {
		tables = append(tables, lightCtrls)
	}
	if bare || n.Emitter != nil {
		tables = append(tables, emitterCtrls)
	}
	if bare || n.Mesh != nil {
		tables = append(tables, meshCtrls)
	}
	return append(tables, headerCtrls)
}

// LookupCtrl resolves a controller keyword (already lower-cased, with
// any "bezier" infix and "key" suffix stripped) for the given node.
func LookupCtrl(keyword string, n *Node) (CtrlDef, bool) {
	for _, table := range scopedTables(n) {
		if d, ok := findByName(table, keyword); ok {
			return d, true
		}
	}
	return CtrlDef{}, false
}

// CtrlName picks the textual name for a controller tag on a node,
// probing the node's namespaces in priority order. Tags that do not
// appear in any applicable namespace fall back to their canonical
// name.
func CtrlName(t CtrlType, n *Node) string {
	for _, table := range scopedTables(n) {
		if d, ok := findByType(table, t); ok {
			return d.Name
		}
	}
	if d, ok := CtrlDefFor(t); ok {
		return d.Name
	}
	return ""
}

// CtrlDefFor returns the canonical definition of a tag, independent of
// any node scope.
func CtrlDefFor(t CtrlType) (CtrlDef, bool) {
	for _, table := range [][]CtrlDef{headerCtrls, lightCtrls, emitterCtrls, meshCtrls} {
		if d, ok := findByType(table, t); ok {
			return d, true
		}
	}
	return CtrlDef{}, false
}
