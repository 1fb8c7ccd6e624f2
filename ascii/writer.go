// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gomdl/math"
	"gomdl/mdl"
)

// WriteOptions select legacy-compatible output variants.
type WriteOptions struct {
	// FlattenSkins writes skinned meshes as plain trimeshes, dropping
	// the bone bindings. Static exports want this.
	FlattenSkins bool
	// Headless omits the model envelope (newmodel .. donemodel) and
	// emits only node and animation blocks, the way legacy tools dump
	// geometry fragments.
	Headless bool
}

// Encode writes the model's textual form. The graph is not validated;
// what is present gets written, and a round-trip comparison downstream
// surfaces discrepancies like mismatched flare array lengths.
func Encode(w io.Writer, m *mdl.Model, opts WriteOptions) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw, opts: opts}
	e.model(m)
	if e.err != nil {
		return e.err
	}
	return bw.Flush()
}

// EncodeString is Encode into a string.
func EncodeString(m *mdl.Model, opts WriteOptions) (string, error) {
	var b strings.Builder
	if err := Encode(&b, m, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

type encoder struct {
	w    *bufio.Writer
	opts WriteOptions
	err  error
}

func (e *encoder) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

// floats renders values in the legacy space-prefixed %.7g columns.
func floats(fs ...float32) string {
	var b strings.Builder
	for _, f := range fs {
		b.WriteByte(' ')
		b.WriteString(formatFloat(f))
	}
	return b.String()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func orNull(name string) string {
	if name == "" {
		return "NULL"
	}
	return name
}

func (e *encoder) model(m *mdl.Model) {
	if !e.opts.Headless {
		e.printf("newmodel %s\n", m.Name)
		e.printf("setsupermodel %s %s\n", m.Name, orNull(m.SuperModel))
		if m.Classification != "" {
			e.printf("classification %s\n", m.Classification)
		}
		e.printf("classification_unk1 %d\n", m.ClassificationUnk1)
		e.printf("ignorefog %d\n", b2i(m.IgnoreFog))
		e.printf("compress_quaternions %d\n", m.CompressQuats)
		if m.HeadLink != "" {
			e.printf("headlink %s\n", m.HeadLink)
		}
		e.printf("setanimationscale%s\n", floats(m.AnimScale))
		e.printf("beginmodelgeom %s\n", m.Name)
		e.printf("bmin%s\n", floats(m.Box.Min.X, m.Box.Min.Y, m.Box.Min.Z))
		e.printf("bmax%s\n", floats(m.Box.Max.X, m.Box.Max.Y, m.Box.Max.Z))
		e.printf("radius%s\n", floats(m.Box.Radius))
	}
	if m.Root != nil {
		e.node(m.Root, "", false)
	}
	if !e.opts.Headless {
		e.printf("endmodelgeom %s\n", m.Name)
	}
	for _, a := range m.Anims {
		e.anim(a)
	}
	if !e.opts.Headless {
		e.printf("donemodel %s\n", m.Name)
	}
}

func (e *encoder) node(n *mdl.Node, parent string, anim bool) {
	kw := "dummy"
	if !anim {
		kw = n.Classify(e.opts.FlattenSkins)
	}
	e.printf("node %s %s\n", kw, n.Name)
	e.printf("  parent %s\n", orNull(parent))
	if !anim {
		e.printf("  position%s\n", floats(n.Position.X, n.Position.Y, n.Position.Z))
		x, y, z, angle := n.Orientation.AngleAxis()
		e.printf("  orientation%s\n", floats(x, y, z, angle))
		e.printf("  wirecolor%s\n", floats(n.WireColor.X, n.WireColor.Y, n.WireColor.Z))
		e.payloads(n)
	}
	e.controllers(n, anim)
	for _, raw := range n.Raw {
		e.printf("%s\n", raw)
	}
	e.printf("endnode\n")
	for _, c := range n.Children {
		e.node(c, n.Name, anim)
	}
}

func (e *encoder) payloads(n *mdl.Node) {
	if n.Mesh != nil {
		e.mesh(n.Mesh)
	}
	if n.Skin != nil && !e.opts.FlattenSkins {
		e.skin(n.Skin)
	}
	if n.Dangly != nil {
		e.dangly(n.Dangly)
	}
	if n.Light != nil {
		e.light(n.Light)
	}
	if n.Emitter != nil {
		e.emitter(n.Emitter)
	}
	if n.Reference != nil {
		e.printf("  refmodel %s\n", n.Reference.RefModel)
		e.printf("  reattachable %d\n", b2i(n.Reference.Reattachable))
	}
	if n.Saber != nil {
		e.saber(n.Saber)
	}
	if n.Walkmesh != nil {
		e.walkmesh(n.Walkmesh)
	}
}

func (e *encoder) mesh(m *mdl.Mesh) {
	e.printf("  ambient%s\n", floats(m.Ambient.X, m.Ambient.Y, m.Ambient.Z))
	e.printf("  diffuse%s\n", floats(m.Diffuse.X, m.Diffuse.Y, m.Diffuse.Z))
	if m.Texture1 != "" {
		e.printf("  bitmap %s\n", m.Texture1)
	}
	if m.Texture2 != "" {
		e.printf("  bitmap2 %s\n", m.Texture2)
	}
	e.printf("  render %d\n", b2i(m.Render))
	e.printf("  shadow %d\n", b2i(m.Shadow))
	e.printf("  beaming %d\n", b2i(m.Beaming))
	e.printf("  background_geometry %d\n", b2i(m.BackgroundGeom))
	e.printf("  rotatetexture %d\n", b2i(m.RotateTexture))
	e.printf("  lightmapped %d\n", b2i(m.HasLightmap))
	e.printf("  transparencyhint %d\n", m.TransparencyHint)
	if m.DirtEnabled {
		e.printf("  dirt_enabled 1\n")
		e.printf("  dirt_texture %d\n", m.DirtTexture)
		e.printf("  dirt_worldspace %d\n", m.DirtWorld)
	}
	if m.HologramOff {
		e.printf("  hologram_donotdraw 1\n")
	}
	e.printf("  verts %d\n", len(m.Verts))
	for _, v := range m.Verts {
		e.printf("   %s\n", strings.TrimPrefix(floats(v.X, v.Y, v.Z), " "))
	}
	if len(m.Normals) > 0 {
		e.printf("  normals %d\n", len(m.Normals))
		for _, v := range m.Normals {
			e.printf("   %s\n", strings.TrimPrefix(floats(v.X, v.Y, v.Z), " "))
		}
	}
	if len(m.TVerts) > 0 {
		e.printf("  tverts %d\n", len(m.TVerts))
		for _, uv := range m.TVerts {
			e.printf("   %s 0\n", strings.TrimPrefix(floats(uv[0], uv[1]), " "))
		}
	}
	if len(m.TVerts1) > 0 {
		e.printf("  tverts1 %d\n", len(m.TVerts1))
		for _, uv := range m.TVerts1 {
			e.printf("   %s 0\n", strings.TrimPrefix(floats(uv[0], uv[1]), " "))
		}
	}
	e.printf("  faces %d\n", len(m.Faces))
	for i := range m.Faces {
		f := &m.Faces[i]
		// historical column order, material and smoothing group always
		// written apart
		e.printf("   %d %d %d %d %d %d %d %d\n",
			f.V1, f.V2, f.V3, f.Smoothgroup, f.T1, f.T2, f.T3, f.Material)
	}
}

func (e *encoder) skin(s *mdl.Skin) {
	e.printf("  weights %d\n", len(s.Verts))
	for i := range s.Verts {
		bv := &s.Verts[i]
		if bv.Pairs() == 0 {
			e.printf("   -1 0\n")
			continue
		}
		var b strings.Builder
		for j := 0; j < bv.Pairs(); j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			if bv.BoneName[j] != "" {
				b.WriteString(bv.BoneName[j])
			} else {
				fmt.Fprintf(&b, "%d", bv.BoneIdx[j])
			}
			b.WriteString(floats(bv.Weight[j]))
		}
		e.printf("   %s\n", b.String())
	}
	if len(s.BoneIDs) > 0 {
		e.printf("  bones %d\n", len(s.BoneIDs))
		for _, id := range s.BoneIDs {
			e.printf("   %d\n", id)
		}
	}
	if len(s.QBones) > 0 {
		e.printf("  qbones %d\n", len(s.QBones))
		for _, q := range s.QBones {
			e.printf("   %s\n", strings.TrimPrefix(floats(q.X, q.Y, q.Z, q.W), " "))
		}
	}
	if len(s.TBones) > 0 {
		e.printf("  tbones %d\n", len(s.TBones))
		for _, t := range s.TBones {
			e.printf("   %s\n", strings.TrimPrefix(floats(t.X, t.Y, t.Z), " "))
		}
	}
}

func (e *encoder) dangly(d *mdl.Dangly) {
	e.printf("  period%s\n", floats(d.Period))
	e.printf("  tightness%s\n", floats(d.Tightness))
	e.printf("  displacement%s\n", floats(d.Displacement))
	e.printf("  constraints %d\n", len(d.Constraints))
	for _, c := range d.Constraints {
		e.printf("   %s\n", formatFloat(c))
	}
}

func (e *encoder) light(l *mdl.Light) {
	e.printf("  lightpriority %d\n", l.Priority)
	e.printf("  ambientonly %d\n", b2i(l.AmbientOnly))
	e.printf("  shadow %d\n", b2i(l.Shadow))
	e.printf("  fadinglight %d\n", b2i(l.FadingLight))
	e.printf("  flare %d\n", b2i(l.Flare))
	e.printf("  flareradius%s\n", floats(l.FlareRadius))
	// the parallel arrays each write their own length; a producer-side
	// mismatch stays visible instead of being patched here
	if len(l.FlareTextures) > 0 {
		e.printf("  texturenames %d\n", len(l.FlareTextures))
		for _, t := range l.FlareTextures {
			e.printf("   %s\n", t)
		}
	}
	if len(l.FlareSizes) > 0 {
		e.printf("  flaresizes %d\n", len(l.FlareSizes))
		for _, f := range l.FlareSizes {
			e.printf("   %s\n", formatFloat(f))
		}
	}
	if len(l.FlarePositions) > 0 {
		e.printf("  flarepositions %d\n", len(l.FlarePositions))
		for _, f := range l.FlarePositions {
			e.printf("   %s\n", formatFloat(f))
		}
	}
	if len(l.FlareColorShifts) > 0 {
		e.printf("  flarecolorshifts %d\n", len(l.FlareColorShifts))
		for _, v := range l.FlareColorShifts {
			e.printf("   %s\n", strings.TrimPrefix(floats(v.X, v.Y, v.Z), " "))
		}
	}
}

func (e *encoder) emitter(em *mdl.Emitter) {
	e.printf("  deadspace%s\n", floats(em.DeadSpace))
	e.printf("  blastradius%s\n", floats(em.BlastRadius))
	e.printf("  blastlength%s\n", floats(em.BlastLength))
	e.printf("  numbranches %d\n", em.NumBranches)
	e.printf("  controlptsmoothing%s\n", floats(em.ControlPtSmooth))
	e.printf("  xgrid %d\n", em.XGrid)
	e.printf("  ygrid %d\n", em.YGrid)
	e.printf("  spawntype %d\n", em.SpawnType)
	if em.Update != "" {
		e.printf("  update %s\n", em.Update)
	}
	if em.Render != "" {
		e.printf("  render %s\n", em.Render)
	}
	if em.Blend != "" {
		e.printf("  blend %s\n", em.Blend)
	}
	if em.Texture != "" {
		e.printf("  texture %s\n", em.Texture)
	}
	if em.ChunkName != "" {
		e.printf("  chunkname %s\n", em.ChunkName)
	}
	e.printf("  twosidedtex %d\n", b2i(em.TwoSidedTex))
	e.printf("  loop %d\n", b2i(em.Loop))
	e.printf("  renderorder %d\n", em.RenderOrder)
	e.printf("  m_bframeblending %d\n", b2i(em.FrameBlending))
	if em.DepthTextureName != "" {
		e.printf("  m_sdepthtexturename %s\n", em.DepthTextureName)
	}
	e.printf("  p2p %d\n", b2i(em.Has(mdl.EmitterP2P)))
	e.printf("  p2p_sel %d\n", b2i(em.Has(mdl.EmitterP2PSel)))
	e.printf("  affectedbywind %d\n", b2i(em.Has(mdl.EmitterAffectedByWind)))
	e.printf("  m_istinted %d\n", b2i(em.Has(mdl.EmitterTinted)))
	e.printf("  bounce %d\n", b2i(em.Has(mdl.EmitterBounce)))
	e.printf("  random %d\n", b2i(em.Has(mdl.EmitterRandom)))
	e.printf("  inherit %d\n", b2i(em.Has(mdl.EmitterInherit)))
	e.printf("  inheritvel %d\n", b2i(em.Has(mdl.EmitterInheritVel)))
	e.printf("  inherit_local %d\n", b2i(em.Has(mdl.EmitterInheritLocal)))
	e.printf("  splat %d\n", b2i(em.Has(mdl.EmitterSplat)))
	e.printf("  inherit_part %d\n", b2i(em.Has(mdl.EmitterInheritPart)))
	e.printf("  depth_texture %d\n", b2i(em.Has(mdl.EmitterDepthTexture)))
}

func (e *encoder) saber(s *mdl.Saber) {
	e.printf("  sabertype %d\n", s.SaberType)
	e.printf("  sabercolor %d\n", s.Color)
	e.printf("  saberlength%s\n", floats(s.Length))
	e.printf("  saberwidth%s\n", floats(s.Width))
	e.printf("  flarecolor%s\n", floats(s.FlareColor.X, s.FlareColor.Y, s.FlareColor.Z))
	e.printf("  flareradius%s\n", floats(s.FlareRadius))
}

func (e *encoder) walkmesh(w *mdl.Walkmesh) {
	e.printf("  aabb %d\n", len(w.AABBs))
	for i := range w.AABBs {
		a := &w.AABBs[i]
		e.printf("   %s %d\n",
			strings.TrimPrefix(floats(a.Min.X, a.Min.Y, a.Min.Z, a.Max.X, a.Max.Y, a.Max.Z), " "),
			a.FaceIdx)
	}
}

func (e *encoder) controllers(n *mdl.Node, anim bool) {
	for _, c := range n.Controllers {
		name := mdl.CtrlName(c.Type, n)
		// in geometry nodes the bare position/orientation spelling is
		// placement, so those controllers keep the keyed form
		bareOK := anim || (c.Type != mdl.CtrlPosition && c.Type != mdl.CtrlOrientation)
		if bareOK && len(c.Rows) == 1 && c.Rows[0].Time == 0 && !c.Bezier {
			e.printf("  %s%s\n", name, floats(e.wireData(c, c.Rows[0].Data)...))
			continue
		}
		suffix := "key"
		if c.Bezier {
			suffix = "bezierkey"
		}
		e.printf("  %s%s\n", name, suffix)
		for _, r := range c.Rows {
			e.printf("   %s%s\n", formatFloat(r.Time), floats(e.wireData(c, r.Data)...))
		}
		e.printf("  endlist\n")
	}
}

func mdlQuat(f []float32) math.Quat {
	return math.Quat{X: f[0], Y: f[1], Z: f[2], W: f[3]}
}

// wireData converts one row back to wire values. Orientation rows turn
// from quaternions into angle-axis, every row, both directions.
func (e *encoder) wireData(c *mdl.Controller, data []float32) []float32 {
	if c.Type != mdl.CtrlOrientation {
		return data
	}
	out := make([]float32, len(data))
	copy(out, data)
	for g := 0; g+4 <= len(out); g += 4 {
		q := mdlQuat(out[g : g+4])
		out[g], out[g+1], out[g+2], out[g+3] = q.AngleAxis()
	}
	return out
}

func (e *encoder) anim(a *mdl.Animation) {
	e.printf("newanim %s %s\n", a.Name, a.ModelName)
	e.printf("  length%s\n", floats(a.Length))
	e.printf("  transtime%s\n", floats(a.TransTime))
	if a.AnimRoot != "" {
		e.printf("  animroot %s\n", a.AnimRoot)
	}
	for _, ev := range a.Events {
		e.printf("  event%s %s\n", floats(ev.Time), ev.Name)
	}
	if a.Root != nil {
		e.node(a.Root, "", true)
	}
	e.printf("doneanim %s %s\n", a.Name, a.ModelName)
}
