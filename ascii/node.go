// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"gomdl/math"
	"gomdl/mdl"
)

// parseNodeBlock reads one "node <type> <name> ... endnode" block. The
// brace form "node <type> <name> { ... }" is accepted too. In
// animation blocks (anim true) the type keyword attaches no payloads
// and position/orientation lines are controllers, not placement.
//
// A malformed line aborts the rest of the block; the partially parsed
// node is still returned so siblings and earlier fields survive.
func (p *parser) parseNodeBlock(toks []string, anim bool) (*rawNode, error) {
	if arg(toks, len(toks)-1) == "{" {
		toks = toks[:len(toks)-1]
	}
	if len(toks) < 3 {
		p.skipNode()
		return nil, errors.Wrapf(ErrFormat, "bad node header %q", strings.Join(toks, " "))
	}
	n := &mdl.Node{ParentID: -1, Orientation: math.QuatIdentity()}
	n.Name = toks[2]
	if !anim {
		n.AttachPayloads(toks[1])
	}
	rn := &rawNode{node: n}

	for {
		line, ok := p.next()
		if !ok {
			return rn, errors.Wrapf(ErrFormat, "node %s not terminated", n.Name)
		}
		t := tokenize(line)
		if len(t) == 0 {
			continue
		}
		kw := keyword(t)
		if kw == "endnode" || kw == "}" {
			return rn, nil
		}
		consumed, err := p.nodeLine(rn, kw, t, anim)
		if err != nil {
			p.skipNode()
			return rn, errors.Wrapf(err, "node %s", n.Name)
		}
		if !consumed {
			n.Raw = append(n.Raw, line)
		}
	}
}

func (p *parser) skipNode() {
	for {
		line, ok := p.next()
		if !ok {
			return
		}
		t := tokenize(line)
		if len(t) == 0 {
			continue
		}
		if kw := keyword(t); kw == "endnode" || kw == "}" {
			return
		}
	}
}

func (p *parser) nodeLine(rn *rawNode, kw string, toks []string, anim bool) (bool, error) {
	n := rn.node
	switch kw {
	case "parent":
		rn.parentRef = arg(toks, 1)
		return true, nil
	case "wirecolor":
		// only a placement field in geometry nodes; in animations the
		// line survives through the raw passthrough instead
		if !anim {
			v, err := parseVec3(toks[1:])
			n.WireColor = v
			return true, err
		}
	case "position":
		if !anim {
			v, err := parseVec3(toks[1:])
			n.Position = v
			return true, err
		}
	case "orientation":
		if !anim {
			f, err := parseFloats(toks[1:])
			if err != nil {
				return true, err
			}
			if len(f) != 4 {
				return true, errors.Wrapf(ErrFormat, "orientation wants 4 values, got %d", len(f))
			}
			n.Orientation = math.AngleAxisToQuat(f[0], f[1], f[2], f[3])
			return true, nil
		}
	}

	if n.Mesh != nil {
		if ok, err := p.meshLine(n.Mesh, kw, toks); ok || err != nil {
			return ok, err
		}
	}
	if n.Skin != nil {
		if ok, err := p.skinLine(n.Skin, kw, toks); ok || err != nil {
			return ok, err
		}
	}
	if n.Dangly != nil {
		if ok, err := p.danglyLine(n.Dangly, kw, toks); ok || err != nil {
			return ok, err
		}
	}
	if n.Walkmesh != nil {
		if ok, err := p.walkmeshLine(n.Walkmesh, kw, toks); ok || err != nil {
			return ok, err
		}
	}
	if n.Light != nil {
		if ok, err := p.lightLine(n.Light, kw, toks); ok || err != nil {
			return ok, err
		}
	}
	if n.Emitter != nil {
		if ok, err := emitterLine(n.Emitter, kw, toks); ok || err != nil {
			return ok, err
		}
	}
	if n.Reference != nil {
		if ok, err := referenceLine(n.Reference, kw, toks); ok || err != nil {
			return ok, err
		}
	}
	if n.Saber != nil {
		if ok, err := saberLine(n.Saber, kw, toks); ok || err != nil {
			return ok, err
		}
	}
	return p.ctrlLine(n, kw, toks, anim)
}

// countedBlock reads exactly count data lines, skipping blanks.
func (p *parser) countedBlock(count int, row func([]string) error) error {
	for i := 0; i < count; i++ {
		line, ok := p.next()
		if !ok {
			return errors.Wrapf(ErrFormat, "input ended inside a %d line block", count)
		}
		t := tokenize(line)
		if len(t) == 0 {
			i--
			continue
		}
		if err := row(t); err != nil {
			return err
		}
	}
	return nil
}

// blockCount reads the declared count of a counted block. ok is false
// when the keyword carries no numeric count, which some producers omit
// for the light flare arrays.
func blockCount(toks []string) (int, bool, error) {
	if len(toks) < 2 {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(toks[1], 10, 32)
	if err != nil {
		return 0, false, nil
	}
	if v < 0 {
		return 0, true, errors.Wrapf(ErrFormat, "negative block count %d", v)
	}
	return int(v), true, nil
}

func requireCount(toks []string) (int, error) {
	c, ok, err := blockCount(toks)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.Wrapf(ErrFormat, "%s wants a count", keyword(toks))
	}
	return c, nil
}

func (p *parser) meshLine(m *mdl.Mesh, kw string, toks []string) (bool, error) {
	var err error
	switch kw {
	case "ambient":
		m.Ambient, err = parseVec3(toks[1:])
	case "diffuse":
		m.Diffuse, err = parseVec3(toks[1:])
	case "bitmap", "texture0":
		m.Texture1 = arg(toks, 1)
	case "bitmap2", "texture1", "lightmap":
		m.Texture2 = arg(toks, 1)
	case "transparencyhint":
		m.TransparencyHint, err = parseInt(arg(toks, 1))
	case "render":
		m.Render, err = parseBool(arg(toks, 1))
	case "shadow":
		m.Shadow, err = parseBool(arg(toks, 1))
	case "beaming":
		m.Beaming, err = parseBool(arg(toks, 1))
	case "background_geometry":
		m.BackgroundGeom, err = parseBool(arg(toks, 1))
	case "rotatetexture":
		m.RotateTexture, err = parseBool(arg(toks, 1))
	case "lightmapped":
		m.HasLightmap, err = parseBool(arg(toks, 1))
	case "dirt_enabled":
		m.DirtEnabled, err = parseBool(arg(toks, 1))
	case "dirt_texture":
		m.DirtTexture, err = parseInt(arg(toks, 1))
	case "dirt_worldspace":
		m.DirtWorld, err = parseInt(arg(toks, 1))
	case "hologram_donotdraw":
		m.HologramOff, err = parseBool(arg(toks, 1))
	case "verts":
		return true, p.vecBlock(toks, &m.Verts)
	case "normals":
		return true, p.vecBlock(toks, &m.Normals)
	case "tverts":
		return true, p.uvBlock(toks, &m.TVerts)
	case "tverts1", "lightmaptverts":
		return true, p.uvBlock(toks, &m.TVerts1)
	case "faces":
		return true, p.faceBlock(toks, m)
	default:
		return false, nil
	}
	return true, err
}

// vecBlock reads a counted block of 3-vectors. Rows come compact
// ("x y z") or long ("i x y z"); either way the result has exactly the
// declared size.
func (p *parser) vecBlock(toks []string, out *[]math.Vec3) error {
	count, err := requireCount(toks)
	if err != nil {
		return err
	}
	*out = make([]math.Vec3, count)
	seq := 0
	return p.countedBlock(count, func(t []string) error {
		idx := seq
		seq++
		vals := t
		if len(t) == 4 {
			i, err := parseInt(t[0])
			if err != nil {
				return err
			}
			idx = int(i)
			vals = t[1:]
		} else if len(t) != 3 {
			return errors.Wrapf(ErrFormat, "vertex row wants 3 or 4 values, got %d", len(t))
		}
		v, err := parseVec3(vals)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= count {
			return errors.Wrapf(ErrFormat, "vertex index %d out of range", idx)
		}
		(*out)[idx] = v
		return nil
	})
}

// uvBlock reads a counted block of texture coordinates. Rows carry
// "u v" or the historical "u v w" with an ignored third column.
func (p *parser) uvBlock(toks []string, out *[][2]float32) error {
	count, err := requireCount(toks)
	if err != nil {
		return err
	}
	*out = make([][2]float32, count)
	seq := 0
	return p.countedBlock(count, func(t []string) error {
		if len(t) != 2 && len(t) != 3 {
			return errors.Wrapf(ErrFormat, "tvert row wants 2 or 3 values, got %d", len(t))
		}
		f, err := parseFloats(t[:2])
		if err != nil {
			return err
		}
		if seq >= count {
			return errors.Wrapf(ErrFormat, "tvert row %d out of range", seq)
		}
		(*out)[seq] = [2]float32{f[0], f[1]}
		seq++
		return nil
	})
}

// faceBlock reads the declared number of faces. A single line may pack
// several faces in repeated 8-int groups, so faces are counted, not
// lines.
func (p *parser) faceBlock(toks []string, m *mdl.Mesh) error {
	count, err := requireCount(toks)
	if err != nil {
		return err
	}
	m.Faces = make([]mdl.Face, 0, count)
	for len(m.Faces) < count {
		line, ok := p.next()
		if !ok {
			return errors.Wrapf(ErrFormat, "input ended inside faces %d", count)
		}
		t := tokenize(line)
		if len(t) == 0 {
			continue
		}
		fs, err := parseFaceLine(t)
		if err != nil {
			return err
		}
		if len(m.Faces)+len(fs) > count {
			return errors.Wrapf(ErrFormat, "more faces than the declared %d", count)
		}
		m.Faces = append(m.Faces, fs...)
	}
	return nil
}

func parseIntList(toks []string) ([]int32, error) {
	out := make([]int32, len(toks))
	for i, t := range toks {
		v, err := parseInt(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseFaceLine accepts the historical face line shapes:
//
//	v1 v2 v3 material
//	v1 v2 v3 smoothgroup material
//	i v1 v2 v3 smoothgroup material
//	v1 v2 v3 smoothgroup t1 t2 t3 material   (repeatable per line)
//	i v1 v2 v3 smoothgroup t1 t2 t3 material
//
// A -1 texture vertex index is a real sentinel and stays -1.
func parseFaceLine(toks []string) ([]mdl.Face, error) {
	ints, err := parseIntList(toks)
	if err != nil {
		return nil, err
	}
	full := func(g []int32) mdl.Face {
		mat, sg := mdl.NormalizeMaterial(g[7], g[3])
		return mdl.Face{
			V1: g[0], V2: g[1], V3: g[2],
			Smoothgroup: sg,
			T1:          g[4], T2: g[5], T3: g[6],
			Material: mat,
		}
	}
	short := func(v1, v2, v3, sg, mat int32) mdl.Face {
		mat, sg = mdl.NormalizeMaterial(mat, sg)
		return mdl.Face{
			V1: v1, V2: v2, V3: v3,
			Smoothgroup: sg,
			T1:          mdl.TVertSentinel,
			T2:          mdl.TVertSentinel,
			T3:          mdl.TVertSentinel,
			Material:    mat,
		}
	}
	switch len(ints) {
	case 4:
		return []mdl.Face{short(ints[0], ints[1], ints[2], 0, ints[3])}, nil
	case 5:
		return []mdl.Face{short(ints[0], ints[1], ints[2], ints[3], ints[4])}, nil
	case 6:
		return []mdl.Face{short(ints[1], ints[2], ints[3], ints[4], ints[5])}, nil
	case 9:
		return []mdl.Face{full(ints[1:])}, nil
	}
	if len(ints) >= 8 && len(ints)%8 == 0 {
		fs := make([]mdl.Face, 0, len(ints)/8)
		for i := 0; i < len(ints); i += 8 {
			fs = append(fs, full(ints[i:i+8]))
		}
		return fs, nil
	}
	return nil, errors.Wrapf(ErrFormat, "face row with %d values", len(ints))
}

func (p *parser) skinLine(s *mdl.Skin, kw string, toks []string) (bool, error) {
	switch kw {
	case "weights":
		return true, p.weightsBlock(toks, s)
	case "bones":
		count, err := requireCount(toks)
		if err != nil {
			return true, err
		}
		s.BoneIDs = make([]int32, 0, count)
		return true, p.countedBlock(count, func(t []string) error {
			ints, err := parseIntList(t)
			if err != nil {
				return err
			}
			// long form carries a leading row index
			s.BoneIDs = append(s.BoneIDs, ints[len(ints)-1])
			return nil
		})
	case "qbones":
		count, err := requireCount(toks)
		if err != nil {
			return true, err
		}
		s.QBones = make([]math.Quat, 0, count)
		return true, p.countedBlock(count, func(t []string) error {
			if len(t) == 5 {
				t = t[1:]
			}
			f, err := parseFloats(t)
			if err != nil {
				return err
			}
			if len(f) != 4 {
				return errors.Wrapf(ErrFormat, "qbone row wants 4 values, got %d", len(f))
			}
			s.QBones = append(s.QBones, math.Quat{X: f[0], Y: f[1], Z: f[2], W: f[3]})
			return nil
		})
	case "tbones":
		count, err := requireCount(toks)
		if err != nil {
			return true, err
		}
		s.TBones = make([]math.Vec3, 0, count)
		return true, p.countedBlock(count, func(t []string) error {
			if len(t) == 4 {
				t = t[1:]
			}
			v, err := parseVec3(t)
			if err != nil {
				return err
			}
			s.TBones = append(s.TBones, v)
			return nil
		})
	}
	return false, nil
}

// weightsBlock reads one bone binding row per mesh vertex. Rows carry
// up to four (bone, weight) pairs, where a bone is a numeric index or
// a node name; an odd token count means a leading explicit row index.
func (p *parser) weightsBlock(toks []string, s *mdl.Skin) error {
	count, err := requireCount(toks)
	if err != nil {
		return err
	}
	s.Verts = make([]mdl.BoneVertex, count)
	for i := range s.Verts {
		// rows the input never mentions still pad to -1/0 slots
		s.Verts[i] = mdl.NewBoneVertex(nil, nil, nil)
	}
	seq := 0
	return p.countedBlock(count, func(t []string) error {
		idx := seq
		seq++
		if len(t)%2 == 1 {
			i, err := parseInt(t[0])
			if err != nil {
				return err
			}
			idx = int(i)
			t = t[1:]
		}
		if len(t) == 0 || len(t) > 2*mdl.MaxBonesPerVert {
			return errors.Wrapf(ErrFormat, "weight row with %d tokens", len(t))
		}
		var names []string
		var idxs []int32
		var ws []float32
		for i := 0; i+1 < len(t); i += 2 {
			w, err := parseFloat(t[i+1])
			if err != nil {
				return err
			}
			if v, err := strconv.ParseInt(t[i], 10, 32); err == nil {
				idxs = append(idxs, int32(v))
				names = append(names, "")
			} else {
				idxs = append(idxs, -1)
				names = append(names, t[i])
			}
			ws = append(ws, w)
		}
		if idx < 0 || idx >= count {
			return errors.Wrapf(ErrFormat, "weight row index %d out of range", idx)
		}
		s.Verts[idx] = mdl.NewBoneVertex(names, idxs, ws)
		return nil
	})
}

func (p *parser) danglyLine(d *mdl.Dangly, kw string, toks []string) (bool, error) {
	var err error
	switch kw {
	case "period":
		d.Period, err = parseFloat(arg(toks, 1))
	case "tightness":
		d.Tightness, err = parseFloat(arg(toks, 1))
	case "displacement":
		d.Displacement, err = parseFloat(arg(toks, 1))
	case "constraints":
		count, err := requireCount(toks)
		if err != nil {
			return true, err
		}
		d.Constraints = make([]float32, 0, count)
		return true, p.countedBlock(count, func(t []string) error {
			f, err := parseFloat(t[len(t)-1])
			if err != nil {
				return err
			}
			d.Constraints = append(d.Constraints, f)
			return nil
		})
	default:
		return false, nil
	}
	return true, err
}

func (p *parser) walkmeshLine(w *mdl.Walkmesh, kw string, toks []string) (bool, error) {
	if kw != "aabb" {
		return false, nil
	}
	count, err := requireCount(toks)
	if err != nil {
		return true, err
	}
	w.AABBs = make([]mdl.AABBNode, 0, count)
	return true, p.countedBlock(count, func(t []string) error {
		if len(t) != 7 {
			return errors.Wrapf(ErrFormat, "aabb row wants 7 values, got %d", len(t))
		}
		f, err := parseFloats(t[:6])
		if err != nil {
			return err
		}
		face, err := parseInt(t[6])
		if err != nil {
			return err
		}
		w.AABBs = append(w.AABBs, mdl.AABBNode{
			Min:     math.Vec3{X: f[0], Y: f[1], Z: f[2]},
			Max:     math.Vec3{X: f[3], Y: f[4], Z: f[5]},
			FaceIdx: face,
		})
		return nil
	})
}

func referenceLine(r *mdl.Reference, kw string, toks []string) (bool, error) {
	var err error
	switch kw {
	case "refmodel":
		r.RefModel = arg(toks, 1)
	case "reattachable":
		r.Reattachable, err = parseBool(arg(toks, 1))
	default:
		return false, nil
	}
	return true, err
}

func saberLine(s *mdl.Saber, kw string, toks []string) (bool, error) {
	var err error
	switch kw {
	case "sabertype":
		s.SaberType, err = parseInt(arg(toks, 1))
	case "sabercolor":
		s.Color, err = parseInt(arg(toks, 1))
	case "saberlength":
		s.Length, err = parseFloat(arg(toks, 1))
	case "saberwidth":
		s.Width, err = parseFloat(arg(toks, 1))
	case "flarecolor":
		s.FlareColor, err = parseVec3(toks[1:])
	case "flareradius":
		s.FlareRadius, err = parseFloat(arg(toks, 1))
	default:
		return false, nil
	}
	return true, err
}
