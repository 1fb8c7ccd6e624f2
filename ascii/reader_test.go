// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"testing"

	"github.com/pkg/errors"

	"gomdl/mdl"
)

func mustDecode(t *testing.T, src string) *mdl.Model {
	t.Helper()
	m, err := DecodeString(src)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	return m
}

func TestDecodeEmpty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# comment\n\n  # another\n"} {
		m, err := DecodeString(src)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("DecodeString(%q) err = %v, want ErrEmptyInput", src, err)
		}
		if m != nil {
			t.Errorf("DecodeString(%q) = %v, want nil model", src, m)
		}
	}
}

func TestDecodeModelHeader(t *testing.T) {
	m := mustDecode(t, `
newmodel droid
setsupermodel droid droid_base
classification Character
classification_unk1 2
ignorefog 1
compress_quaternions 1
headlink head_g
setanimationscale 0.75
beginmodelgeom droid
bmin -1.5 -1.5 0
bmax 1.5 1.5 2
radius 2.5
endmodelgeom droid
donemodel droid
`)
	if m.Name != "droid" {
		t.Errorf("Name = %q, want droid", m.Name)
	}
	if m.SuperModel != "droid_base" {
		t.Errorf("SuperModel = %q, want droid_base", m.SuperModel)
	}
	if m.Classification != "Character" || m.ClassificationUnk1 != 2 {
		t.Errorf("classification = %q/%d", m.Classification, m.ClassificationUnk1)
	}
	if !m.IgnoreFog || m.CompressQuats != 1 || m.HeadLink != "head_g" {
		t.Errorf("flags = %v/%d/%q", m.IgnoreFog, m.CompressQuats, m.HeadLink)
	}
	if m.AnimScale != 0.75 {
		t.Errorf("AnimScale = %v, want 0.75", m.AnimScale)
	}
	if m.Box.Min.X != -1.5 || m.Box.Max.Z != 2 || m.Box.Radius != 2.5 {
		t.Errorf("Box = %+v", m.Box)
	}
}

func TestDecodeSupermodelNull(t *testing.T) {
	m := mustDecode(t, "newmodel a\nsetsupermodel a NULL\n")
	if m.SuperModel != "" {
		t.Errorf("SuperModel = %q, want empty", m.SuperModel)
	}
}

func TestDecodeFaceShapes(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node trimesh shape
  parent NULL
  verts 4
   0 0 0
   1 0 0
   0 1 0
   0 0 1
  faces 7
   0 1 2 16 0 1 2 5
   0 2 3 7
   0 3 1 2 9
   3 1 2 3 1 4
   0 1 2 1 0 1 2 3 0 2 1 1 2 1 0 3
   0 1 2 165 5
endnode
donemodel m
`)
	n := m.NodeByName("shape")
	if n == nil || n.Mesh == nil {
		t.Fatal("shape mesh missing")
	}
	const s = mdl.TVertSentinel
	want := []mdl.Face{
		{V1: 0, V2: 1, V3: 2, Smoothgroup: 16, T1: 0, T2: 1, T3: 2, Material: 5},
		{V1: 0, V2: 2, V3: 3, Smoothgroup: 0, T1: s, T2: s, T3: s, Material: 7},
		{V1: 0, V2: 3, V3: 1, Smoothgroup: 2, T1: s, T2: s, T3: s, Material: 9},
		{V1: 1, V2: 2, V3: 3, Smoothgroup: 1, T1: s, T2: s, T3: s, Material: 4},
		{V1: 0, V2: 1, V3: 2, Smoothgroup: 1, T1: 0, T2: 1, T3: 2, Material: 3},
		{V1: 0, V2: 2, V3: 1, Smoothgroup: 1, T1: 2, T2: 1, T3: 0, Material: 3},
		// pre-merged smoothgroup column splits back apart
		{V1: 0, V2: 1, V3: 2, Smoothgroup: 5, T1: s, T2: s, T3: s, Material: 5},
	}
	if len(n.Mesh.Faces) != len(want) {
		t.Fatalf("got %d faces, want %d", len(n.Mesh.Faces), len(want))
	}
	for i, w := range want {
		if n.Mesh.Faces[i] != w {
			t.Errorf("face %d = %+v, want %+v", i, n.Mesh.Faces[i], w)
		}
	}
}

func TestDecodeVertsLongForm(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node trimesh v
  parent NULL
  verts 2
   1 0 1 0
   0 1 0 0
  faces 0
endnode
donemodel m
`)
	mesh := m.NodeByName("v").Mesh
	if mesh.Verts[0].X != 1 || mesh.Verts[1].Y != 1 {
		t.Errorf("verts = %+v, explicit indices not honored", mesh.Verts)
	}
}

func TestDecodeWeights(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node skin s
  parent NULL
  verts 3
   0 0 0
   1 0 0
   0 1 0
  faces 0
  weights 3
   torso 1
   0 0.75 head 0.25
   2 1 0.5 2 0.5
endnode
donemodel m
`)
	s := m.NodeByName("s").Skin
	if s == nil || len(s.Verts) != 3 {
		t.Fatalf("skin = %+v", s)
	}
	v0 := s.Verts[0]
	if v0.BoneName[0] != "torso" || v0.BoneIdx[0] != -1 || v0.Weight[0] != 1 {
		t.Errorf("vert 0 = %+v", v0)
	}
	if v0.BoneIdx[1] != -1 || v0.Pairs() != 1 {
		t.Errorf("vert 0 not padded: %+v", v0)
	}
	v1 := s.Verts[1]
	if v1.BoneIdx[0] != 0 || v1.Weight[0] != 0.75 || v1.BoneName[1] != "head" || v1.Weight[1] != 0.25 {
		t.Errorf("vert 1 = %+v", v1)
	}
	v2 := s.Verts[2]
	if v2.BoneIdx[0] != 1 || v2.Weight[0] != 0.5 || v2.BoneIdx[1] != 2 || v2.Weight[1] != 0.5 {
		t.Errorf("vert 2 = %+v", v2)
	}
}

func TestDecodeRawPassthrough(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node dummy d
  parent NULL
  foo 1 2 3
endnode
donemodel m
`)
	n := m.NodeByName("d")
	if len(n.Raw) != 1 || n.Raw[0] != "  foo 1 2 3" {
		t.Errorf("Raw = %q, want the verbatim line", n.Raw)
	}
}

func TestDecodeNodeErrorKeepsSiblings(t *testing.T) {
	m, err := DecodeString(`
newmodel m
node trimesh broken
  parent NULL
  position 1 2
endnode
node dummy ok
  parent broken
endnode
donemodel m
`)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
	if m == nil {
		t.Fatal("model dropped on a node error")
	}
	if m.NodeByName("ok") == nil {
		t.Error("sibling node lost")
	}
	if m.NodeByName("broken") == nil {
		t.Error("partially parsed node lost")
	}
}

func TestDecodeControllers(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node light lamp
  parent NULL
  radius 5
  radiuskey 2
   0 5
   1 7.5
  endlist
  color 1 0.5 0.25
endnode
donemodel m
`)
	cs := m.NodeByName("lamp").Controllers
	if len(cs) != 3 {
		t.Fatalf("got %d controllers, want 3", len(cs))
	}
	if cs[0].Type != mdl.CtrlRadius || len(cs[0].Rows) != 1 || cs[0].Rows[0].Data[0] != 5 {
		t.Errorf("bare radius = %+v", cs[0])
	}
	if cs[1].Type != mdl.CtrlRadius || len(cs[1].Rows) != 2 || cs[1].Rows[1].Time != 1 || cs[1].Rows[1].Data[0] != 7.5 {
		t.Errorf("radiuskey = %+v", cs[1])
	}
	if cs[2].Type != mdl.CtrlColor || len(cs[2].Rows[0].Data) != 3 {
		t.Errorf("color = %+v", cs[2])
	}
}

func TestDecodeUncountedFlareArrays(t *testing.T) {
	// producers may omit the flare array counts; numeric blocks end at
	// the next keyword line, the name list at the node terminator
	m := mustDecode(t, `
newmodel m
node light lamp
  parent NULL
  flare 1
  flaresizes
   0.5
   0.25
  flarepositions
   0.3
   0.6
  flarecolorshifts
   0.1 0.1 0.1
   0.2 0.2 0.2
  texturenames
   flare1
   flare2
endnode
donemodel m
`)
	l := m.NodeByName("lamp").Light
	if len(l.FlareSizes) != 2 || l.FlareSizes[0] != 0.5 || l.FlareSizes[1] != 0.25 {
		t.Errorf("FlareSizes = %v", l.FlareSizes)
	}
	if len(l.FlarePositions) != 2 || l.FlarePositions[1] != 0.6 {
		t.Errorf("FlarePositions = %v", l.FlarePositions)
	}
	if len(l.FlareColorShifts) != 2 || l.FlareColorShifts[1].Z != 0.2 {
		t.Errorf("FlareColorShifts = %v", l.FlareColorShifts)
	}
	if len(l.FlareTextures) != 2 || l.FlareTextures[0] != "flare1" || l.FlareTextures[1] != "flare2" {
		t.Errorf("FlareTextures = %v", l.FlareTextures)
	}
	// the terminators stayed unconsumed: the node closed and nothing
	// leaked into the raw lines
	if n := m.NodeByName("lamp"); len(n.Raw) != 0 {
		t.Errorf("Raw = %q", n.Raw)
	}
}

func TestDecodeCountedKeyListShort(t *testing.T) {
	m, err := DecodeString(`
newmodel m
node dummy d
  parent NULL
  scalekey 3
   0 1
   1 2
  endlist
endnode
donemodel m
`)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat for a short counted list", err)
	}
	if m == nil || m.NodeByName("d") == nil {
		t.Error("node dropped on a short counted list")
	}
}

func TestDecodeCountedKeyListBlankBeforeEndlist(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node dummy d
  parent NULL
  scalekey 2
   0 1
   1 2

  endlist
endnode
donemodel m
`)
	n := m.NodeByName("d")
	c := n.Controller(mdl.CtrlScale)
	if c == nil || len(c.Rows) != 2 {
		t.Fatalf("scale controller = %+v", c)
	}
	if len(n.Raw) != 0 {
		t.Errorf("stray endlist leaked into Raw: %q", n.Raw)
	}
}

func TestDecodeUncountedKeyList(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node dummy d
  parent NULL
  scalekey
   0 1
   0.5 2
  wirecolor 0.5 0.5 0.5
endnode
donemodel m
`)
	n := m.NodeByName("d")
	c := n.Controller(mdl.CtrlScale)
	if c == nil || len(c.Rows) != 2 {
		t.Fatalf("scale controller = %+v", c)
	}
	// the list ends at the first non-row line, which still parses
	if n.WireColor.X != 0.5 {
		t.Errorf("wirecolor after key list = %+v", n.WireColor)
	}
}

func TestDecodeOrientationRows(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node dummy root
  parent NULL
endnode
newanim walk m
  length 1
  node dummy root
    parent NULL
    orientationkey 1
     0 0 0 1 0
    endlist
    birthrate 12
  endnode
doneanim walk m
donemodel m
`)
	if len(m.Anims) != 1 {
		t.Fatalf("got %d anims", len(m.Anims))
	}
	n := m.Anims[0].Root
	c := n.Controller(mdl.CtrlOrientation)
	if c == nil || len(c.Rows) != 1 {
		t.Fatalf("orientation controller = %+v", c)
	}
	got := c.Rows[0].Data
	want := []float32{0, 0, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row data = %v, want identity quaternion %v", got, want)
		}
	}
	// a bare animation node resolves keywords from every namespace
	if b := n.Controller(mdl.CtrlBirthrate); b == nil || b.Rows[0].Data[0] != 12 {
		t.Errorf("birthrate controller = %+v", b)
	}
}

func TestDecodeAnim(t *testing.T) {
	m := mustDecode(t, `
newmodel m
newanim run m
  length 2.5
  transtime 0.25
  animroot torso
  event 0.5 footstep
  event 1.5 footstep
doneanim run m
donemodel m
`)
	a := m.Anims[0]
	if a.Name != "run" || a.ModelName != "m" || a.Length != 2.5 || a.TransTime != 0.25 {
		t.Errorf("anim = %+v", a)
	}
	if a.AnimRoot != "torso" {
		t.Errorf("AnimRoot = %q", a.AnimRoot)
	}
	if len(a.Events) != 2 || a.Events[1].Time != 1.5 || a.Events[0].Name != "footstep" {
		t.Errorf("events = %+v", a.Events)
	}
}
