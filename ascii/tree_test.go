// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"testing"
)

func TestBuildTreeRootByModelName(t *testing.T) {
	m := mustDecode(t, `
newmodel ship
node dummy aux
  parent NULL
endnode
node dummy ship
  parent NULL
endnode
node trimesh hull
  parent ship
  faces 0
endnode
donemodel ship
`)
	if m.Root == nil || m.Root.Name != "ship" {
		t.Fatalf("root = %+v, want the node named like the model", m.Root)
	}
	// the other top-level node hangs off the root instead of vanishing
	if m.NodeByName("aux") == nil {
		t.Error("aux dropped")
	}
	if aux := m.NodeByName("aux"); aux.ParentID != m.Root.ID {
		t.Errorf("aux.ParentID = %d, want %d", aux.ParentID, m.Root.ID)
	}
	if hull := m.NodeByName("hull"); hull.ParentID != m.Root.ID {
		t.Errorf("hull.ParentID = %d, want %d", hull.ParentID, m.Root.ID)
	}
}

func TestBuildTreeSoleRootName(t *testing.T) {
	m := mustDecode(t, `
newmodel area01
node dummy rootdummy
  parent root
endnode
node dummy root
  parent NULL
endnode
donemodel area01
`)
	if m.Root == nil || m.Root.Name != "root" {
		t.Fatalf("root = %+v, want the sole top level node named root", m.Root)
	}
}

func TestBuildTreeFirstNodeFallback(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node dummy first
  parent NULL
endnode
node dummy second
  parent NULL
endnode
donemodel m
`)
	if m.Root == nil || m.Root.Name != "first" {
		t.Fatalf("root = %+v, want the first parsed node", m.Root)
	}
}

func TestBuildTreeNumericParent(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node dummy a
  parent NULL
endnode
node dummy 0
  parent a
endnode
node dummy b
  parent 0
endnode
donemodel m
`)
	// "0" is both a node name and a valid index; the index wins
	b := m.NodeByName("b")
	a := m.NodeByName("a")
	if b.ParentID != a.ID {
		t.Errorf("b.ParentID = %d, want index 0 (node a)", b.ParentID)
	}
}

func TestBuildTreeUnresolvedParent(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node dummy m
  parent NULL
endnode
node dummy orphan
  parent ghost
endnode
donemodel m
`)
	o := m.NodeByName("orphan")
	if o == nil {
		t.Fatal("orphan dropped")
	}
	if o.ParentID != m.Root.ID {
		t.Errorf("orphan.ParentID = %d, want the root's %d", o.ParentID, m.Root.ID)
	}
}

func TestBuildTreeParentCycle(t *testing.T) {
	m := mustDecode(t, `
newmodel m
node dummy m
  parent NULL
endnode
node dummy x
  parent y
endnode
node dummy y
  parent x
endnode
donemodel m
`)
	x, y := m.NodeByName("x"), m.NodeByName("y")
	if x == nil || y == nil {
		t.Fatal("cycle nodes dropped")
	}
	if x.ParentID != m.Root.ID && y.ParentID != m.Root.ID {
		t.Errorf("cycle not broken: x parent %d, y parent %d", x.ParentID, y.ParentID)
	}
}

func TestBuildAnimTreeMostChildren(t *testing.T) {
	m := mustDecode(t, `
newmodel m
newanim walk m
  length 1
  node dummy stray
    parent NULL
  endnode
  node dummy base
    parent NULL
  endnode
  node dummy leg1
    parent base
  endnode
  node dummy leg2
    parent base
  endnode
doneanim walk m
donemodel m
`)
	a := m.Anims[0]
	if a.Root == nil || a.Root.Name != "base" {
		t.Fatalf("anim root = %+v, want the parentless node with the most children", a.Root)
	}
	names := map[string]bool{}
	for _, n := range a.Nodes() {
		names[n.Name] = true
	}
	for _, want := range []string{"base", "leg1", "leg2", "stray"} {
		if !names[want] {
			t.Errorf("anim node %s missing", want)
		}
	}
}

func TestBuildAnimTreeNumericOutOfRange(t *testing.T) {
	m := mustDecode(t, `
newmodel m
newanim walk m
  node dummy only
    parent 57
  endnode
doneanim walk m
donemodel m
`)
	a := m.Anims[0]
	if a.Root == nil || a.Root.Name != "only" {
		t.Fatalf("anim root = %+v, out of range index should mean top level", a.Root)
	}
}
