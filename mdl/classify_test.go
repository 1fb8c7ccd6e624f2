// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want string
	}{
		{"dummy", Node{}, "dummy"},
		{"light", Node{Light: &Light{}}, "light"},
		{"emitter", Node{Emitter: &Emitter{}}, "emitter"},
		{"reference", Node{Reference: &Reference{}}, "reference"},
		{"trimesh", Node{Mesh: &Mesh{}}, "trimesh"},
		{"skin", Node{Mesh: &Mesh{}, Skin: &Skin{}}, "skin"},
		{"danglymesh", Node{Mesh: &Mesh{}, Dangly: &Dangly{}}, "danglymesh"},
		{"aabb", Node{Mesh: &Mesh{}, Walkmesh: &Walkmesh{}}, "aabb"},
		{"saber", Node{Mesh: &Mesh{}, Saber: &Saber{}}, "saber"},
		// combinations the legacy tool never produced normalize to dummy
		{"light+mesh", Node{Light: &Light{}, Mesh: &Mesh{}}, "dummy"},
		{"skin no mesh", Node{Skin: &Skin{}}, "dummy"},
		{"skin+dangly", Node{Mesh: &Mesh{}, Skin: &Skin{}, Dangly: &Dangly{}}, "dummy"},
	}
	for _, c := range cases {
		got := c.node.Classify(false)
		if got != c.want {
			t.Errorf("%s: Classify = %q want %q", c.name, got, c.want)
		}
	}
}

func TestClassifyFlattenSkins(t *testing.T) {
	n := Node{Mesh: &Mesh{}, Skin: &Skin{}}
	if got := n.Classify(true); got != "trimesh" {
		t.Errorf("flattened skin Classify = %q want trimesh", got)
	}
	m := Node{Mesh: &Mesh{}}
	if got := m.Classify(true); got != "trimesh" {
		t.Errorf("flatten must not change a plain trimesh, got %q", got)
	}
}

func TestPayloadFlags(t *testing.T) {
	cases := []struct {
		node Node
		want int
	}{
		{Node{}, 1},
		{Node{Light: &Light{}}, 3},
		{Node{Emitter: &Emitter{}}, 5},
		{Node{Reference: &Reference{}}, 17},
		{Node{Mesh: &Mesh{}}, 33},
		{Node{Mesh: &Mesh{}, Skin: &Skin{}}, 97},
		{Node{Mesh: &Mesh{}, Dangly: &Dangly{}}, 289},
		{Node{Mesh: &Mesh{}, Walkmesh: &Walkmesh{}}, 545},
		{Node{Mesh: &Mesh{}, Saber: &Saber{}}, 2081},
	}
	for _, c := range cases {
		if got := c.node.PayloadFlags(); got != c.want {
			t.Errorf("PayloadFlags = %d want %d", got, c.want)
		}
	}
}

func TestAttachPayloadsInvertsClassify(t *testing.T) {
	for _, kw := range []string{
		"dummy", "light", "emitter", "reference", "trimesh",
		"skin", "danglymesh", "aabb", "saber",
	} {
		n := Node{}
		n.AttachPayloads(kw)
		if got := n.Classify(false); got != kw {
			t.Errorf("AttachPayloads(%q) classifies as %q", kw, got)
		}
	}
}
