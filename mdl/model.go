// SPDX-License-Identifier: GPL-2.0-or-later

// Package mdl holds the canonical in-memory form of a model: one node
// graph shared by the textual and the binary codec. Parsers build the
// graph once per call; writers treat it as a value and only recompute
// cached per-face data.
package mdl

import (
	"gomdl/math"
)

// BoundingBox is the axis aligned box stored in model and mesh
// headers. Radius is kept separately because the legacy tool computes
// it independently of Min/Max.
type BoundingBox struct {
	Min    math.Vec3
	Max    math.Vec3
	Radius float32
}

type Model struct {
	Name           string
	SuperModel     string
	Classification string
	// ClassificationUnk1 is an auxiliary byte next to the
	// classification in the binary header. Meaning unknown, value
	// preserved.
	ClassificationUnk1 uint8
	IgnoreFog          bool
	// CompressQuats is stored and round-tripped verbatim. The
	// reference reader/writer pair never acts on it.
	CompressQuats int32
	HeadLink      string
	AnimScale     float32
	Box           BoundingBox

	Root  *Node
	Anims []*Animation
}

// NodeByName finds a node in the geometry tree, matching the way the
// legacy tool resolves references: case-insensitive, first match in
// depth-first order.
func (m *Model) NodeByName(name string) *Node {
	if m.Root == nil {
		return nil
	}
	return m.Root.find(foldName(name))
}

// Nodes returns the geometry nodes in depth-first order, which is also
// the binary serialization order.
func (m *Model) Nodes() []*Node {
	var out []*Node
	if m.Root != nil {
		m.Root.walk(func(n *Node) {
			out = append(out, n)
		})
	}
	return out
}

type Event struct {
	Time float32
	Name string
}

// Animation is a parallel node tree keyed by node name. Its nodes
// carry controllers only, no geometry payloads.
type Animation struct {
	Name string
	// ModelName repeats the owning model's name on the newanim and
	// doneanim lines.
	ModelName string
	// AnimRoot names the geometry node the animation hangs off, when
	// the producer declared one.
	AnimRoot  string
	Length    float32
	TransTime float32
	Events    []Event

	Root *Node
}

// Nodes returns the animation nodes in depth-first order.
func (a *Animation) Nodes() []*Node {
	var out []*Node
	if a.Root != nil {
		a.Root.walk(func(n *Node) {
			out = append(out, n)
		})
	}
	return out
}
