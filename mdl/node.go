// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"strings"

	"gomdl/math"
)

// Node is one entry in a model or animation tree. Payload slots are
// independent and optional; a node can carry several at once (a
// skinned mesh is Mesh plus Skin). The serialized type keyword is
// derived from the attached set, see Classify.
type Node struct {
	Name string
	// ID is unique within a model and fixes child and serialization
	// order.
	ID int32
	// ParentID is -1 for the root.
	ParentID    int32
	Position    math.Vec3
	Orientation math.Quat
	WireColor   math.Vec3

	Children    []*Node
	Controllers []*Controller

	Mesh      *Mesh
	Skin      *Skin
	Dangly    *Dangly
	Light     *Light
	Emitter   *Emitter
	Reference *Reference
	Saber     *Saber
	Walkmesh  *Walkmesh

	// Raw holds lines the parser did not understand, verbatim, so a
	// round trip never drops them.
	Raw []string
}

func foldName(s string) string {
	return strings.ToLower(s)
}

func (n *Node) find(folded string) *Node {
	if foldName(n.Name) == folded {
		return n
	}
	for _, c := range n.Children {
		if r := c.find(folded); r != nil {
			return r
		}
	}
	return nil
}

func (n *Node) walk(f func(*Node)) {
	f(n)
	for _, c := range n.Children {
		c.walk(f)
	}
}

// Controller returns the node's controller with the given type tag, or
// nil.
func (n *Node) Controller(t CtrlType) *Controller {
	for _, c := range n.Controllers {
		if c.Type == t {
			return c
		}
	}
	return nil
}
