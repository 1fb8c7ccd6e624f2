// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

// Per payload bits of the binary node header. NodeHeader is set on
// every node.
const (
	NodeHeader    = 0x0001
	NodeLight     = 0x0002
	NodeEmitter   = 0x0004
	NodeReference = 0x0010
	NodeMesh      = 0x0020
	NodeSkin      = 0x0040
	NodeDangly    = 0x0100
	NodeAABB      = 0x0200
	NodeSaber     = 0x0800
)

// The eight payload combinations the legacy tool produces. Anything
// else serializes as "dummy".
const (
	typeDummy     = NodeHeader
	typeLight     = NodeHeader | NodeLight
	typeEmitter   = NodeHeader | NodeEmitter
	typeReference = NodeHeader | NodeReference
	typeTrimesh   = NodeHeader | NodeMesh
	typeSkin      = NodeHeader | NodeMesh | NodeSkin
	typeDangly    = NodeHeader | NodeMesh | NodeDangly
	typeAABB      = NodeHeader | NodeMesh | NodeAABB
	typeSaber     = NodeHeader | NodeMesh | NodeSaber
)

// PayloadFlags combines the node header bit with one bit per attached
// payload.
func (n *Node) PayloadFlags() int {
	f := NodeHeader
	if n.Light != nil {
		f |= NodeLight
	}
	if n.Emitter != nil {
		f |= NodeEmitter
	}
	if n.Reference != nil {
		f |= NodeReference
	}
	if n.Mesh != nil {
		f |= NodeMesh
	}
	if n.Skin != nil {
		f |= NodeSkin
	}
	if n.Dangly != nil {
		f |= NodeDangly
	}
	if n.Walkmesh != nil {
		f |= NodeAABB
	}
	if n.Saber != nil {
		f |= NodeSaber
	}
	return f
}

// Classify returns the external type keyword for the node's payload
// set. flattenSkins makes skinned meshes write as plain trimeshes,
// which some consumers want for static exports. Combinations the
// legacy tool never produced normalize to "dummy" instead of failing.
func (n *Node) Classify(flattenSkins bool) string {
	switch n.PayloadFlags() {
	case typeDummy:
		return "dummy"
	case typeLight:
		return "light"
	case typeEmitter:
		return "emitter"
	case typeReference:
		return "reference"
	case typeTrimesh:
		return "trimesh"
	case typeSkin:
		if flattenSkins {
			return "trimesh"
		}
		return "skin"
	case typeDangly:
		return "danglymesh"
	case typeAABB:
		return "aabb"
	case typeSaber:
		return "saber"
	}
	return "dummy"
}

// AttachPayloads gives the node the empty payload set matching an
// external type keyword. Unknown keywords attach nothing, leaving a
// dummy. The inverse of Classify.
func (n *Node) AttachPayloads(keyword string) {
	switch foldName(keyword) {
	case "light":
		n.Light = &Light{}
	case "emitter":
		n.Emitter = &Emitter{}
	case "reference":
		n.Reference = &Reference{Reattachable: false}
	case "trimesh":
		n.Mesh = &Mesh{}
	case "skin":
		n.Mesh = &Mesh{}
		n.Skin = &Skin{}
	case "danglymesh":
		n.Mesh = &Mesh{}
		n.Dangly = &Dangly{}
	case "aabb":
		n.Mesh = &Mesh{}
		n.Walkmesh = &Walkmesh{}
	case "saber", "lightsaber": // some producers spell it out
		n.Mesh = &Mesh{}
		n.Saber = &Saber{}
	}
}
