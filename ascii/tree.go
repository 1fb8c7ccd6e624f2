// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"strconv"
	"strings"

	"gomdl/mdl"
	"gomdl/mlog"
)

const (
	parentTop        = -1 // explicit NULL
	parentUnresolved = -2
)

func isNullRef(ref string) bool {
	return ref == "" || strings.EqualFold(ref, "NULL")
}

// resolveRef turns a parent token into an index into the flat node
// list. Tokens are NULL, a numeric index into parse order, or a node
// name matched case-insensitively. Numeric wins when a token could be
// both, which the legacy corpus genuinely contains; that ambiguity is
// flagged, not silently fixed.
func resolveRef(self int, ref string, byName map[string]int, size int) int {
	if isNullRef(ref) {
		return parentTop
	}
	named, hasName := byName[strings.ToLower(ref)]
	if v, err := strconv.Atoi(ref); err == nil {
		if hasName && named != v {
			mlog.Warnf("parent %q is both an index and a node name, using the index", ref)
		}
		if v >= 0 && v < size && v != self {
			return v
		}
		if hasName && named != self {
			return named
		}
		return parentUnresolved
	}
	if hasName && named != self {
		return named
	}
	return parentUnresolved
}

// buildTree resolves the parsed flat node list into the geometry tree.
// The root is the top-level node named like the model, else a sole
// top-level node named "root", else the first parsed node. Nodes whose
// parent stays unresolvable reattach under the root instead of being
// dropped, so the whole graph survives for round-trip diffing.
func buildTree(nodes []*rawNode, modelName string) *mdl.Node {
	if len(nodes) == 0 {
		return nil
	}
	byName := make(map[string]int, len(nodes))
	for i, rn := range nodes {
		name := strings.ToLower(rn.node.Name)
		if _, ok := byName[name]; !ok {
			byName[name] = i
		}
	}
	parent := make([]int, len(nodes))
	for i, rn := range nodes {
		parent[i] = resolveRef(i, rn.parentRef, byName, len(nodes))
		if parent[i] == parentUnresolved {
			mlog.Warnf("node %s: %v %q, reattaching to the root",
				rn.node.Name, ErrUnresolvedRef, rn.parentRef)
		}
	}

	root := -1
	var top []int
	for i := range nodes {
		if parent[i] < 0 {
			top = append(top, i)
		}
	}
	for _, i := range top {
		if strings.EqualFold(nodes[i].node.Name, modelName) {
			root = i
			break
		}
	}
	if root < 0 && len(top) == 1 && strings.EqualFold(nodes[top[0]].node.Name, "root") {
		root = top[0]
	}
	if root < 0 {
		root = 0
		if parent[0] >= 0 {
			mlog.Warnf("node %s becomes the structural root despite parent %q",
				nodes[0].node.Name, nodes[0].parentRef)
		}
	}

	for i := range nodes {
		if i == root {
			nodes[i].node.ParentID = -1
			continue
		}
		pi := parent[i]
		if pi < 0 || cyclic(parent, i, root) {
			pi = root
		}
		nodes[i].node.ParentID = nodes[pi].node.ID
		nodes[pi].node.Children = append(nodes[pi].node.Children, nodes[i].node)
	}
	return nodes[root].node
}

// cyclic reports whether following the parent chain from i never
// reaches a top-level node or the root. Such nodes reattach under the
// root like unresolved ones.
func cyclic(parent []int, i, root int) bool {
	at := i
	for steps := 0; steps <= len(parent); steps++ {
		at = parent[at]
		if at < 0 || at == root {
			return false
		}
		if at == i {
			mlog.Warnf("parent cycle through node index %d, reattaching to the root", i)
			return true
		}
	}
	return true
}
