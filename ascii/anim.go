// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"strconv"
	"strings"

	"gomdl/mdl"
	"gomdl/mlog"
)

// parseAnim reads one "newanim <name> <model> ... doneanim" block.
// Animation nodes form their own registry: numeric parent references
// index the animation's declaration order, never the geometry list.
func (p *parser) parseAnim(toks []string) (*mdl.Animation, error) {
	a := &mdl.Animation{
		Name:      arg(toks, 1),
		ModelName: arg(toks, 2),
	}
	var nodes []*rawNode
	var firstErr error
	for {
		line, ok := p.next()
		if !ok {
			break
		}
		t := tokenize(line)
		if len(t) == 0 {
			continue
		}
		kw := keyword(t)
		if kw == "doneanim" {
			break
		}
		switch kw {
		case "length":
			v, err := parseFloat(arg(t, 1))
			if err != nil && firstErr == nil {
				firstErr = err
			}
			a.Length = v
		case "transtime":
			v, err := parseFloat(arg(t, 1))
			if err != nil && firstErr == nil {
				firstErr = err
			}
			a.TransTime = v
		case "animroot":
			a.AnimRoot = arg(t, 1)
		case "event":
			time, err := parseFloat(arg(t, 1))
			if err != nil && firstErr == nil {
				firstErr = err
			}
			a.Events = append(a.Events, mdl.Event{Time: time, Name: arg(t, 2)})
		case "node":
			rn, err := p.parseNodeBlock(t, true)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			if rn != nil {
				rn.node.ID = int32(len(nodes))
				nodes = append(nodes, rn)
			}
		default:
			mlog.Debugf("animation %s: ignoring line %q", a.Name, line)
		}
	}
	a.Root = buildAnimTree(nodes, a.Name)
	return a, firstErr
}

// buildAnimTree resolves an animation's node set. NULL and numeric
// indices outside the animation's own declaration order mean top
// level. The root is the parentless candidate with the most children,
// first seen winning ties; picking the plain first node would anoint
// an unrelated leaf just because it led the file.
func buildAnimTree(nodes []*rawNode, animName string) *mdl.Node {
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
	children := make([]int, len(nodes))
	for i, rn := range nodes {
		parent[i] = animRef(i, rn.parentRef, byName, len(nodes))
		if parent[i] == parentUnresolved {
			mlog.Warnf("animation %s: node %s: %v %q",
				animName, rn.node.Name, ErrUnresolvedRef, rn.parentRef)
			parent[i] = parentTop
		}
		if parent[i] >= 0 {
			children[parent[i]]++
		}
	}

	root := -1
	for i := range nodes {
		if parent[i] >= 0 {
			continue
		}
		if root < 0 || children[i] > children[root] {
			root = i
		}
	}
	if root < 0 {
		root = 0
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

// animRef resolves a parent token inside one animation. Unlike the
// geometry builder an out-of-range numeric index is not an error here,
// it means top level within the animation.
func animRef(self int, ref string, byName map[string]int, size int) int {
	if isNullRef(ref) {
		return parentTop
	}
	if v, err := strconv.Atoi(ref); err == nil {
		if v >= 0 && v < size && v != self {
			return v
		}
		return parentTop
	}
	if i, ok := byName[strings.ToLower(ref)]; ok && i != self {
		return i
	}
	return parentUnresolved
}
