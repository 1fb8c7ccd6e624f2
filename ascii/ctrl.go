// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"strings"

	"github.com/pkg/errors"

	"gomdl/math"
	"gomdl/mdl"
)

// ctrlLine parses both controller forms:
//
//	<name>[bezier]key [count]
//	  time v0 v1 ...
//	  ...
//	endlist
//
//	<name> v0 v1 ...
//
// Both build the same row list shape; the bare form is one row at time
// 0. Orientation values are angle-axis on the wire and convert to
// quaternions per row, with no shortcut for identity rotations.
func (p *parser) ctrlLine(n *mdl.Node, kw string, toks []string, anim bool) (bool, error) {
	base := kw
	keyed := false
	bezier := false
	if strings.HasSuffix(base, "key") {
		keyed = true
		base = strings.TrimSuffix(base, "key")
	}
	if strings.HasSuffix(base, "bezier") {
		bezier = true
		base = strings.TrimSuffix(base, "bezier")
	}
	// animation nodes carry no payloads, so their keywords resolve
	// against every namespace
	scope := n
	if anim {
		scope = nil
	}
	def, ok := mdl.LookupCtrl(base, scope)
	if !ok {
		return false, nil
	}
	cols := def.Cols
	if bezier {
		// a bezier row carries the value plus two control points
		cols *= 3
	}
	c := &mdl.Controller{Type: def.Type, Bezier: bezier}
	if !keyed {
		row, err := ctrlRow(0, toks[1:], def.Type, cols)
		if err != nil {
			return true, errors.Wrapf(err, "%s", kw)
		}
		c.Rows = []mdl.ControllerRow{row}
		n.Controllers = append(n.Controllers, c)
		return true, nil
	}

	count := -1
	if len(toks) > 1 {
		v, err := parseInt(toks[1])
		if err != nil {
			return true, err
		}
		count = int(v)
	}
	for count < 0 || len(c.Rows) < count {
		line, ok := p.peek()
		if !ok {
			if count < 0 {
				break
			}
			return true, errors.Wrapf(ErrFormat, "%s ended before %d rows", kw, count)
		}
		t := tokenize(line)
		if len(t) == 0 {
			p.next()
			continue
		}
		if keyword(t) == "endlist" {
			p.next()
			if count >= 0 && len(c.Rows) < count {
				return true, errors.Wrapf(ErrFormat, "%s ended after %d of %d rows",
					kw, len(c.Rows), count)
			}
			break
		}
		if count < 0 {
			// without a count the list ends at the first line that is
			// not a data row
			if _, err := parseFloat(t[0]); err != nil {
				break
			}
		}
		p.next()
		if len(t) != cols+1 {
			return true, errors.Wrapf(ErrFormat, "%s row wants %d values, got %d", kw, cols+1, len(t))
		}
		time, err := parseFloat(t[0])
		if err != nil {
			return true, err
		}
		row, err := ctrlRow(time, t[1:], def.Type, cols)
		if err != nil {
			return true, errors.Wrapf(err, "%s", kw)
		}
		c.Rows = append(c.Rows, row)
	}
	if count >= 0 {
		// the counted form may still carry a trailing endlist, possibly
		// separated by blank lines
		for {
			line, ok := p.peek()
			if !ok {
				break
			}
			t := tokenize(line)
			if len(t) == 0 {
				p.next()
				continue
			}
			if keyword(t) == "endlist" {
				p.next()
			}
			break
		}
	}
	n.Controllers = append(n.Controllers, c)
	return true, nil
}

func ctrlRow(time float32, vals []string, typ mdl.CtrlType, cols int) (mdl.ControllerRow, error) {
	if len(vals) != cols {
		return mdl.ControllerRow{}, errors.Wrapf(ErrFormat, "want %d values, got %d", cols, len(vals))
	}
	f, err := parseFloats(vals)
	if err != nil {
		return mdl.ControllerRow{}, err
	}
	if typ == mdl.CtrlOrientation {
		for g := 0; g+4 <= len(f); g += 4 {
			q := math.AngleAxisToQuat(f[g], f[g+1], f[g+2], f[g+3])
			f[g], f[g+1], f[g+2], f[g+3] = q.X, q.Y, q.Z, q.W
		}
	}
	return mdl.ControllerRow{Time: time, Data: f}, nil
}
