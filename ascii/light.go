// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"gomdl/math"
	"gomdl/mdl"
)

func (p *parser) lightLine(l *mdl.Light, kw string, toks []string) (bool, error) {
	var err error
	switch kw {
	case "lightpriority":
		l.Priority, err = parseInt(arg(toks, 1))
	case "ambientonly":
		l.AmbientOnly, err = parseBool(arg(toks, 1))
	case "shadow":
		l.Shadow, err = parseBool(arg(toks, 1))
	case "fadinglight":
		l.FadingLight, err = parseBool(arg(toks, 1))
	case "flare":
		l.Flare, err = parseBool(arg(toks, 1))
	case "flareradius":
		l.FlareRadius, err = parseFloat(arg(toks, 1))
	case "texturenames":
		return true, p.nameArray(toks, &l.FlareTextures)
	case "flaresizes":
		return true, p.floatArray(toks, &l.FlareSizes)
	case "flarepositions":
		return true, p.floatArray(toks, &l.FlarePositions)
	case "flarecolorshifts":
		return true, p.colorArray(toks, &l.FlareColorShifts)
	default:
		return false, nil
	}
	return true, err
}

// floatArray reads a flare array of one float per line. The count is
// optional; without it the block extends while the next line leads
// with a number.
func (p *parser) floatArray(toks []string, out *[]float32) error {
	count, counted, err := blockCount(toks)
	if err != nil {
		return err
	}
	row := func(t []string) error {
		f, err := parseFloat(t[0])
		if err != nil {
			return err
		}
		*out = append(*out, f)
		return nil
	}
	if counted {
		*out = make([]float32, 0, count)
		return p.countedBlock(count, row)
	}
	return p.scanBlock(row)
}

func (p *parser) colorArray(toks []string, out *[]math.Vec3) error {
	count, counted, err := blockCount(toks)
	if err != nil {
		return err
	}
	row := func(t []string) error {
		v, err := parseVec3(t)
		if err != nil {
			return err
		}
		*out = append(*out, v)
		return nil
	}
	if counted {
		*out = make([]math.Vec3, 0, count)
		return p.countedBlock(count, row)
	}
	return p.scanBlock(row)
}

// nameArray reads the flare texture list. Name rows are single tokens,
// so a countless block extends while the next line is one bare token
// that is not a block terminator.
func (p *parser) nameArray(toks []string, out *[]string) error {
	count, counted, err := blockCount(toks)
	if err != nil {
		return err
	}
	if counted {
		*out = make([]string, 0, count)
		return p.countedBlock(count, func(t []string) error {
			*out = append(*out, t[0])
			return nil
		})
	}
	for {
		line, ok := p.peek()
		if !ok {
			return nil
		}
		t := tokenize(line)
		if len(t) != 1 {
			return nil
		}
		switch keyword(t) {
		case "endnode", "}", "endlist":
			return nil
		}
		p.next()
		*out = append(*out, t[0])
	}
}

// scanBlock reads rows while the next line leads with a number. Used
// by the flare arrays when the producer omitted the count.
func (p *parser) scanBlock(row func([]string) error) error {
	for {
		line, ok := p.peek()
		if !ok {
			return nil
		}
		t := tokenize(line)
		if len(t) == 0 {
			return nil
		}
		if _, err := parseFloat(t[0]); err != nil {
			return nil
		}
		p.next()
		if err := row(t); err != nil {
			return err
		}
	}
}
