// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"gomdl/mdl"
	"gomdl/mlog"
)

// parser is the state of one Decode call. Nothing outlives the call,
// so independent parses can run in parallel.
type parser struct {
	lines []string
	pos   int
	nodes []*rawNode
}

// rawNode is a parsed node block whose parent reference is still the
// verbatim token; the tree builders resolve it after the whole file is
// read.
type rawNode struct {
	node      *mdl.Node
	parentRef string
}

func (p *parser) next() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	l := p.lines[p.pos]
	p.pos++
	return l, true
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	return p.lines[p.pos], true
}

// tokenize splits a line into fields with any '#' comment removed.
func tokenize(line string) []string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.Fields(line)
}

func keyword(toks []string) string {
	return strings.ToLower(toks[0])
}

// arg returns token i or "".
func arg(toks []string, i int) string {
	if i < len(toks) {
		return toks[i]
	}
	return ""
}

// Decode parses one ASCII model. On a malformed line inside a node the
// rest of that node is skipped but everything parsed so far is kept,
// so Decode can return both a usable best-effort model and the first
// error it hit. Only an input without any content lines returns a nil
// model (ErrEmptyInput).
func Decode(r io.Reader) (*mdl.Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return decodeLines(lines)
}

// DecodeString parses one ASCII model from a string.
func DecodeString(s string) (*mdl.Model, error) {
	return Decode(strings.NewReader(s))
}

func decodeLines(lines []string) (*mdl.Model, error) {
	p := &parser{lines: lines}
	m := &mdl.Model{AnimScale: 1}
	content := 0
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for {
		line, ok := p.next()
		if !ok {
			break
		}
		toks := tokenize(line)
		if len(toks) == 0 {
			continue
		}
		content++
		switch kw := keyword(toks); kw {
		case "newmodel":
			m.Name = arg(toks, 1)
		case "setsupermodel":
			// the first argument repeats the model name, NULL means no
			// supermodel
			super := arg(toks, 1)
			if len(toks) >= 3 {
				super = toks[2]
			}
			if strings.EqualFold(super, "NULL") {
				super = ""
			}
			m.SuperModel = super
		case "classification":
			m.Classification = arg(toks, 1)
		case "classification_unk1":
			v, err := parseInt(arg(toks, 1))
			keep(err)
			m.ClassificationUnk1 = uint8(v)
		case "ignorefog":
			v, err := parseBool(arg(toks, 1))
			keep(err)
			m.IgnoreFog = v
		case "compress_quaternions":
			// stored verbatim; the reference tool pair never acts on it
			v, err := parseInt(arg(toks, 1))
			keep(err)
			m.CompressQuats = v
		case "headlink":
			m.HeadLink = arg(toks, 1)
		case "setanimationscale":
			v, err := parseFloat(arg(toks, 1))
			keep(err)
			m.AnimScale = v
		case "beginmodelgeom", "endmodelgeom", "donemodel":
			// envelope only, the name argument repeats newmodel
		case "bmin":
			v, err := parseVec3(toks[1:])
			keep(err)
			m.Box.Min = v
		case "bmax":
			v, err := parseVec3(toks[1:])
			keep(err)
			m.Box.Max = v
		case "radius":
			v, err := parseFloat(arg(toks, 1))
			keep(err)
			m.Box.Radius = v
		case "node":
			rn, err := p.parseNodeBlock(toks, false)
			keep(err)
			if rn != nil {
				rn.node.ID = int32(len(p.nodes))
				p.nodes = append(p.nodes, rn)
			}
		case "newanim":
			a, err := p.parseAnim(toks)
			keep(err)
			if a != nil {
				m.Anims = append(m.Anims, a)
			}
		default:
			mlog.Debugf("ignoring top level line %q", line)
		}
	}

	if content == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}
	m.Root = buildTree(p.nodes, m.Name)
	return m, firstErr
}
