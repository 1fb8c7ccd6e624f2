// SPDX-License-Identifier: GPL-2.0-or-later

// Package ascii reads and writes the textual variant of the MDL model
// format. Parsing builds one mdl.Model per call; writing streams the
// graph back out such that re-binarizing matches the legacy reference
// tool byte for byte.
package ascii

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput means the input had no recognizable content lines
	// at all. This aborts the whole parse.
	ErrEmptyInput = errors.New("empty input")
	// ErrFormat means a line's tokens did not match the expected
	// numeric or keyword shape. It aborts the remaining parse of the
	// current node; siblings already parsed are kept.
	ErrFormat = errors.New("format error")
	// ErrUnresolvedRef means a parent reference stayed unresolvable
	// after the whole file was read. The builders recover from it by
	// reattaching to the root, so it is reported, never returned.
	ErrUnresolvedRef = errors.New("unresolved reference")
)
