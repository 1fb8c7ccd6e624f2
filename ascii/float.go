// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"gomdl/math"
)

// The legacy tool ran on Windows and printed specials in the MSVC
// spelling. Keys are lower case, trailing digits already stripped.
var legacyFloats = map[string]float32{
	"1.#qnan":  math32.NaN(),
	"-1.#qnan": math32.NaN(),
	"1.#ind":   math32.NaN(),
	"-1.#ind":  math32.NaN(),
	"1.#inf":   math32.Inf(1),
	"-1.#inf":  math32.Inf(-1),
}

// parseFloat parses an ordinary decimal float or one of the legacy
// Windows spellings of NaN and infinity ("1.#QNAN0", "-1.#INF", ...).
func parseFloat(text string) (float32, error) {
	if f, err := strconv.ParseFloat(text, 32); err == nil {
		return float32(f), nil
	}
	t := strings.ToLower(text)
	t = strings.TrimRight(t, "0123456789")
	if f, ok := legacyFloats[t]; ok {
		return f, nil
	}
	return 0, errors.Wrapf(ErrFormat, "bad float %q", text)
}

func parseInt(text string) (int32, error) {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrFormat, "bad int %q", text)
	}
	return int32(v), nil
}

func parseBool(text string) (bool, error) {
	v, err := parseInt(text)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func parseFloats(toks []string) ([]float32, error) {
	out := make([]float32, len(toks))
	for i, t := range toks {
		f, err := parseFloat(t)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func parseVec3(toks []string) (math.Vec3, error) {
	if len(toks) < 3 {
		return math.Vec3{}, errors.Wrapf(ErrFormat, "want 3 values, got %d", len(toks))
	}
	f, err := parseFloats(toks[:3])
	if err != nil {
		return math.Vec3{}, err
	}
	return math.Vec3{X: f[0], Y: f[1], Z: f[2]}, nil
}

// formatFloat renders one value the way the legacy tool does: %.7g
// with the MSVC spelling for specials.
func formatFloat(f float32) string {
	switch {
	case math32.IsNaN(f):
		return "-1.#QNAN0"
	case math32.IsInf(f, 1):
		return "1.#INF00"
	case math32.IsInf(f, -1):
		return "-1.#INF00"
	}
	return strconv.FormatFloat(float64(f), 'g', 7, 32)
}
