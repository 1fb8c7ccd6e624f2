// SPDX-License-Identifier: GPL-2.0-or-later

package ascii

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float32
	}{
		{"0", 0},
		{"1.5", 1.5},
		{"-2.25", -2.25},
		{"1e3", 1000},
		{"1.#INF", math32.Inf(1)},
		{"1.#INF00", math32.Inf(1)},
		{"-1.#INF00", math32.Inf(-1)},
	}
	for _, tc := range tests {
		got, err := parseFloat(tc.in)
		if err != nil {
			t.Errorf("parseFloat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseFloatNaN(t *testing.T) {
	for _, in := range []string{"1.#QNAN", "1.#QNAN0", "-1.#QNAN0", "1.#IND", "-1.#IND00"} {
		got, err := parseFloat(in)
		if err != nil {
			t.Errorf("parseFloat(%q): %v", in, err)
			continue
		}
		if !math32.IsNaN(got) {
			t.Errorf("parseFloat(%q) = %v, want NaN", in, got)
		}
	}
}

func TestParseFloatBad(t *testing.T) {
	for _, in := range []string{"", "x", "1.#WHAT", "--1"} {
		if _, err := parseFloat(in); !errors.Is(err, ErrFormat) {
			t.Errorf("parseFloat(%q) err = %v, want ErrFormat", in, err)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{-2.25, "-2.25"},
		{math32.NaN(), "-1.#QNAN0"},
		{math32.Inf(1), "1.#INF00"},
		{math32.Inf(-1), "-1.#INF00"},
	}
	for _, tc := range tests {
		if got := formatFloat(tc.in); got != tc.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatParseFloat(t *testing.T) {
	// values with at most 7 significant digits survive the trip exactly
	for _, f := range []float32{0, 1, -1, 0.5, 0.1, 123.4567, -0.000125, 1e6} {
		got, err := parseFloat(formatFloat(f))
		if err != nil {
			t.Fatalf("parseFloat(formatFloat(%v)): %v", f, err)
		}
		if got != f {
			t.Errorf("parseFloat(formatFloat(%v)) = %v", f, got)
		}
	}
}
