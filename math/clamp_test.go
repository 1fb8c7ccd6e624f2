// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		min, val, max, want float32
	}{
		{-1, 0.5, 1, 0.5},
		{-1, -3, 1, -1},
		{-1, 2, 1, 1},
		{-1, -1, 1, -1},
		{-1, 1, 1, 1},
	}
	for _, c := range cases {
		if got := Clamp(c.min, c.val, c.max); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v want %v", c.min, c.val, c.max, got, c.want)
		}
	}
	if got := Clamp(0, 7, 5); got != 5 {
		t.Errorf("Clamp(0, 7, 5) = %d want 5", got)
	}
}
