// SPDX-License-Identifier: GPL-2.0-or-later

package math

// Number are the numeric types Clamp handles.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Clamp limits val to the closed interval [min, max].
func Clamp[K Number](min, val, max K) K {
	switch {
	case val < min:
		return min
	case val > max:
		return max
	}
	return val
}
