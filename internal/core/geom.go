// Package core provides fundamental types and utilities shared by the engine and
// its frontends. It contains no external dependencies (especially no Bubble Tea) to
// keep the engine pure and testable.
package core

import "math"

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FloorInt returns the grid cell index containing coordinate v.
// Unlike int(v) it rounds toward negative infinity, so -0.5 maps to cell -1.
func FloorInt(v float64) int {
	return int(math.Floor(v))
}
