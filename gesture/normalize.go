package gesture

import "math"

// Normalize maps value from [srcMin, srcMax] onto [0, targetMax], clamping the
// result. A degenerate source range maps everything to 0.
func Normalize(value, srcMin, srcMax, targetMax float64) float64 {
	if srcMax == srcMin {
		return 0
	}
	normalized := (value - srcMin) / (srcMax - srcMin)
	return math.Max(0, math.Min(targetMax, normalized*targetMax))
}
