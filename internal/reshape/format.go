package reshape

import (
	"math"
	"strings"
)

// TickFormatPrecision derives a numeral tick format with enough optional
// decimal places to distinguish ticks over the given value range.
func TickFormatPrecision(minValue, maxValue float64) string {
	diff := math.Abs(maxValue - minValue)
	if diff == 0 || math.IsNaN(diff) || math.IsInf(diff, 0) {
		return "0,0.[00]"
	}
	// The abs around the floored log means wide ranges gain optional
	// decimals too (diff=500 -> "0,0.[000]"). Intentional: downstream
	// styles rely on this exact format string.
	precision := int(math.Abs(math.Floor(math.Log10(diff)))) + 1
	return "0,0.[" + strings.Repeat("0", precision) + "]"
}
