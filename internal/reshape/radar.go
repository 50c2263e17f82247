package reshape

import (
	"fmt"
	"math"
)

// Thetas returns n equally spaced angles around the circle, counter-clockwise
// with the first vertex at the top.
func Thetas(n int) ([]float64, error) {
	if n < 3 {
		return nil, fmt.Errorf("reshape: a radar needs at least three axes, got %d", n)
	}
	out := make([]float64, n)
	step := 2 * math.Pi / float64(n)
	for i := range out {
		out[i] = float64(i)*step + math.Pi/2
	}
	return out, nil
}

// PolarXY projects radius values at the given angles to cartesian points.
// offset grows every radius outward from the origin, which keeps text labels
// clear of the perimeter.
func PolarXY(radii, thetas []float64, offset float64) (xs, ys []float64, err error) {
	if len(radii) != len(thetas) {
		return nil, nil, fmt.Errorf("reshape: radar has %d radii for %d axes", len(radii), len(thetas))
	}
	xs = make([]float64, len(radii))
	ys = make([]float64, len(radii))
	for i := range radii {
		r := radii[i] + offset
		xs[i] = r * math.Cos(thetas[i])
		ys[i] = r * math.Sin(thetas[i])
	}
	return xs, ys, nil
}
