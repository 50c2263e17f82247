package reshape

import (
	"fmt"
	"math"
	"sort"
)

// Hex tile orientations.
const (
	HexPointyTop = "pointytop"
	HexFlatTop   = "flattop"
)

// HexTile is one occupied hexagonal bin: its axial coordinates, the
// cartesian center back-projection, and the observation count.
type HexTile struct {
	Q, R  int
	X, Y  float64
	Count int
}

// axial basis rows for the cartesian -> axial transform.
var (
	hexPointy = [4]float64{math.Sqrt(3) / 3, -1.0 / 3, 0, 2.0 / 3}
	hexFlat   = [4]float64{2.0 / 3, 0, -1.0 / 3, math.Sqrt(3) / 3}
)

// HexBin bins (x, y) points into hexagonal tiles of the given size and
// orientation. aspectScale compensates for non-square plot aspect ratios.
// Tiles are returned sorted by (q, r).
func HexBin(xs, ys []float64, size float64, orientation string, aspectScale float64) ([]HexTile, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("reshape: hexbin needs equal x and y lengths, got %d and %d", len(xs), len(ys))
	}
	if size <= 0 {
		return nil, fmt.Errorf("reshape: hexbin size must be positive, got %g", size)
	}
	var coords [4]float64
	switch orientation {
	case HexPointyTop:
		coords = hexPointy
	case HexFlatTop:
		coords = hexFlat
	default:
		return nil, fmt.Errorf("reshape: unknown hex orientation %q; use %q or %q",
			orientation, HexPointyTop, HexFlatTop)
	}
	if aspectScale == 0 {
		aspectScale = 1
	}

	counts := make(map[[2]int]int)
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		x := xs[i] / size
		y := -ys[i] / size
		if orientation == HexPointyTop {
			x *= aspectScale
		} else {
			y /= aspectScale
		}
		q := coords[0]*x + coords[1]*y
		r := coords[2]*x + coords[3]*y
		qi, ri := roundHex(q, r)
		counts[[2]int{qi, ri}]++
	}

	tiles := make([]HexTile, 0, len(counts))
	for qr, n := range counts {
		cx, cy := axialToCartesian(qr[0], qr[1], size, orientation, aspectScale)
		tiles = append(tiles, HexTile{Q: qr[0], R: qr[1], X: cx, Y: cy, Count: n})
	}
	sort.Slice(tiles, func(a, b int) bool {
		if tiles[a].Q != tiles[b].Q {
			return tiles[a].Q < tiles[b].Q
		}
		return tiles[a].R < tiles[b].R
	})
	return tiles, nil
}

// roundHex snaps fractional axial coordinates to the nearest hex via cube
// coordinate rounding.
func roundHex(q, r float64) (int, int) {
	x, z := q, r
	y := -x - z
	rx, ry, rz := math.Round(x), math.Round(y), math.Round(z)
	dx, dy, dz := math.Abs(rx-x), math.Abs(ry-y), math.Abs(rz-z)
	switch {
	case dx > dy && dx > dz:
		rx = -(ry + rz)
	case dy > dz:
		// y is derived, nothing to fix
	default:
		rz = -(rx + ry)
	}
	return int(rx), int(rz)
}

// axialToCartesian projects axial hex coordinates back to tile centers.
func axialToCartesian(q, r int, size float64, orientation string, aspectScale float64) (float64, float64) {
	qf, rf := float64(q), float64(r)
	if orientation == HexPointyTop {
		x := size * math.Sqrt(3) * (qf + rf/2) / aspectScale
		y := -size * 1.5 * rf
		return x, y
	}
	x := size * 1.5 * qf
	y := -size * math.Sqrt(3) * (rf + qf/2) * aspectScale
	return x, y
}
