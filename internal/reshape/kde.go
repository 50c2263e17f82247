package reshape

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// kdePoints is the support resolution of the density curve.
const kdePoints = 300

// KDE estimates a gaussian kernel density over vals, sampled on an evenly
// spaced support across the sample range. NaN values are dropped.
func KDE(vals []float64) (xs, ys []float64, err error) {
	clean := dropNaN(vals)
	if len(clean) < 2 {
		return nil, nil, fmt.Errorf("reshape: density estimation needs at least two values, got %d", len(clean))
	}
	sample := stats.Sample{Xs: clean}
	lo, hi := sample.Bounds()
	if lo == hi {
		return nil, nil, fmt.Errorf("reshape: density estimation needs varying values; all equal %g", lo)
	}
	kde := stats.KDE{
		Sample:    sample,
		Bandwidth: stats.BandwidthScott(sample),
	}
	xs = vec.Linspace(lo, hi, kdePoints)
	ys = vec.Map(kde.PDF, xs)
	return xs, ys, nil
}
