package surface

import (
	"math"

	"github.com/unixpickle/essentials"
)

// GaussianTruncate is the number of standard deviations
// at which the smoothing kernel is cut off.
const GaussianTruncate = 4.0

// GaussianKernel creates a normalized 1D Gaussian kernel
// with radius round(truncate*sigma).
func GaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(GaussianTruncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// Smooth applies a separable Gaussian filter to every
// node of g, first along columns and then along rows.
//
// Borders are handled by mirroring the grid about its
// edges, so a constant grid stays constant.
func Smooth(g *Grid, sigma float64, numWorkers int) *Grid {
	res := g.Clone()
	if sigma <= 0 {
		return res
	}
	kernel := GaussianKernel(sigma)

	tmp := make([]float64, len(g.Values))
	essentials.ConcurrentMap(numWorkers, g.Cols, func(c int) {
		column := make([]float64, g.Rows)
		for r := range column {
			column[r] = g.Values[r*g.Cols+c]
		}
		out := convolveReflect(column, kernel)
		for r, v := range out {
			tmp[r*g.Cols+c] = v
		}
	})
	essentials.ConcurrentMap(numWorkers, g.Rows, func(r int) {
		row := tmp[r*g.Cols : (r+1)*g.Cols]
		copy(res.Values[r*g.Cols:], convolveReflect(row, kernel))
	})
	return res
}

func convolveReflect(signal, kernel []float64) []float64 {
	radius := len(kernel) / 2
	res := make([]float64, len(signal))
	for i := range signal {
		var sum float64
		for k, w := range kernel {
			sum += w * signal[reflectIndex(i+k-radius, len(signal))]
		}
		res[i] = sum
	}
	return res
}

// reflectIndex maps i into [0, n) by mirroring about the
// edges, repeating the edge sample (d c b a | a b c d).
func reflectIndex(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i - 1
	}
	return i
}
