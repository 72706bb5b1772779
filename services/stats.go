package services

import (
	"math"
	"sort"

	"bestseller-dashboard/models"
)

const (
	histogramBins = 10
	densityPoints = 100
)

func mean(xs []float64) float64 {
	var r runningMean
	for _, x := range xs {
		r.add(x)
	}
	return r.value()
}

// runningMean accumulates an incremental mean. The result is clamped to the
// observed [min, max] so rounding never pushes it outside the data.
type runningMean struct {
	n        int
	m        float64
	min, max float64
}

func (r *runningMean) add(x float64) {
	r.n++
	if r.n == 1 {
		r.m, r.min, r.max = x, x, x
		return
	}
	r.m += (x - r.m) / float64(r.n)
	r.min = math.Min(r.min, x)
	r.max = math.Max(r.max, x)
}

func (r *runningMean) value() float64 {
	if r.n == 0 {
		return math.NaN()
	}
	return math.Min(math.Max(r.m, r.min), r.max)
}

// sampleStdDev uses n-1 in the denominator.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func minMax(xs []float64) (float64, float64) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

// quantile interpolates linearly between closest ranks of an ascending slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func sortedCopy(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	sort.Float64s(out)
	return out
}

// Histogram splits values into equal-width bins spanning their range. The
// last bin is closed. A zero-width range is widened by 0.5 on each side.
func Histogram(values []float64, bins int) []models.HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo, hi := minMax(values)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)

	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Start = lo + float64(i)*width
		out[i].End = lo + float64(i+1)*width
	}
	out[bins-1].End = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}

// GaussianKDE estimates a density with Scott's bandwidth, sampled at
// evenly spaced points over [lo, hi]. It returns nil when the bandwidth is
// undefined (fewer than two values or no spread).
func GaussianKDE(values []float64, lo, hi float64, points int) []models.CurvePoint {
	n := len(values)
	sd := sampleStdDev(values)
	if n < 2 || sd == 0 || points < 2 || hi <= lo {
		return nil
	}

	bw := sd * math.Pow(float64(n), -0.2)
	norm := 1 / (float64(n) * bw * math.Sqrt(2*math.Pi))
	step := (hi - lo) / float64(points-1)

	out := make([]models.CurvePoint, points)
	for i := range out {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		out[i] = models.CurvePoint{X: x, Y: sum * norm}
	}
	return out
}
