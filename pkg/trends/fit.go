package trends

import (
	"gonum.org/v1/gonum/stat"
)

// Fit is an ordinary least squares line y = Intercept + Slope*x.
type Fit struct {
	Intercept float64 `json:"intercept" yaml:"intercept"`
	Slope     float64 `json:"slope"     yaml:"slope"`
	// From is the first x the fit covers.
	From int `json:"from" yaml:"from"`
}

// At evaluates the line.
func (f Fit) At(x int) float64 {
	return f.Intercept + f.Slope*float64(x)
}

// FitLine fits values[from:] against their indices.
func FitLine(values []float64, from int) Fit {
	from = max(0, min(from, len(values)))

	ys := values[from:]
	xs := make([]float64, len(ys))

	for i := range xs {
		xs[i] = float64(from + i)
	}

	if len(ys) < MinPoints {
		f := Fit{From: from}
		if len(ys) == 1 {
			f.Intercept = ys[0]
		}

		return f
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	return Fit{Intercept: intercept, Slope: slope, From: from}
}
