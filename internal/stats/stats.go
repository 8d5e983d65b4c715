// Package stats numeric helpers for return series
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// TradingPeriods number of daily periods in a year
const TradingPeriods = 252

// Mean arithmetic mean, 0 for an empty series
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// StdDev sample standard deviation, 0 for fewer than two values
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// Correlation pearson correlation over the common most recent tail of both series.
// Returns 0 when either tail is constant or shorter than two values.
func Correlation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0
	}
	rho := stat.Correlation(a[len(a)-n:], b[len(b)-n:], nil)
	if math.IsNaN(rho) || math.IsInf(rho, 0) {
		return 0
	}
	return Clamp(rho, -1, 1)
}

// CovarianceMatrix sigma[i][j] = rho(i, j)*vol[i]*vol[j], the diagonal is vol[i]^2
func CovarianceMatrix(vol []float64, rho func(i, j int) float64) *mat.SymDense {
	n := len(vol)
	if n == 0 {
		return nil
	}
	cov := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cov.SetSym(i, i, vol[i]*vol[i])
		for j := i + 1; j < n; j++ {
			cov.SetSym(i, j, rho(i, j)*vol[i]*vol[j])
		}
	}
	return cov
}

// Rows copy of m as row slices, nil for a nil matrix
func Rows(m *mat.SymDense) [][]float64 {
	if m == nil {
		return nil
	}
	n := m.SymmetricDim()
	out := make([][]float64, n)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

// Annualize scales per-period mean and volatility to a year
func Annualize(mean, vol float64) (float64, float64) {
	return mean * TradingPeriods, vol * math.Sqrt(TradingPeriods)
}

// Normalize scales weights to sum to 1, nil when the sum is not positive
func Normalize(ws []float64) []float64 {
	sum := floats.Sum(ws)
	if sum <= 0 {
		return nil
	}
	out := make([]float64, len(ws))
	floats.ScaleTo(out, 1/sum, ws)
	return out
}

// Clamp x into [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// SafeDiv a/b, 0 when b is 0
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Round to the given number of decimals
func Round(x float64, places int) float64 {
	return scalar.Round(x, places)
}
