package engine

import (
	"math"

	"github.com/pkg/errors"
	"github.com/samanqayyum/ADS/internal/models"
	"gonum.org/v1/gonum/stat"
)

// Input is one labelled indicator fed to Correlate.
type Input struct {
	Label string
	Views *Views
}

// Correlate builds the Pearson correlation matrix between the inputs for a
// single country. Each input contributes the country's year series; the
// series are paired by position, so every input must share the same year
// axis. Only equal length is checked here.
//
// Each pair uses the years where both readings are present. The diagonal is
// 1, other entries are rounded to two decimals, and a pair with fewer than
// two common years or no variance is NaN.
func Correlate(country string, inputs []Input) (*models.CorrelationMatrix, error) {
	n := len(inputs)
	labels := make([]string, n)
	series := make([][]float64, n)
	for i, in := range inputs {
		s, err := in.Views.Series(country)
		if err != nil {
			return nil, errors.Wrapf(err, "correlate %s", in.Label)
		}
		if i > 0 && len(s) != len(series[0]) {
			return nil, errors.Wrapf(ErrMisaligned, "%s has %d years, %s has %d", in.Label, len(s), labels[0], len(series[0]))
		}
		labels[i] = in.Label
		series[i] = s
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := round2(pearson(series[i], series[j]))
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &models.CorrelationMatrix{Country: country, Labels: labels, Values: values}, nil
}

// pearson correlates x and y over the positions where both are present.
func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN()
	}
	return math.Max(-1, math.Min(1, r))
}

func round2(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
