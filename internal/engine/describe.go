package engine

import (
	"math"
	"sort"

	"github.com/samanqayyum/ADS/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Describe summarises every country column of the year-indexed view.
func Describe(title string, v *Views) models.Summary {
	sum := models.Summary{Title: title}
	for _, country := range v.countries {
		s, _ := v.Series(country)
		st := describeSeries(s)
		st.Name = country
		sum.Columns = append(sum.Columns, st)
	}
	return sum
}

func describeSeries(series []float64) models.ColumnStats {
	x := make([]float64, 0, len(series))
	for _, f := range series {
		if !math.IsNaN(f) {
			x = append(x, f)
		}
	}
	nan := math.NaN()
	st := models.ColumnStats{
		Count:    len(x),
		Mean:     nan,
		Std:      nan,
		Min:      nan,
		Q25:      nan,
		Q50:      nan,
		Q75:      nan,
		Max:      nan,
		Median:   nan,
		Kurtosis: nan,
		Skewness: nan,
	}
	if len(x) == 0 {
		return st
	}
	sort.Float64s(x)

	st.Mean = stat.Mean(x, nil)
	if len(x) > 1 {
		st.Std = stat.StdDev(x, nil)
	}
	st.Min = floats.Min(x)
	st.Max = floats.Max(x)
	st.Q25 = quantile(x, 0.25)
	st.Q50 = quantile(x, 0.5)
	st.Q75 = quantile(x, 0.75)
	st.Median = st.Q50

	// Skewness and excess kurtosis are the biased population moments
	// m3/m2^1.5 and m4/m2^2-3. They are NaN when any year is missing or the
	// series has no variance.
	if len(x) == len(series) {
		if m2 := stat.Moment(2, x, nil); m2 > 0 {
			st.Skewness = stat.Moment(3, x, nil) / math.Pow(m2, 1.5)
			st.Kurtosis = stat.Moment(4, x, nil)/(m2*m2) - 3
		}
	}
	return st
}

// quantile interpolates linearly between the closest ranks of sorted x.
func quantile(x []float64, p float64) float64 {
	h := float64(len(x)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(x) {
		return x[len(x)-1]
	}
	return x[i] + (h-lo)*(x[i+1]-x[i])
}
