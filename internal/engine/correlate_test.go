package engine

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"gotest.tools/assert"
)

var testYears = []int{1991, 1992, 1993, 1994, 1995}

func spainInputs(t *testing.T, series ...[]float64) []Input {
	t.Helper()
	labels := []string{"CH4 Emission", "GDP", "Agr. Land", "Cer. Yield", "Pop. Growth", "EPC"}
	inputs := make([]Input, len(series))
	for i, s := range series {
		inputs[i] = Input{
			Label: labels[i],
			Views: buildViews(t, testYears, []string{"Algeria", "Spain"}, []float64{0, 0, 0, 0, 0}, s),
		}
	}
	return inputs
}

func TestCorrelate(t *testing.T) {
	gdp := []float64{10, 12, 11, 15, 20}
	methane := make([]float64, len(gdp))
	for i, g := range gdp {
		methane[i] = 2*g + 5
	}

	m, err := Correlate("Spain", spainInputs(t,
		methane,
		gdp,
		[]float64{5, 4, 3, 2, 1},
		[]float64{1, 3, 2, 5, 4},
		[]float64{-1, -2, -3, -4, -5},
		[]float64{2, 2, 3, 3, 4},
	))
	assert.NilError(t, err)

	assert.Equal(t, m.Country, "Spain")
	assert.Equal(t, m.Size(), 6)
	assert.DeepEqual(t, m.Labels, []string{"CH4 Emission", "GDP", "Agr. Land", "Cer. Yield", "Pop. Growth", "EPC"})

	assert.Equal(t, m.At(0, 1), 1.0)
	assert.Equal(t, m.At(2, 4), 1.0)

	for i := 0; i < m.Size(); i++ {
		assert.Equal(t, m.At(i, i), 1.0)
		for j := 0; j < m.Size(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i))
			v := m.At(i, j)
			assert.Assert(t, v >= -1 && v <= 1, "entry (%d,%d) = %v", i, j, v)
			assert.Equal(t, v, math.Round(v*100)/100)
		}
	}
}

func TestCorrelateNegativeAndRounded(t *testing.T) {
	m, err := Correlate("Spain", spainInputs(t,
		[]float64{1, 2, 3, 4, 5},
		[]float64{5, 4, 3, 2, 1},
		[]float64{1, 3, 2, 5, 4},
	))
	assert.NilError(t, err)

	assert.Equal(t, m.At(0, 1), -1.0)
	// r = 0.8 for (1..5) against (1,3,2,5,4).
	assert.Equal(t, m.At(0, 2), 0.8)
	assert.Equal(t, m.At(1, 2), -0.8)
}

func TestCorrelateMissingValues(t *testing.T) {
	nan := math.NaN()
	m, err := Correlate("Spain", spainInputs(t,
		[]float64{1, 2, nan, 4, 5},
		[]float64{2, 4, 100, 8, 10},
		[]float64{7, 7, 7, 7, 7},
		[]float64{nan, nan, nan, nan, 1},
	))
	assert.NilError(t, err)

	// The 1993 pair is skipped, the rest is perfectly linear.
	assert.Equal(t, m.At(0, 1), 1.0)
	// No variance.
	assert.Assert(t, math.IsNaN(m.At(0, 2)))
	assert.Equal(t, m.At(2, 2), 1.0)
	// A single common year.
	assert.Assert(t, math.IsNaN(m.At(1, 3)))
	assert.Equal(t, m.At(3, 3), 1.0)
}

func TestCorrelateErrors(t *testing.T) {
	t.Run("unknown country", func(t *testing.T) {
		_, err := Correlate("Chile", spainInputs(t, []float64{1, 2, 3, 4, 5}))
		assert.Assert(t, errors.Is(err, ErrUnknownCountry))
		assert.ErrorContains(t, err, "CH4 Emission")
	})

	t.Run("misaligned", func(t *testing.T) {
		inputs := spainInputs(t, []float64{1, 2, 3, 4, 5})
		inputs = append(inputs, Input{
			Label: "GDP",
			Views: buildViews(t, []int{1991, 1992}, []string{"Spain"}, []float64{1, 2}),
		})
		_, err := Correlate("Spain", inputs)
		assert.Assert(t, errors.Is(err, ErrMisaligned))
	})
}
