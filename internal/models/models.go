package models

// Summary holds descriptive statistics for every country column of one
// indicator.
type Summary struct {
	Title   string        `json:"title"`
	Columns []ColumnStats `json:"columns"`
}

// ColumnStats describes one country across the year range. Missing
// readings are not counted; statistics that cannot be computed are NaN.
type ColumnStats struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Q25      float64 `json:"q25"`
	Q50      float64 `json:"q50"`
	Q75      float64 `json:"q75"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Kurtosis float64 `json:"kurtosis"`
	Skewness float64 `json:"skewness"`
}

// CorrelationMatrix is a square symmetric matrix over Labels for one country.
type CorrelationMatrix struct {
	Country string      `json:"country"`
	Labels  []string    `json:"labels"`
	Values  [][]float64 `json:"values"`
}

// Size returns the number of labels.
func (m *CorrelationMatrix) Size() int { return len(m.Labels) }

// At returns the coefficient between labels i and j.
func (m *CorrelationMatrix) At(i, j int) float64 { return m.Values[i][j] }
