// internal/config/config.go
//
// This package holds the study configuration: which countries, which years,
// which indicator files and which charts. The values live in defaults.yaml,
// which is compiled into the binary. There are no flags or environment
// overrides; changing the study means changing that document.

package config

import (
	_ "embed"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Parse when the document is inconsistent.
var ErrInvalidConfig = errors.New("invalid configuration")

// Version is the only study document version Parse understands.
const Version = 1

//go:embed defaults.yaml
var defaultStudyYAML []byte

// Country is one selected country. Short is the legend label.
type Country struct {
	Name  string `yaml:"name"`
	Short string `yaml:"short"`
}

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Indicator ties an indicator key to its source file and display names.
type Indicator struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Label string `yaml:"label"`
	File  string `yaml:"file"`
}

// Heatmap requests a correlation heatmap for one country.
type Heatmap struct {
	Country string `yaml:"country"`
	Palette string `yaml:"palette"`
}

// LineChart plots every country of one indicator across the year range.
type LineChart struct {
	Indicator string `yaml:"indicator"`
	Title     string `yaml:"title"`
	YLabel    string `yaml:"ylabel"`
}

// BarChart plots a subset of years per country for one indicator.
type BarChart struct {
	Indicator string `yaml:"indicator"`
	Title     string `yaml:"title"`
	YLabel    string `yaml:"ylabel"`
	Years     []int  `yaml:"years"`
}

// Study models defaults.yaml.
type Study struct {
	Version       int         `yaml:"version"`
	SkipRows      int         `yaml:"skip_rows"`
	CountryColumn string      `yaml:"country_column"`
	InputDir      string      `yaml:"input_dir"`
	OutputDir     string      `yaml:"output_dir"`
	DPI           int         `yaml:"dpi"`
	Years         YearRange   `yaml:"years"`
	Countries     []Country   `yaml:"countries"`
	Indicators    []Indicator `yaml:"indicators"`
	Correlation   []string    `yaml:"correlation"`
	Heatmaps      []Heatmap   `yaml:"heatmaps"`
	LineCharts    []LineChart `yaml:"line_charts"`
	BarCharts     []BarChart  `yaml:"bar_charts"`
}

// Default returns the study compiled into the binary.
func Default() (*Study, error) {
	return Parse(defaultStudyYAML)
}

// Parse decodes and validates a study document.
func Parse(data []byte) (*Study, error) {
	var s Study
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decode study")
	}
	if s.Version == 0 {
		s.Version = Version
	}
	if s.CountryColumn == "" {
		s.CountryColumn = "Country Name"
	}
	if s.InputDir == "" {
		s.InputDir = "."
	}
	if s.OutputDir == "" {
		s.OutputDir = "."
	}
	if s.DPI == 0 {
		s.DPI = 300
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Study) validate() error {
	if s.Version != Version {
		return errors.Wrapf(ErrInvalidConfig, "unsupported version %d", s.Version)
	}
	if s.SkipRows < 0 {
		return errors.Wrapf(ErrInvalidConfig, "skip_rows %d is negative", s.SkipRows)
	}
	if s.Years.From > s.Years.To {
		return errors.Wrapf(ErrInvalidConfig, "year range %d..%d is empty", s.Years.From, s.Years.To)
	}
	if len(s.Countries) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no countries")
	}
	if len(s.Indicators) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no indicators")
	}

	seen := make(map[string]bool, len(s.Indicators))
	for _, ind := range s.Indicators {
		if ind.Key == "" || ind.File == "" {
			return errors.Wrapf(ErrInvalidConfig, "indicator %q needs a key and a file", ind.Title)
		}
		if seen[ind.Key] {
			return errors.Wrapf(ErrInvalidConfig, "duplicate indicator %q", ind.Key)
		}
		seen[ind.Key] = true
	}

	if len(s.Correlation) != 6 {
		return errors.Wrapf(ErrInvalidConfig, "correlation needs 6 indicators, got %d", len(s.Correlation))
	}
	for _, key := range s.Correlation {
		if !seen[key] {
			return errors.Wrapf(ErrInvalidConfig, "correlation: unknown indicator %q", key)
		}
	}

	names := s.CountryNames()
	for _, h := range s.Heatmaps {
		if !slices.Contains(names, h.Country) {
			return errors.Wrapf(ErrInvalidConfig, "heatmap: country %q is not selected", h.Country)
		}
	}
	for _, c := range s.LineCharts {
		if !seen[c.Indicator] {
			return errors.Wrapf(ErrInvalidConfig, "line chart %q: unknown indicator %q", c.Title, c.Indicator)
		}
	}
	for _, c := range s.BarCharts {
		if !seen[c.Indicator] {
			return errors.Wrapf(ErrInvalidConfig, "bar chart %q: unknown indicator %q", c.Title, c.Indicator)
		}
		for _, y := range c.Years {
			if y < s.Years.From || y > s.Years.To {
				return errors.Wrapf(ErrInvalidConfig, "bar chart %q: year %d outside %d..%d", c.Title, y, s.Years.From, s.Years.To)
			}
		}
	}
	return nil
}

// YearList returns every year of the range in order.
func (s *Study) YearList() []int {
	years := make([]int, 0, s.Years.To-s.Years.From+1)
	for y := s.Years.From; y <= s.Years.To; y++ {
		years = append(years, y)
	}
	return years
}

func (s *Study) CountryNames() []string {
	names := make([]string, len(s.Countries))
	for i, c := range s.Countries {
		names[i] = c.Name
	}
	return names
}

// ShortName returns the legend label for a country, or the name itself.
func (s *Study) ShortName(name string) string {
	for _, c := range s.Countries {
		if c.Name == name && c.Short != "" {
			return c.Short
		}
	}
	return name
}

// Indicator looks up an indicator by key.
func (s *Study) Indicator(key string) (Indicator, bool) {
	i := slices.IndexFunc(s.Indicators, func(ind Indicator) bool { return ind.Key == key })
	if i < 0 {
		return Indicator{}, false
	}
	return s.Indicators[i], true
}

// CorrelationIndicators returns the indicators in correlation matrix order.
func (s *Study) CorrelationIndicators() []Indicator {
	out := make([]Indicator, 0, len(s.Correlation))
	for _, key := range s.Correlation {
		if ind, ok := s.Indicator(key); ok {
			out = append(out, ind)
		}
	}
	return out
}

// InputPath is where the CSV export of ind is expected.
func (s *Study) InputPath(ind Indicator) string {
	return filepath.Join(s.InputDir, ind.File)
}

// OutputPath is the PNG file for a chart: its title with a .png suffix.
func (s *Study) OutputPath(title string) string {
	return filepath.Join(s.OutputDir, title+".png")
}
