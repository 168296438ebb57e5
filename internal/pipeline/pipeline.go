// Package pipeline runs the indicator study end to end: load every export,
// print statistics, correlate per country and render the charts.
package pipeline

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"
	"github.com/samanqayyum/ADS/internal/chart"
	"github.com/samanqayyum/ADS/internal/config"
	"github.com/samanqayyum/ADS/internal/engine"
	"github.com/samanqayyum/ADS/internal/report"
)

// Pipeline holds the study and the sinks it writes to.
type Pipeline struct {
	cfg      *config.Study
	logger   *log.Logger
	printer  *report.Printer
	renderer *chart.Renderer
	sel      engine.Selection
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the operational logger. The default writes to stderr
// under the "indicators" prefix.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithOutput sends the statistics report to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.printer = report.NewPrinter(w) }
}

// WithRenderer replaces the chart renderer built from the study DPI.
func WithRenderer(r *chart.Renderer) Option {
	return func(p *Pipeline) { p.renderer = r }
}

func New(cfg *config.Study, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg: cfg,
		sel: engine.Selection{
			Years:         cfg.YearList(),
			Countries:     cfg.CountryNames(),
			SkipRows:      cfg.SkipRows,
			CountryColumn: cfg.CountryColumn,
		},
	}
	for _, o := range opts {
		o(p)
	}
	if p.logger == nil {
		p.logger = log.New("indicators")
		p.logger.SetOutput(os.Stderr)
	}
	if p.printer == nil {
		p.printer = report.NewPrinter(os.Stdout)
	}
	if p.renderer == nil {
		p.renderer = chart.NewRenderer(cfg.DPI)
	}
	return p
}

// Dataset maps indicator keys to their loaded views.
type Dataset map[string]*engine.Views

// Close releases every view.
func (d Dataset) Close() {
	for k, v := range d {
		v.Release()
		delete(d, k)
	}
}

func (d Dataset) get(key string) (*engine.Views, error) {
	v, ok := d[key]
	if !ok {
		return nil, errors.Errorf("indicator %q is not loaded", key)
	}
	return v, nil
}

// Run executes every step in order and stops at the first error.
func (p *Pipeline) Run() error {
	start := time.Now()

	ds, err := p.LoadAll()
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := p.PrintStats(ds); err != nil {
		return err
	}
	if err := p.Correlations(ds); err != nil {
		return err
	}
	if err := p.Charts(ds); err != nil {
		return err
	}

	p.logger.Infof("study complete in %v", time.Since(start))
	return nil
}

// LoadAll reads every configured indicator export. On error the views
// loaded so far are released.
func (p *Pipeline) LoadAll() (Dataset, error) {
	t0 := time.Now()
	ds := make(Dataset, len(p.cfg.Indicators))
	for _, ind := range p.cfg.Indicators {
		v, err := engine.LoadIndicator(p.cfg.InputPath(ind), p.sel)
		if err != nil {
			ds.Close()
			return nil, errors.Wrapf(err, "indicator %s", ind.Key)
		}
		ds[ind.Key] = v
		if missing := len(p.sel.Countries) - len(v.Countries()); missing > 0 {
			p.logger.Warnf("%s: %d selected countries not found", ind.File, missing)
		}
	}
	p.logger.Infof("loaded %d indicators in %v", len(ds), time.Since(t0))
	return ds, nil
}

// PrintStats prints the summary of every indicator in configured order.
func (p *Pipeline) PrintStats(ds Dataset) error {
	for _, ind := range p.cfg.Indicators {
		v, err := ds.get(ind.Key)
		if err != nil {
			return err
		}
		p.printer.Summary(engine.Describe(ind.Title, v))
	}
	return nil
}

// Correlations prints and renders the correlation heatmap of every
// configured country.
func (p *Pipeline) Correlations(ds Dataset) error {
	inds := p.cfg.CorrelationIndicators()
	inputs := make([]engine.Input, len(inds))
	for i, ind := range inds {
		v, err := ds.get(ind.Key)
		if err != nil {
			return err
		}
		inputs[i] = engine.Input{Label: ind.Label, Views: v}
	}

	for _, h := range p.cfg.Heatmaps {
		m, err := engine.Correlate(h.Country, inputs)
		if err != nil {
			return err
		}
		p.printer.Correlation(m)

		path := p.cfg.OutputPath(h.Country)
		if err := p.renderer.Heatmap(path, m, h.Palette); err != nil {
			return err
		}
		p.logger.Infof("wrote %s", path)
	}
	return nil
}

// Charts renders the configured line and bar charts.
func (p *Pipeline) Charts(ds Dataset) error {
	for _, c := range p.cfg.LineCharts {
		v, err := ds.get(c.Indicator)
		if err != nil {
			return err
		}
		spec, err := p.lineSpec(c, v)
		if err != nil {
			return err
		}
		path := p.cfg.OutputPath(c.Title)
		if err := p.renderer.Line(path, spec); err != nil {
			return err
		}
		p.logger.Infof("wrote %s", path)
	}

	for _, c := range p.cfg.BarCharts {
		v, err := ds.get(c.Indicator)
		if err != nil {
			return err
		}
		spec, err := barSpec(c, v)
		if err != nil {
			return err
		}
		path := p.cfg.OutputPath(c.Title)
		if err := p.renderer.Bars(path, spec); err != nil {
			return err
		}
		p.logger.Infof("wrote %s", path)
	}
	return nil
}

// lineSpec plots the year-indexed view: one line per country labelled by
// its short code.
func (p *Pipeline) lineSpec(c config.LineChart, v *engine.Views) (chart.LineSpec, error) {
	years := v.Years()
	x := make([]float64, len(years))
	for i, y := range years {
		x[i] = float64(y)
	}

	spec := chart.LineSpec{Title: c.Title, XLabel: "Years", YLabel: c.YLabel, X: x}
	for _, country := range v.Countries() {
		vals, err := v.Series(country)
		if err != nil {
			return chart.LineSpec{}, err
		}
		spec.Series = append(spec.Series, chart.Series{Name: p.cfg.ShortName(country), Values: vals})
	}
	return spec, nil
}

// barSpec plots the country-indexed view: one group per country, one bar
// per configured year.
func barSpec(c config.BarChart, v *engine.Views) (chart.BarSpec, error) {
	spec := chart.BarSpec{Title: c.Title, XLabel: "Countries", YLabel: c.YLabel, Categories: v.Countries()}
	for _, y := range c.Years {
		vals, err := v.Row(y)
		if err != nil {
			return chart.BarSpec{}, errors.Wrapf(err, "bar chart %q", c.Title)
		}
		spec.Series = append(spec.Series, chart.Series{Name: strconv.Itoa(y), Values: vals})
	}
	return spec, nil
}
