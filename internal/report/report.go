// Package report prints statistics and correlation matrices to the console.
// The output is meant for reading, not parsing.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/labstack/gommon/color"
	"github.com/samanqayyum/ADS/internal/models"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Printer writes banners and tables to an io.Writer. Banners are coloured
// only when the writer is a terminal.
type Printer struct {
	out   io.Writer
	color *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	c := color.New()
	c.SetOutput(w)
	return &Printer{out: w, color: c}
}

// Summary prints the describe, median, kurtosis and skewness sections for
// one indicator, followed by a blank line.
func (p *Printer) Summary(s models.Summary) {
	p.banner("=====" + s.Title + "=====")

	p.banner("======Describe=====")
	headers := []string{""}
	for _, c := range s.Columns {
		headers = append(headers, c.Name)
	}
	rows := [][]string{
		statRow("count", s.Columns, func(c models.ColumnStats) float64 { return float64(c.Count) }),
		statRow("mean", s.Columns, func(c models.ColumnStats) float64 { return c.Mean }),
		statRow("std", s.Columns, func(c models.ColumnStats) float64 { return c.Std }),
		statRow("min", s.Columns, func(c models.ColumnStats) float64 { return c.Min }),
		statRow("25%", s.Columns, func(c models.ColumnStats) float64 { return c.Q25 }),
		statRow("50%", s.Columns, func(c models.ColumnStats) float64 { return c.Q50 }),
		statRow("75%", s.Columns, func(c models.ColumnStats) float64 { return c.Q75 }),
		statRow("max", s.Columns, func(c models.ColumnStats) float64 { return c.Max }),
	}
	p.table(headers, rows)

	p.banner("======median======")
	p.column(s.Columns, func(c models.ColumnStats) float64 { return c.Median })

	p.banner("======kurtosis======")
	p.column(s.Columns, func(c models.ColumnStats) float64 { return c.Kurtosis })

	p.banner("======skewness======")
	p.column(s.Columns, func(c models.ColumnStats) float64 { return c.Skewness })

	fmt.Fprintln(p.out)
}

// Correlation prints a correlation matrix under a banner naming the country.
func (p *Printer) Correlation(m *models.CorrelationMatrix) {
	p.banner("=====Correlation: " + m.Country + "=====")
	headers := append([]string{""}, m.Labels...)
	rows := make([][]string, m.Size())
	for i, label := range m.Labels {
		row := []string{label}
		for j := range m.Labels {
			row = append(row, fmt.Sprintf("%.2f", m.At(i, j)))
		}
		rows[i] = row
	}
	p.table(headers, rows)
	fmt.Fprintln(p.out)
}

func (p *Printer) banner(s string) {
	fmt.Fprintln(p.out, p.color.Bold(p.color.Cyan(s)))
}

func (p *Printer) column(cols []models.ColumnStats, get func(models.ColumnStats) float64) {
	rows := make([][]string, len(cols))
	for i, c := range cols {
		rows[i] = []string{c.Name, formatValue(get(c))}
	}
	p.table(nil, rows)
}

func (p *Printer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return cellStyle
			}
			return cellStyle.Align(lipgloss.Right)
		}).
		Rows(rows...)
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	fmt.Fprintln(p.out, t.Render())
}

func statRow(name string, cols []models.ColumnStats, get func(models.ColumnStats) float64) []string {
	row := []string{name}
	for _, c := range cols {
		row = append(row, formatValue(get(c)))
	}
	return row
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
