package engine

import (
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/pkg/errors"
)

// Selection describes the slice of an indicator export to keep.
type Selection struct {
	// Years are the year columns to keep, in output row order.
	Years []int
	// Countries are matched against CountryColumn. Countries missing from
	// the file are skipped without error.
	Countries []string
	// SkipRows is the number of preamble lines before the header.
	SkipRows int
	// CountryColumn defaults to "Country Name".
	CountryColumn string
	// Allocator defaults to memory.DefaultAllocator.
	Allocator memory.Allocator
}

func (s Selection) allocator() memory.Allocator {
	if s.Allocator == nil {
		return memory.DefaultAllocator
	}
	return s.Allocator
}

func (s Selection) countryColumn() string {
	if s.CountryColumn == "" {
		return "Country Name"
	}
	return s.CountryColumn
}

// LoadIndicator reads one World Bank export and reshapes it into Views.
func LoadIndicator(path string, sel Selection) (*Views, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	v, err := ReadIndicator(f, sel)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return v, nil
}

// ReadIndicator is LoadIndicator over an already open export.
//
// Rows are kept when their country is selected, in file order. Only the
// selected year columns are kept; every other column is dropped. Empty or
// unparsable cells become nulls. Nothing is imputed and nothing is dropped
// for being missing.
func ReadIndicator(r io.Reader, sel Selection) (*Views, error) {
	cr, err := newExportReader(r, sel.SkipRows)
	if err != nil {
		return nil, err
	}

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	countryIdx, yearIdx, err := locateColumns(header, sel.countryColumn(), sel.Years)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(sel.Countries))
	for _, c := range sel.Countries {
		wanted[c] = true
	}

	type row struct {
		country string
		values  []float64
		valid   []bool
	}
	var rows []row

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read row")
		}
		if countryIdx >= len(rec) {
			continue
		}
		name := strings.TrimSpace(rec[countryIdx])
		if !wanted[name] {
			continue
		}

		rw := row{
			country: name,
			values:  make([]float64, len(yearIdx)),
			valid:   make([]bool, len(yearIdx)),
		}
		for i, col := range yearIdx {
			if col >= len(rec) {
				continue
			}
			cell := strings.TrimSpace(rec[col])
			if cell == "" {
				continue
			}
			if f, err := strconv.ParseFloat(cell, 64); err == nil {
				rw.values[i] = f
				rw.valid[i] = true
			}
		}
		rows = append(rows, rw)
	}

	// Year-indexed record: one row per year, one column per kept country.
	fields := make([]arrow.Field, 0, len(rows)+1)
	fields = append(fields, arrow.Field{Name: YearField, Type: arrow.PrimitiveTypes.Int32})
	for _, rw := range rows {
		fields = append(fields, arrow.Field{Name: rw.country, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
	}

	mem := sel.allocator()
	b := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer b.Release()

	yb := b.Field(0).(*array.Int32Builder)
	for _, y := range sel.Years {
		yb.Append(int32(y))
	}
	for c, rw := range rows {
		fb := b.Field(c + 1).(*array.Float64Builder)
		for i := range sel.Years {
			if rw.valid[i] {
				fb.Append(rw.values[i])
			} else {
				fb.AppendNull()
			}
		}
	}

	byYear := b.NewRecord()
	defer byYear.Release()
	return NewViews(mem, byYear)
}

func locateColumns(header []string, countryColumn string, years []int) (int, []int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var missing []string
	countryIdx, ok := pos[countryColumn]
	if !ok {
		missing = append(missing, strconv.Quote(countryColumn))
	}
	yearIdx := make([]int, len(years))
	for i, y := range years {
		label := strconv.Itoa(y)
		idx, ok := pos[label]
		if !ok {
			missing = append(missing, strconv.Quote(label))
			continue
		}
		yearIdx[i] = idx
	}
	if len(missing) > 0 {
		return 0, nil, errors.Wrap(ErrMissingColumn, strings.Join(missing, ", "))
	}
	return countryIdx, yearIdx, nil
}
