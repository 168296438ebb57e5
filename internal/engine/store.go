package engine

import (
	"math"
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/pkg/errors"
)

const (
	// YearField is the leading column of the year-indexed record.
	YearField = "year"
	// CountryField is the leading column of the country-indexed record.
	CountryField = "country"
)

// Views holds one indicator in two shapes backed by arrow records.
//
// ByYear has a YearField int32 column followed by one nullable float64 column
// per country. ByCountry has a CountryField string column followed by one
// nullable float64 column per year, named by the year label. ByCountry is
// always the transpose of ByYear. Missing readings are nulls in both.
type Views struct {
	ByYear    arrow.Record
	ByCountry arrow.Record

	years     []int
	countries []string
}

// NewViews wraps a year-indexed record and derives its transpose.
// It retains byYear; callers keep ownership of their own reference.
func NewViews(mem memory.Allocator, byYear arrow.Record) (*Views, error) {
	if byYear.NumCols() == 0 || byYear.ColumnName(0) != YearField {
		return nil, errors.Errorf("year-indexed record must start with a %q column", YearField)
	}
	yearCol, ok := byYear.Column(0).(*array.Int32)
	if !ok {
		return nil, errors.Errorf("%q column has type %s, want int32", YearField, byYear.Column(0).DataType())
	}

	v := &Views{
		years:     make([]int, yearCol.Len()),
		countries: make([]string, 0, byYear.NumCols()-1),
	}
	for i := range v.years {
		v.years[i] = int(yearCol.Value(i))
	}
	for i := 1; i < int(byYear.NumCols()); i++ {
		v.countries = append(v.countries, byYear.ColumnName(i))
	}

	byCountry, err := Transpose(mem, byYear)
	if err != nil {
		return nil, err
	}
	byYear.Retain()
	v.ByYear = byYear
	v.ByCountry = byCountry
	return v, nil
}

// Years returns the row keys of the year-indexed view.
func (v *Views) Years() []int { return append([]int(nil), v.years...) }

// Countries returns the columns of the year-indexed view in source row order.
func (v *Views) Countries() []string { return append([]string(nil), v.countries...) }

// Series returns the readings of one country ordered by year. Missing
// readings are NaN.
func (v *Views) Series(country string) ([]float64, error) {
	idx := v.ByYear.Schema().FieldIndices(country)
	if len(idx) == 0 || idx[0] == 0 {
		return nil, errors.Wrapf(ErrUnknownCountry, "%q", country)
	}
	return floatsOf(v.ByYear.Column(idx[0])), nil
}

// Row returns the readings of every country for one year, in country order.
func (v *Views) Row(year int) ([]float64, error) {
	idx := v.ByCountry.Schema().FieldIndices(strconv.Itoa(year))
	if len(idx) == 0 || idx[0] == 0 {
		return nil, errors.Wrapf(ErrMissingColumn, "year %d", year)
	}
	return floatsOf(v.ByCountry.Column(idx[0])), nil
}

// Release drops both records.
func (v *Views) Release() {
	if v.ByYear != nil {
		v.ByYear.Release()
		v.ByYear = nil
	}
	if v.ByCountry != nil {
		v.ByCountry.Release()
		v.ByCountry = nil
	}
}

// Transpose turns a year-indexed record into the country-indexed one.
// Values are copied cell by cell, nulls stay null.
func Transpose(mem memory.Allocator, byYear arrow.Record) (arrow.Record, error) {
	yearCol, ok := byYear.Column(0).(*array.Int32)
	if !ok {
		return nil, errors.Errorf("%q column has type %s, want int32", YearField, byYear.Column(0).DataType())
	}

	fields := make([]arrow.Field, 0, yearCol.Len()+1)
	fields = append(fields, arrow.Field{Name: CountryField, Type: arrow.BinaryTypes.String})
	for i := 0; i < yearCol.Len(); i++ {
		fields = append(fields, arrow.Field{
			Name:     strconv.Itoa(int(yearCol.Value(i))),
			Type:     arrow.PrimitiveTypes.Float64,
			Nullable: true,
		})
	}

	b := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer b.Release()

	names := b.Field(0).(*array.StringBuilder)
	for c := 1; c < int(byYear.NumCols()); c++ {
		names.Append(byYear.ColumnName(c))
		col, ok := byYear.Column(c).(*array.Float64)
		if !ok {
			return nil, errors.Errorf("column %q has type %s, want float64", byYear.ColumnName(c), byYear.Column(c).DataType())
		}
		for r := 0; r < col.Len(); r++ {
			fb := b.Field(r + 1).(*array.Float64Builder)
			if col.IsNull(r) {
				fb.AppendNull()
			} else {
				fb.Append(col.Value(r))
			}
		}
	}
	return b.NewRecord(), nil
}

func floatsOf(col arrow.Array) []float64 {
	fc := col.(*array.Float64)
	out := make([]float64, fc.Len())
	for i := range out {
		if fc.IsNull(i) {
			out[i] = math.NaN()
		} else {
			out[i] = fc.Value(i)
		}
	}
	return out
}
