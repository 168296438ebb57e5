package engine

import (
	"math"
	"testing"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// buildViews makes Views from per-country series; NaN becomes null.
func buildViews(t *testing.T, years []int, countries []string, series ...[]float64) *Views {
	t.Helper()
	mem := memory.NewGoAllocator()

	fields := []arrow.Field{{Name: YearField, Type: arrow.PrimitiveTypes.Int32}}
	for _, c := range countries {
		fields = append(fields, arrow.Field{Name: c, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
	}
	b := array.NewRecordBuilder(mem, arrow.NewSchema(fields, nil))
	defer b.Release()

	for _, y := range years {
		b.Field(0).(*array.Int32Builder).Append(int32(y))
	}
	for c, s := range series {
		fb := b.Field(c + 1).(*array.Float64Builder)
		for _, f := range s {
			if math.IsNaN(f) {
				fb.AppendNull()
			} else {
				fb.Append(f)
			}
		}
	}
	rec := b.NewRecord()
	defer rec.Release()

	v, err := NewViews(mem, rec)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(v.Release)
	return v
}
