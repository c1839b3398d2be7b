package component

import (
	"math"
	"slices"
	"testing"
)

func TestIntGridCellCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b IntGridCell
		want int
	}{
		{"equal", IntGridCell{3}, IntGridCell{3}, 0},
		{"less", IntGridCell{1}, IntGridCell{2}, -1},
		{"greater", IntGridCell{2}, IntGridCell{1}, 1},
		{"empty_before_value", IntGridCell{0}, IntGridCell{1}, -1},
		{"negative_before_empty", IntGridCell{-2}, IntGridCell{0}, -1},
		{"extremes", IntGridCell{math.MinInt32}, IntGridCell{math.MaxInt32}, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Compare(tc.b); got != tc.want {
				t.Fatalf("%v.Compare(%v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
			if got := tc.b.Compare(tc.a); got != -tc.want {
				t.Fatalf("%v.Compare(%v) = %d, want %d", tc.b, tc.a, got, -tc.want)
			}
		})
	}

	cells := []IntGridCell{{3}, {0}, {-2}, {3}, {1}}
	slices.SortFunc(cells, IntGridCell.Compare)
	want := []IntGridCell{{-2}, {0}, {1}, {3}, {3}}
	if !slices.Equal(cells, want) {
		t.Fatalf("sorted = %v, want %v", cells, want)
	}
}
