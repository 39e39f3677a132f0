package loc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithin(t *testing.T) {
	tests := []struct {
		description string
		inner       Location
		outer       Location
		expect      bool
	}{
		{
			description: "nested lines",
			inner:       Location{FirstLine: 2, FirstColumn: 4, LastLine: 2, LastColumn: 9},
			outer:       Location{FirstLine: 1, FirstColumn: 0, LastLine: 3, LastColumn: 0},
			expect:      true,
		},
		{
			description: "same span",
			inner:       Location{FirstLine: 1, FirstColumn: 0, LastLine: 1, LastColumn: 5},
			outer:       Location{FirstLine: 1, FirstColumn: 0, LastLine: 1, LastColumn: 5},
			expect:      true,
		},
		{
			description: "column before outer start",
			inner:       Location{FirstLine: 1, FirstColumn: 0, LastLine: 1, LastColumn: 5},
			outer:       Location{FirstLine: 1, FirstColumn: 1, LastLine: 1, LastColumn: 5},
			expect:      false,
		},
		{
			description: "ends after outer",
			inner:       Location{FirstLine: 2, FirstColumn: 0, LastLine: 4, LastColumn: 1},
			outer:       Location{FirstLine: 1, FirstColumn: 0, LastLine: 4, LastColumn: 0},
			expect:      false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expect, Within(tc.inner, tc.outer))
		})
	}
}

func TestWithin_Antisymmetric(t *testing.T) {
	locations := []Location{
		{FirstLine: 1, FirstColumn: 0, LastLine: 1, LastColumn: 5},
		{FirstLine: 1, FirstColumn: 2, LastLine: 1, LastColumn: 5},
		{FirstLine: 1, FirstColumn: 0, LastLine: 3, LastColumn: 0},
		{FirstLine: 2, FirstColumn: 4, LastLine: 2, LastColumn: 4},
		{FirstLine: 2, FirstColumn: 0, LastLine: 5, LastColumn: 7},
	}
	for _, a := range locations {
		for _, b := range locations {
			if Within(a, b) && Within(b, a) {
				assert.Equal(t, a, b)
			}
		}
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		description string
		a           Location
		b           Location
		expect      bool
	}{
		{
			description: "overlapping tail",
			a:           Location{FirstLine: 1, FirstColumn: 0, LastLine: 2, LastColumn: 3},
			b:           Location{FirstLine: 2, FirstColumn: 0, LastLine: 4, LastColumn: 0},
			expect:      true,
		},
		{
			description: "disjoint lines",
			a:           Location{FirstLine: 1, FirstColumn: 0, LastLine: 1, LastColumn: 5},
			b:           Location{FirstLine: 3, FirstColumn: 0, LastLine: 3, LastColumn: 5},
			expect:      false,
		},
		{
			description: "point inside statement",
			a:           Location{FirstLine: 3, FirstColumn: 2, LastLine: 3, LastColumn: 2},
			b:           Location{FirstLine: 3, FirstColumn: 0, LastLine: 3, LastColumn: 5},
			expect:      true,
		},
		{
			description: "seed covering everything",
			a:           Location{FirstLine: 1, FirstColumn: 1, LastLine: 10000, LastColumn: 10000},
			b:           Location{FirstLine: 12, FirstColumn: 0, LastLine: 12, LastColumn: 9},
			expect:      true,
		},
		{
			description: "same line disjoint columns",
			a:           Location{FirstLine: 1, FirstColumn: 0, LastLine: 1, LastColumn: 3},
			b:           Location{FirstLine: 1, FirstColumn: 5, LastLine: 1, LastColumn: 9},
			expect:      false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expect, Intersect(tc.a, tc.b))
			assert.Equal(t, tc.expect, Intersect(tc.b, tc.a))
		})
	}
}

func TestLocationSet(t *testing.T) {
	a := Location{FirstLine: 1, FirstColumn: 0, LastLine: 1, LastColumn: 5}
	b := Location{FirstLine: 2, FirstColumn: 0, LastLine: 2, LastColumn: 5}
	c := Location{FirstLine: 3, FirstColumn: 0, LastLine: 3, LastColumn: 5}

	set := NewLocationSet(a, b, a)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has(Location{FirstLine: 1, FirstColumn: 0, LastLine: 1, LastColumn: 5}))

	union := set.Union(NewLocationSet(b, c))
	assert.Equal(t, []Location{a, b, c}, union.Items())
	assert.Equal(t, 2, set.Len(), "union must not modify the receiver")

	assert.Equal(t, []Location{a}, union.Minus(NewLocationSet(b, c)).Items())
	assert.Equal(t, []Location{c}, union.Filter(func(l Location) bool { return l.FirstLine > 2 }).Items())
	assert.True(t, union.Equal(NewLocationSet(c, b, a)))
	assert.False(t, union.Equal(set))

	shifted := set.Map(func(l Location) Location { return l.Shift(10) })
	assert.Equal(t, []Location{a.Shift(10), b.Shift(10)}, Sorted(shifted))
	assert.Equal(t, "11:0-11:5", shifted.Items()[0].String())
}

func TestLocation_Valid(t *testing.T) {
	assert.True(t, Location{FirstLine: 1, FirstColumn: 4, LastLine: 2, LastColumn: 0}.Valid())
	assert.True(t, Location{FirstLine: 1, FirstColumn: 4, LastLine: 1, LastColumn: 4}.Valid())
	assert.False(t, Location{FirstLine: 2, FirstColumn: 0, LastLine: 1, LastColumn: 0}.Valid())
	assert.False(t, Location{FirstLine: 1, FirstColumn: 5, LastLine: 1, LastColumn: 4}.Valid())
}
