package gather

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gather/loc"
)

func span(firstLine, firstColumn, lastLine, lastColumn int) loc.Location {
	return loc.Location{FirstLine: firstLine, FirstColumn: firstColumn, LastLine: lastLine, LastColumn: lastColumn}
}

func pairs(execution *SlicedExecution) []string {
	var result []string
	for _, cellSlice := range execution.CellSlices {
		for _, location := range cellSlice.Slice.Items() {
			result = append(result, fmt.Sprintf("%s@%s", cellSlice.Cell.ExecutionEventID(), location))
		}
	}
	sort.Strings(result)
	return result
}

func TestCellSlice_Text(t *testing.T) {
	cell := NewCell("if x:\n    y = 1\nz = 2\nw = 3", WithExecutionCount(1))
	cellSlice := &CellSlice{
		Cell:  cell,
		Slice: loc.NewLocationSet(span(3, 0, 3, 5), span(1, 3, 1, 4), span(2, 4, 2, 9), span(1, 0, 2, 9)),
	}
	assert.Equal(t, "if x:\n    y = 1\nx\ny = 1\nz = 2", cellSlice.TextSlice())
	assert.Equal(t, "if x:\n    y = 1\nz = 2", cellSlice.TextSliceLines())
	assert.Equal(t, []int{1, 2, 3}, cellSlice.Lines())
}

func TestSlicedExecution_Merge(t *testing.T) {
	first := NewCell("a = 1\nb = 2", WithExecutionCount(1))
	second := NewCell("c = a\nd = b", WithExecutionCount(2))
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Minute)

	left := &SlicedExecution{ExecutionTime: older, CellSlices: []*CellSlice{
		{Cell: first, Slice: loc.NewLocationSet(span(1, 0, 1, 5)), ExecutionTime: older},
		{Cell: second, Slice: loc.NewLocationSet(span(1, 0, 1, 5)), ExecutionTime: older},
	}}
	right := &SlicedExecution{ExecutionTime: newer, CellSlices: []*CellSlice{
		{Cell: second, Slice: loc.NewLocationSet(span(2, 0, 2, 5)), ExecutionTime: older},
		{Cell: first, Slice: loc.NewLocationSet(span(2, 0, 2, 5)), ExecutionTime: older},
	}}

	t.Run("commutative", func(t *testing.T) {
		assert.Equal(t, pairs(left.Merge(right)), pairs(right.Merge(left)))
	})

	t.Run("idempotent", func(t *testing.T) {
		assert.Equal(t, pairs(left), pairs(left.Merge(left)))
	})

	t.Run("ordered by execution count", func(t *testing.T) {
		merged := right.Merge(left)
		assert.Len(t, merged.CellSlices, 2)
		assert.Equal(t, first.ExecutionEventID(), merged.CellSlices[0].Cell.ExecutionEventID())
		assert.Equal(t, "a = 1\nb = 2\nc = a\nd = b", merged.Text())
		assert.Equal(t, newer, merged.ExecutionTime)
	})

	t.Run("inputs are left intact", func(t *testing.T) {
		left.Merge(right)
		assert.Equal(t, 1, left.CellSlices[0].Slice.Len())
		assert.Equal(t, 1, right.CellSlices[0].Slice.Len())
	})
}
