package gather

import (
	"sort"
	"strings"
	"time"

	"github.com/viant/gather/loc"
)

// CellSlice is the part of one cell execution retained by a slice. Locations are relative to the cell text.
type CellSlice struct {
	Cell          Cell
	Slice         *loc.LocationSet
	ExecutionTime time.Time
}

// TextSlice returns the exact text ranges of the slice in position order, one range per line
func (s *CellSlice) TextSlice() string {
	lines := strings.Split(s.Cell.Text(), "\n")
	var ranges []string
	for _, location := range loc.Sorted(s.Slice) {
		for line := location.FirstLine; line <= location.LastLine; line++ {
			if line < 1 || line > len(lines) {
				continue
			}
			text := lines[line-1]
			end := len(text)
			if line == location.LastLine && location.LastColumn < end {
				end = location.LastColumn
			}
			begin := 0
			if line == location.FirstLine {
				begin = location.FirstColumn
			}
			if begin > end {
				begin = end
			}
			ranges = append(ranges, text[begin:end])
		}
	}
	return strings.Join(ranges, "\n")
}

// TextSliceLines returns every cell line touched by the slice, once, in line order
func (s *CellSlice) TextSliceLines() string {
	lines := strings.Split(s.Cell.Text(), "\n")
	var selected []string
	for _, line := range s.Lines() {
		if line >= 1 && line <= len(lines) {
			selected = append(selected, lines[line-1])
		}
	}
	return strings.Join(selected, "\n")
}

// Lines returns the cell lines touched by the slice in ascending order
func (s *CellSlice) Lines() []int {
	seen := map[int]bool{}
	var result []int
	for _, location := range s.Slice.Items() {
		for _, line := range location.Lines() {
			if !seen[line] {
				seen[line] = true
				result = append(result, line)
			}
		}
	}
	sort.Ints(result)
	return result
}

// SlicedExecution is the slice of the program behind one execution, grouped by contributing cell
type SlicedExecution struct {
	ExecutionTime time.Time
	CellSlices    []*CellSlice
}

// Merge combines e with others, uniting the slices of the same cell execution. Cell slices are
// ordered by execution count.
func (e *SlicedExecution) Merge(others ...*SlicedExecution) *SlicedExecution {
	var order []string
	merged := map[string]*CellSlice{}
	ret := &SlicedExecution{ExecutionTime: e.ExecutionTime}
	for _, execution := range append([]*SlicedExecution{e}, others...) {
		if execution.ExecutionTime.After(ret.ExecutionTime) {
			ret.ExecutionTime = execution.ExecutionTime
		}
		for _, cellSlice := range execution.CellSlices {
			eventID := cellSlice.Cell.ExecutionEventID()
			if prev, ok := merged[eventID]; ok {
				prev.Slice.Add(cellSlice.Slice.Items()...)
				continue
			}
			order = append(order, eventID)
			merged[eventID] = &CellSlice{
				Cell:          cellSlice.Cell.DeepCopy(),
				Slice:         cellSlice.Slice.Union(),
				ExecutionTime: cellSlice.ExecutionTime,
			}
		}
	}
	for _, eventID := range order {
		ret.CellSlices = append(ret.CellSlices, merged[eventID])
	}
	sortByExecutionCount(ret.CellSlices)
	return ret
}

// Text returns the lines of every cell slice in order
func (e *SlicedExecution) Text() string {
	texts := make([]string, 0, len(e.CellSlices))
	for _, cellSlice := range e.CellSlices {
		texts = append(texts, cellSlice.TextSliceLines())
	}
	return strings.Join(texts, "\n")
}

func sortByExecutionCount(cellSlices []*CellSlice) {
	sort.SliceStable(cellSlices, func(i, j int) bool {
		a, _ := cellSlices[i].Cell.ExecutionCount()
		b, _ := cellSlices[j].Cell.ExecutionCount()
		return a < b
	})
}
