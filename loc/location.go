package loc

import "fmt"

// Location is a source range. Lines are 1-based, columns are 0-based byte offsets with an
// exclusive last column.
type Location struct {
	FirstLine   int `yaml:"firstLine" json:"first_line"`
	FirstColumn int `yaml:"firstColumn" json:"first_column"`
	LastLine    int `yaml:"lastLine" json:"last_line"`
	LastColumn  int `yaml:"lastColumn" json:"last_column"`
}

// String returns first_line:first_column-last_line:last_column
func (l Location) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", l.FirstLine, l.FirstColumn, l.LastLine, l.LastColumn)
}

// IsZero returns true for the zero location
func (l Location) IsZero() bool {
	return l == Location{}
}

// Valid returns true if the location starts before it ends
func (l Location) Valid() bool {
	if l.FirstLine != l.LastLine {
		return l.FirstLine < l.LastLine
	}
	return l.FirstColumn <= l.LastColumn
}

// Shift moves the location by lines
func (l Location) Shift(lines int) Location {
	if l.IsZero() {
		return l
	}
	l.FirstLine += lines
	l.LastLine += lines
	return l
}

// Lines returns line numbers spanned by the location
func (l Location) Lines() []int {
	var result []int
	for line := l.FirstLine; line <= l.LastLine; line++ {
		result = append(result, line)
	}
	return result
}

// Within returns true if inner is nested in outer, boundaries included
func Within(inner, outer Location) bool {
	leftWithin := outer.FirstLine < inner.FirstLine ||
		(outer.FirstLine == inner.FirstLine && outer.FirstColumn <= inner.FirstColumn)
	rightWithin := outer.LastLine > inner.LastLine ||
		(outer.LastLine == inner.LastLine && outer.LastColumn >= inner.LastColumn)
	return leftWithin && rightWithin
}

// Intersect returns true if the start or end of either location falls inside the other, or
// if one contains the other.
func Intersect(a, b Location) bool {
	return positionWithin(a.FirstLine, a.FirstColumn, b) ||
		positionWithin(a.LastLine, a.LastColumn, b) ||
		positionWithin(b.FirstLine, b.FirstColumn, a) ||
		positionWithin(b.LastLine, b.LastColumn, a) ||
		Within(a, b) || Within(b, a)
}

func positionWithin(line, column int, l Location) bool {
	afterStart := line > l.FirstLine || (line == l.FirstLine && column >= l.FirstColumn)
	beforeEnd := line < l.LastLine || (line == l.LastLine && column <= l.LastColumn)
	return afterStart && beforeEnd
}
