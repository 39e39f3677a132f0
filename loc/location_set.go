package loc

import "sort"

// LocationSet is a set of locations identified by their four coordinates
type LocationSet = Set[Location, Location]

func locationKey(l Location) Location { return l }

// NewLocationSet creates a location set
func NewLocationSet(locations ...Location) *LocationSet {
	return NewSet(locationKey, locations...)
}

// Sorted returns locations ordered by position
func Sorted(set *LocationSet) []Location {
	result := append([]Location(nil), set.Items()...)
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.FirstLine != b.FirstLine {
			return a.FirstLine < b.FirstLine
		}
		if a.FirstColumn != b.FirstColumn {
			return a.FirstColumn < b.FirstColumn
		}
		if a.LastLine != b.LastLine {
			return a.LastLine < b.LastLine
		}
		return a.LastColumn < b.LastColumn
	})
	return result
}

// ContainsWithin returns true if location is nested in any member of set
func ContainsWithin(set *LocationSet, location Location) bool {
	return set.Some(func(outer Location) bool { return Within(location, outer) })
}

// Intersects returns true if location intersects any member of set
func Intersects(set *LocationSet, location Location) bool {
	return set.Some(func(other Location) bool { return Intersect(location, other) })
}
