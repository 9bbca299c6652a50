package genetmap

import "sort"

// Interpolate estimates the genetic position at pos by linear proportion
// between records a and b: Y1 + (Y2 - Y1) / (X2 - X1) * (X3 - X1). The
// records must have distinct physical positions.
func Interpolate(a, b Record, pos int) float64 {
	return a.CM + (b.CM-a.CM)/float64(b.Position-a.Position)*float64(pos-a.Position)
}

// Interpolate2 is Interpolate for the second genetic coordinate of a
// sex-specific map.
func Interpolate2(a, b Record, pos int) float64 {
	return a.CM2.Float64 + (b.CM2.Float64-a.CM2.Float64)/float64(b.Position-a.Position)*float64(pos-a.Position)
}

// At returns the genetic position at an arbitrary physical position,
// interpolating between the two bracketing records. Positions outside the
// sequence's domain clamp to the boundary value, since extrapolating a
// recombination map is not meaningful.
func (s Sequence) At(pos int) float64 {
	return s.at(pos, Interpolate, func(r Record) float64 { return r.CM })
}

// At2 is At for the second genetic coordinate.
func (s Sequence) At2(pos int) float64 {
	return s.at(pos, Interpolate2, func(r Record) float64 { return r.CM2.Float64 })
}

func (s Sequence) at(pos int, interp func(a, b Record, pos int) float64, value func(Record) float64) float64 {
	// Index of the first record at or beyond pos.
	i := sort.Search(len(s), func(i int) bool { return s[i].Position >= pos })

	switch {
	case i == len(s):
		return value(s[len(s)-1])
	case s[i].Position == pos:
		return value(s[i])
	case i == 0:
		return value(s[0])
	}

	return interp(s[i-1], s[i], pos)
}
