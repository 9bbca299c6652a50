// Package mapthin reduces a dense genetic map to the control points needed to
// reproduce it by linear interpolation within a caller-chosen error
// tolerance. The first and last records of a chromosome are always retained;
// interior records are dropped greedily from left to right whenever every
// record they stood in for stays within tolerance of the interpolated line.
package mapthin

import (
	"math"

	"github.com/carbocation/genetmap"
)

// coordinate pairs the accessor for one genetic coordinate with its
// interpolator, so the sex-averaged and sex-specific cases share one
// evaluation path.
type coordinate struct {
	value  func(genetmap.Record) float64
	interp func(a, b genetmap.Record, pos int) float64
}

var (
	cmCoordinate = coordinate{
		value:  func(r genetmap.Record) float64 { return r.CM },
		interp: genetmap.Interpolate,
	}
	cm2Coordinate = coordinate{
		value:  func(r genetmap.Record) float64 { return r.CM2.Float64 },
		interp: genetmap.Interpolate2,
	}
)

// Thin returns the records of seq that suffice to reconstruct every original
// genetic position to within tolerance centimorgans, along with residual
// statistics for the dropped records. seq must hold at least two records with
// strictly increasing physical positions; it is not modified. For
// sex-specific sequences both genetic coordinates must stay within tolerance
// over one shared set of retained physical positions.
//
// The scan is deterministic: among removable candidates the leftmost is
// always dropped first, and neighbor links are re-derived before the next
// candidate is evaluated, so a given input and tolerance always yield the
// same output.
//
// Thin is not idempotent. A record is retained on account of every record
// its removal would leave to interpolation, dropped ones included; an
// output fed back in no longer carries the dropped records, so a second
// run can reduce it further.
func Thin(seq genetmap.Sequence, tolerance float64) (genetmap.Sequence, Result, error) {
	if tolerance < 0 || math.IsNaN(tolerance) {
		return nil, Result{}, &InvalidToleranceError{Tolerance: tolerance}
	}
	if err := seq.Validate(); err != nil {
		return nil, Result{}, err
	}

	t := newThinner(seq, tolerance)
	t.run()

	return t.kept(), t.result(), nil
}

type thinner struct {
	seq       genetmap.Sequence
	tolerance float64
	coords    []coordinate

	// prev and next link the retained records by index into seq. Dropped
	// records stay addressable in seq, so the records covered by the merged
	// interval between kept neighbors a and b are exactly the indices in
	// (a, b).
	prev  []int
	next  []int
	dirty []bool
}

func newThinner(seq genetmap.Sequence, tolerance float64) *thinner {
	t := &thinner{
		seq:       seq,
		tolerance: tolerance,
		coords:    []coordinate{cmCoordinate},
		prev:      make([]int, len(seq)),
		next:      make([]int, len(seq)),
		dirty:     make([]bool, len(seq)),
	}
	if seq.SexSpecific() {
		t.coords = append(t.coords, cm2Coordinate)
	}

	for i := range seq {
		t.prev[i] = i - 1
		t.next[i] = i + 1
		t.dirty[i] = true
	}

	return t
}

// run sweeps the retained interior records left to right, dropping each
// removable candidate, until a full sweep drops nothing. A candidate found
// unremovable is revisited only after a drop widens its covering interval,
// which is what the dirty marks track.
func (t *thinner) run() {
	last := len(t.seq) - 1

	for {
		dropped := false
		for i := t.next[0]; i < last; i = t.next[i] {
			if !t.dirty[i] {
				continue
			}
			if !t.removable(i) {
				t.dirty[i] = false
				continue
			}

			a, b := t.prev[i], t.next[i]
			t.next[a] = b
			t.prev[b] = a
			t.dirty[a] = true
			t.dirty[b] = true
			dropped = true
		}
		if !dropped {
			return
		}
	}
}

// removable reports whether dropping record i keeps every record covered by
// the widened interval within tolerance of the line between i's kept
// neighbors, for every configured coordinate.
func (t *thinner) removable(i int) bool {
	a, b := t.prev[i], t.next[i]

	for r := a + 1; r < b; r++ {
		if t.residual(a, b, r) > t.tolerance {
			return false
		}
	}

	return true
}

// residual is the worst absolute interpolation error at covered record r when
// only the bracketing records a and b are kept.
func (t *thinner) residual(a, b, r int) float64 {
	worst := 0.0
	for _, c := range t.coords {
		err := math.Abs(c.interp(t.seq[a], t.seq[b], t.seq[r].Position) - c.value(t.seq[r]))
		if err > worst {
			worst = err
		}
	}

	return worst
}

// kept collects the retained records, in their original order, into a fresh
// Sequence.
func (t *thinner) kept() genetmap.Sequence {
	out := make(genetmap.Sequence, 0, 2)
	for i := 0; ; i = t.next[i] {
		out = append(out, t.seq[i])
		if i == len(t.seq)-1 {
			break
		}
	}

	return out
}

// result recomputes the residual of every dropped record against the final
// retained set.
func (t *thinner) result() Result {
	res := Result{Input: len(t.seq)}

	for a := 0; a != len(t.seq)-1; {
		b := t.next[a]
		for r := a + 1; r < b; r++ {
			res.Residuals = append(res.Residuals, t.residual(a, b, r))
		}
		res.Kept++
		a = b
	}
	res.Kept++ // the final record

	return res
}
