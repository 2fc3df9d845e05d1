package model

import "time"

// Interval is a half-open time span [Start, End).  The end instant is
// excluded so that back-to-back bookings (one ending exactly when the
// next begins) never collide.  All instants are expected in UTC.
type Interval struct {
	Start time.Time // inclusive lower bound
	End   time.Time // exclusive upper bound
}

// NewInterval builds an interval from two instants, normalising both to UTC.
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start.UTC(), End: end.UTC()}
}

// Valid reports whether the interval is strictly ordered (Start < End).
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals intersect:
// a.Start < b.End && b.Start < a.End.  Touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether the instant t falls inside [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Clamp intersects the interval with bounds and returns the overlapping
// portion.  A zero-length (or inverted) result means there is no overlap.
func (i Interval) Clamp(bounds Interval) Interval {
	out := i
	if out.Start.Before(bounds.Start) {
		out.Start = bounds.Start
	}
	if out.End.After(bounds.End) {
		out.End = bounds.End
	}
	return out
}
