package geo

import "fmt"

// LevelUnbounded marks a LevelRange with no upper bound. It is an
// explicit sentinel, deliberately outside the valid level domain
// [0, MaxLevel], so it can never alias a real level.
const LevelUnbounded = -1

// LevelRange is an inclusive range of levels of detail. Max may be
// LevelUnbounded to cover every level at or above Min.
type LevelRange struct {
	Min, Max int
}

// FullLevelRange returns the range covering every valid level.
func FullLevelRange() LevelRange {
	return LevelRange{Min: 0, Max: LevelUnbounded}
}

// Contains reports whether the level lies within the range.
func (r LevelRange) Contains(level int) bool {
	if level < r.Min {
		return false
	}
	return r.Max == LevelUnbounded || level <= r.Max
}

// IsFull reports whether the range covers every valid level.
func (r LevelRange) IsFull() bool {
	return r.Min <= 0 && (r.Max == LevelUnbounded || r.Max >= MaxLevel)
}

// Normalized clamps Min to the valid domain and repairs inverted ranges
// by swapping the bounds. An unbounded Max is preserved.
func (r LevelRange) Normalized() LevelRange {
	if r.Min < 0 {
		r.Min = 0
	}
	if r.Max != LevelUnbounded && r.Max < r.Min {
		r.Min, r.Max = r.Max, r.Min
		if r.Min < 0 {
			r.Min = 0
		}
	}
	return r
}

// String returns the range as "[min..max]" with "∞" for an unbounded Max.
func (r LevelRange) String() string {
	if r.Max == LevelUnbounded {
		return fmt.Sprintf("[%d..∞]", r.Min)
	}
	return fmt.Sprintf("[%d..%d]", r.Min, r.Max)
}
