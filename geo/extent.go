package geo

import (
	"fmt"
	"math"
)

// Extent is an axis-aligned geographic bounding box in degrees.
// West/East are longitudes, South/North are latitudes. The zero Extent is
// treated as empty (see IsValid).
type Extent struct {
	West, South, East, North float64
}

// NewExtent creates an extent from west, south, east, north bounds.
func NewExtent(west, south, east, north float64) Extent {
	return Extent{West: west, South: south, East: east, North: north}
}

// IsValid reports whether the extent covers a non-degenerate area.
func (e Extent) IsValid() bool {
	return e.East > e.West && e.North > e.South
}

// Width returns the longitudinal span in degrees.
func (e Extent) Width() float64 { return e.East - e.West }

// Height returns the latitudinal span in degrees.
func (e Extent) Height() float64 { return e.North - e.South }

// Center returns the midpoint of the extent.
func (e Extent) Center() (lon, lat float64) {
	return (e.West + e.East) / 2, (e.South + e.North) / 2
}

// Contains reports whether the point (lon, lat) lies within the extent.
// Points on the boundary are inside.
func (e Extent) Contains(lon, lat float64) bool {
	return e.IsValid() &&
		lon >= e.West && lon <= e.East &&
		lat >= e.South && lat <= e.North
}

// ContainsExtent reports whether o lies entirely within e.
func (e Extent) ContainsExtent(o Extent) bool {
	return e.IsValid() && o.IsValid() &&
		o.West >= e.West && o.East <= e.East &&
		o.South >= e.South && o.North <= e.North
}

// Intersects reports whether the two extents share any area.
// Extents that merely touch at an edge do not intersect.
func (e Extent) Intersects(o Extent) bool {
	if !e.IsValid() || !o.IsValid() {
		return false
	}
	return e.West < o.East && o.West < e.East &&
		e.South < o.North && o.South < e.North
}

// Intersection returns the overlapping area of two extents, or the zero
// Extent if they do not intersect.
func (e Extent) Intersection(o Extent) Extent {
	if !e.Intersects(o) {
		return Extent{}
	}
	return Extent{
		West:  math.Max(e.West, o.West),
		South: math.Max(e.South, o.South),
		East:  math.Min(e.East, o.East),
		North: math.Min(e.North, o.North),
	}
}

// Union returns the smallest extent containing both extents. An invalid
// operand is ignored; the union of two invalid extents is the zero Extent.
func (e Extent) Union(o Extent) Extent {
	switch {
	case !e.IsValid():
		return o
	case !o.IsValid():
		return e
	}
	return Extent{
		West:  math.Min(e.West, o.West),
		South: math.Min(e.South, o.South),
		East:  math.Max(e.East, o.East),
		North: math.Max(e.North, o.North),
	}
}

// String returns the extent as "[W, S, E, N]".
func (e Extent) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", e.West, e.South, e.East, e.North)
}
