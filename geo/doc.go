// Package geo provides the spatial primitives shared by the map model and
// the terrain engine: geographic extents, spatial references, tile keys
// over the geodetic tiling profile, and level-of-detail ranges.
//
// All coordinates are geodetic degrees (longitude east-positive, latitude
// north-positive) unless stated otherwise. Types in this package are plain
// values; none of them carry locks or require cleanup.
package geo
