package geo

// SpatialReference describes the horizontal reference system of a map.
// Instances are immutable; compare them with Equals rather than pointer
// identity, since two maps may carry distinct but equivalent references.
type SpatialReference struct {
	name       string
	geographic bool
	world      Extent
}

// WGS84 returns the geographic WGS84 reference covering the full globe.
func WGS84() *SpatialReference {
	return &SpatialReference{
		name:       "wgs84",
		geographic: true,
		world:      Extent{West: -180, South: -90, East: 180, North: 90},
	}
}

// NewSpatialReference creates a named projected reference with the given
// world extent. Use WGS84 for the common geographic case.
func NewSpatialReference(name string, world Extent) *SpatialReference {
	return &SpatialReference{name: name, world: world}
}

// Name returns the reference's key, e.g. "wgs84".
func (s *SpatialReference) Name() string { return s.name }

// IsGeographic reports whether coordinates are geodetic degrees.
func (s *SpatialReference) IsGeographic() bool { return s.geographic }

// WorldExtent returns the full valid coordinate area of the reference.
func (s *SpatialReference) WorldExtent() Extent { return s.world }

// Equals reports whether two references describe the same system.
func (s *SpatialReference) Equals(o *SpatialReference) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.name == o.name && s.geographic == o.geographic && s.world == o.world
}
