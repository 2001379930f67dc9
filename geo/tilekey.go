package geo

import "fmt"

// MaxLevel is the deepest addressable level of detail. It is a real,
// valid level — never reuse it as an "unbounded" marker; that is what
// [LevelUnbounded] is for.
const MaxLevel = 30

// TileKey addresses one tile of the geodetic tiling profile: two tiles at
// level 0 (west and east hemispheres), each subdividing into four children
// per level. X grows eastward, Y grows southward from the north edge.
type TileKey struct {
	Level int
	X, Y  int
}

// TilesAtLevel returns the grid dimensions at the given level.
func TilesAtLevel(level int) (cols, rows int) {
	return 2 << level, 1 << level
}

// Valid reports whether the key addresses a tile inside the profile.
func (k TileKey) Valid() bool {
	if k.Level < 0 || k.Level > MaxLevel {
		return false
	}
	cols, rows := TilesAtLevel(k.Level)
	return k.X >= 0 && k.X < cols && k.Y >= 0 && k.Y < rows
}

// Extent returns the geographic area covered by the tile within the given
// world extent. Pass the map's SpatialReference world extent.
func (k TileKey) Extent(world Extent) Extent {
	cols, rows := TilesAtLevel(k.Level)
	w := world.Width() / float64(cols)
	h := world.Height() / float64(rows)
	west := world.West + float64(k.X)*w
	north := world.North - float64(k.Y)*h
	return Extent{West: west, South: north - h, East: west + w, North: north}
}

// Child returns one of the four children of the tile. Quadrants are
// numbered 0..3 as (west/east, north/south): 0=NW, 1=NE, 2=SW, 3=SE.
func (k TileKey) Child(quadrant int) TileKey {
	return TileKey{
		Level: k.Level + 1,
		X:     k.X*2 + quadrant%2,
		Y:     k.Y*2 + quadrant/2,
	}
}

// Parent returns the key one level up. The parent of a level-0 key is the
// key itself.
func (k TileKey) Parent() TileKey {
	if k.Level == 0 {
		return k
	}
	return TileKey{Level: k.Level - 1, X: k.X / 2, Y: k.Y / 2}
}

// String returns the key as "level/x/y".
func (k TileKey) String() string {
	return fmt.Sprintf("%d/%d/%d", k.Level, k.X, k.Y)
}
