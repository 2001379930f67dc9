package geo

import "testing"

func TestTilesAtLevel(t *testing.T) {
	tests := []struct {
		level      int
		cols, rows int
	}{
		{0, 2, 1},
		{1, 4, 2},
		{2, 8, 4},
		{5, 64, 32},
	}

	for _, tt := range tests {
		cols, rows := TilesAtLevel(tt.level)
		if cols != tt.cols || rows != tt.rows {
			t.Errorf("TilesAtLevel(%d) = (%d, %d), want (%d, %d)",
				tt.level, cols, rows, tt.cols, tt.rows)
		}
	}
}

func TestTileKeyValid(t *testing.T) {
	tests := []struct {
		name string
		key  TileKey
		want bool
	}{
		{"west hemisphere", TileKey{0, 0, 0}, true},
		{"east hemisphere", TileKey{0, 1, 0}, true},
		{"x out of range", TileKey{0, 2, 0}, false},
		{"y out of range", TileKey{0, 0, 1}, false},
		{"negative level", TileKey{-1, 0, 0}, false},
		{"too deep", TileKey{MaxLevel + 1, 0, 0}, false},
		{"deepest", TileKey{MaxLevel, 0, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Valid(); got != tt.want {
				t.Errorf("%v.Valid() = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestTileKeyExtent(t *testing.T) {
	world := WGS84().WorldExtent()

	tests := []struct {
		key  TileKey
		want Extent
	}{
		{TileKey{0, 0, 0}, NewExtent(-180, -90, 0, 90)},
		{TileKey{0, 1, 0}, NewExtent(0, -90, 180, 90)},
		{TileKey{1, 0, 0}, NewExtent(-180, 0, -90, 90)},
		{TileKey{1, 3, 1}, NewExtent(90, -90, 180, 0)},
	}

	for _, tt := range tests {
		if got := tt.key.Extent(world); got != tt.want {
			t.Errorf("%v.Extent() = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestTileKeyChildParent(t *testing.T) {
	k := TileKey{2, 3, 1}
	for q := 0; q < 4; q++ {
		child := k.Child(q)
		if child.Level != 3 {
			t.Errorf("Child(%d).Level = %d, want 3", q, child.Level)
		}
		if got := child.Parent(); got != k {
			t.Errorf("Child(%d).Parent() = %v, want %v", q, got, k)
		}
	}

	// Children tile the parent extent exactly.
	world := WGS84().WorldExtent()
	union := Extent{}
	for q := 0; q < 4; q++ {
		union = union.Union(k.Child(q).Extent(world))
	}
	if union != k.Extent(world) {
		t.Errorf("children union = %v, want %v", union, k.Extent(world))
	}

	root := TileKey{0, 1, 0}
	if got := root.Parent(); got != root {
		t.Errorf("level-0 Parent() = %v, want %v", got, root)
	}
}

func TestTileKeyString(t *testing.T) {
	if got := (TileKey{3, 5, 2}).String(); got != "3/5/2" {
		t.Errorf("String() = %q, want %q", got, "3/5/2")
	}
}
