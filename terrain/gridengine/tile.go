package gridengine

import "github.com/RealRui/osgearth/geo"

// TileNode is the standalone renderable for one grid tile: the tile
// identity and the area it covers. It has no children and receives no
// live updates; a stale tile is simply rebuilt via CreateTileNode.
type TileNode struct {
	key   geo.TileKey
	bound geo.Extent
}

// Key returns the tile identity the node was built for.
func (n *TileNode) Key() geo.TileKey { return n.key }

// Bound returns the geographic area the node covers.
func (n *TileNode) Bound() geo.Extent { return n.bound }
