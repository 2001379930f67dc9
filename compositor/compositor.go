// Package compositor provides a CPU texture compositor: it blends a
// map's visible image layers into per-tile RGBA textures, honoring layer
// order, opacity and color-filter chains. It implements the engine
// core's compositor attach point and keeps a per-tile cache, kept honest
// by the core's invalidation notifications and by the compositor's own
// subscription to the map's change stream.
package compositor

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/RealRui/osgearth"
	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/mapmodel"
	"github.com/RealRui/osgearth/terrain"
)

// DefaultTileSize is the edge length of composited tile textures in
// pixels.
const DefaultTileSize = 256

// Option configures a TileCompositor during creation.
type Option func(*TileCompositor)

// WithTileSize sets the composited texture edge length.
func WithTileSize(px int) Option {
	return func(c *TileCompositor) {
		if px > 0 {
			c.size = px
		}
	}
}

// TileCompositor composites image layers into tile textures on the CPU.
// Composite results are cached per tile key; region invalidation drops
// intersecting entries, and any map change that alters blend inputs
// (membership, visibility, opacity, color filters) flushes the cache.
// Call Close when done to detach from the map's change stream.
//
// TileCompositor is safe for concurrent use.
type TileCompositor struct {
	m    *mapmodel.Map
	size int
	sub  *mapmodel.Subscription

	mu    sync.Mutex
	cache map[geo.TileKey]*image.RGBA
}

// Compile-time check that TileCompositor satisfies the attach point.
var _ terrain.Compositor = (*TileCompositor)(nil)

// New creates a compositor over the given map.
func New(m *mapmodel.Map, opts ...Option) *TileCompositor {
	c := &TileCompositor{
		m:     m,
		size:  DefaultTileSize,
		cache: make(map[geo.TileKey]*image.RGBA),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sub = m.Watch(c.onMapChange)
	return c
}

// Close detaches the compositor from the map's change stream. Idempotent.
func (c *TileCompositor) Close() error {
	c.sub.Cancel()
	return nil
}

// Format returns the pixel format of composited textures (RGBA8).
func (c *TileCompositor) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// TileSize returns the composited texture edge length in pixels.
func (c *TileCompositor) TileSize() int { return c.size }

// Composite returns the blended texture for a tile, computing and
// caching it on first request. Layers composite bottom-up in map order;
// invisible, fully transparent and sourceless layers are skipped.
func (c *TileCompositor) Composite(key geo.TileKey) *image.RGBA {
	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	extent := key.Extent(c.m.SRS().WorldExtent())
	dst := image.NewRGBA(image.Rect(0, 0, c.size, c.size))

	for _, l := range c.m.ImageLayers() {
		if !l.Visible() || l.Opacity() == 0 {
			continue
		}
		src := l.Source()
		if src == nil {
			continue
		}
		img := src.Render(extent, c.size, c.size)
		if img == nil {
			continue
		}

		layerTex := image.NewRGBA(dst.Bounds())
		xdraw.ApproxBiLinear.Scale(layerTex, layerTex.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		for _, f := range l.ColorFilters() {
			applyColorMatrix(layerTex, f.Matrix)
		}

		alpha := uint8(l.Opacity()*255 + 0.5)
		draw.DrawMask(dst, dst.Bounds(), layerTex, image.Point{},
			image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
	}

	c.mu.Lock()
	c.cache[key] = dst
	n := len(c.cache)
	c.mu.Unlock()
	osgearth.Logger().Debug("compositor: tile composited", "key", key.String(), "cached", n)
	return dst
}

// LayerAdded implements terrain.Compositor. Membership changes alter
// blend order everywhere, so the whole cache is dropped.
func (c *TileCompositor) LayerAdded(*mapmodel.ImageLayer) { c.flush() }

// LayerRemoved implements terrain.Compositor.
func (c *TileCompositor) LayerRemoved(*mapmodel.ImageLayer) { c.flush() }

// Invalidate implements terrain.Compositor: cached textures whose tiles
// intersect the extent are dropped and recomposite on next request.
func (c *TileCompositor) Invalidate(extent geo.Extent) {
	world := c.m.SRS().WorldExtent()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.cache {
		if key.Extent(world).Intersects(extent) {
			delete(c.cache, key)
		}
	}
}

// CachedTiles returns the number of composited textures currently held.
func (c *TileCompositor) CachedTiles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *TileCompositor) flush() {
	c.mu.Lock()
	c.cache = make(map[geo.TileKey]*image.RGBA)
	c.mu.Unlock()
}

// onMapChange drops every cached texture when an image layer's blend
// inputs change. Cached tiles bake in visibility, opacity and filter
// chains, so property changes are as invalidating as membership changes.
// Visible-range changes are distance culling, not blending, and keep the
// cache; membership changes also arrive through the engine attach point,
// and flushing twice is harmless.
func (c *TileCompositor) onMapChange(ch mapmodel.Change) {
	if _, ok := ch.Layer.(*mapmodel.ImageLayer); !ok {
		return
	}
	switch ch.Kind {
	case mapmodel.ChangeLayerAdded, mapmodel.ChangeLayerRemoved,
		mapmodel.ChangeToggleVisible, mapmodel.ChangeOpacity,
		mapmodel.ChangeColorFilters:
		c.flush()
	}
}

// applyColorMatrix transforms every pixel in place by a 4x5 color
// matrix operating on non-premultiplied channels in [0, 1].
func applyColorMatrix(img *image.RGBA, m mapmodel.ColorMatrix) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			r := float64(img.Pix[i]) / 255
			g := float64(img.Pix[i+1]) / 255
			b := float64(img.Pix[i+2]) / 255
			a := float64(img.Pix[i+3]) / 255

			nr := m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4]
			ng := m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9]
			nb := m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14]
			na := m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19]

			img.Pix[i] = clamp8(nr)
			img.Pix[i+1] = clamp8(ng)
			img.Pix[i+2] = clamp8(nb)
			img.Pix[i+3] = clamp8(na)
		}
	}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
