package compositor

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/RealRui/osgearth/geo"
	"github.com/RealRui/osgearth/mapmodel"
)

// solidSource renders a uniform color over any extent.
type solidSource struct {
	c color.RGBA
}

func (s solidSource) Render(extent geo.Extent, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(s.c), image.Point{}, draw.Src)
	return img
}

// nilSource reports no data anywhere.
type nilSource struct{}

func (nilSource) Render(geo.Extent, int, int) image.Image { return nil }

func addImageLayer(m *mapmodel.Map, name string, c color.RGBA) *mapmodel.ImageLayer {
	l := mapmodel.NewImageLayer(name)
	l.SetSource(solidSource{c: c})
	m.AddLayer(l)
	return l
}

func pixelAt(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestFormat(t *testing.T) {
	c := New(mapmodel.New("test"))
	if got := c.Format(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", got)
	}
}

func TestCompositeSingleLayer(t *testing.T) {
	m := mapmodel.New("test")
	addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	c := New(m, WithTileSize(8))
	tex := c.Composite(geo.TileKey{Level: 0, X: 0, Y: 0})

	if got := pixelAt(tex, 4, 4); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel = %v, want opaque red", got)
	}
}

func TestCompositeLayerOrderTopWins(t *testing.T) {
	m := mapmodel.New("test")
	addImageLayer(m, "red", color.RGBA{R: 255, A: 255})
	addImageLayer(m, "blue", color.RGBA{B: 255, A: 255})

	c := New(m, WithTileSize(8))
	tex := c.Composite(geo.TileKey{Level: 0, X: 0, Y: 0})

	// Blue was added later, so it composites on top.
	if got := pixelAt(tex, 4, 4); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel = %v, want opaque blue on top", got)
	}
}

func TestCompositeHonorsOpacity(t *testing.T) {
	m := mapmodel.New("test")
	addImageLayer(m, "red", color.RGBA{R: 255, A: 255})
	blue := addImageLayer(m, "blue", color.RGBA{B: 255, A: 255})
	blue.SetOpacity(0.5)

	c := New(m, WithTileSize(8))
	tex := c.Composite(geo.TileKey{Level: 0, X: 0, Y: 0})

	got := pixelAt(tex, 4, 4)
	if !near(got.R, 127) || !near(got.B, 128) || got.A != 255 {
		t.Errorf("pixel = %v, want half-blended red/blue", got)
	}
}

func TestCompositeSkipsHiddenAndSourcelessLayers(t *testing.T) {
	m := mapmodel.New("test")
	red := addImageLayer(m, "red", color.RGBA{R: 255, A: 255})
	red.SetVisible(false)
	m.AddLayer(mapmodel.NewImageLayer("no-source"))
	empty := mapmodel.NewImageLayer("nil-render")
	empty.SetSource(nilSource{})
	m.AddLayer(empty)

	c := New(m, WithTileSize(8))
	tex := c.Composite(geo.TileKey{Level: 0, X: 0, Y: 0})

	if got := pixelAt(tex, 4, 4); got != (color.RGBA{}) {
		t.Errorf("pixel = %v, want fully transparent", got)
	}
}

func TestCompositeAppliesColorFilters(t *testing.T) {
	m := mapmodel.New("test")
	red := addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	// Rec.601 luminance in every color channel.
	gray := mapmodel.IdentityColorMatrix()
	gray[0], gray[1], gray[2] = 0.299, 0.587, 0.114
	gray[5], gray[6], gray[7] = 0.299, 0.587, 0.114
	gray[10], gray[11], gray[12] = 0.299, 0.587, 0.114
	red.AddColorFilter(mapmodel.ColorFilter{Name: "grayscale", Matrix: gray})

	c := New(m, WithTileSize(8))
	tex := c.Composite(geo.TileKey{Level: 0, X: 0, Y: 0})

	got := pixelAt(tex, 4, 4)
	want := uint8(math.Round(0.299 * 255))
	if !near(got.R, want) || !near(got.G, want) || !near(got.B, want) {
		t.Errorf("pixel = %v, want gray %d", got, want)
	}
}

func TestCompositeCaches(t *testing.T) {
	m := mapmodel.New("test")
	addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	c := New(m, WithTileSize(8))
	key := geo.TileKey{Level: 1, X: 0, Y: 0}
	first := c.Composite(key)
	second := c.Composite(key)

	if first != second {
		t.Error("repeated Composite should return the cached texture")
	}
	if c.CachedTiles() != 1 {
		t.Errorf("CachedTiles() = %d, want 1", c.CachedTiles())
	}
}

func TestInvalidateDropsOnlyIntersectingTiles(t *testing.T) {
	m := mapmodel.New("test")
	addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	c := New(m, WithTileSize(8))
	west := geo.TileKey{Level: 0, X: 0, Y: 0}
	east := geo.TileKey{Level: 0, X: 1, Y: 0}
	cachedWest := c.Composite(west)
	cachedEast := c.Composite(east)

	// Only the western hemisphere goes stale.
	c.Invalidate(geo.NewExtent(-120, -30, -60, 30))

	if c.Composite(west) == cachedWest {
		t.Error("invalidated tile should recomposite")
	}
	if c.Composite(east) != cachedEast {
		t.Error("unaffected tile should stay cached")
	}
}

func TestLayerMembershipChangeFlushesCache(t *testing.T) {
	m := mapmodel.New("test")
	addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	c := New(m, WithTileSize(8))
	key := geo.TileKey{Level: 0, X: 0, Y: 0}
	c.Composite(key)

	blue := mapmodel.NewImageLayer("blue")
	c.LayerAdded(blue)
	if c.CachedTiles() != 0 {
		t.Error("LayerAdded should flush the cache")
	}

	c.Composite(key)
	c.LayerRemoved(blue)
	if c.CachedTiles() != 0 {
		t.Error("LayerRemoved should flush the cache")
	}
}

func TestOpacityChangeRecomposites(t *testing.T) {
	m := mapmodel.New("test")
	red := addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	c := New(m, WithTileSize(8))
	defer c.Close()
	key := geo.TileKey{Level: 0, X: 0, Y: 0}
	if got := pixelAt(c.Composite(key), 4, 4); got.R != 255 {
		t.Fatalf("pixel = %v, want opaque red", got)
	}

	// The cached full-opacity texture must not survive the change.
	red.SetOpacity(0.5)
	got := pixelAt(c.Composite(key), 4, 4)
	if !near(got.R, 128) || !near(got.A, 128) {
		t.Errorf("pixel after opacity 0.5 = %v, want half-opacity red", got)
	}
}

func TestVisibilityAndFilterChangesFlushCache(t *testing.T) {
	m := mapmodel.New("test")
	red := addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	c := New(m, WithTileSize(8))
	defer c.Close()
	key := geo.TileKey{Level: 0, X: 0, Y: 0}

	c.Composite(key)
	red.SetVisible(false)
	if got := pixelAt(c.Composite(key), 4, 4); got != (color.RGBA{}) {
		t.Errorf("pixel after hide = %v, want fully transparent", got)
	}

	red.SetVisible(true)
	c.Composite(key)
	red.AddColorFilter(mapmodel.ColorFilter{Name: "identity", Matrix: mapmodel.IdentityColorMatrix()})
	if c.CachedTiles() != 0 {
		t.Error("filter-chain change should flush the cache")
	}
}

func TestVisibleRangeChangeKeepsCache(t *testing.T) {
	m := mapmodel.New("test")
	red := addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	c := New(m, WithTileSize(8))
	defer c.Close()
	c.Composite(geo.TileKey{Level: 0, X: 0, Y: 0})

	// Distance culling does not affect blended pixels.
	red.SetVisibleRange(mapmodel.VisibleRange{Max: 50000})
	if c.CachedTiles() != 1 {
		t.Errorf("CachedTiles() = %d, want 1 after visible-range change", c.CachedTiles())
	}
}

func TestCloseDetachesFromMap(t *testing.T) {
	m := mapmodel.New("test")
	red := addImageLayer(m, "red", color.RGBA{R: 255, A: 255})

	c := New(m, WithTileSize(8))
	c.Composite(geo.TileKey{Level: 0, X: 0, Y: 0})

	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	red.SetOpacity(0.25)
	if c.CachedTiles() != 1 {
		t.Error("changes after Close should not flush the cache")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
