package board

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"LayerPad/internal/state"
)

var testGeom = Geometry{Width: 60, Height: 30, Scale: 1}

func newTestCompositor(t *testing.T) *Compositor {
	t.Helper()
	return New(testGeom, Options{
		Background: state.Black,
		Stroke:     state.RGB{G: 255},
		Grid:       state.White,
	})
}

func anyOpaque(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return true
		}
	}
	return false
}

func samePixels(t *testing.T, got, want image.Image) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
	}
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r1, g1, b1, a1 := got.At(x, y).RGBA()
			r2, g2, b2, a2 := want.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got.At(x, y), want.At(x, y))
			}
		}
	}
}

func TestGeometryPhysical(t *testing.T) {
	tests := []struct {
		geom Geometry
		w, h int
	}{
		{Geometry{Width: 100, Height: 50, Scale: 1}, 100, 50},
		{Geometry{Width: 100, Height: 50, Scale: 1.5}, 100, 50},
		{Geometry{Width: 100, Height: 50, Scale: 2}, 200, 100},
		{Geometry{Width: 101, Height: 33, Scale: 2.5}, 252, 82},
		{Geometry{Width: 10, Height: 10}, 10, 10},
	}
	for _, tt := range tests {
		w, h := tt.geom.Physical()
		if w != tt.w || h != tt.h {
			t.Errorf("%+v.Physical() = %dx%d, want %dx%d", tt.geom, w, h, tt.w, tt.h)
		}
	}
}

func TestLayersShareGeometry(t *testing.T) {
	c := New(Geometry{Width: 40, Height: 20, Scale: 2}, Options{})
	for _, l := range c.Layers() {
		if w, h := l.LogicalSize(); w != 40 || h != 20 {
			t.Errorf("%s logical size = %dx%d", l.Name(), w, h)
		}
		if w, h := l.PhysicalSize(); w != 80 || h != 40 {
			t.Errorf("%s physical size = %dx%d", l.Name(), w, h)
		}
	}
}

func TestInitBackgroundFillsPhysicalArea(t *testing.T) {
	c := New(Geometry{Width: 8, Height: 4, Scale: 2}, Options{Background: state.RGB{R: 10, G: 20, B: 30}})
	img := c.Background().Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if !bytes.Equal(img.Pix[i:i+4], []byte{10, 20, 30, 255}) {
			t.Fatalf("pixel %d = %v", i/4, img.Pix[i:i+4])
		}
	}
}

func TestInitGridDrawsLines(t *testing.T) {
	c := newTestCompositor(t)
	img := c.Grid().Image()
	if img.RGBAAt(0, 0).A == 0 {
		t.Error("corner pixel not covered by grid")
	}
	if img.RGBAAt(30, 0).A == 0 {
		t.Error("top edge not covered by grid")
	}
	if a := img.RGBAAt(10, 5).A; a != 0 {
		t.Errorf("cell interior alpha = %d, want 0", a)
	}
	if c.GridColor() != state.White {
		t.Errorf("GridColor() = %v, want white", c.GridColor())
	}
}

func TestSetBackgroundRecomputesGrid(t *testing.T) {
	c := newTestCompositor(t)
	if !c.SetBackground(state.White) {
		t.Fatal("grid not regenerated for white background")
	}
	if c.GridColor() != state.Black {
		t.Fatalf("GridColor() = %v, want black", c.GridColor())
	}
	v := c.Grid().Version()
	if c.SetBackground(state.White) {
		t.Error("grid regenerated for identical background")
	}
	if c.GridColor() != state.Black || c.Grid().Version() != v {
		t.Error("grid changed on repeated SetBackground")
	}
	if c.SetBackground(state.RGB{R: 250, G: 240, B: 200}) {
		t.Error("grid regenerated although contrast color is unchanged")
	}
	if got := c.Background().Image().RGBAAt(0, 0); got.R != 250 || got.A != 255 {
		t.Errorf("background pixel = %v", got)
	}
}

func TestSetBackgroundLegacyGreenShift(t *testing.T) {
	c := New(testGeom, Options{Grid: state.Black, LegacyGreenShift: true})
	c.SetBackground(state.Black)
	if want := (state.RGB{R: 0xff, G: 0xfe, B: 0xff}); c.GridColor() != want {
		t.Errorf("GridColor() = %v, want %v", c.GridColor(), want)
	}
}

func TestTransparentBackground(t *testing.T) {
	c := newTestCompositor(t)
	c.SetTransparent(true)
	if anyOpaque(c.Background().Image()) {
		t.Fatal("background not cleared in transparent mode")
	}
	c.SetBackground(state.White)
	if anyOpaque(c.Background().Image()) {
		t.Fatal("SetBackground painted a transparent background")
	}
	if c.GridColor() != state.Black {
		t.Errorf("grid not recomputed in transparent mode: %v", c.GridColor())
	}
	c.SetTransparent(false)
	if got := c.Background().Image().RGBAAt(5, 5); got.R != 255 || got.A != 255 {
		t.Errorf("background after leaving transparent mode = %v", got)
	}
}

func TestGridVisibilityKeepsPixels(t *testing.T) {
	c := newTestCompositor(t)
	before := c.Grid().Image()
	v := c.Grid().Version()
	c.SetGridVisible(true)
	if !c.Grid().Visible() {
		t.Fatal("grid not visible")
	}
	c.SetGridVisible(false)
	if c.Grid().Visible() {
		t.Fatal("grid still visible")
	}
	if !bytes.Equal(before.Pix, c.Grid().Image().Pix) || c.Grid().Version() != v {
		t.Error("toggling visibility changed grid pixels")
	}
}

func TestDrawSegmentMarksForeground(t *testing.T) {
	c := newTestCompositor(t)
	c.DrawSegment(state.Point{X: 2, Y: 5}, state.Point{X: 20, Y: 5})
	fg := c.Foreground().Image()
	if !anyOpaque(fg) {
		t.Fatal("segment left foreground empty")
	}
	if a := fg.RGBAAt(40, 20).A; a != 0 {
		t.Errorf("pixel far from segment alpha = %d", a)
	}
	flat := c.Flatten()
	green := false
	for i := 0; i < len(flat.Pix); i += 4 {
		if flat.Pix[i+1] > 0 {
			green = true
			break
		}
	}
	if !green {
		t.Error("stroke missing from flattened image")
	}
}

func TestCopyIntoReusesBuffer(t *testing.T) {
	c := newTestCompositor(t)
	buf := c.Foreground().Image()
	c.DrawSegment(state.Point{X: 2, Y: 5}, state.Point{X: 20, Y: 5})
	if anyOpaque(buf) {
		t.Fatal("Image returned a view instead of a copy")
	}
	if !c.Foreground().CopyInto(buf) {
		t.Fatal("CopyInto rejected a buffer with matching bounds")
	}
	samePixels(t, buf, c.Foreground().Image())

	if c.Foreground().CopyInto(nil) {
		t.Error("CopyInto accepted nil")
	}
	if c.Foreground().CopyInto(image.NewRGBA(image.Rect(0, 0, 10, 10))) {
		t.Error("CopyInto accepted mismatched bounds")
	}
}

func TestClearThenExportEqualsBackground(t *testing.T) {
	c := newTestCompositor(t)
	c.SetBackground(state.RGB{R: 12, G: 34, B: 56})
	c.DrawSegment(state.Point{X: 1, Y: 1}, state.Point{X: 50, Y: 25})
	c.ClearForeground()
	if anyOpaque(c.Foreground().Image()) {
		t.Fatal("foreground not empty after clear")
	}

	res := <-c.Export()
	if res.Err != nil {
		t.Fatalf("Export: %v", res.Err)
	}
	got, err := png.Decode(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	samePixels(t, got, c.Background().Image())
}

func TestExportExcludesGrid(t *testing.T) {
	c := newTestCompositor(t)
	c.SetGridVisible(true)
	samePixels(t, c.Flatten(), c.Background().Image())
}

func TestExportUsesPhysicalSize(t *testing.T) {
	c := New(Geometry{Width: 16, Height: 8, Scale: 2}, Options{Background: state.White})
	res := <-c.Export()
	if res.Err != nil {
		t.Fatalf("Export: %v", res.Err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 16 {
		t.Errorf("export size = %dx%d, want 32x16", cfg.Width, cfg.Height)
	}
}

func TestExportSnapshotIsIndependent(t *testing.T) {
	c := newTestCompositor(t)
	snap := c.Flatten()
	c.DrawSegment(state.Point{X: 0, Y: 10}, state.Point{X: 59, Y: 10})
	samePixels(t, snap, c.Background().Image())
}

func TestOnChangeNotifies(t *testing.T) {
	c := newTestCompositor(t)
	seen := map[string]int{}
	c.OnChange(func(l *Layer) { seen[l.Name()]++ })
	c.DrawSegment(state.Point{}, state.Point{X: 3, Y: 3})
	c.ClearForeground()
	c.SetGridVisible(true)
	c.SetBackground(state.White)
	if seen["foreground"] != 2 || seen["grid"] != 2 || seen["background"] != 1 {
		t.Errorf("notifications = %v", seen)
	}
}
