package board

import (
	"image"
	"log"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"LayerPad/internal/state"
)

// Geometry is the shared size of every layer. Scale is the device pixel
// ratio; backing stores are only enlarged for ratios of 2 or more.
type Geometry struct {
	Width  int
	Height int
	Scale  float32
}

// factor returns the drawing transform scale.
func (g Geometry) factor() float64 {
	if g.Scale >= 2 {
		return float64(g.Scale)
	}
	return 1
}

// Physical returns the pixel-buffer size.
func (g Geometry) Physical() (w, h int) {
	f := g.factor()
	return int(math.Floor(float64(g.Width) * f)), int(math.Floor(float64(g.Height) * f))
}

// Layer is one independently drawn surface. Callers draw in logical
// coordinates; the context is pre-scaled to the physical buffer.
type Layer struct {
	name    string
	geom    Geometry
	dc      *gg.Context
	visible bool
	version uint64
}

func newLayer(name string, geom Geometry) *Layer {
	w, h := geom.Physical()
	dc := gg.NewContext(w, h)
	if f := geom.factor(); f != 1 {
		dc.Scale(f, f)
	}
	return &Layer{name: name, geom: geom, dc: dc, visible: true}
}

func (l *Layer) Name() string { return l.name }

// LogicalSize returns the unscaled size callers draw in.
func (l *Layer) LogicalSize() (w, h int) { return l.geom.Width, l.geom.Height }

// PhysicalSize returns the size of the pixel buffer.
func (l *Layer) PhysicalSize() (w, h int) { return l.dc.Width(), l.dc.Height() }

// Visible reports whether the layer is shown. Visibility never affects
// pixel contents.
func (l *Layer) Visible() bool { return l.visible }

// Version increases every time the pixels change.
func (l *Layer) Version() uint64 { return l.version }

// Image returns a copy of the current pixels.
func (l *Layer) Image() *image.RGBA {
	src := l.dc.Image()
	if img, ok := src.(*image.RGBA); ok {
		return img
	}
	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img
}

// CopyInto overwrites dst with the current pixels without allocating.
// dst must have the layer's physical bounds; it returns false otherwise.
func (l *Layer) CopyInto(dst *image.RGBA) bool {
	pm := l.dc.ResizeTarget()
	w, h := l.PhysicalSize()
	if dst == nil || dst.Rect != image.Rect(0, 0, w, h) || len(dst.Pix) != len(pm.Data()) {
		return false
	}
	copy(dst.Pix, pm.Data())
	return true
}

func (l *Layer) fill(c state.RGB) {
	l.dc.ClearWithColor(pixel(c))
	l.version++
}

func (l *Layer) clear() {
	l.dc.Clear()
	l.version++
}

func (l *Layer) fillRect(x, y, w, h float64) {
	l.dc.DrawRectangle(x, y, w, h)
	if err := l.dc.Fill(); err != nil {
		log.Printf("[BOARD] %s: fill rect: %v", l.name, err)
	}
}

func (l *Layer) line(from, to state.Point) {
	l.dc.MoveTo(float64(from.X), float64(from.Y))
	l.dc.LineTo(float64(to.X), float64(to.Y))
	if err := l.dc.Stroke(); err != nil {
		log.Printf("[BOARD] %s: stroke: %v", l.name, err)
	}
	l.version++
}

// pixel converts c for Context.ClearWithColor, which truncates each
// channel; the quarter-step bias makes every channel land on its byte.
func pixel(c state.RGB) gg.RGBA {
	return gg.RGBA{
		R: (float64(c.R) + 0.25) / 255,
		G: (float64(c.G) + 0.25) / 255,
		B: (float64(c.B) + 0.25) / 255,
		A: 1,
	}
}
