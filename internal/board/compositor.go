// Package board keeps the background, grid and foreground layers of the
// drawing surface in step and flattens them for export.
package board

import (
	"image"
	"log"

	"golang.org/x/image/draw"

	"LayerPad/internal/export"
	"LayerPad/internal/state"
)

const (
	gridRows  = 3
	gridCols  = 3
	lineWidth = 1
)

// Options are the initial colors and modes of a Compositor.
type Options struct {
	Background  state.RGB
	Stroke      state.RGB
	Grid        state.RGB
	ShowGrid    bool
	Transparent bool
	// LegacyGreenShift packs the grid color with green at bit 9; see
	// state.PackGridColor.
	LegacyGreenShift bool
}

// Compositor owns the three layers. It is not safe for concurrent use;
// all calls are expected from the UI goroutine.
type Compositor struct {
	geom Geometry
	bg   *Layer
	grid *Layer
	fg   *Layer

	bgColor     state.RGB
	strokeColor state.RGB
	gridColor   state.RGB
	transparent bool
	legacyShift bool

	onChange func(*Layer)
}

var _ state.Surface = (*Compositor)(nil)

// New builds the layers at geom and paints their initial contents.
func New(geom Geometry, opts Options) *Compositor {
	c := &Compositor{
		geom:        geom,
		bg:          newLayer("background", geom),
		grid:        newLayer("grid", geom),
		fg:          newLayer("foreground", geom),
		bgColor:     opts.Background,
		strokeColor: opts.Stroke,
		transparent: opts.Transparent,
		legacyShift: opts.LegacyGreenShift,
	}
	c.fg.dc.SetLineWidth(lineWidth)
	if c.transparent {
		c.bg.clear()
	} else {
		c.InitBackground(opts.Background)
	}
	c.InitGrid(opts.Grid)
	c.grid.visible = opts.ShowGrid
	w, h := geom.Physical()
	log.Printf("[BOARD] layers %dx%d logical, %dx%d physical", geom.Width, geom.Height, w, h)
	return c
}

// OnChange registers fn to be called after a layer's pixels or visibility
// change.
func (c *Compositor) OnChange(fn func(*Layer)) { c.onChange = fn }

func (c *Compositor) changed(l *Layer) {
	if c.onChange != nil {
		c.onChange(l)
	}
}

func (c *Compositor) Background() *Layer { return c.bg }
func (c *Compositor) Grid() *Layer { return c.grid }
func (c *Compositor) Foreground() *Layer { return c.fg }

// Layers returns the layers bottom to top.
func (c *Compositor) Layers() []*Layer { return []*Layer{c.bg, c.grid, c.fg} }

func (c *Compositor) Geometry() Geometry { return c.geom }
func (c *Compositor) BackgroundColor() state.RGB { return c.bgColor }
func (c *Compositor) StrokeColor() state.RGB { return c.strokeColor }
func (c *Compositor) GridColor() state.RGB { return c.gridColor }
func (c *Compositor) Transparent() bool { return c.transparent }

// InitBackground fills the whole background buffer with col.
func (c *Compositor) InitBackground(col state.RGB) {
	c.bg.fill(col)
	c.changed(c.bg)
}

// InitGrid redraws the grid in col: four evenly spaced lines in each
// direction, the outer ones on the edges.
func (c *Compositor) InitGrid(col state.RGB) {
	l := c.grid
	l.dc.Clear()
	l.dc.SetColor(col.Color())
	w, h := float64(c.geom.Width), float64(c.geom.Height)
	cell := (h - lineWidth) / gridRows
	for i, y := 0, 0.0; i <= gridRows; i, y = i+1, y+cell {
		l.fillRect(0, y, w, lineWidth)
	}
	cell = (w - lineWidth) / gridCols
	for i, x := 0, 0.0; i <= gridCols; i, x = i+1, x+cell {
		l.fillRect(x, 0, lineWidth, h)
	}
	l.version++
	c.gridColor = col
	c.changed(l)
}

// SetBackground records col as the background color, repaints the
// background unless it is transparent, and regenerates the grid when the
// contrast color for col differs from the current grid color. It reports
// whether the grid was regenerated.
func (c *Compositor) SetBackground(col state.RGB) bool {
	c.bgColor = col
	if c.transparent {
		c.bg.clear()
		c.changed(c.bg)
	} else {
		c.InitBackground(col)
	}
	gc := state.PackGridColor(state.PickContrast(col), c.legacyShift)
	if gc == c.gridColor {
		return false
	}
	log.Printf("[BOARD] grid color %s -> %s for background %s", c.gridColor.Hex(), gc.Hex(), col.Hex())
	c.InitGrid(gc)
	return true
}

// SetTransparent switches between a cleared background and one filled
// with the current background color.
func (c *Compositor) SetTransparent(on bool) {
	c.transparent = on
	if on {
		c.bg.clear()
		c.changed(c.bg)
		return
	}
	c.InitBackground(c.bgColor)
}

// SetGridVisible shows or hides the grid without touching its pixels.
func (c *Compositor) SetGridVisible(visible bool) {
	if c.grid.visible == visible {
		return
	}
	c.grid.visible = visible
	c.changed(c.grid)
}

// SetStrokeColor sets the color of subsequent segments.
func (c *Compositor) SetStrokeColor(col state.RGB) {
	c.strokeColor = col
}

// ClearForeground erases every stroke.
func (c *Compositor) ClearForeground() {
	c.fg.clear()
	c.changed(c.fg)
}

// DrawSegment draws a one-unit line on the foreground.
func (c *Compositor) DrawSegment(from, to state.Point) {
	c.fg.dc.SetLineWidth(lineWidth)
	c.fg.dc.SetColor(c.strokeColor.Color())
	c.fg.line(from, to)
	c.changed(c.fg)
}

// Flatten composites the background and then the foreground into a new
// image the size of the foreground buffer. The grid is never included.
func (c *Compositor) Flatten() *image.RGBA {
	w, h := c.fg.PhysicalSize()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), c.bg.Image(), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), c.fg.Image(), image.Point{}, draw.Over)
	return out
}

// Export flattens the layers now and encodes the result as PNG in the
// background. Drawing may continue while the encode runs.
func (c *Compositor) Export() <-chan export.Result {
	return export.EncodePNG(c.Flatten())
}
