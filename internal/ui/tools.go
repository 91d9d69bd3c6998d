package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LayerPad/internal/board"
	"LayerPad/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.DisableableWidget
	rect     *canvas.Rectangle
	OnTapped func()
}

func newColorSwatch(c state.RGB, tapped func()) *colorSwatch {
	s := &colorSwatch{rect: canvas.NewRectangle(c.Color()), OnTapped: tapped}
	s.rect.SetMinSize(fyne.NewSize(32, 32))
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetColor(c state.RGB) {
	s.rect.FillColor = c.Color()
	s.rect.Refresh()
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	veil := canvas.NewRectangle(theme.Color(theme.ColorNameDisabled))
	r := &swatchRenderer{swatch: s, border: border, veil: veil}
	r.Refresh()
	return r
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil && !s.Disabled() {
		s.OnTapped()
	}
}

// swatchRenderer dims the swatch with a veil while it is disabled.
type swatchRenderer struct {
	swatch *colorSwatch
	border *canvas.Rectangle
	veil   *canvas.Rectangle
}

func (r *swatchRenderer) Layout(size fyne.Size) {
	for _, o := range r.Objects() {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
}

func (r *swatchRenderer) MinSize() fyne.Size { return r.swatch.rect.MinSize() }

func (r *swatchRenderer) Refresh() {
	if r.swatch.Disabled() {
		r.veil.Show()
	} else {
		r.veil.Hide()
	}
	r.swatch.rect.Refresh()
	r.veil.Refresh()
}

func (r *swatchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.swatch.rect, r.veil, r.border}
}

func (r *swatchRenderer) Destroy() {}

// Toolbar holds the color, grid, clear and export controls for one
// compositor.
type Toolbar struct {
	comp       *board.Compositor
	window     fyne.Window
	exportName string

	bgSwatch    *colorSwatch
	fgSwatch    *colorSwatch
	bgHex       *widget.Label
	fgHex       *widget.Label
	transparent *widget.Check
	showGrid    *widget.Check
	status      *widget.Label

	// promptSave replaces the file save dialog when set.
	promptSave func(data []byte)
}

// NewToolbar builds the controls. status receives progress messages.
func NewToolbar(comp *board.Compositor, window fyne.Window, exportName string, status *widget.Label) *Toolbar {
	t := &Toolbar{comp: comp, window: window, exportName: exportName, status: status}
	t.bgSwatch = newColorSwatch(comp.BackgroundColor(), func() {
		t.pickColor("Background", comp.BackgroundColor(), t.SetBackgroundColor)
	})
	t.fgSwatch = newColorSwatch(comp.StrokeColor(), func() {
		t.pickColor("Stroke", comp.StrokeColor(), t.SetStrokeColor)
	})
	t.bgHex = widget.NewLabel(comp.BackgroundColor().Hex())
	t.fgHex = widget.NewLabel(comp.StrokeColor().Hex())
	t.transparent = widget.NewCheck("Transparent", t.SetTransparent)
	t.transparent.Checked = comp.Transparent()
	if comp.Transparent() {
		t.bgSwatch.Disable()
	}
	t.showGrid = widget.NewCheck("Show grid", comp.SetGridVisible)
	t.showGrid.Checked = comp.Grid().Visible()
	return t
}

// Content lays the controls out in one row.
func (t *Toolbar) Content() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewLabel("Background:"),
		t.bgSwatch,
		t.bgHex,
		t.transparent,
		widget.NewSeparator(),
		widget.NewLabel("Stroke:"),
		t.fgSwatch,
		t.fgHex,
		widget.NewSeparator(),
		t.showGrid,
		widget.NewButton("Clear", t.Clear),
		widget.NewButton("Export PNG", t.Export),
		layout.NewSpacer(),
	)
}

func (t *Toolbar) pickColor(title string, current state.RGB, apply func(state.RGB)) {
	d := dialog.NewColorPicker(title, "Pick a "+title+" color", func(c color.Color) {
		apply(state.FromColor(c))
	}, t.window)
	d.Advanced = true
	d.SetColor(current.Color())
	d.Show()
}

// SetBackgroundColor applies c to the background and the grid contrast.
func (t *Toolbar) SetBackgroundColor(c state.RGB) {
	t.bgSwatch.SetColor(c)
	t.bgHex.SetText(c.Hex())
	if t.comp.SetBackground(c) {
		t.setStatus("Grid color " + t.comp.GridColor().Hex())
	}
}

// SetStrokeColor changes the color of the following segments.
func (t *Toolbar) SetStrokeColor(c state.RGB) {
	t.fgSwatch.SetColor(c)
	t.fgHex.SetText(c.Hex())
	t.comp.SetStrokeColor(c)
}

// SetTransparent clears or refills the background and locks the
// background color while it is transparent.
func (t *Toolbar) SetTransparent(on bool) {
	t.comp.SetTransparent(on)
	if on {
		t.bgSwatch.Disable()
	} else {
		t.bgSwatch.Enable()
	}
	if t.transparent.Checked != on {
		t.transparent.SetChecked(on)
	}
}

// Clear erases the drawing.
func (t *Toolbar) Clear() {
	t.comp.ClearForeground()
	t.setStatus("Cleared")
}

func (t *Toolbar) setStatus(text string) {
	log.Printf("[UI] %s", text)
	if t.status != nil {
		t.status.SetText(text)
	}
}
