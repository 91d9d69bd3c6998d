package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"LayerPad/internal/board"
	"LayerPad/internal/config"
)

// NewBoard builds the compositor for cfg at the given device scale. A
// positive cfg.Scale overrides scale.
func NewBoard(cfg config.Config, scale float32) *board.Compositor {
	if cfg.Scale > 0 {
		scale = cfg.Scale
	}
	bg, stroke, grid := cfg.Colors()
	return board.New(board.Geometry{Width: cfg.Width, Height: cfg.Height, Scale: scale}, board.Options{
		Background:       bg,
		Stroke:           stroke,
		Grid:             grid,
		ShowGrid:         cfg.ShowGrid,
		Transparent:      cfg.Transparent,
		LegacyGreenShift: cfg.LegacyGreenShift,
	})
}

// Build creates the board, toolbar and status line for w. The device scale
// is read from w's canvas, so on desktop drivers Build must run after the
// window has been shown.
func Build(cfg config.Config, w fyne.Window) (*BoardWidget, *Toolbar) {
	scale := w.Canvas().Scale()
	boardWidget := NewBoardWidget(NewBoard(cfg, scale))
	status := widget.NewLabel("Ready")
	toolbar := NewToolbar(boardWidget.comp, w, cfg.ExportName, status)

	w.SetContent(container.NewBorder(toolbar.Content(), status, nil, nil, container.NewCenter(boardWidget)))
	log.Printf("[UI] window scale %.2f, board %dx%d", scale, cfg.Width, cfg.Height)
	return boardWidget, toolbar
}

// RunApp opens the drawing window and blocks until it is closed.
func RunApp(cfg config.Config) {
	myApp := app.New()
	myWindow := myApp.NewWindow("LayerPad")
	myWindow.SetContent(widget.NewLabel("Loading..."))
	myWindow.Resize(fyne.NewSize(float32(cfg.Width)+40, float32(cfg.Height)+120))

	// The canvas only reports the monitor scale once the native window
	// exists, which is after Show; queue the build onto the running loop.
	myApp.Lifecycle().SetOnStarted(func() {
		go fyne.Do(func() { Build(cfg, myWindow) })
	})
	myWindow.ShowAndRun()
}
