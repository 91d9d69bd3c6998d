package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// boardRenderer stacks one image per layer at the board's logical size,
// bottom layer first.
type boardRenderer struct {
	board   *BoardWidget
	objects []fyne.CanvasObject
}

// Layout pins every layer to the logical size; extra space is left empty
// so pointer coordinates stay in layer units.
func (r *boardRenderer) Layout(fyne.Size) {
	logical := r.board.MinSize()
	for _, o := range r.objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(logical)
	}
}

func (r *boardRenderer) MinSize() fyne.Size { return r.board.MinSize() }

func (r *boardRenderer) Refresh() {
	for _, l := range r.board.comp.Layers() {
		r.board.syncLayer(l)
	}
	for _, o := range r.objects {
		canvas.Refresh(o)
	}
}

func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) Destroy() {}
