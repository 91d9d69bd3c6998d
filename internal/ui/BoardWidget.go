package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LayerPad/internal/board"
	"LayerPad/internal/state"
)

// BoardWidget shows the layer stack and turns mouse drags into strokes on
// the foreground layer.
type BoardWidget struct {
	widget.BaseWidget
	comp    *board.Compositor
	gesture *state.Gesture
	images  []*canvas.Image
	buffers []*image.RGBA
	shown   []uint64
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(comp *board.Compositor) *BoardWidget {
	b := &BoardWidget{comp: comp}
	// The driver keeps delivering drag events to the widget that received
	// the press, so no explicit capture is needed.
	b.gesture = state.NewGesture(comp, nil)
	for _, l := range comp.Layers() {
		buf := l.Image()
		img := canvas.NewImageFromImage(buf)
		img.FillMode = canvas.ImageFillStretch
		img.ScaleMode = canvas.ImageScalePixels
		if !l.Visible() {
			img.Hide()
		}
		b.images = append(b.images, img)
		b.buffers = append(b.buffers, buf)
		b.shown = append(b.shown, l.Version())
	}
	comp.OnChange(b.syncLayer)
	b.ExtendBaseWidget(b)
	return b
}

// Gesture exposes the stroke state for inspection.
func (b *BoardWidget) Gesture() *state.Gesture { return b.gesture }

func (b *BoardWidget) syncLayer(l *board.Layer) {
	for i, ll := range b.comp.Layers() {
		if ll != l {
			continue
		}
		img := b.images[i]
		if v := l.Version(); v != b.shown[i] {
			b.shown[i] = v
			if !l.CopyInto(b.buffers[i]) {
				b.buffers[i] = l.Image()
				img.Image = b.buffers[i]
			}
			canvas.Refresh(img)
		}
		if l.Visible() && img.Hidden {
			img.Show()
		} else if !l.Visible() && !img.Hidden {
			img.Hide()
		}
		return
	}
}

func toPoint(p fyne.Position) state.Point { return state.Point{X: p.X, Y: p.Y} }

// pointerID maps a mouse button to a pointer identifier.
func pointerID(button desktop.MouseButton) state.PointerID {
	return state.PointerID(button)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	b.gesture.Down(state.Down{
		ID:     pointerID(e.Button),
		Client: toPoint(e.AbsolutePosition),
		Origin: toPoint(e.AbsolutePosition.Subtract(e.Position)),
	})
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	b.gesture.Up(pointerID(e.Button))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	st := b.gesture.State()
	if st.Phase != state.Dragging {
		return
	}
	b.gesture.Move(state.Move{ID: st.Pointer, Client: toPoint(e.AbsolutePosition)})
}

// DragEnd ends the gesture when the release lands outside the widget and
// no MouseUp is delivered.
func (b *BoardWidget) DragEnd() {
	if st := b.gesture.State(); st.Phase == state.Dragging {
		b.gesture.Cancel(st.Pointer)
	}
}

func (b *BoardWidget) MinSize() fyne.Size {
	g := b.comp.Geometry()
	return fyne.NewSize(float32(g.Width), float32(g.Height))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	objects := make([]fyne.CanvasObject, len(b.images))
	for i, img := range b.images {
		objects[i] = img
	}
	return &boardRenderer{board: b, objects: objects}
}
