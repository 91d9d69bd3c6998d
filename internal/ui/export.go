package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"LayerPad/internal/export"
)

// Export flattens the board and, once the PNG is encoded, asks where to
// save it. Drawing continues while encoding runs.
func (t *Toolbar) Export() {
	t.setStatus("Exporting...")
	done := t.comp.Export()
	go func() {
		res := <-done
		fyne.Do(func() { t.finishExport(res) })
	}()
}

func (t *Toolbar) finishExport(res export.Result) {
	if res.Err != nil {
		t.setStatus(fmt.Sprintf("Export failed: %v", res.Err))
		return
	}
	t.setStatus(fmt.Sprintf("Encoded %d bytes", len(res.Data)))
	if t.promptSave != nil {
		t.promptSave(res.Data)
		return
	}
	t.showSaveDialog(res.Data)
}

func (t *Toolbar) showSaveDialog(data []byte) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			t.setStatus(fmt.Sprintf("Export failed: %v", err))
			return
		}
		if w == nil {
			t.setStatus("Export cancelled")
			return
		}
		t.saveExport(w, data)
	}, t.window)
	d.SetFileName(t.exportName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	d.Show()
}

func (t *Toolbar) saveExport(w fyne.URIWriteCloser, data []byte) {
	name := w.URI().Name()
	if err := export.Save(w, data); err != nil {
		t.setStatus(fmt.Sprintf("Error writing %s: %v", name, err))
		return
	}
	t.setStatus(fmt.Sprintf("Saved %s (%d bytes)", name, len(data)))
}
