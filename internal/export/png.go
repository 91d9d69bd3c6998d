// Package export encodes flattened layer snapshots as PNG.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
)

// ErrEmptyExport is returned for snapshots with no pixels.
var ErrEmptyExport = errors.New("export: image is empty")

// Result is the outcome of an asynchronous encode.
type Result struct {
	Data []byte
	Err  error
}

// EncodePNG encodes img on its own goroutine. The returned channel yields
// exactly one Result and is then closed. img must not be modified until
// the result arrives.
func EncodePNG(img image.Image) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		data, err := Encode(img)
		out <- Result{Data: data, Err: err}
	}()
	return out
}

// Encode encodes img synchronously.
func Encode(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyExport
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	b := img.Bounds()
	log.Printf("[EXPORT] encoded %dx%d image into %d bytes", b.Dx(), b.Dy(), buf.Len())
	return buf.Bytes(), nil
}

// Save writes data to w and closes it.
func Save(w io.WriteCloser, data []byte) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close export: %w", cerr)
		}
	}()
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
