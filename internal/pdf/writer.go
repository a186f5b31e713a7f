// Package pdf writes packed card pages to PDF files.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"github.com/youruser/cardcreator/internal/deck"
	"github.com/youruser/cardcreator/internal/util"
)

var _ deck.Document = (*Writer)(nil)

// ErrSave is wrapped by every error returned from Save.
var ErrSave = errors.New("pdf: document not saved")

// Error reports the writer operation that failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdf.%s: unknown error", e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// Writer is an in-memory PDF document measured in points. Nothing touches
// the disk until Save.
type Writer struct {
	doc    *fpdf.Fpdf
	images int
	closed bool
}

// NewWriter starts a document whose pages have the size of page.
func NewWriter(page deck.Page) *Writer {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("cardcreator", true)
	return &Writer{doc: doc}
}

func (w *Writer) AddPage() {
	w.doc.AddPage()
}

// AddImage embeds img as a PNG and returns the name to draw it by. Each
// image is stored once no matter how often it is drawn.
func (w *Writer) AddImage(img image.Image) (string, error) {
	if w.closed {
		return "", &Error{Op: "AddImage", Err: errors.New("document closed")}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", &Error{Op: "AddImage", Err: err}
	}
	w.images++
	name := fmt.Sprintf("card%d", w.images)
	w.doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if w.doc.Err() {
		return "", &Error{Op: "AddImage", Err: w.doc.Error()}
	}
	return name, nil
}

// DrawImage places a previously added image on the current page.
func (w *Writer) DrawImage(name string, r deck.Rect) {
	w.doc.ImageOptions(name, r.X, r.Y, r.W, r.H, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// Output writes the finished document to out. The writer cannot be used
// afterwards.
func (w *Writer) Output(out io.Writer) error {
	if w.closed {
		return &Error{Op: "Output", Err: errors.New("document closed")}
	}
	w.closed = true
	if err := w.doc.Output(out); err != nil {
		return &Error{Op: "Output", Err: err}
	}
	return nil
}

// Save renders the document and writes it to path in one step. On failure
// no file is left at path.
func (w *Writer) Save(path string) error {
	var buf bytes.Buffer
	if err := w.Output(&buf); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, &Error{Op: "Save", Err: err})
	}
	return nil
}
