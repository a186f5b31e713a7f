package export

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardcreator/internal/deck"
	"github.com/youruser/cardcreator/internal/util"
)

// pdfPath is the PDF written for a card file: same directory and name,
// .pdf extension.
func pdfPath(path string) string {
	return util.ReplaceExt(path, ".pdf")
}

// ImagesDir is where Images writes the cards of the file at path.
func ImagesDir(path string) string {
	return util.ReplaceExt(path, "")
}

// Images renders each card with a positive repetition count to its own
// PNG file in ImagesDir(path).
func (e *Exporter) Images(ctx context.Context, path string) (Result, error) {
	f, cs, err := e.open(path)
	if err != nil {
		return Result{}, err
	}
	log := e.log()
	dir := ImagesDir(path)
	if err := util.EnsureDir(dir); err != nil {
		return Result{}, err
	}
	r := e.renderer()

	log.Info("Creating card images ...")
	res := Result{Output: dir}
	for _, row := range f.Rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		c, ok := e.card(f, cs, row)
		if !ok || c.Repetitions() <= 0 {
			continue
		}
		var img image.Image
		err := recovered(func() (err error) {
			img, err = c.Image(r)
			return err
		})
		if err != nil {
			e.logRowError(row, err)
			continue
		}
		name := fmt.Sprintf("%03d_%s.png", row.Ordinal, util.SafeFileName(c.Name()))
		if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
			e.logRowError(row, err)
			continue
		}
		res.Successes++
		res.Deck.Add(c.Name(), c.Repetitions())
		log.Info(fmt.Sprintf("%s card saved as %s: %s.", deck.Ordinal(row.Ordinal), name, c.Name()))
	}
	log.Info("... done.")
	return res, nil
}

// PDFFromImages packs ready-made card images, one slot each, into a PDF at
// out. The card size comes from the first image printed at dpi. Images that
// cannot be read are logged and skipped. It returns the number of cards
// placed.
func (e *Exporter) PDFFromImages(ctx context.Context, paths []string, dpi int, out string) (Result, error) {
	log := e.log()
	if len(paths) == 0 {
		return Result{}, fmt.Errorf("%w: no images given", ErrInputMissing)
	}
	if dpi <= 0 {
		return Result{}, fmt.Errorf("dpi must be positive, got %d", dpi)
	}
	first, err := imaging.Open(paths[0])
	if err != nil {
		log.Error(fmt.Sprintf("File %s not exists, so action cannot be processed.", filepath.Base(paths[0])))
		return Result{}, fmt.Errorf("%w: %v", ErrInputMissing, err)
	}

	log.Info("Creating document ...")
	b := first.Bounds()
	layout := deck.NewLayout(e.Page,
		float64(b.Dx())*deck.PointsPerInch/float64(dpi),
		float64(b.Dy())*deck.PointsPerInch/float64(dpi))
	packer := deck.NewPacker(layout, e.newDocument(e.Page), log)

	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		p := p
		packer.Add(deck.Item{
			Ordinal:     i + 1,
			Name:        filepath.Base(p),
			Repetitions: 1,
			Image:       func() (image.Image, error) { return imaging.Open(p) },
		})
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !strings.EqualFold(filepath.Ext(out), ".pdf") {
		out += ".pdf"
	}
	if err := packer.Save(out); err != nil {
		return Result{}, err
	}
	log.Info(fmt.Sprintf("The document %s saved.", filepath.Base(out)))
	log.Info("... done.")
	return Result{Successes: packer.Slot(), Output: out, Pages: packer.Pages(), Deck: packer.Deck()}, nil
}
