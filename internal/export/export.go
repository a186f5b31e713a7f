// Package export runs the card pipelines: reading a card file, building and
// rendering each card, and writing PDF sheets or card images.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/youruser/cardcreator/internal/cards"
	"github.com/youruser/cardcreator/internal/deck"
	imagepkg "github.com/youruser/cardcreator/internal/image"
	"github.com/youruser/cardcreator/internal/logging"
	"github.com/youruser/cardcreator/internal/pdf"
	"github.com/youruser/cardcreator/internal/schema"
)

// ErrInputMissing is returned when the input file does not exist. Nothing
// is written in that case.
var ErrInputMissing = errors.New("export: input file does not exist")

// Exporter holds what every pipeline needs. Pipelines run cards one at a
// time and check ctx between cards and before saving.
type Exporter struct {
	Renderer *imagepkg.Renderer
	// Images resolves element content; imagepkg.DefaultProvider when nil.
	Images imagepkg.ImageProvider
	// Backgrounds loads schema background images; a FileProvider when nil.
	Backgrounds schema.ImageSource
	Page        deck.Page
	Log         *slog.Logger
	// NewDocument creates the output document; a pdf.Writer when nil.
	NewDocument func(deck.Page) deck.Document
}

// Result summarizes a pipeline run.
type Result struct {
	// Successes is the number of cards (or images) written.
	Successes int       `json:"successes"`
	Output    string    `json:"output,omitempty"`
	Pages     int       `json:"pages,omitempty"`
	Deck      deck.Deck `json:"deck"`
}

func (e *Exporter) log() *slog.Logger { return logging.OrNop(e.Log) }

func (e *Exporter) images() imagepkg.ImageProvider {
	if e.Images == nil {
		return imagepkg.DefaultProvider()
	}
	return e.Images
}

func (e *Exporter) backgrounds() schema.ImageSource {
	if e.Backgrounds == nil {
		return imagepkg.FileProvider{}
	}
	return e.Backgrounds
}

func (e *Exporter) renderer() *imagepkg.Renderer {
	if e.Renderer == nil {
		return imagepkg.NewRenderer(nil)
	}
	return e.Renderer
}

func (e *Exporter) newDocument(p deck.Page) deck.Document {
	if e.NewDocument == nil {
		return pdf.NewWriter(p)
	}
	return e.NewDocument(p)
}

// open checks path and reads the card file and its schema.
func (e *Exporter) open(path string) (*cards.CardFile, *schema.CardSchema, error) {
	log := e.log()
	if _, err := os.Stat(path); err != nil {
		log.Error(fmt.Sprintf("File %s not exists, so action cannot be processed.", filepath.Base(path)))
		return nil, nil, fmt.Errorf("%w: %s", ErrInputMissing, path)
	}

	log.Info(fmt.Sprintf("Reading %s ...", filepath.Base(path)))
	f, err := cards.Load(path)
	if err != nil {
		log.Error("Reading card file failed", "err", err)
		return nil, nil, err
	}
	log.Info("... done.")

	log.Info("Initializing card schemas ...")
	cs, err := f.Schema(e.backgrounds())
	if err != nil {
		log.Error("Initializing card schemas failed", "err", err)
		return nil, nil, err
	}
	log.Info("... done.")
	return f, cs, nil
}

// card builds the card of row, logging why when it cannot.
func (e *Exporter) card(f *cards.CardFile, cs *schema.CardSchema, row cards.Row) (*cards.Card, bool) {
	if row.RepetitionsErr != nil {
		e.logRowError(row, row.RepetitionsErr)
		return nil, false
	}
	var c *cards.Card
	err := recovered(func() (err error) {
		c, err = cards.NewCard(cs, row.Contents(cs.Len()), row.Repetitions, f.Dir, e.images())
		return err
	})
	if err != nil {
		e.logRowError(row, err)
		return nil, false
	}
	return c, true
}

// recovered runs fn and reports a panic inside it as an error, so one
// card cannot stop a pipeline.
func recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func (e *Exporter) logRowError(row cards.Row, err error) {
	e.log().Error(fmt.Sprintf("An error occurred while processing %s card: %v", deck.Ordinal(row.Ordinal), err))
}

// PDF packs every card of the file at path onto print pages and saves them
// next to it with a .pdf extension. Cards that fail are logged and skipped.
// A failed save writes nothing and reports zero successes.
func (e *Exporter) PDF(ctx context.Context, path string) (Result, error) {
	f, cs, err := e.open(path)
	if err != nil {
		return Result{}, err
	}
	log := e.log()

	log.Info("Creating document ...")
	layout := deck.NewLayout(e.Page, cs.WidthInch()*deck.PointsPerInch, cs.HeightInch()*deck.PointsPerInch)
	packer := deck.NewPacker(layout, e.newDocument(e.Page), log)
	r := e.renderer()

	successes := 0
	for _, row := range f.Rows {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		c, ok := e.card(f, cs, row)
		if !ok {
			continue
		}
		placed, err := packer.Add(deck.Item{
			Ordinal:     row.Ordinal,
			Name:        c.Name(),
			Repetitions: c.Repetitions(),
			Image:       func() (image.Image, error) { return c.Image(r) },
		})
		if err == nil && placed > 0 {
			successes++
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	out := pdfPath(path)
	if err := packer.Save(out); err != nil {
		return Result{}, err
	}
	log.Info(fmt.Sprintf("The document %s saved.", filepath.Base(out)))
	log.Info("... done.")

	d := packer.Deck()
	d.Name = filepath.Base(out)
	return Result{Successes: successes, Output: out, Pages: packer.Pages(), Deck: d}, nil
}
