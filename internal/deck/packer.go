package deck

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/youruser/cardcreator/internal/logging"
)

// ErrPackerClosed is returned when cards are added after the packer saved
// its document.
var ErrPackerClosed = errors.New("deck: packer already finalized")

// Document receives the packed pages. Placement calls cannot fail; any
// write error surfaces from Save, which either writes the whole file or
// nothing.
type Document interface {
	AddPage()
	// AddImage stores img once and returns a handle for DrawImage.
	AddImage(img image.Image) (string, error)
	DrawImage(handle string, r Rect)
	Save(path string) error
}

// State is the lifecycle stage of a Packer.
type State int

const (
	Empty State = iota
	Packing
	Saved
	SaveFailed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Packing:
		return "packing"
	case Saved:
		return "saved"
	case SaveFailed:
		return "save failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Item is one card to pack. Image is called at most once, and only when
// Repetitions is positive.
type Item struct {
	Ordinal     int
	Name        string
	Repetitions int
	Image       func() (image.Image, error)
}

// Packer places card images into consecutive grid slots across pages.
type Packer struct {
	layout Layout
	doc    Document
	log    *slog.Logger

	slot  int
	pages int
	state State
	deck  Deck
}

// NewPacker returns a packer filling doc according to l. A nil logger
// discards messages.
func NewPacker(l Layout, doc Document, log *slog.Logger) *Packer {
	return &Packer{layout: l, doc: doc, log: logging.OrNop(log)}
}

// Add places it.Repetitions copies of the item's image into the next free
// slots and returns how many were placed. If the image cannot be produced
// the failure is logged and returned, and no slot is used.
func (p *Packer) Add(it Item) (placed int, err error) {
	if p.state == Saved || p.state == SaveFailed {
		return 0, ErrPackerClosed
	}
	if it.Repetitions <= 0 {
		return 0, nil
	}

	handle, err := p.register(it)
	if err != nil {
		p.log.Error(fmt.Sprintf("An error occurred while processing %s card %s: %v", Ordinal(it.Ordinal), it.Name, err))
		return 0, err
	}

	p.state = Packing
	for j := 0; j < it.Repetitions; j++ {
		if p.slot%p.layout.CardsPerPage == 0 {
			p.doc.AddPage()
			p.pages++
		}
		p.doc.DrawImage(handle, p.layout.Cell(p.slot))
		p.slot++
	}
	p.deck.Add(it.Name, it.Repetitions)
	p.log.Info(fmt.Sprintf("%s card added to file %d times: %s.", Ordinal(it.Ordinal), it.Repetitions, it.Name))
	return it.Repetitions, nil
}

// register renders the item and hands the image to the document. A panic
// while rendering is reported as an error for this item only.
func (p *Packer) register(it Item) (handle string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering panicked: %v", r)
		}
	}()
	if it.Image == nil {
		return "", errors.New("no image source")
	}
	img, err := it.Image()
	if err != nil {
		return "", err
	}
	return p.doc.AddImage(img)
}

// Save writes the document to path. A packer with no cards saves one blank
// page. After Save the packer accepts no more cards.
func (p *Packer) Save(path string) error {
	if p.state == Saved || p.state == SaveFailed {
		return ErrPackerClosed
	}
	if p.pages == 0 {
		// a document always has at least one page, even with no cards
		p.doc.AddPage()
		p.pages++
	}
	if err := p.doc.Save(path); err != nil {
		p.state = SaveFailed
		p.log.Error(fmt.Sprintf("An error occurred while saving document: %v", err), "path", path)
		return err
	}
	p.state = Saved
	return nil
}

// Slot is the number of card copies placed so far.
func (p *Packer) Slot() int { return p.slot }

// Pages is the number of pages started so far.
func (p *Packer) Pages() int { return p.pages }

func (p *Packer) State() State { return p.state }

// Deck lists the cards placed so far.
func (p *Packer) Deck() Deck {
	d := p.deck
	d.Entries = append([]Entry(nil), p.deck.Entries...)
	return d
}
