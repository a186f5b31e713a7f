// Package preview renders single cards of a card file for interactive
// browsing, with a measuring grid drawn over them.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/youruser/cardcreator/internal/cards"
	imagepkg "github.com/youruser/cardcreator/internal/image"
	"github.com/youruser/cardcreator/internal/schema"
)

// ErrNoCards is returned when the file has no card with a positive
// repetition count.
var ErrNoCards = errors.New("preview: no printable cards")

type cacheKey struct {
	position   int
	gridWidth  int
	gridHeight int
}

// Preview browses the printable cards of one file. It is not safe for
// concurrent use.
type Preview struct {
	path        string
	renderer    *imagepkg.Renderer
	images      imagepkg.ImageProvider
	backgrounds schema.ImageSource
	gridColor   color.Color

	position int
	file     *cards.CardFile
	schema   *schema.CardSchema
	rows     []cards.Row
	cache    map[cacheKey]image.Image
}

// New returns a preview of the card file at path. The file is read on the
// first image request.
func New(path string, r *imagepkg.Renderer, images imagepkg.ImageProvider, gridColor color.Color) *Preview {
	if r == nil {
		r = imagepkg.NewRenderer(nil)
	}
	if images == nil {
		images = imagepkg.DefaultProvider()
	}
	if gridColor == nil {
		gridColor = color.NRGBA{R: 0xff, A: 0x80}
	}
	return &Preview{
		path:        path,
		renderer:    r,
		images:      images,
		backgrounds: imagepkg.FileProvider{},
		gridColor:   gridColor,
		cache:       make(map[cacheKey]image.Image),
	}
}

// Refresh re-reads the card file and drops every cached image.
func (p *Preview) Refresh() error {
	p.ClearCache()
	f, err := cards.Load(p.path)
	if err != nil {
		return err
	}
	cs, err := f.Schema(p.backgrounds)
	if err != nil {
		return err
	}
	p.file, p.schema = f, cs
	p.rows = cards.Filter(f.Rows, cards.FilterOptions{MinRepetitions: 1, SkipInvalid: true})
	if p.position >= len(p.rows) {
		p.position = 0
	}
	return nil
}

func (p *Preview) ClearCache() {
	clear(p.cache)
}

// Len is the number of printable cards, loading the file if needed.
func (p *Preview) Len() (int, error) {
	if err := p.ensureLoaded(); err != nil {
		return 0, err
	}
	return len(p.rows), nil
}

// Position is the index of the card shown last.
func (p *Preview) Position() int { return p.position }

// Current renders the card at the current position with grid lines every
// gridWidth and gridHeight pixels.
func (p *Preview) Current(gridWidth, gridHeight int) (image.Image, error) {
	return p.imageAt(func(int) int { return p.position }, gridWidth, gridHeight)
}

// Next moves to the following card, wrapping around, and renders it.
func (p *Preview) Next(gridWidth, gridHeight int) (image.Image, error) {
	return p.imageAt(func(n int) int { return (p.position + 1) % n }, gridWidth, gridHeight)
}

// Previous moves to the preceding card, wrapping around, and renders it.
func (p *Preview) Previous(gridWidth, gridHeight int) (image.Image, error) {
	return p.imageAt(func(n int) int { return (p.position - 1 + n) % n }, gridWidth, gridHeight)
}

func (p *Preview) ensureLoaded() error {
	if p.schema != nil {
		return nil
	}
	return p.Refresh()
}

func (p *Preview) imageAt(move func(n int) int, gridWidth, gridHeight int) (image.Image, error) {
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	if len(p.rows) == 0 {
		return nil, ErrNoCards
	}
	p.position = move(len(p.rows))

	key := cacheKey{p.position, gridWidth, gridHeight}
	if img, ok := p.cache[key]; ok {
		return img, nil
	}
	row := p.rows[p.position]
	c, err := cards.NewCard(p.schema, row.Contents(p.schema.Len()), row.Repetitions, p.file.Dir, p.images)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", row.Ordinal, err)
	}
	rendered, err := c.Image(p.renderer)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", row.Ordinal, err)
	}
	img := imaging.Clone(rendered)
	imagepkg.DrawGrid(img, gridWidth, gridHeight, p.gridColor)
	p.cache[key] = img
	return img, nil
}
