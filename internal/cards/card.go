package cards

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/text/cases"

	imagepkg "github.com/youruser/cardcreator/internal/image"
	"github.com/youruser/cardcreator/internal/schema"
)

// ErrRowLength is returned when a data row does not have one value per
// schema slot.
var ErrRowLength = errors.New("cards: row length does not match schema")

// nameElements are the schema names, case-folded, whose content names a card.
var nameElements = map[string]bool{"name": true, "nazwa": true}

// Card is the set of live elements built from one data row.
type Card struct {
	schema      *schema.CardSchema
	elements    []*Element
	repetitions int

	// rendered is filled by the first call to Image and never changed after.
	rendered *image.NRGBA
}

// slot pairs a schema slot with the row value it receives.
type slot struct {
	schema  schema.ElementSchema
	content string
}

// NewCard binds row to cs. Values whose slot has neither content nor a
// background produce no element. Elements sharing a name are then spread
// across their area along the slot's join direction.
func NewCard(cs *schema.CardSchema, row []string, repetitions int, dir string, images imagepkg.ImageProvider) (*Card, error) {
	if len(row) != cs.Len() {
		return nil, fmt.Errorf("%w: %d values for %d slots", ErrRowLength, len(row), cs.Len())
	}
	slots := make([]slot, cs.Len())
	for i := range slots {
		slots[i] = slot{schema: cs.Element(i), content: row[i]}
	}

	c := &Card{schema: cs, repetitions: repetitions}
	for _, s := range slots {
		if s.content == "" && s.schema.Background() == nil {
			continue
		}
		c.elements = append(c.elements, newElement(images, s.schema, s.content, dir))
	}
	c.mergeElementsByName()
	return c, nil
}

func (c *Card) mergeElementsByName() {
	var order []string
	groups := make(map[string][]*Element)
	for _, e := range c.elements {
		name := e.schema.Name()
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], e)
	}
	for _, name := range order {
		group := groups[name]
		if len(group) == 1 {
			continue
		}
		for i, e := range group {
			e.setPosition(i, len(group))
		}
	}
}

// Elements returns the live elements in schema order.
func (c *Card) Elements() []*Element {
	return append([]*Element(nil), c.elements...)
}

func (c *Card) Schema() *schema.CardSchema { return c.schema }

// Repetitions is how many copies of the card go into a print sheet.
func (c *Card) Repetitions() int { return c.repetitions }

// Name returns the content of the first element named "name" (or its
// Polish synonym "nazwa"), compared case-insensitively. It is only used to
// identify the card in logs and file names.
func (c *Card) Name() string {
	for _, e := range c.elements {
		if nameElements[cases.Fold().String(e.schema.Name())] {
			return e.content
		}
	}
	return ""
}

// Drawables lists what Draw paints, in order: the card background then each
// element's parts.
func (c *Card) Drawables() []Drawable {
	var out []Drawable
	if bg := c.schema.Background(); bg != nil {
		out = append(out, Background{Image: bg, Area: c.schema.Bounds()})
	}
	for _, e := range c.elements {
		out = append(out, e.Drawables()...)
	}
	return out
}

func (c *Card) Draw(dst *image.NRGBA, r *imagepkg.Renderer) error {
	for _, d := range c.Drawables() {
		if err := d.Draw(dst, r); err != nil {
			return fmt.Errorf("drawing card %q: %w", c.Name(), err)
		}
	}
	return nil
}

// Image renders the card on first use and returns the same image on every
// later call. Callers must not modify the result.
func (c *Card) Image(r *imagepkg.Renderer) (image.Image, error) {
	if c.rendered != nil {
		return c.rendered, nil
	}
	canvas := r.Canvas(c.schema.WidthPx(), c.schema.HeightPx())
	if err := c.Draw(canvas, r); err != nil {
		return nil, err
	}
	c.rendered = canvas
	return canvas, nil
}
